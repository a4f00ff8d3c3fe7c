// Package verselist expands verse expressions ("16", "16-18", "sixteen to
// eighteen", "16, 17, and 18") into ordered, deduplicated verse numbers.
package verselist

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/Lectern/core/numword"
)

// maxRangeSpan caps range expansion so a mis-heard "1-9000" cannot balloon
// the result list.
const maxRangeSpan = 200

var (
	dashRange = regexp.MustCompile(`^(.+?)\s*-\s*(.+)$`)
	toRange   = regexp.MustCompile(`(?i)^(.+?)\s+to\s+(.+)$`)
	andWord   = regexp.MustCompile(`\band\b`)
)

// Parse expands a verse expression into a deduplicated, ascending list of
// positive verse numbers. "and" and "&" act as commas, parts may be single
// numbers or ranges ("A-B", "A to B"), and numbers may be digits or spelled
// out. Malformed parts are skipped; an unparseable expression yields an
// empty list, never an error.
func Parse(expr string) []int {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "&", ",")
	s = andWord.ReplaceAllString(s, ",")

	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if start, end, ok := parseRange(part); ok {
			if end-start > maxRangeSpan {
				end = start + maxRangeSpan
			}
			for v := start; v <= end; v++ {
				seen[v] = true
			}
			continue
		}
		if v, ok := parseNumber(part); ok {
			seen[v] = true
		}
	}

	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Runs groups an ascending verse list into contiguous [start, end] runs.
// [16,17,18,20] becomes [[16,18],[20,20]].
func Runs(verses []int) [][2]int {
	var runs [][2]int
	for _, v := range verses {
		if n := len(runs); n > 0 && runs[n-1][1] == v-1 {
			runs[n-1][1] = v
			continue
		}
		runs = append(runs, [2]int{v, v})
	}
	return runs
}

// parseRange recognizes "A-B" and "A to B" where A and B are digits or
// spelled numbers, requiring start <= end.
func parseRange(part string) (start, end int, ok bool) {
	m := dashRange.FindStringSubmatch(part)
	if m == nil {
		m = toRange.FindStringSubmatch(part)
	}
	if m == nil {
		return 0, 0, false
	}
	start, okStart := parseNumber(m[1])
	end, okEnd := parseNumber(m[2])
	if !okStart || !okEnd || start > end {
		return 0, 0, false
	}
	return start, end, true
}

// parseNumber converts a digit or spelled-out token to a positive integer.
func parseNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, v >= 1
	}
	converted := strings.TrimSpace(numword.Convert(s))
	if v, err := strconv.Atoi(converted); err == nil {
		return v, v >= 1
	}
	return 0, false
}
