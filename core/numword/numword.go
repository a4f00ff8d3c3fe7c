// Package numword converts spelled-out English cardinal numbers to digit
// tokens. Conversion is non-fuzzy: only clear number words are converted,
// and adjacent number words are merged only when they form one grammatical
// compound ("twenty one" is 21, but "three three" stays two numbers).
package numword

import (
	"strconv"
	"strings"
)

// unitWords maps spoken digit words to their values.
var unitWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9,
}

// teenWords maps ten through nineteen.
var teenWords = map[string]int{
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

// tensWords maps the multiples of ten.
var tensWords = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// IsNumberWord reports whether w (lowercase) is a recognized number word.
func IsNumberWord(w string) bool {
	if w == "hundred" {
		return true
	}
	if _, ok := unitWords[w]; ok {
		return true
	}
	if _, ok := teenWords[w]; ok {
		return true
	}
	_, ok := tensWords[w]
	return ok
}

// Convert rewrites every spelled-out cardinal in text as digits, leaving all
// other words untouched. It never fails; text with no number words is
// returned with only whitespace normalization applied by the caller's
// tokenization (fields are rejoined with single spaces).
func Convert(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return text
	}

	out := make([]string, 0, len(fields))
	i := 0
	for i < len(fields) {
		word, lead, trail := trimPunct(fields[i])
		lower := strings.ToLower(word)

		// Hyphenated compound: "twenty-one" -> 21. Anything else keeps
		// the hyphen so ranges like "sixteen-eighteen" survive as "16-18".
		if strings.Contains(lower, "-") {
			out = append(out, lead+convertHyphenated(lower)+trail)
			i++
			continue
		}

		if !IsNumberWord(lower) {
			out = append(out, fields[i])
			i++
			continue
		}

		// Punctuation attached to a number word ends the compound there.
		if trail != "" {
			value, _ := parseCompound([]string{lower})
			out = append(out, lead+strconv.Itoa(value)+trail)
			i++
			continue
		}

		words := []string{lower}
		j := i + 1
		for j < len(fields) {
			next, nlead, _ := trimPunct(fields[j])
			if nlead != "" || !IsNumberWord(strings.ToLower(next)) {
				break
			}
			words = append(words, strings.ToLower(next))
			j++
		}
		value, consumed := parseCompound(words)
		out = append(out, lead+strconv.Itoa(value))
		// Trailing punctuation of the last consumed word is preserved.
		if consumed > 0 {
			_, _, t := trimPunct(fields[i+consumed-1])
			if t != "" {
				out[len(out)-1] += t
			}
		}
		i += consumed
	}
	return strings.Join(out, " ")
}

// parseCompound consumes the longest grammatical compound from the front of
// words and returns its value and the number of words consumed. words must
// be non-empty lowercase number words; at least one word is always consumed.
func parseCompound(words []string) (int, int) {
	value := 0
	consumed := 0

	// Optional hundreds part: "hundred", "one hundred", "three hundred".
	if u, ok := unitWords[words[0]]; ok && len(words) > 1 && words[1] == "hundred" {
		value = u * 100
		consumed = 2
	} else if words[0] == "hundred" {
		value = 100
		consumed = 1
	}

	rest := words[consumed:]
	if len(rest) == 0 {
		return value, consumed
	}

	if consumed == 0 {
		// No hundreds part: a bare unit never merges with what follows,
		// so "three three" stays two separate numbers.
		if u, ok := unitWords[rest[0]]; ok {
			return u, 1
		}
	}

	if t, ok := tensWords[rest[0]]; ok {
		value += t
		consumed++
		if len(rest) > 1 {
			if u, ok := unitWords[rest[1]]; ok {
				value += u
				consumed++
			}
		}
		return value, consumed
	}
	if t, ok := teenWords[rest[0]]; ok {
		return value + t, consumed + 1
	}
	if consumed > 0 {
		if u, ok := unitWords[rest[0]]; ok {
			return value + u, consumed + 1
		}
	}
	return value, consumed
}

// convertHyphenated converts "twenty-one" style compounds, and otherwise
// converts each hyphen-separated part independently ("sixteen-eighteen"
// becomes "16-18").
func convertHyphenated(lower string) string {
	parts := strings.Split(lower, "-")
	if len(parts) == 2 {
		if t, ok := tensWords[parts[0]]; ok {
			if u, ok := unitWords[parts[1]]; ok {
				return strconv.Itoa(t + u)
			}
		}
	}
	for k, p := range parts {
		if IsNumberWord(p) {
			v, _ := parseCompound([]string{p})
			parts[k] = strconv.Itoa(v)
		}
	}
	return strings.Join(parts, "-")
}

// trimPunct splits leading and trailing punctuation off a field, returning
// the bare word and the stripped affixes.
func trimPunct(field string) (word, lead, trail string) {
	word = field
	for len(word) > 0 && isPunct(word[0]) {
		lead += string(word[0])
		word = word[1:]
	}
	for len(word) > 0 && isPunct(word[len(word)-1]) {
		trail = string(word[len(word)-1]) + trail
		word = word[:len(word)-1]
	}
	return word, lead, trail
}

func isPunct(c byte) bool {
	switch c {
	case ',', ';', ':', '.', '(', ')', '"', '\'':
		return true
	}
	return false
}
