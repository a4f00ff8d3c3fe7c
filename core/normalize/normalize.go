// Package normalize cleans speech-to-text artifacts out of raw utterance
// text before reference detection: sentence-final periods become spaces,
// whitespace runs collapse, and spelled-out numbers become digits.
package normalize

import (
	"regexp"
	"strings"

	"github.com/FocuswithJustin/Lectern/core/numword"
)

// periodBreak matches a period plus any trailing whitespace. Live
// transcription emits these as sentence breaks mid-reference
// ("Luke. Three. Three.").
var periodBreak = regexp.MustCompile(`\.\s*`)

// Text normalizes a raw utterance. Periods become single spaces, whitespace
// runs collapse to one space, the result is trimmed, and spelled-out
// cardinals are converted to digits. It never fails; at worst the input
// comes back with only the whitespace cleanup applied.
func Text(raw string) string {
	s := periodBreak.ReplaceAllString(raw, " ")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return s
	}
	return numword.Convert(s)
}
