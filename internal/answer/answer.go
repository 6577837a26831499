package answer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds an answer to its comparison form.
//
// Normalization rules:
// - Comparison is case-insensitive
// - Diacritics are dropped ("caffè" becomes "caffe"), including stray
//   combining marks with no base letter
// - Leading and trailing whitespace is trimmed, after the marks are gone
//
// The transform works on codepoints only; there is no locale-aware collation.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(s string) string {
	s = strings.ToLower(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	return strings.TrimSpace(s)
}

// IsCorrect reports whether the user's input matches the expected answer
// after normalization. Partial matches never count. Two blank values match.
func IsCorrect(input, expected string) bool {
	return Normalize(input) == Normalize(expected)
}

// IsBlank reports whether a value normalizes to nothing: only whitespace
// and combining marks.
func IsBlank(s string) bool {
	return Normalize(s) == ""
}
