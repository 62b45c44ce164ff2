// Package similarity scores how alike two bibliographic entries are and
// detects the chapter-of-book relationship between them.
package similarity

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

var (
	markupChars = regexp.MustCompile(`[\\{}]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Normalize prepares text for comparison: LaTeX markup characters are
// stripped, whitespace runs collapse to single spaces, and the result is
// lower-cased and trimmed.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = markupChars.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(strings.ToLower(text))
}

// Ratio computes a [0,1] similarity between two strings using
// longest-matching-blocks comparison over their normalized forms.
//
// Either input being empty yields 0.0 exactly. Two entries that both lack
// a field are not a match on that field.
func Ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	m := difflib.NewMatcher(runes(Normalize(a)), runes(Normalize(b)))
	return m.Ratio()
}

// runes splits a string into per-rune elements for character-level
// sequence matching.
func runes(s string) []string {
	return strings.Split(s, "")
}
