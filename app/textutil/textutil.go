// Package textutil provides text normalization helpers shared by the fetchers
// and the extractor.
package textutil

import (
	"strings"
)

// Ideographic and non-breaking spaces show up constantly in CJK feeds.
var spaceReplacer = strings.NewReplacer("　", " ", " ", " ")

// Clean trims the string and collapses exotic space characters to ordinary ones.
func Clean(s string) string {
	return strings.TrimSpace(spaceReplacer.Replace(s))
}

// Truncate cuts the string to at most max runes, never splitting a rune.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// CollapseWhitespace folds all runs of whitespace (including newlines) into
// single spaces. Used on extracted article text before truncation.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
