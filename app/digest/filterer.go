package digest

import (
	"fmt"
	"regexp"

	"golang.org/x/text/width"
)

// Filterer applies the include/exclude pattern sets to a candidate's combined
// title+summary text. Patterns are case-insensitive; an exclude match always
// wins over an include match.
type Filterer struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

func NewFilterer(include, exclude []string) (*Filterer, error) {
	inc, err := compilePatterns(include)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}
	exc, err := compilePatterns(exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}

	return &Filterer{include: inc, exclude: exc}, nil
}

// Keep reports whether a candidate with the given title and summary passes
// the pattern sets. With no include patterns everything passes that stage.
func (f *Filterer) Keep(title, summary string) bool {
	// Fold full-width characters so ASCII patterns match CJK-site text.
	text := width.Fold.String(title + " " + summary)

	for _, re := range f.exclude {
		if re.MatchString(text) {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}
	for _, re := range f.include {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}
