// Package extract produces short readable excerpts from article HTML. The
// capability is optional by design: the pipeline behaves identically with the
// no-op extractor and with a readability failure, both yield an empty summary.
package extract

import (
	"log/slog"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/lysyi3m/news-digest/app/textutil"
)

const summaryMaxChars = 320

type Extractor interface {
	// Summary returns a short excerpt of the page, or "" when extraction is
	// not possible. It never returns an error.
	Summary(data []byte, pageURL string) string
}

var _ Extractor = (*Readability)(nil)
var _ Extractor = Noop{}

type Readability struct{}

func NewReadability() *Readability {
	return &Readability{}
}

func (e *Readability) Summary(data []byte, pageURL string) string {
	if len(data) == 0 {
		return ""
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		parsedURL = nil
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), parsedURL)
	if err != nil {
		slog.Debug("Content extraction failed", "url", pageURL, "error", err)
		return ""
	}

	text := textutil.CollapseWhitespace(article.TextContent)
	if text == "" {
		return ""
	}

	slog.Debug("Content extracted successfully",
		"url", pageURL,
		"content_length", len(text))

	return textutil.Truncate(textutil.Clean(text), summaryMaxChars)
}

// Noop is the fallback used when extraction is disabled.
type Noop struct{}

func (Noop) Summary([]byte, string) string {
	return ""
}
