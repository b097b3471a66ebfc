// Package dates resolves publish timestamps from feed entries, HTML documents
// and loose strings. Resolution never fails loudly: anything unparseable comes
// back as nil, which the admission window treats as "drop".
package dates

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
)

// ParseLoose parses a timestamp string in any of the formats dateparse
// understands. Timezone-naive strings are read as UTC; the result is always
// normalized to UTC.
func ParseLoose(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return nil
	}

	utc := t.UTC()
	return &utc
}

// FromFeedItem resolves a feed entry's publish instant. Structured timestamps
// win over raw strings, published wins over updated.
func FromFeedItem(item *gofeed.Item) *time.Time {
	if item == nil {
		return nil
	}

	if item.PublishedParsed != nil {
		utc := item.PublishedParsed.UTC()
		return &utc
	}
	if item.UpdatedParsed != nil {
		utc := item.UpdatedParsed.UTC()
		return &utc
	}

	if ts := ParseLoose(item.Published); ts != nil {
		return ts
	}
	return ParseLoose(item.Updated)
}

// documentLocations is ordered by trust, not document order: explicit
// published-time markup first, updated-time and bare time elements last.
var documentLocations = []struct {
	selector string
	attr     string
}{
	{`meta[property="article:published_time"]`, "content"},
	{`meta[name="article:published_time"]`, "content"},
	{`meta[itemprop="datePublished"]`, "content"},
	{`meta[name="pubdate"]`, "content"},
	{`meta[property="og:updated_time"]`, "content"},
	{`time[datetime]`, "datetime"},
}

// FromDocument searches the document's metadata locations for a publication
// timestamp and returns the first one that parses.
func FromDocument(doc *goquery.Document) *time.Time {
	if doc == nil {
		return nil
	}

	for _, loc := range documentLocations {
		val, ok := doc.Find(loc.selector).First().Attr(loc.attr)
		if !ok {
			continue
		}
		if ts := ParseLoose(val); ts != nil {
			return ts
		}
	}

	return nil
}
