package sources

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/news-digest/app/config"
	"github.com/lysyi3m/news-digest/app/dates"
	"github.com/lysyi3m/news-digest/app/digest"
	"github.com/lysyi3m/news-digest/app/textutil"
)

const feedSummaryMaxChars = 400

// fetchFeed retrieves and parses a syndication feed. Entries with an unknown
// or out-of-window publish date are dropped here, not downstream.
func (f *Fetcher) fetchFeed(ctx context.Context, src config.Source) Result {
	data, err := f.get(ctx, src.URL)
	if err != nil {
		return Result{Source: src, Err: fmt.Errorf("failed to fetch feed: %w", err)}
	}

	// gofeed parsers are not safe for concurrent use; one per fetch.
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return Result{Source: src, Err: fmt.Errorf("failed to parse feed: %w", err)}
	}

	candidates := make([]digest.Candidate, 0, len(feed.Items))
	dropped := 0
	for _, item := range feed.Items {
		published := dates.FromFeedItem(item)
		if !f.bounds.Admits(published) {
			dropped++
			continue
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		summary = textutil.Truncate(textutil.Clean(summary), feedSummaryMaxChars)

		if summary == "" && f.opts.Enrich && item.Link != "" {
			summary = f.enrichSummary(ctx, item.Link)
		}

		candidates = append(candidates, digest.Candidate{
			Title:     textutil.Clean(item.Title),
			Link:      item.Link,
			Summary:   summary,
			Published: published,
		})
	}

	slog.Debug("Feed fetched",
		"source", src.Name,
		"entries", len(feed.Items),
		"admitted", len(candidates),
		"outside_window", dropped)

	return Result{Source: src, Candidates: candidates}
}

// enrichSummary fetches the article page and extracts a short excerpt. Any
// failure degrades to an empty summary.
func (f *Fetcher) enrichSummary(ctx context.Context, link string) string {
	data, err := f.get(ctx, link)
	if err != nil {
		slog.Debug("Summary enrichment fetch failed", "url", link, "error", err)
		return ""
	}
	return f.extractor.Summary(data, link)
}
