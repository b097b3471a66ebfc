// Package sources fetches candidate items from configured endpoints. Each
// source is an isolated failure domain: any network or parse error becomes a
// failed Result, never an aborted run.
package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/lysyi3m/news-digest/app/config"
	"github.com/lysyi3m/news-digest/app/digest"
	"github.com/lysyi3m/news-digest/app/extract"
	"github.com/lysyi3m/news-digest/app/window"
)

const acceptLanguage = "zh-CN,zh;q=0.9,en;q=0.8,ko;q=0.7"

// Result is the outcome of fetching one source. Err and Candidates are
// mutually exclusive; a failed source contributes zero candidates.
type Result struct {
	Source     config.Source
	Candidates []digest.Candidate
	Err        error
}

type Options struct {
	UserAgent string
	LinkLimit int
	// LinkWorkers bounds parallel article visits within one listing source.
	LinkWorkers int
	// Enrich controls whether fetchers may visit article pages to fill in
	// missing summaries via the extractor.
	Enrich bool
}

type Fetcher struct {
	client    *http.Client
	extractor extract.Extractor
	bounds    window.Bounds
	opts      Options
}

func New(client *http.Client, extractor extract.Extractor, bounds window.Bounds, opts Options) *Fetcher {
	if extractor == nil {
		extractor = extract.Noop{}
	}
	if opts.LinkLimit <= 0 {
		opts.LinkLimit = 20
	}
	if opts.LinkWorkers <= 0 {
		opts.LinkWorkers = 4
	}

	return &Fetcher{
		client:    client,
		extractor: extractor,
		bounds:    bounds,
		opts:      opts,
	}
}

// Fetch dispatches on the source kind. Admission happens here, at fetch time:
// downstream stages only ever see already-windowed candidates.
func (f *Fetcher) Fetch(ctx context.Context, src config.Source) Result {
	switch src.Kind {
	case config.KindListing:
		return f.fetchListing(ctx, src)
	default:
		return f.fetchFeed(ctx, src)
	}
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
