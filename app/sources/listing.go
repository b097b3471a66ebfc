package sources

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/news-digest/app/config"
	"github.com/lysyi3m/news-digest/app/dates"
	"github.com/lysyi3m/news-digest/app/digest"
	"github.com/lysyi3m/news-digest/app/textutil"
)

// discoveredLink pairs a resolved article URL with its anchor text on the
// listing page.
type discoveredLink struct {
	href string
	text string
}

// fetchListing discovers article links on an index page and visits each one
// to resolve its publish date. Per-link failures are skipped; only a failure
// to fetch or parse the listing page itself fails the source.
func (f *Fetcher) fetchListing(ctx context.Context, src config.Source) Result {
	data, err := f.get(ctx, src.URL)
	if err != nil {
		return Result{Source: src, Err: fmt.Errorf("failed to fetch listing page: %w", err)}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return Result{Source: src, Err: fmt.Errorf("failed to parse listing page: %w", err)}
	}

	base, err := url.Parse(src.URL)
	if err != nil {
		return Result{Source: src, Err: fmt.Errorf("invalid listing URL: %w", err)}
	}

	// The pattern was validated at configuration load time.
	var linkRe *regexp.Regexp
	if src.LinkPattern != "" {
		linkRe = regexp.MustCompile("(?i)" + src.LinkPattern)
	}

	links := discoverLinks(doc, base, linkRe, f.opts.LinkLimit)

	// Visit links in parallel but keep discovery order: slot i belongs to
	// links[i], so output stays deterministic regardless of completion order.
	slots := make([]*digest.Candidate, len(links))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.LinkWorkers)
	for i, link := range links {
		g.Go(func() error {
			slots[i] = f.visitLink(gctx, link)
			return nil
		})
	}
	g.Wait()

	candidates := make([]digest.Candidate, 0, len(links))
	for _, c := range slots {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}

	slog.Debug("Listing fetched",
		"source", src.Name,
		"links_visited", len(links),
		"admitted", len(candidates))

	return Result{Source: src, Candidates: candidates}
}

// discoverLinks extracts anchor hrefs, resolves them against the listing URL,
// applies the optional URL pattern and deduplicates within this single fetch.
// At most limit links are returned; the cap bounds work per run.
func discoverLinks(doc *goquery.Document, base *url.URL, linkRe *regexp.Regexp, limit int) []discoveredLink {
	seen := make(map[string]struct{})
	links := make([]discoveredLink, 0, limit)

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return true
		}
		absStr := abs.String()

		if linkRe != nil && !linkRe.MatchString(absStr) {
			return true
		}
		if _, dup := seen[absStr]; dup {
			return true
		}
		seen[absStr] = struct{}{}

		links = append(links, discoveredLink{href: absStr, text: textutil.Clean(sel.Text())})
		return len(links) < limit
	})

	return links
}

// visitLink fetches one article and resolves its publish date. It returns nil
// when the article is unreachable, has no resolvable date, or falls outside
// the window; the rest of the listing is unaffected.
func (f *Fetcher) visitLink(ctx context.Context, link discoveredLink) *digest.Candidate {
	data, err := f.get(ctx, link.href)
	if err != nil {
		slog.Debug("Article fetch failed, skipping link", "url", link.href, "error", err)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		slog.Debug("Article parse failed, skipping link", "url", link.href, "error", err)
		return nil
	}

	published := dates.FromDocument(doc)
	if !f.bounds.Admits(published) {
		return nil
	}

	title := link.text
	if title == "" {
		title = link.href
	}

	var summary string
	if f.opts.Enrich {
		summary = f.extractor.Summary(data, link.href)
	}

	return &digest.Candidate{
		Title:     title,
		Link:      link.href,
		Summary:   summary,
		Published: published,
	}
}
