// Package pipeline runs the configured sources through fetch, filter, dedup
// and ranking. Sources are fetched by a bounded worker pool; the merge is a
// single-threaded barrier because first-occurrence dedup needs the complete
// cross-source set in configured order.
package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lysyi3m/news-digest/app/config"
	"github.com/lysyi3m/news-digest/app/digest"
	"github.com/lysyi3m/news-digest/app/sources"
)

// Fetcher is what the pipeline needs from the sources package. Tests inject
// stubs.
type Fetcher interface {
	Fetch(ctx context.Context, src config.Source) sources.Result
}

var _ Fetcher = (*sources.Fetcher)(nil)

// Stats summarizes one run.
type Stats struct {
	Sources    int
	Failed     int
	Candidates int
	Final      int
}

type Pipeline struct {
	fetcher     Fetcher
	filterer    *digest.Filterer
	workerCount int
	skipHTML    bool
}

func New(fetcher Fetcher, filterer *digest.Filterer, workerCount int, skipHTML bool) *Pipeline {
	if workerCount <= 0 {
		workerCount = 1
	}
	return &Pipeline{
		fetcher:     fetcher,
		filterer:    filterer,
		workerCount: workerCount,
		skipHTML:    skipHTML,
	}
}

// Run processes every source and returns the ranked result set. Individual
// source failures are logged and contribute zero items; Run itself never
// fails.
func (p *Pipeline) Run(ctx context.Context, srcs []config.Source) ([]digest.Item, Stats) {
	results := p.fetchAll(ctx, srcs)

	stats := Stats{Sources: len(srcs)}
	deduper := digest.NewDeduper()
	items := make([]digest.Item, 0)

	// Barrier stage: single-threaded over results in configured source order,
	// so the first occurrence of a duplicate story is owned deterministically.
	for i, result := range results {
		src := srcs[i]

		if result.Err != nil {
			stats.Failed++
			slog.Warn("Source fetch failed", "source", src.Name, "error", result.Err)
			continue
		}

		for _, c := range result.Candidates {
			stats.Candidates++

			if !p.filterer.Keep(c.Title, c.Summary) {
				continue
			}
			if !deduper.Admit(digest.Key(c)) {
				continue
			}

			items = append(items, digest.Item{
				Title:   c.Title,
				Link:    c.Link,
				Summary: c.Summary,
				Date:    c.Published.UTC(),
				Source:  src.Name,
				Tags:    src.Tags,
			})
		}
	}

	items = digest.Assemble(items)
	stats.Final = len(items)

	slog.Info("Run completed",
		"sources", stats.Sources,
		"failed", stats.Failed,
		"candidates", stats.Candidates,
		"final", stats.Final)

	return items, stats
}

// fetchAll runs the sources through a bounded worker pool. Workers share no
// mutable state: each writes only its own result slot.
func (p *Pipeline) fetchAll(ctx context.Context, srcs []config.Source) []sources.Result {
	results := make([]sources.Result, len(srcs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = p.fetchOne(ctx, srcs[idx])
			}
		}()
	}

	for idx := range srcs {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return results
}

func (p *Pipeline) fetchOne(ctx context.Context, src config.Source) sources.Result {
	if p.skipHTML && src.Kind == config.KindListing {
		slog.Info("Skipping HTML listing source", "source", src.Name)
		return sources.Result{Source: src}
	}
	return p.fetcher.Fetch(ctx, src)
}
