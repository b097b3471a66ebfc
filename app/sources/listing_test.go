package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lysyi3m/news-digest/app/config"
	"github.com/lysyi3m/news-digest/app/extract"
)

func articlePage(published time.Time) string {
	meta := ""
	if !published.IsZero() {
		meta = `<meta property="article:published_time" content="` + published.UTC().Format(time.RFC3339) + `">`
	}
	return `<html><head>` + meta + `</head><body><article><p>Article body.</p></article></body></html>`
}

func listingSource(url, pattern string) config.Source {
	return config.Source{Name: "Test Listing", Kind: config.KindListing, URL: url, LinkPattern: pattern, Tags: []string{"test"}}
}

func TestFetchListing_AdmissionAndSkips(t *testing.T) {
	now := time.Now()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/news/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="/article/fresh">Fresh story</a>
			<a href="/article/stale">Stale story</a>
			<a href="/article/dateless">Dateless story</a>
			<a href="/article/broken">Broken story</a>
			<a href="/about">About us</a>
		</body></html>`)
	})
	mux.HandleFunc("/article/fresh", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage(now.Add(-2*time.Hour)))
	})
	mux.HandleFunc("/article/stale", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage(now.Add(-48*time.Hour)))
	})
	mux.HandleFunc("/article/dateless", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage(time.Time{}))
	})
	mux.HandleFunc("/article/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	result := testFetcher(server.Client(), extract.Noop{}, false).
		Fetch(context.Background(), listingSource(server.URL+"/news/", "/article/"))
	if result.Err != nil {
		t.Fatalf("Expected no error, got %v", result.Err)
	}

	if len(result.Candidates) != 1 {
		t.Fatalf("Expected 1 admitted candidate, got %d", len(result.Candidates))
	}

	c := result.Candidates[0]
	if c.Title != "Fresh story" {
		t.Errorf("Expected title from anchor text, got %q", c.Title)
	}
	if c.Link != server.URL+"/article/fresh" {
		t.Errorf("Expected absolute resolved link, got %q", c.Link)
	}
	if c.Published == nil {
		t.Error("Admitted candidate must carry a publish instant")
	}
}

func TestFetchListing_DeduplicatesAnchors(t *testing.T) {
	now := time.Now()
	var articleHits atomic.Int32

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/news/", func(w http.ResponseWriter, r *http.Request) {
		// Same article reachable through a relative and an absolute href.
		fmt.Fprintf(w, `<html><body>
			<a href="/article/one">Headline link</a>
			<a href="%s/article/one">Thumbnail link</a>
		</body></html>`, server.URL)
	})
	mux.HandleFunc("/article/one", func(w http.ResponseWriter, r *http.Request) {
		articleHits.Add(1)
		fmt.Fprint(w, articlePage(now.Add(-time.Hour)))
	})

	result := testFetcher(server.Client(), extract.Noop{}, false).
		Fetch(context.Background(), listingSource(server.URL+"/news/", "/article/"))
	if result.Err != nil {
		t.Fatalf("Expected no error, got %v", result.Err)
	}

	if len(result.Candidates) != 1 {
		t.Errorf("Expected same canonical URL emitted once, got %d candidates", len(result.Candidates))
	}
	if got := articleHits.Load(); got != 1 {
		t.Errorf("Expected 1 article visit, got %d", got)
	}
}

func TestFetchListing_LinkLimitCapsVisits(t *testing.T) {
	now := time.Now()
	var articleHits atomic.Int32

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/news/", func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 10; i++ {
			fmt.Fprintf(w, `<a href="/article/%d">Story %d</a>`, i, i)
		}
	})
	mux.HandleFunc("/article/", func(w http.ResponseWriter, r *http.Request) {
		articleHits.Add(1)
		fmt.Fprint(w, articlePage(now.Add(-time.Hour)))
	})

	fetcher := New(server.Client(), extract.Noop{}, testBounds(), Options{
		UserAgent:   "test-agent",
		LinkLimit:   3,
		LinkWorkers: 2,
	})

	result := fetcher.Fetch(context.Background(), listingSource(server.URL+"/news/", "/article/"))
	if result.Err != nil {
		t.Fatalf("Expected no error, got %v", result.Err)
	}

	if got := articleHits.Load(); got != 3 {
		t.Errorf("Expected 3 article visits with limit 3, got %d", got)
	}
	if len(result.Candidates) != 3 {
		t.Errorf("Expected 3 candidates, got %d", len(result.Candidates))
	}
}

func TestFetchListing_PreservesDiscoveryOrder(t *testing.T) {
	now := time.Now()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/news/", func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 5; i++ {
			fmt.Fprintf(w, `<a href="/article/%d">Story %d</a>`, i, i)
		}
	})
	mux.HandleFunc("/article/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage(now.Add(-time.Hour)))
	})

	result := testFetcher(server.Client(), extract.Noop{}, false).
		Fetch(context.Background(), listingSource(server.URL+"/news/", "/article/"))
	if result.Err != nil {
		t.Fatalf("Expected no error, got %v", result.Err)
	}

	if len(result.Candidates) != 5 {
		t.Fatalf("Expected 5 candidates, got %d", len(result.Candidates))
	}
	for i, c := range result.Candidates {
		expected := fmt.Sprintf("Story %d", i)
		if c.Title != expected {
			t.Errorf("Position %d: expected %q, got %q", i, expected, c.Title)
		}
	}
}

func TestFetchListing_ExtractsSummaries(t *testing.T) {
	now := time.Now()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/news/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a href="/article/one">Story</a>`)
	})
	mux.HandleFunc("/article/one", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage(now.Add(-time.Hour)))
	})

	extractor := &stubExtractor{summary: "short excerpt"}
	result := testFetcher(server.Client(), extractor, true).
		Fetch(context.Background(), listingSource(server.URL+"/news/", ""))
	if result.Err != nil {
		t.Fatalf("Expected no error, got %v", result.Err)
	}

	if len(result.Candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(result.Candidates))
	}
	if result.Candidates[0].Summary != "short excerpt" {
		t.Errorf("Expected extracted summary, got %q", result.Candidates[0].Summary)
	}
}

func TestFetchListing_ListingPageUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	result := testFetcher(server.Client(), extract.Noop{}, false).
		Fetch(context.Background(), listingSource(server.URL+"/news/", ""))
	if result.Err == nil {
		t.Error("Expected error when the listing page is unreachable")
	}
	if len(result.Candidates) != 0 {
		t.Errorf("Expected zero candidates, got %d", len(result.Candidates))
	}
}
