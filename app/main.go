package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/news-digest/app/api"
	"github.com/lysyi3m/news-digest/app/cfg"
	"github.com/lysyi3m/news-digest/app/config"
	"github.com/lysyi3m/news-digest/app/digest"
	"github.com/lysyi3m/news-digest/app/extract"
	"github.com/lysyi3m/news-digest/app/httpclient"
	"github.com/lysyi3m/news-digest/app/pipeline"
	"github.com/lysyi3m/news-digest/app/render"
	"github.com/lysyi3m/news-digest/app/sources"
	"github.com/lysyi3m/news-digest/app/window"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Configuration error", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was requested.
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting news-digest", "version", appCfg.Version)

	loc, err := time.LoadLocation(appCfg.Timezone)
	if err != nil {
		slog.Warn("Unknown timezone, falling back to UTC", "timezone", appCfg.Timezone, "error", err)
		loc = time.UTC
	}

	srcs, err := config.LoadSources(appCfg.SourcesFile)
	if err != nil {
		slog.Error("Failed to load sources", "file", appCfg.SourcesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Sources loaded", "file", appCfg.SourcesFile, "count", len(srcs))

	keywords, err := config.LoadKeywords(appCfg.KeywordsFile)
	if err != nil {
		slog.Error("Failed to load keywords", "file", appCfg.KeywordsFile, "error", err)
		os.Exit(1)
	}

	filterer, err := digest.NewFilterer(keywords.Include, keywords.Exclude)
	if err != nil {
		slog.Error("Invalid keyword pattern", "error", err)
		os.Exit(1)
	}

	now := time.Now()
	bounds := window.New(now, loc, appCfg.WindowHours)
	slog.Info("Admission window",
		"start", bounds.Start.Format(time.RFC3339),
		"end", bounds.End.Format(time.RFC3339),
		"timezone", loc.String())

	client := httpclient.New(time.Duration(appCfg.HTTPTimeout) * time.Second)

	var extractor extract.Extractor = extract.NewReadability()
	if appCfg.DisableExtract {
		extractor = extract.Noop{}
	}

	fetcher := sources.New(client, extractor, bounds, sources.Options{
		UserAgent:   appCfg.UserAgent,
		LinkLimit:   appCfg.LinkLimit,
		LinkWorkers: appCfg.WorkerCount,
		Enrich:      !appCfg.DisableExtract,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	items, stats := pipeline.New(fetcher, filterer, appCfg.WorkerCount, appCfg.SkipHTML).Run(ctx, srcs)

	meta := render.Meta{
		WindowStart: bounds.Start,
		WindowEnd:   bounds.End,
		Timezone:    loc.String(),
		GeneratedAt: now,
		Stats:       stats,
	}
	if err := render.NewRenderer(appCfg.OutputDir).Run(items, meta); err != nil {
		slog.Error("Failed to write output", "error", err)
		os.Exit(1)
	}

	if !appCfg.Serve {
		return
	}

	serve(ctx, appCfg, stats, now)
}

// serve blocks until interrupted, exposing the rendered output over HTTP.
func serve(ctx context.Context, appCfg *cfg.Cfg, stats pipeline.Stats, generatedAt time.Time) {
	handler := api.NewHandler(appCfg.OutputDir, stats, generatedAt, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-errChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Preview server stopped")
}
