package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Input configuration
	SourcesFile  string `long:"sources" env:"SOURCES_FILE" default:"./sources.yml" description:"YAML file listing the sources to ingest"`
	KeywordsFile string `long:"keywords" env:"KEYWORDS_FILE" default:"./keywords.yml" description:"YAML file with include/exclude keyword patterns"`

	// Run parameters
	Timezone    string `long:"timezone" env:"LOCAL_TZ" default:"UTC" description:"Timezone for the admission window (e.g., UTC, Asia/Seoul)"`
	WindowHours int    `long:"window-hours" env:"WINDOW_HOURS" default:"24" description:"Trailing window size in hours"`
	LinkLimit   int    `long:"link-limit" env:"LINK_LIMIT" default:"20" description:"Maximum article links visited per listing source"`
	WorkerCount int    `long:"worker-count" env:"WORKER_COUNT" default:"4" description:"Number of concurrent source workers"`
	HTTPTimeout int    `long:"http-timeout" env:"HTTP_TIMEOUT" default:"20" description:"Per-request HTTP timeout in seconds"`

	// Feature toggles
	SkipHTML       bool `long:"skip-html" env:"SKIP_HTML" description:"Skip HTML listing sources entirely"`
	DisableExtract bool `long:"no-extract" env:"NO_EXTRACT" description:"Disable readable-text summary extraction"`

	// Output configuration
	OutputDir string `long:"output-dir" env:"OUTPUT_DIR" default:"./docs" description:"Directory for data.json and index.html"`
	Serve     bool   `long:"serve" env:"SERVE" description:"Serve the output directory over HTTP after generation"`
	Port      string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (with --serve)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (compatible; news-digest/1.0; +https://github.com/lysyi3m/news-digest)" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		SourcesFile:    raw.SourcesFile,
		KeywordsFile:   raw.KeywordsFile,
		Timezone:       raw.Timezone,
		WindowHours:    raw.WindowHours,
		LinkLimit:      raw.LinkLimit,
		WorkerCount:    raw.WorkerCount,
		HTTPTimeout:    raw.HTTPTimeout,
		SkipHTML:       raw.SkipHTML,
		DisableExtract: raw.DisableExtract,
		OutputDir:      raw.OutputDir,
		Serve:          raw.Serve,
		Port:           raw.Port,
		UserAgent:      raw.UserAgent,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
