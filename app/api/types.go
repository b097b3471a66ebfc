package api

import (
	"time"

	"github.com/lysyi3m/news-digest/app/pipeline"
)

// Handler serves the generated output directory plus run metadata.
type Handler struct {
	outputDir   string
	stats       pipeline.Stats
	generatedAt time.Time
	version     string
}
