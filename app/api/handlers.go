package api

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/news-digest/app/pipeline"
)

func NewHandler(outputDir string, stats pipeline.Stats, generatedAt time.Time, version string) *Handler {
	return &Handler{
		outputDir:   outputDir,
		stats:       stats,
		generatedAt: generatedAt,
		version:     version,
	}
}

func (h *Handler) GetIndex(c *gin.Context) {
	c.File(filepath.Join(h.outputDir, "index.html"))
}

func (h *Handler) GetData(c *gin.Context) {
	c.File(filepath.Join(h.outputDir, "data.json"))
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"generated_at": h.generatedAt.UTC().Format(time.RFC3339),
		"version":      h.version,
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sources":    h.stats.Sources,
		"failed":     h.stats.Failed,
		"candidates": h.stats.Candidates,
		"final":      h.stats.Final,
	})
}
