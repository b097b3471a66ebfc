// Package render writes the digest to disk: a machine-readable data.json and
// a static index.html built from the same item set.
package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lysyi3m/news-digest/app/digest"
	"github.com/lysyi3m/news-digest/app/pipeline"
)

//go:embed index.html.tmpl
var pageTemplate string

// Meta describes the run that produced the items.
type Meta struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Timezone    string
	GeneratedAt time.Time
	Stats       pipeline.Stats
}

type Renderer struct {
	outputDir string
	tmpl      *template.Template
}

func NewRenderer(outputDir string) *Renderer {
	return &Renderer{
		outputDir: outputDir,
		tmpl:      template.Must(template.New("index").Parse(pageTemplate)),
	}
}

// Run writes data.json and index.html into the output directory, creating it
// if needed. An empty item set still produces both files.
func (r *Renderer) Run(items []digest.Item, meta Meta) error {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := r.writeJSON(items); err != nil {
		return err
	}
	if err := r.writeHTML(items, meta); err != nil {
		return err
	}

	slog.Info("Output written", "dir", r.outputDir, "items", len(items))
	return nil
}

func (r *Renderer) writeJSON(items []digest.Item) error {
	// Marshal an empty array rather than null for a nil slice.
	if items == nil {
		items = []digest.Item{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(r.outputDir, "data.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

type pageData struct {
	Items       []digest.Item
	ItemsJSON   template.JS
	WindowStart string
	WindowEnd   string
	Timezone    string
	GeneratedAt string
	Stats       pipeline.Stats
}

func (r *Renderer) writeHTML(items []digest.Item, meta Meta) error {
	if items == nil {
		items = []digest.Item{}
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode items for page: %w", err)
	}

	path := filepath.Join(r.outputDir, "index.html")
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	data := pageData{
		Items:       items,
		ItemsJSON:   template.JS(encoded),
		WindowStart: meta.WindowStart.Format("2006-01-02 15:04"),
		WindowEnd:   meta.WindowEnd.Format("2006-01-02 15:04"),
		Timezone:    meta.Timezone,
		GeneratedAt: meta.GeneratedAt.Format(time.RFC3339),
		Stats:       meta.Stats,
	}

	if err := r.tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}
