package config

// Source kinds
const (
	KindFeed    = "feed"
	KindListing = "listing"
)

// Source describes one configured endpoint. Supplied once per run, never mutated.
type Source struct {
	Name        string   `yaml:"name"`
	Kind        string   `yaml:"kind"`
	URL         string   `yaml:"url"`
	LinkPattern string   `yaml:"link_pattern,omitempty"`
	Tags        []string `yaml:"tags"`
}

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// Keywords holds the include/exclude pattern lists applied to title+summary text.
type Keywords struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}
