package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// LoadSources loads and validates the source list. A failure here is run-fatal;
// everything past configuration loading degrades instead of aborting.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources YAML: %w", err)
	}

	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("no sources configured in %s", path)
	}

	for i := range file.Sources {
		setDefaults(&file.Sources[i])
		if err := validate(&file.Sources[i]); err != nil {
			return nil, fmt.Errorf("invalid source at index %d: %w", i, err)
		}
	}

	return file.Sources, nil
}

// LoadKeywords loads the include/exclude pattern lists. Patterns are validated
// here so a bad expression fails the run before any network work happens.
func LoadKeywords(path string) (*Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file: %w", err)
	}

	var kw Keywords
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return nil, fmt.Errorf("failed to parse keywords YAML: %w", err)
	}

	for _, pattern := range append(append([]string{}, kw.Include...), kw.Exclude...) {
		if _, err := regexp.Compile("(?i)" + pattern); err != nil {
			return nil, fmt.Errorf("invalid keyword pattern %q: %w", pattern, err)
		}
	}

	return &kw, nil
}

func setDefaults(src *Source) {
	if src.Kind == "" {
		src.Kind = KindFeed
	}
}

func validate(src *Source) error {
	if src.Name == "" {
		return fmt.Errorf("source name is required")
	}
	if src.URL == "" {
		return fmt.Errorf("source URL is required")
	}

	u, err := url.Parse(src.URL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("source URL must be absolute: %s", src.URL)
	}

	if src.Kind != KindFeed && src.Kind != KindListing {
		return fmt.Errorf("unknown source kind: %s", src.Kind)
	}

	if src.LinkPattern != "" {
		if src.Kind != KindListing {
			return fmt.Errorf("link_pattern is only valid for listing sources")
		}
		if _, err := regexp.Compile("(?i)" + src.LinkPattern); err != nil {
			return fmt.Errorf("invalid link_pattern: %w", err)
		}
	}

	return nil
}
