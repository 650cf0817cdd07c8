package config

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the source configuration
type Loader struct {
	path string
}

// NewLoader creates a new source configuration loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and validates the YAML source configuration file
func (l *Loader) Load() (*Sources, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var sources Sources
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := l.validate(&sources); err != nil {
		return nil, fmt.Errorf("invalid sources config %s: %w", l.path, err)
	}

	return &sources, nil
}

func (l *Loader) validate(sources *Sources) error {
	if len(sources.Keywords) == 0 {
		return fmt.Errorf("at least one search keyword is required")
	}

	if len(sources.Languages) == 0 {
		return fmt.Errorf("at least one query language is required")
	}

	for i, lang := range sources.Languages {
		tag, err := language.Parse(lang.Code)
		if err != nil {
			return fmt.Errorf("invalid language code at index %d: %s", i, lang.Code)
		}
		if base, conf := tag.Base(); conf != language.No && base.String() != lang.Code {
			return fmt.Errorf("language code at index %d must be a base tag (got %s, want %s)", i, lang.Code, base.String())
		}
		if len(lang.Countries) == 0 {
			return fmt.Errorf("language %s must list at least one country", lang.Code)
		}
	}

	for i, target := range sources.Targets {
		if target.Name == "" {
			return fmt.Errorf("scrape target at index %d is missing a name", i)
		}
		if target.URL == "" {
			return fmt.Errorf("scrape target %s is missing a URL", target.Name)
		}
		if target.Country == "" {
			return fmt.Errorf("scrape target %s is missing a country", target.Name)
		}
	}

	return nil
}
