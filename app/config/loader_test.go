package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validSources = `
keywords:
  - "menstrual pad"
  - "sanitary pad"
  - "period underwear"

languages:
  - code: "en"
    countries: ["US", "GB", "AU"]
  - code: "ja"
    countries: ["JP"]

targets:
  - name: "Kao Laurier"
    url: "https://www.kao.co.jp/laurier/"
    company: "Kao"
    brand: "Laurier"
    country: "JP"

pacing:
  newsapi_delay_ms: 500
`

func writeSources(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidSources(t *testing.T) {
	loader := NewLoader(writeSources(t, validSources))

	sources, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}

	if len(sources.Keywords) != 3 {
		t.Errorf("Expected 3 keywords, got %d", len(sources.Keywords))
	}
	if len(sources.Languages) != 2 {
		t.Errorf("Expected 2 languages, got %d", len(sources.Languages))
	}
	if sources.Languages[0].Countries[0] != "US" {
		t.Errorf("Expected first country US, got %s", sources.Languages[0].Countries[0])
	}
	if len(sources.Targets) != 1 {
		t.Errorf("Expected 1 target, got %d", len(sources.Targets))
	}
	if sources.Targets[0].Brand != "Laurier" {
		t.Errorf("Expected brand Laurier, got %s", sources.Targets[0].Brand)
	}
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "missing.yml"))

	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for missing sources file")
	}
}

func TestLoadRejectsEmptyKeywords(t *testing.T) {
	content := `
languages:
  - code: "en"
    countries: ["US"]
`
	loader := NewLoader(writeSources(t, content))

	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for missing keywords")
	}
}

func TestLoadRejectsInvalidLanguage(t *testing.T) {
	content := `
keywords: ["pad"]
languages:
  - code: "not a language"
    countries: ["US"]
`
	loader := NewLoader(writeSources(t, content))

	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for invalid language code")
	}
}

func TestLoadRejectsLanguageWithoutCountries(t *testing.T) {
	content := `
keywords: ["pad"]
languages:
  - code: "en"
    countries: []
`
	loader := NewLoader(writeSources(t, content))

	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for language without countries")
	}
}

func TestLoadRejectsTargetWithoutURL(t *testing.T) {
	content := `
keywords: ["pad"]
languages:
  - code: "en"
    countries: ["US"]
targets:
  - name: "Broken"
    country: "US"
`
	loader := NewLoader(writeSources(t, content))

	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for target without URL")
	}
}

func TestPacingDefaults(t *testing.T) {
	var pacing Pacing

	if pacing.NewsAPIDelay() != time.Second {
		t.Errorf("Expected 1s default NewsAPI delay, got %v", pacing.NewsAPIDelay())
	}
	if pacing.ScrapeDelay() != 2*time.Second {
		t.Errorf("Expected 2s default scrape delay, got %v", pacing.ScrapeDelay())
	}
	if pacing.TranslateDelay() != 100*time.Millisecond {
		t.Errorf("Expected 100ms default translate delay, got %v", pacing.TranslateDelay())
	}
}

func TestPacingOverride(t *testing.T) {
	pacing := Pacing{NewsAPIDelayMs: 500}

	if pacing.NewsAPIDelay() != 500*time.Millisecond {
		t.Errorf("Expected 500ms NewsAPI delay, got %v", pacing.NewsAPIDelay())
	}
}
