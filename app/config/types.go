package config

// Sources holds the static source configuration loaded from YAML.
type Sources struct {
	Keywords  []string        `yaml:"keywords"`
	Languages []QueryLanguage `yaml:"languages"`
	Targets   []ScrapeTarget  `yaml:"targets"`
	Pacing    Pacing          `yaml:"pacing"`
}

// QueryLanguage is one news-search query language. Countries lists the
// markets the language stands in for; results of a query in this language
// are stamped with the first listed country. That is a coarse proxy (the
// search API exposes no finer geolocation signal) and is intentional.
type QueryLanguage struct {
	Code      string   `yaml:"code"`
	Countries []string `yaml:"countries"`
}

// ScrapeTarget is one curated brand page to scrape.
type ScrapeTarget struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Company string `yaml:"company"`
	Brand   string `yaml:"brand"`
	Country string `yaml:"country"`
}

// Pacing overrides the per-source delays between external calls, in
// milliseconds. Zero values keep the defaults.
type Pacing struct {
	NewsAPIDelayMs   int `yaml:"newsapi_delay_ms"`
	ScrapeDelayMs    int `yaml:"scrape_delay_ms"`
	TranslateDelayMs int `yaml:"translate_delay_ms"`
}
