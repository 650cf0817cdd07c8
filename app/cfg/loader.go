package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./period-news.db" description:"Path to the SQLite database file"`

	// External service configuration
	NewsAPIKey      string `long:"news-api-key" env:"NEWS_API_KEY" description:"NewsAPI key (collector is disabled when empty)"`
	NewsAPIURL      string `long:"news-api-url" env:"NEWS_API_URL" default:"https://newsapi.org/v2/everything" description:"NewsAPI search endpoint"`
	TranslateURL    string `long:"translate-url" env:"TRANSLATE_URL" description:"Translation endpoint (enrichment is disabled when empty)"`
	TranslateAPIKey string `long:"translate-api-key" env:"TRANSLATE_API_KEY" description:"Translation endpoint API key (optional)"`

	// Application configuration
	SourcesFile        string `long:"sources-file" env:"SOURCES_FILE" default:"./sources.yml" description:"YAML file with keywords, query languages and scrape targets"`
	Port               string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey       string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the collection trigger endpoint (optional)"`
	KeywordLimit       int    `long:"keyword-limit" env:"KEYWORD_LIMIT" default:"3" description:"Number of search keywords queried per language"`
	CollectionInterval int    `long:"collection-interval" env:"COLLECTION_INTERVAL" default:"0" description:"Seconds between scheduled collection cycles (0 disables scheduling)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"PeriodProductNews/1.0 (+https://example.com)" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Tokyo)"`
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
		DBPath:             raw.DBPath,
		NewsAPIKey:         raw.NewsAPIKey,
		NewsAPIURL:         raw.NewsAPIURL,
		TranslateURL:       raw.TranslateURL,
		TranslateAPIKey:    raw.TranslateAPIKey,
		SourcesFile:        raw.SourcesFile,
		Port:               raw.Port,
		APIAccessKey:       raw.APIAccessKey,
		KeywordLimit:       raw.KeywordLimit,
		CollectionInterval: raw.CollectionInterval,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
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

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
