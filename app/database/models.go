package database

import (
	"time"
)

// Article is the persisted record of one ingested news item. Rows are
// created once per URL and never mutated by the ingestion pipeline.
type Article struct {
	ID          string
	Title       string
	Summary     string
	Content     string
	URL         string // dedup key, unique across all sources
	ImageURL    *string
	Country     string
	Brand       *string
	Company     *string
	Category    string // pad, underwear or general
	Source      string // newsapi or scraping
	TitleJa     *string
	SummaryJa   *string
	ContentJa   *string
	PublishedAt time.Time
	CreatedAt   time.Time
}
