package collect

import (
	"context"
	"time"

	"github.com/lunabase/period-news/app/classify"
)

const (
	SourceNewsAPI  = "newsapi"
	SourceScraping = "scraping"
)

// Candidate is an ingested item before the dedup decision. Its URL is
// the canonical identity used for deduplication.
type Candidate struct {
	Title       string
	Summary     string
	Content     string
	URL         string
	ImageURL    *string
	Country     string
	Brand       *string
	Company     *string
	Category    classify.Category
	Source      string
	PublishedAt time.Time
}

// Collector fetches candidate articles from one external source and
// persists the genuinely-new ones. Run reports how many articles were
// created; it returns an error only for total, source-level failure,
// never for per-item problems.
type Collector interface {
	Name() string
	Run(ctx context.Context) (int, error)
}
