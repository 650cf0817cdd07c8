package api

import (
	"time"

	"github.com/lunabase/period-news/app/database"
	"github.com/lunabase/period-news/app/ingest"
)

type Handler struct {
	repo         database.ArticleRepository
	orchestrator ingest.CycleRunner
}

// articleResponse is the wire shape of one article.
type articleResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	ImageURL    *string   `json:"imageUrl"`
	Country     string    `json:"country"`
	Brand       *string   `json:"brand"`
	Company     *string   `json:"company"`
	Category    string    `json:"category"`
	Source      string    `json:"source"`
	TitleJa     *string   `json:"titleJa"`
	SummaryJa   *string   `json:"summaryJa"`
	ContentJa   *string   `json:"contentJa"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

type listFilters struct {
	Brands    []string `json:"brands"`
	Companies []string `json:"companies"`
	Countries []string `json:"countries"`
}

type listResponse struct {
	Articles   []articleResponse `json:"articles"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
	Filters    listFilters       `json:"filters"`
}

type sourceResultResponse struct {
	Count int     `json:"count"`
	Error *string `json:"error"`
}

type collectResponse struct {
	Success   bool                            `json:"success"`
	Collected int                             `json:"collected"`
	Results   map[string]sourceResultResponse `json:"results"`
	Duration  string                          `json:"duration"`
	Timestamp time.Time                       `json:"timestamp"`
}

func toArticleResponse(article database.Article) articleResponse {
	return articleResponse{
		ID:          article.ID,
		Title:       article.Title,
		Summary:     article.Summary,
		Content:     article.Content,
		URL:         article.URL,
		ImageURL:    article.ImageURL,
		Country:     article.Country,
		Brand:       article.Brand,
		Company:     article.Company,
		Category:    article.Category,
		Source:      article.Source,
		TitleJa:     article.TitleJa,
		SummaryJa:   article.SummaryJa,
		ContentJa:   article.ContentJa,
		PublishedAt: article.PublishedAt,
		CreatedAt:   article.CreatedAt,
	}
}

func toCollectResponse(result ingest.CycleResult) collectResponse {
	results := make(map[string]sourceResultResponse, len(result.Results))
	for name, source := range result.Results {
		entry := sourceResultResponse{Count: source.Count}
		if source.Error != "" {
			message := source.Error
			entry.Error = &message
		}
		results[name] = entry
	}

	return collectResponse{
		Success:   result.Success,
		Collected: result.TotalCollected,
		Results:   results,
		Duration:  result.Duration.String(),
		Timestamp: result.Timestamp,
	}
}
