package collect

import (
	"context"
	"fmt"

	"github.com/lunabase/period-news/app/database"
	"github.com/lunabase/period-news/app/translate"
)

// persistOutcome distinguishes a fresh insert from a duplicate skip, so
// callers can count collected items without treating skips as errors.
type persistOutcome int

const (
	outcomeCreated persistOutcome = iota
	outcomeDuplicate
)

// persister owns the shared persist path of all collectors: existence
// check, translation enrichment for new items only, insert-or-skip.
type persister struct {
	repo       database.ArticleRepository
	translator translate.TranslatorInterface
}

func (p *persister) persist(ctx context.Context, candidate Candidate) (persistOutcome, error) {
	exists, err := p.repo.ExistsByURL(candidate.URL)
	if err != nil {
		return outcomeDuplicate, fmt.Errorf("failed to check existing article: %w", err)
	}
	if exists {
		return outcomeDuplicate, nil
	}

	// Translation runs only for genuinely-new items; it is the expensive
	// step and duplicates are the common case.
	translation := p.translator.Run(ctx, candidate.Title, candidate.Summary, candidate.Content)

	created, err := p.repo.InsertArticle(database.Article{
		Title:       candidate.Title,
		Summary:     candidate.Summary,
		Content:     candidate.Content,
		URL:         candidate.URL,
		ImageURL:    candidate.ImageURL,
		Country:     candidate.Country,
		Brand:       candidate.Brand,
		Company:     candidate.Company,
		Category:    string(candidate.Category),
		Source:      candidate.Source,
		TitleJa:     translation.TitleJa,
		SummaryJa:   translation.SummaryJa,
		ContentJa:   translation.ContentJa,
		PublishedAt: candidate.PublishedAt,
	})
	if err != nil {
		return outcomeDuplicate, fmt.Errorf("failed to insert article: %w", err)
	}
	if !created {
		// Lost a concurrent race on the URL uniqueness constraint.
		return outcomeDuplicate, nil
	}

	return outcomeCreated, nil
}
