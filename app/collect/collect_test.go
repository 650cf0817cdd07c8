package collect

import (
	"context"
	"fmt"
	"sync"

	"github.com/lunabase/period-news/app/database"
	"github.com/lunabase/period-news/app/translate"
)

// fakeRepo is an in-memory stand-in for the article repository, keyed by
// URL like the real uniqueness constraint.
type fakeRepo struct {
	mu       sync.Mutex
	articles map[string]database.Article
	failAll  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{articles: make(map[string]database.Article)}
}

func (f *fakeRepo) ExistsByURL(url string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return false, fmt.Errorf("repository unavailable")
	}
	_, ok := f.articles[url]
	return ok, nil
}

func (f *fakeRepo) InsertArticle(article database.Article) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return false, fmt.Errorf("repository unavailable")
	}
	if _, ok := f.articles[article.URL]; ok {
		return false, nil
	}
	f.articles[article.URL] = article
	return true, nil
}

func (f *fakeRepo) GetArticle(id string) (*database.Article, error) { return nil, nil }
func (f *fakeRepo) ListArticles(filter database.ArticleFilter) ([]database.Article, int, error) {
	return nil, 0, nil
}
func (f *fakeRepo) GetArticleCount() (int, error)                { return len(f.articles), nil }
func (f *fakeRepo) GetSourceCounts() (map[string]int, error)     { return nil, nil }
func (f *fakeRepo) DistinctBrands() ([]string, error)            { return nil, nil }
func (f *fakeRepo) DistinctCompanies() ([]string, error)         { return nil, nil }
func (f *fakeRepo) DistinctCountries() ([]string, error)         { return nil, nil }

func (f *fakeRepo) get(url string) (database.Article, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.articles[url]
	return a, ok
}

func testPersistedArticle(url string) database.Article {
	return database.Article{
		Title:    "Previously ingested",
		Summary:  "s",
		Content:  "c",
		URL:      url,
		Country:  "US",
		Category: "general",
		Source:   SourceNewsAPI,
	}
}

// fakeTranslator marks every field so tests can tell enrichment ran.
type fakeTranslator struct {
	mu    sync.Mutex
	calls int
}

var _ translate.TranslatorInterface = (*fakeTranslator)(nil)

func (f *fakeTranslator) Run(ctx context.Context, title, summary, content string) translate.Translation {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	titleJa := "ja:" + title
	summaryJa := "ja:" + summary
	contentJa := "ja:" + content
	return translate.Translation{TitleJa: &titleJa, SummaryJa: &summaryJa, ContentJa: &contentJa}
}

func (f *fakeTranslator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
