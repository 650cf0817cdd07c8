package database

// ArticleFilter narrows the read-side listing. Zero values mean "no
// restriction" for their field.
type ArticleFilter struct {
	IDs       []string
	Countries []string
	Brands    []string
	Category  string
	Query     string
	Page      int
	Limit     int
}

type ArticleRepository interface {
	ExistsByURL(url string) (bool, error)
	// InsertArticle persists a new article. It reports created=false
	// without an error when an article with the same URL already exists.
	InsertArticle(article Article) (bool, error)

	GetArticle(id string) (*Article, error)
	ListArticles(filter ArticleFilter) ([]Article, int, error)
	GetArticleCount() (int, error)
	GetSourceCounts() (map[string]int, error)
	DistinctBrands() ([]string, error)
	DistinctCompanies() ([]string, error)
	DistinctCountries() ([]string, error)
}
