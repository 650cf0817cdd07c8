package database

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var _ ArticleRepository = (*SQLArticleRepository)(nil)

var articleColumns = []string{
	"id", "title", "summary", "content", "url", "image_url",
	"country", "brand", "company", "category", "source",
	"title_ja", "summary_ja", "content_ja", "published_at", "created_at",
}

// SQLArticleRepository handles database operations for articles
type SQLArticleRepository struct {
	db *DB
}

func NewArticleRepository(db *DB) *SQLArticleRepository {
	return &SQLArticleRepository{db: db}
}

// ExistsByURL reports whether an article with the given URL is already persisted
func (r *SQLArticleRepository) ExistsByURL(url string) (bool, error) {
	var id string
	err := r.db.QueryRow("SELECT id FROM articles WHERE url = ? LIMIT 1", url).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check article existence: %w", err)
	}
	return true, nil
}

// InsertArticle persists a new article. The unique index on url makes the
// insert a no-op when the URL was already ingested; that case is reported
// as created=false and is not an error.
func (r *SQLArticleRepository) InsertArticle(article Article) (bool, error) {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.Exec(`
		INSERT INTO articles (
			id, title, summary, content, url, image_url,
			country, brand, company, category, source,
			title_ja, summary_ja, content_ja, published_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO NOTHING
	`, article.ID, article.Title, article.Summary, article.Content,
		article.URL, article.ImageURL, article.Country, article.Brand,
		article.Company, article.Category, article.Source,
		article.TitleJa, article.SummaryJa, article.ContentJa,
		article.PublishedAt, article.CreatedAt)

	if err != nil {
		return false, fmt.Errorf("failed to insert article: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return affected > 0, nil
}

// GetArticle returns a single article by ID, or nil when not found
func (r *SQLArticleRepository) GetArticle(id string) (*Article, error) {
	query, args, err := sq.Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build article query: %w", err)
	}

	article, err := scanArticle(r.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return article, nil
}

// ListArticles returns one page of articles matching the filter, newest
// first, together with the total match count.
func (r *SQLArticleRepository) ListArticles(filter ArticleFilter) ([]Article, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	where := buildArticleWhere(filter)

	countBuilder := sq.Select("COUNT(*)").From("articles")
	listBuilder := sq.Select(articleColumns...).From("articles")
	if len(where) > 0 {
		countBuilder = countBuilder.Where(where)
		listBuilder = listBuilder.Where(where)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	query, args, err := listBuilder.
		OrderBy("published_at DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, *article)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, total, nil
}

// GetArticleCount returns the total number of persisted articles
func (r *SQLArticleRepository) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

// GetSourceCounts returns the number of articles per ingestion source
func (r *SQLArticleRepository) GetSourceCounts() (map[string]int, error) {
	rows, err := r.db.Query("SELECT source, COUNT(*) FROM articles GROUP BY source")
	if err != nil {
		return nil, fmt.Errorf("failed to get source counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("failed to scan source count: %w", err)
		}
		counts[source] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source counts: %w", err)
	}

	return counts, nil
}

func (r *SQLArticleRepository) DistinctBrands() ([]string, error) {
	return r.distinctValues("brand", true)
}

func (r *SQLArticleRepository) DistinctCompanies() ([]string, error) {
	return r.distinctValues("company", true)
}

func (r *SQLArticleRepository) DistinctCountries() ([]string, error) {
	return r.distinctValues("country", false)
}

func (r *SQLArticleRepository) distinctValues(column string, skipNull bool) ([]string, error) {
	builder := sq.Select("DISTINCT " + column).From("articles").OrderBy(column + " ASC")
	if skipNull {
		builder = builder.Where(column + " IS NOT NULL")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build distinct query: %w", err)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get distinct %s values: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan distinct value: %w", err)
		}
		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distinct values: %w", err)
	}

	return values, nil
}

func buildArticleWhere(filter ArticleFilter) sq.And {
	where := sq.And{}

	if len(filter.IDs) > 0 {
		where = append(where, sq.Eq{"id": filter.IDs})
	}
	if len(filter.Countries) > 0 {
		where = append(where, sq.Eq{"country": filter.Countries})
	}
	if len(filter.Brands) > 0 {
		where = append(where, sq.Eq{"brand": filter.Brands})
	}
	if filter.Category != "" && filter.Category != "all" {
		where = append(where, sq.Eq{"category": filter.Category})
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		where = append(where, sq.Or{
			sq.Like{"title": pattern},
			sq.Like{"summary": pattern},
			sq.Like{"title_ja": pattern},
			sq.Like{"summary_ja": pattern},
			sq.Like{"brand": pattern},
			sq.Like{"company": pattern},
		})
	}

	return where
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*Article, error) {
	var article Article
	var imageURL, brand, company, titleJa, summaryJa, contentJa sql.NullString

	err := row.Scan(
		&article.ID, &article.Title, &article.Summary, &article.Content,
		&article.URL, &imageURL, &article.Country, &brand, &company,
		&article.Category, &article.Source, &titleJa, &summaryJa,
		&contentJa, &article.PublishedAt, &article.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.ImageURL = nullableString(imageURL)
	article.Brand = nullableString(brand)
	article.Company = nullableString(company)
	article.TitleJa = nullableString(titleJa)
	article.SummaryJa = nullableString(summaryJa)
	article.ContentJa = nullableString(contentJa)

	return &article, nil
}

func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}
