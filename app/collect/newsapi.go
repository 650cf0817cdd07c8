package collect

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/lunabase/period-news/app/classify"
	"github.com/lunabase/period-news/app/config"
	"github.com/lunabase/period-news/app/database"
	"github.com/lunabase/period-news/app/translate"
)

const newsAPIPageSize = 10

var _ Collector = (*NewsAPICollector)(nil)

// newsAPIResponse is the response shape of the news-search endpoint.
type newsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// NewsAPICollector queries a news-search API once per configured
// (language, keyword) pair and ingests the results. A missing API key
// disables the collector without error.
type NewsAPICollector struct {
	persister
	httpClient   *http.Client
	classifier   *classify.Classifier
	apiKey       string
	baseURL      string
	userAgent    string
	keywords     []string
	languages    []config.QueryLanguage
	keywordLimit int
	limiter      *rate.Limiter
}

func NewNewsAPICollector(httpClient *http.Client, repo database.ArticleRepository,
	translator translate.TranslatorInterface, sources *config.Sources,
	apiKey, baseURL, userAgent string, keywordLimit int) *NewsAPICollector {
	if keywordLimit <= 0 {
		keywordLimit = 3
	}
	return &NewsAPICollector{
		persister:    persister{repo: repo, translator: translator},
		httpClient:   httpClient,
		classifier:   classify.NewClassifier(),
		apiKey:       apiKey,
		baseURL:      baseURL,
		userAgent:    userAgent,
		keywords:     sources.Keywords,
		languages:    sources.Languages,
		keywordLimit: keywordLimit,
		limiter:      rate.NewLimiter(rate.Every(sources.Pacing.NewsAPIDelay()), 1),
	}
}

func (c *NewsAPICollector) Name() string {
	return SourceNewsAPI
}

func (c *NewsAPICollector) Run(ctx context.Context) (int, error) {
	if c.apiKey == "" {
		slog.Info("News API key not set, collector disabled")
		return 0, nil
	}

	// The keyword list is cut to a small prefix so total call volume per
	// cycle stays bounded.
	keywords := c.keywords
	if len(keywords) > c.keywordLimit {
		keywords = keywords[:c.keywordLimit]
	}

	collected := 0
	attempts := 0
	failures := 0
	var lastErr error

	for _, lang := range c.languages {
		// Every result of this language's queries is stamped with the
		// language's first configured country. Coarse, but the search API
		// exposes no finer geolocation signal.
		country := lang.Countries[0]

		for _, keyword := range keywords {
			attempts++

			if err := c.limiter.Wait(ctx); err != nil {
				return collected, err
			}

			items, err := c.search(ctx, lang.Code, keyword)
			if err != nil {
				slog.Warn("News query failed, skipping pair", "language", lang.Code, "keyword", keyword, "error", err)
				failures++
				lastErr = err
				continue
			}

			for _, raw := range items {
				if raw.Title == "" || raw.URL == "" {
					continue
				}

				outcome, err := c.persist(ctx, c.buildCandidate(raw, country))
				if err != nil {
					slog.Warn("Failed to persist article", "url", raw.URL, "error", err)
					continue
				}
				if outcome == outcomeCreated {
					collected++
				}
			}
		}
	}

	if attempts > 0 && failures == attempts {
		return collected, fmt.Errorf("all %d news queries failed, last error: %w", attempts, lastErr)
	}

	return collected, nil
}

func (c *NewsAPICollector) search(ctx context.Context, language, keyword string) ([]newsAPIArticle, error) {
	params := url.Values{}
	params.Set("q", keyword)
	params.Set("language", language)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(newsAPIPageSize))
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query news API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result newsAPIResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Status != "ok" {
		return nil, fmt.Errorf("news API returned status %q", result.Status)
	}

	return result.Articles, nil
}

func (c *NewsAPICollector) buildCandidate(raw newsAPIArticle, country string) Candidate {
	fullText := raw.Title + " " + raw.Description + " " + raw.Content
	brand, company := c.classifier.Run(fullText)

	publishedAt := time.Now().UTC()
	if parsed, err := time.Parse(time.RFC3339, raw.PublishedAt); err == nil {
		publishedAt = parsed
	}

	var imageURL *string
	if raw.URLToImage != "" {
		imageURL = &raw.URLToImage
	}

	return Candidate{
		Title:       raw.Title,
		Summary:     cmp.Or(raw.Description, raw.Title),
		Content:     cmp.Or(raw.Content, raw.Description, ""),
		URL:         raw.URL,
		ImageURL:    imageURL,
		Country:     country,
		Brand:       brand,
		Company:     company,
		Category:    c.classifier.Category(fullText),
		Source:      SourceNewsAPI,
		PublishedAt: publishedAt,
	}
}
