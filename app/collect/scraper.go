package collect

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/lunabase/period-news/app/classify"
	"github.com/lunabase/period-news/app/config"
	"github.com/lunabase/period-news/app/database"
	"github.com/lunabase/period-news/app/translate"
)

// articleSelectors is tried in order per target; the first selector that
// yields at least one usable candidate wins and the rest are skipped.
var articleSelectors = []string{
	"article",
	".article",
	".news-item",
	".product-item",
	".card",
	".post",
	"[class*=article]",
	"[class*=news]",
	"[class*=product]",
}

const minTitleLength = 5

var _ Collector = (*ScrapeCollector)(nil)

// ScrapeCollector extracts article-like content from a curated list of
// brand pages. Extraction is best-effort: a redesigned page yields zero
// items, not an error.
type ScrapeCollector struct {
	persister
	httpClient *http.Client
	classifier *classify.Classifier
	targets    []config.ScrapeTarget
	userAgent  string
	limiter    *rate.Limiter
}

func NewScrapeCollector(httpClient *http.Client, repo database.ArticleRepository,
	translator translate.TranslatorInterface, sources *config.Sources,
	userAgent string) *ScrapeCollector {
	return &ScrapeCollector{
		persister:  persister{repo: repo, translator: translator},
		httpClient: httpClient,
		classifier: classify.NewClassifier(),
		targets:    sources.Targets,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Every(sources.Pacing.ScrapeDelay()), 1),
	}
}

func (c *ScrapeCollector) Name() string {
	return SourceScraping
}

func (c *ScrapeCollector) Run(ctx context.Context) (int, error) {
	collected := 0
	failures := 0
	var lastErr error

	for _, target := range c.targets {
		if err := c.limiter.Wait(ctx); err != nil {
			return collected, err
		}

		candidates, err := c.scrapeTarget(ctx, target)
		if err != nil {
			slog.Warn("Scraping target failed, skipping", "target", target.Name, "error", err)
			failures++
			lastErr = err
			continue
		}

		slog.Debug("Scraped target", "target", target.Name, "candidates", len(candidates))

		for _, candidate := range candidates {
			outcome, err := c.persist(ctx, candidate)
			if err != nil {
				slog.Warn("Failed to persist scraped article", "url", candidate.URL, "error", err)
				continue
			}
			if outcome == outcomeCreated {
				collected++
			}
		}
	}

	if len(c.targets) > 0 && failures == len(c.targets) {
		return collected, fmt.Errorf("all %d scrape targets failed, last error: %w", len(c.targets), lastErr)
	}

	return collected, nil
}

func (c *ScrapeCollector) scrapeTarget(ctx context.Context, target config.ScrapeTarget) ([]Candidate, error) {
	doc, err := c.fetchDocument(ctx, target.URL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(target.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid target URL: %w", err)
	}

	for _, selector := range articleSelectors {
		var candidates []Candidate

		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if candidate, ok := c.extractCandidate(sel, target, base); ok {
				candidates = append(candidates, candidate)
			}
		})

		if len(candidates) > 0 {
			return candidates, nil
		}
	}

	return nil, nil
}

func (c *ScrapeCollector) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	return doc, nil
}

// extractCandidate pulls title, summary, link and image out of one
// article-like element heuristically.
func (c *ScrapeCollector) extractCandidate(sel *goquery.Selection, target config.ScrapeTarget, base *url.URL) (Candidate, bool) {
	title := strings.TrimSpace(sel.Find("h1, h2, h3, .title, [class*='title']").First().Text())
	if title == "" {
		title = strings.TrimSpace(sel.Find("a").First().Text())
	}
	if len([]rune(title)) < minTitleLength {
		return Candidate{}, false
	}

	summary := strings.TrimSpace(sel.Find("p, .description, .summary, [class*='desc']").First().Text())

	link, _ := sel.Find("a").First().Attr("href")
	articleURL := target.URL
	if link != "" {
		articleURL = resolveURL(base, link)
	}

	var imageURL *string
	image, exists := sel.Find("img").First().Attr("src")
	if !exists || image == "" {
		image, _ = sel.Find("img").First().Attr("data-src")
	}
	if image != "" {
		resolved := resolveURL(base, image)
		imageURL = &resolved
	}

	var brand, company *string
	if target.Brand != "" {
		brand = &target.Brand
	}
	if target.Company != "" {
		company = &target.Company
	}

	return Candidate{
		Title:       title,
		Summary:     cmp.Or(summary, title),
		Content:     cmp.Or(summary, title),
		URL:         articleURL,
		ImageURL:    imageURL,
		Country:     target.Country,
		Brand:       brand,
		Company:     company,
		Category:    c.classifier.ScrapedCategory(title),
		Source:      SourceScraping,
		PublishedAt: time.Now().UTC(),
	}, true
}

// resolveURL makes a possibly-relative reference absolute against the
// target page URL.
func resolveURL(base *url.URL, ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}
