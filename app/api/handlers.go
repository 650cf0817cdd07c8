package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lunabase/period-news/app/database"
	"github.com/lunabase/period-news/app/ingest"
)

func NewHandler(repo database.ArticleRepository, orchestrator ingest.CycleRunner) *Handler {
	return &Handler{
		repo:         repo,
		orchestrator: orchestrator,
	}
}

// ListArticles serves the filterable, paginated article listing.
func (h *Handler) ListArticles(c *gin.Context) {
	filter := database.ArticleFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Page:     parseIntParam(c.Query("page"), 1),
		Limit:    parseIntParam(c.Query("limit"), 20),
	}

	if ids := c.Query("ids"); ids != "" {
		filter.IDs = strings.Split(ids, ",")
	}
	if country := c.Query("country"); country != "" {
		filter.Countries = strings.Split(country, ",")
	}
	if brand := c.Query("brand"); brand != "" {
		filter.Brands = strings.Split(brand, ",")
	}

	articles, total, err := h.repo.ListArticles(filter)
	if err != nil {
		slog.Error("Database error", "operation", "list_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	response := listResponse{
		Articles:   make([]articleResponse, 0, len(articles)),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
	}
	for _, article := range articles {
		response.Articles = append(response.Articles, toArticleResponse(article))
	}

	if brands, err := h.repo.DistinctBrands(); err == nil {
		response.Filters.Brands = brands
	}
	if companies, err := h.repo.DistinctCompanies(); err == nil {
		response.Filters.Companies = companies
	}
	if countries, err := h.repo.DistinctCountries(); err == nil {
		response.Filters.Countries = countries
	}

	c.JSON(http.StatusOK, response)
}

// GetArticle serves a single article by ID.
func (h *Handler) GetArticle(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing article ID"})
		return
	}

	article, err := h.repo.GetArticle(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_article", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(*article))
}

// Collect runs one ingestion cycle and reports the aggregate result.
// The response status reflects the aggregate failure flag: 500 only when
// every configured source failed.
func (h *Handler) Collect(c *gin.Context) {
	result := h.orchestrator.RunCycle(c.Request.Context())

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}

	c.JSON(status, toCollectResponse(result))
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.repo.GetArticleCount(); err == nil {
		health["articles"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{}

	if count, err := h.repo.GetArticleCount(); err == nil {
		stats["total_articles"] = count
	}
	if counts, err := h.repo.GetSourceCounts(); err == nil {
		stats["by_source"] = counts
	}

	c.JSON(http.StatusOK, stats)
}

func parseIntParam(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
