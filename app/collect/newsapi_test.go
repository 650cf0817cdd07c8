package collect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/lunabase/period-news/app/config"
)

func testSources() *config.Sources {
	return &config.Sources{
		Keywords: []string{"menstrual pad", "sanitary pad", "period underwear", "extra keyword"},
		Languages: []config.QueryLanguage{
			{Code: "en", Countries: []string{"US", "GB"}},
		},
		Pacing: config.Pacing{NewsAPIDelayMs: 1, ScrapeDelayMs: 1, TranslateDelayMs: 1},
	}
}

func newsAPIServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func okResponse(articles []newsAPIArticle) newsAPIResponse {
	return newsAPIResponse{Status: "ok", TotalResults: len(articles), Articles: articles}
}

func TestNewsAPICollector_DisabledWithoutKey(t *testing.T) {
	repo := newFakeRepo()
	called := false
	server := newsAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	collector := NewNewsAPICollector(server.Client(), repo, &fakeTranslator{},
		testSources(), "", server.URL, "test-agent", 3)

	count, err := collector.Run(context.Background())
	if err != nil {
		t.Errorf("Expected no error for missing key, got %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 collected, got %d", count)
	}
	if called {
		t.Error("Expected no external calls without an API key")
	}
}

func TestNewsAPICollector_CollectsNewArticle(t *testing.T) {
	repo := newFakeRepo()
	translator := &fakeTranslator{}

	server := newsAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "" {
			t.Error("Expected q parameter")
		}
		if r.URL.Query().Get("language") != "en" {
			t.Errorf("Expected language en, got %s", r.URL.Query().Get("language"))
		}
		if r.URL.Query().Get("sortBy") != "publishedAt" {
			t.Errorf("Expected sortBy publishedAt, got %s", r.URL.Query().Get("sortBy"))
		}
		json.NewEncoder(w).Encode(okResponse([]newsAPIArticle{
			{
				Title:       "Sanitary pad market grows",
				Description: "Market analysis",
				Content:     "Long form content",
				URL:         "https://x/a",
				PublishedAt: "2025-06-01T10:00:00Z",
			},
		}))
	})

	collector := NewNewsAPICollector(server.Client(), repo, translator,
		testSources(), "secret", server.URL, "test-agent", 3)

	count, err := collector.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 collected (same URL across keywords dedups), got %d", count)
	}

	article, ok := repo.get("https://x/a")
	if !ok {
		t.Fatal("Expected article persisted")
	}
	if article.Category != "pad" {
		t.Errorf("Expected category pad, got %s", article.Category)
	}
	if article.Source != "newsapi" {
		t.Errorf("Expected source newsapi, got %s", article.Source)
	}
	if article.Country != "US" {
		t.Errorf("Expected first configured country US, got %s", article.Country)
	}
	if article.TitleJa == nil || article.SummaryJa == nil || article.ContentJa == nil {
		t.Error("Expected translation fields populated for a new English article")
	}
	if article.PublishedAt.Year() != 2025 {
		t.Errorf("Expected source-reported publish date, got %v", article.PublishedAt)
	}

	// Three keywords all returned the same URL; translation must have run
	// once, for the single genuinely-new item.
	if translator.callCount() != 1 {
		t.Errorf("Expected 1 translation, got %d", translator.callCount())
	}
}

func TestNewsAPICollector_KeywordLimitBoundsCalls(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := newsAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		json.NewEncoder(w).Encode(okResponse(nil))
	})

	collector := NewNewsAPICollector(server.Client(), newFakeRepo(), &fakeTranslator{},
		testSources(), "secret", server.URL, "test-agent", 2)

	if _, err := collector.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 1 language x first 2 of 4 keywords.
	if calls != 2 {
		t.Errorf("Expected 2 external calls, got %d", calls)
	}
}

func TestNewsAPICollector_SkipsInvalidItems(t *testing.T) {
	repo := newFakeRepo()
	server := newsAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(okResponse([]newsAPIArticle{
			{Title: "", URL: "https://x/missing-title"},
			{Title: "No URL here"},
			{Title: "Valid menstrual products item", URL: "https://x/valid"},
		}))
	})

	collector := NewNewsAPICollector(server.Client(), repo, &fakeTranslator{},
		testSources(), "secret", server.URL, "test-agent", 1)

	count, err := collector.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected only the valid item collected, got %d", count)
	}
	if _, ok := repo.get("https://x/missing-title"); ok {
		t.Error("Item without title must be rejected at the boundary")
	}
}

func TestNewsAPICollector_SkipsExistingURL(t *testing.T) {
	repo := newFakeRepo()
	translator := &fakeTranslator{}
	repo.InsertArticle(testPersistedArticle("https://x/existing"))

	server := newsAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(okResponse([]newsAPIArticle{
			{Title: "Already seen article", URL: "https://x/existing"},
		}))
	})

	collector := NewNewsAPICollector(server.Client(), repo, translator,
		testSources(), "secret", server.URL, "test-agent", 1)

	count, err := collector.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected duplicate skip to contribute 0, got %d", count)
	}
	if translator.callCount() != 0 {
		t.Error("Expected no translation for an already-seen URL")
	}
}

func TestNewsAPICollector_NonOKStatusSkipsPair(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := newsAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		current := calls
		mu.Unlock()

		if current == 1 {
			json.NewEncoder(w).Encode(newsAPIResponse{Status: "error"})
			return
		}
		json.NewEncoder(w).Encode(okResponse([]newsAPIArticle{
			{Title: "Second keyword still works", URL: "https://x/second"},
		}))
	})

	collector := NewNewsAPICollector(server.Client(), newFakeRepo(), &fakeTranslator{},
		testSources(), "secret", server.URL, "test-agent", 2)

	count, err := collector.Run(context.Background())
	if err != nil {
		t.Errorf("Partial failure must not surface as a source error, got %v", err)
	}
	if count != 1 {
		t.Errorf("Expected remaining pair to be processed, got %d collected", count)
	}
}

func TestNewsAPICollector_AllPairsFailed(t *testing.T) {
	server := newsAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	collector := NewNewsAPICollector(server.Client(), newFakeRepo(), &fakeTranslator{},
		testSources(), "secret", server.URL, "test-agent", 2)

	count, err := collector.Run(context.Background())
	if err == nil {
		t.Error("Expected source-level error when every query failed")
	}
	if count != 0 {
		t.Errorf("Expected 0 collected, got %d", count)
	}
}
