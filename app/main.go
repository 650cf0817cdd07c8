package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lunabase/period-news/app/api"
	"github.com/lunabase/period-news/app/cfg"
	"github.com/lunabase/period-news/app/collect"
	"github.com/lunabase/period-news/app/config"
	"github.com/lunabase/period-news/app/database"
	"github.com/lunabase/period-news/app/ingest"
	"github.com/lunabase/period-news/app/translate"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was requested, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Period News server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	sources, err := config.NewLoader(appCfg.SourcesFile).Load()
	if err != nil {
		slog.Error("Failed to load sources configuration", "file", appCfg.SourcesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Sources configuration loaded",
		"keywords", len(sources.Keywords),
		"languages", len(sources.Languages),
		"targets", len(sources.Targets))

	httpClient := &http.Client{Timeout: 10 * time.Second}

	var translateClient translate.TextTranslator
	if appCfg.TranslateURL != "" {
		translateClient = translate.NewClient(httpClient, appCfg.TranslateURL, appCfg.TranslateAPIKey)
	} else {
		slog.Info("Translation endpoint not set, enrichment disabled")
	}
	translator := translate.NewTranslator(translateClient, sources.Pacing.TranslateDelay())

	articleRepo := database.NewArticleRepository(db)

	newsCollector := collect.NewNewsAPICollector(httpClient, articleRepo, translator,
		sources, appCfg.NewsAPIKey, appCfg.NewsAPIURL, appCfg.UserAgent, appCfg.KeywordLimit)
	scrapeCollector := collect.NewScrapeCollector(httpClient, articleRepo, translator,
		sources, appCfg.UserAgent)

	orchestrator := ingest.NewOrchestrator(newsCollector, scrapeCollector)

	scheduler := ingest.NewScheduler(orchestrator,
		time.Duration(appCfg.CollectionInterval)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(articleRepo, orchestrator)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("Period News server started successfully")

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
