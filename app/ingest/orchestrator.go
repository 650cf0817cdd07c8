package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lunabase/period-news/app/collect"
)

// SourceResult is one collector's outcome within a cycle.
type SourceResult struct {
	Count int
	Error string
}

// CycleResult aggregates one ingestion cycle across all sources. Success
// is false only when every configured source reported an error; partial
// success from any single source counts as overall success.
type CycleResult struct {
	Success        bool
	TotalCollected int
	Results        map[string]SourceResult
	Duration       time.Duration
	Timestamp      time.Time
}

type CycleRunner interface {
	RunCycle(ctx context.Context) CycleResult
}

var _ CycleRunner = (*Orchestrator)(nil)

// Orchestrator runs the configured collectors for a cycle. Collectors
// run concurrently, one goroutine each, with independent failure
// isolation: one source's error never prevents another source from
// collecting or reporting.
type Orchestrator struct {
	collectors []collect.Collector
}

func NewOrchestrator(collectors ...collect.Collector) *Orchestrator {
	return &Orchestrator{collectors: collectors}
}

func (o *Orchestrator) RunCycle(ctx context.Context) CycleResult {
	start := time.Now()
	slog.Info("Collection cycle started", "sources", len(o.collectors))

	results := make(map[string]SourceResult, len(o.collectors))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, collector := range o.collectors {
		wg.Add(1)
		go func(c collect.Collector) {
			defer wg.Done()

			count, err := c.Run(ctx)

			result := SourceResult{Count: count}
			if err != nil {
				result.Error = err.Error()
				slog.Error("Source collection failed", "source", c.Name(), "error", err)
			} else {
				slog.Info("Source collection finished", "source", c.Name(), "collected", count)
			}

			mu.Lock()
			results[c.Name()] = result
			mu.Unlock()
		}(collector)
	}

	wg.Wait()

	total := 0
	failures := 0
	for _, result := range results {
		total += result.Count
		if result.Error != "" {
			failures++
		}
	}

	success := len(results) == 0 || failures < len(results)
	duration := time.Since(start)

	slog.Info("Collection cycle completed",
		"collected", total,
		"failed_sources", failures,
		"success", success,
		"duration", duration.String())

	return CycleResult{
		Success:        success,
		TotalCollected: total,
		Results:        results,
		Duration:       duration,
		Timestamp:      time.Now(),
	}
}
