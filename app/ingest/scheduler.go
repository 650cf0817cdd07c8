package ingest

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler triggers ingestion cycles on a fixed interval. An interval
// of zero disables scheduling entirely; cycles then run only via the
// HTTP trigger endpoint.
type Scheduler struct {
	runner   CycleRunner
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	running  atomic.Bool
}

func NewScheduler(runner CycleRunner, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		runner:   runner,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Scheduler) Start() {
	if s.interval <= 0 {
		slog.Info("Scheduled collection disabled (no interval configured)")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runOnce()
			}
		}
	}()

	slog.Info("Collection scheduler started", "interval", s.interval.String())
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// runOnce runs a cycle unless the previous one is still in flight. A
// cycle always runs to completion; there is no cross-cycle cancellation
// beyond process shutdown.
func (s *Scheduler) runOnce() {
	if !s.running.CompareAndSwap(false, true) {
		slog.Warn("Previous collection cycle still running, skipping scheduled run")
		return
	}
	defer s.running.Store(false)

	s.runner.RunCycle(s.ctx)
}
