// Package importer refreshes syndicated content in the background.
package importer

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job refreshes one kind of content
type Job interface {
	Name() string
	Import(ctx context.Context) error
}

// Importer runs every job once at start and then on each tick
type Importer struct {
	jobs     []Job
	interval time.Duration
	logger   *slog.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func New(interval time.Duration, logger *slog.Logger, jobs ...Job) *Importer {
	return &Importer{
		jobs:     jobs,
		interval: interval,
		logger:   logger.With("component", "importer"),
	}
}

// Start launches the loop. It returns immediately.
func (i *Importer) Start(ctx context.Context) {
	ctx, i.cancel = context.WithCancel(ctx)

	i.wg.Add(1)
	go i.loop(ctx)
}

// Stop cancels the loop and waits for the running import to finish.
func (i *Importer) Stop() {
	if i.cancel != nil {
		i.cancel()
	}
	i.wg.Wait()
}

func (i *Importer) loop(ctx context.Context) {
	defer i.wg.Done()

	i.logger.Info("Importer started", "interval", i.interval, "jobs", len(i.jobs))

	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	i.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			i.logger.Info("Importer stopped")
			return
		case <-ticker.C:
			i.RunOnce(ctx)
		}
	}
}

// RunOnce runs each job in turn. A job's run is bounded by the interval.
func (i *Importer) RunOnce(ctx context.Context) {
	for _, job := range i.jobs {
		if ctx.Err() != nil {
			return
		}

		runCtx, cancel := context.WithTimeout(ctx, i.interval)
		start := time.Now()
		err := job.Import(runCtx)
		cancel()

		if err != nil {
			i.logger.Error("Import failed", "job", job.Name(), "duration", time.Since(start), "error", err)
			continue
		}
		i.logger.Info("Import finished", "job", job.Name(), "duration", time.Since(start))
	}
}
