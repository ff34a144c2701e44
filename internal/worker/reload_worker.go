package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Reloader refreshes an in-memory snapshot from its source file.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloadWorker periodically refreshes the catalog and delivery rules so
// edits on disk show up without a restart.
type ReloadWorker struct {
	sources  map[string]Reloader
	interval time.Duration
}

func NewReloadWorker(interval time.Duration, sources map[string]Reloader) *ReloadWorker {
	return &ReloadWorker{
		sources:  sources,
		interval: interval,
	}
}

// ReloadAll refreshes every source once; a failing source keeps its
// previous snapshot. It returns the number of failures.
func (w *ReloadWorker) ReloadAll(ctx context.Context) int {
	failed := 0
	for name, src := range w.sources {
		if err := src.Reload(ctx); err != nil {
			failed++
			slog.Error("reload failed, keeping previous data", "source", name, "error", err)
			continue
		}
		slog.Debug("reloaded", "source", name)
	}
	return failed
}

// Start blocks until ctx is cancelled.
func (w *ReloadWorker) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return fmt.Errorf("reload interval must be positive, got %v", w.interval)
	}
	slog.Info("starting reload worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("reload worker stopped")
			return nil
		case <-ticker.C:
			w.ReloadAll(ctx)
		}
	}
}
