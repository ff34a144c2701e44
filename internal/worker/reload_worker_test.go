package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingReloader struct {
	calls atomic.Int32
	err   error
}

func (r *countingReloader) Reload(context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestReloadWorker_ReloadAll(t *testing.T) {
	t.Parallel()

	ok := &countingReloader{}
	bad := &countingReloader{err: errors.New("broken file")}
	w := NewReloadWorker(time.Hour, map[string]Reloader{"catalog": ok, "delivery": bad})

	if failed := w.ReloadAll(context.Background()); failed != 1 {
		t.Fatalf("expected 1 failure, got %d", failed)
	}
	if ok.calls.Load() != 1 || bad.calls.Load() != 1 {
		t.Fatalf("expected each source reloaded once, got %d/%d", ok.calls.Load(), bad.calls.Load())
	}
}

func TestReloadWorker_StartTicksUntilCancelled(t *testing.T) {
	t.Parallel()

	src := &countingReloader{}
	w := NewReloadWorker(5*time.Millisecond, map[string]Reloader{"catalog": src})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	deadline := time.Now().Add(time.Second)
	for src.calls.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("worker did not tick")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestReloadWorker_StartRejectsNonPositiveInterval(t *testing.T) {
	t.Parallel()

	for _, interval := range []time.Duration{0, -time.Second} {
		src := &countingReloader{}
		w := NewReloadWorker(interval, map[string]Reloader{"catalog": src})

		if err := w.Start(context.Background()); err == nil {
			t.Fatalf("interval %v: expected error", interval)
		}
		if src.calls.Load() != 0 {
			t.Fatalf("interval %v: expected no reloads, got %d", interval, src.calls.Load())
		}
	}
}
