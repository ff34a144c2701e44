// Package store keeps orders in a single JSON array file.
//
// Every mutation re-reads the file, changes the slice in memory and
// rewrites the whole collection. A mutex serialises this cycle inside the
// process; separate processes writing the same file still race with
// last-write-wins semantics.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"campania/internal/apperr"
	"campania/internal/model"
)

type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// ReadAll returns all stored orders in file order. A missing or unreadable
// file yields an empty slice; the failure is logged, not returned.
func (s *FileStore) ReadAll(ctx context.Context) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		slog.Error("read orders failed, treating store as empty", "path", s.path, "error", err)
		return []model.Order{}, nil
	}
	return orders, nil
}

func (s *FileStore) Append(ctx context.Context, order model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		slog.Error("read orders failed before append", "path", s.path, "error", err)
		orders = []model.Order{}
	}
	orders = append(orders, order)

	if err := s.save(orders); err != nil {
		return fmt.Errorf("%w: append order %s: %v", apperr.ErrPersistence, order.ID, err)
	}
	return nil
}

// UpdateStatus sets the status (when non-empty) and updatedAt of the order
// with the given id and persists the full collection.
func (s *FileStore) UpdateStatus(ctx context.Context, id, status string, at time.Time) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		slog.Error("read orders failed before update", "path", s.path, "error", err)
		return nil, fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
	}

	idx := -1
	for i := range orders {
		if orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
	}

	if status != "" {
		orders[idx].Status = status
	}
	orders[idx].Touch(at)

	if err := s.save(orders); err != nil {
		return nil, fmt.Errorf("%w: update order %s: %v", apperr.ErrPersistence, id, err)
	}

	updated := orders[idx]
	return &updated, nil
}

func (s *FileStore) ensure() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(s.path, []byte("[]"), 0o644); err != nil {
			return fmt.Errorf("create orders file: %w", err)
		}
	}
	return nil
}

func (s *FileStore) load() ([]model.Order, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read orders file: %w", err)
	}
	if len(raw) == 0 {
		return []model.Order{}, nil
	}

	var orders []model.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("decode orders file: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

func (s *FileStore) save(orders []model.Order) error {
	if err := s.ensure(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".orders-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace orders file: %w", err)
	}
	return nil
}
