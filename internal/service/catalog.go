package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"campania/internal/model"
)

// CatalogService serves the product list from a JSON file snapshot.
type CatalogService struct {
	path string

	mu       sync.RWMutex
	products []model.Product
}

func NewCatalogService(path string) *CatalogService {
	return &CatalogService{path: path, products: []model.Product{}}
}

// Reload replaces the snapshot. On failure the previous snapshot is kept.
func (s *CatalogService) Reload(ctx context.Context) error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read products file: %w", err)
	}

	var products []model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return fmt.Errorf("decode products file: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return nil
}

func (s *CatalogService) List(ctx context.Context) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}
