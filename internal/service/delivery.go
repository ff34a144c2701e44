package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"campania/internal/apperr"
	"campania/internal/model"
)

type deliveryRulesFile struct {
	Rules []model.DeliveryRule `yaml:"rules"`
}

// DeliveryService looks up delivery rules by postal code.
type DeliveryService struct {
	path string

	mu    sync.RWMutex
	rules map[string]model.DeliveryRule
}

func NewDeliveryService(path string) *DeliveryService {
	return &DeliveryService{path: path, rules: map[string]model.DeliveryRule{}}
}

func (s *DeliveryService) Reload(ctx context.Context) error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read delivery rules: %w", err)
	}

	var f deliveryRulesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("decode delivery rules: %w", err)
	}

	rules := make(map[string]model.DeliveryRule, len(f.Rules))
	for _, r := range f.Rules {
		zip := strings.TrimSpace(r.Zip)
		if zip == "" {
			continue
		}
		r.Zip = zip
		rules[zip] = r
	}

	s.mu.Lock()
	s.rules = rules
	s.mu.Unlock()
	return nil
}

func (s *DeliveryService) Rule(ctx context.Context, zip string) (*model.DeliveryRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rules[strings.TrimSpace(zip)]
	if !ok {
		return nil, fmt.Errorf("delivery rule %q: %w", zip, apperr.ErrNotFound)
	}
	return &r, nil
}
