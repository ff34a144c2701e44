package database

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"campania/internal/apperr"
	"campania/internal/model"
)

func openTestStore(t *testing.T) *OrderStore {
	t.Helper()

	uri := os.Getenv("TEST_DATABASE_URI")
	if uri == "" {
		t.Skip("TEST_DATABASE_URI not set")
	}

	ctx := context.Background()
	db, err := NewDB(ctx, uri)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { CloseDB(db) })

	if err := InitSchema(ctx, db); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return NewOrderStore(db)
}

func TestOrderStore_AppendUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id := "o_" + uuid.NewString()
	created := time.Now().UTC().Truncate(time.Millisecond)
	order := model.Order{
		ID:        id,
		CreatedAt: created,
		Mode:      model.ModeDelivery,
		Items:     []model.Item{{Name: "Diavolo", Qty: 2, Price: 9.9}},
		Totals:    json.RawMessage(`{"total":19.8}`),
		Status:    model.StatusNew,
	}
	if err := s.Append(ctx, order); err != nil {
		t.Fatalf("append: %v", err)
	}

	updated, err := s.UpdateStatus(ctx, id, model.StatusDelivered, created.Add(time.Second))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != model.StatusDelivered || updated.UpdatedAt == nil {
		t.Fatalf("unexpected order after update: %+v", updated)
	}

	orders, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	found := false
	for _, o := range orders {
		if o.ID == id {
			found = o.Status == model.StatusDelivered
		}
	}
	if !found {
		t.Fatalf("updated order %s not found in store", id)
	}
}

func TestOrderStore_UpdateUnknown(t *testing.T) {
	s := openTestStore(t)

	_, err := s.UpdateStatus(context.Background(), "o_"+uuid.NewString(), model.StatusReady, time.Now())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
