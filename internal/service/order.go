package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"campania/internal/apperr"
	"campania/internal/model"
	"campania/internal/notify"
)

// OrderStore is satisfied by the JSON file store and the Postgres store.
type OrderStore interface {
	ReadAll(ctx context.Context) ([]model.Order, error)
	Append(ctx context.Context, order model.Order) error
	UpdateStatus(ctx context.Context, id, status string, at time.Time) (*model.Order, error)
}

type Publisher interface {
	Publish(ev notify.Event)
}

// CreateOrderRequest is the checkout payload. Totals are stored as
// submitted.
type CreateOrderRequest struct {
	Mode     string          `json:"mode"`
	Customer *model.Customer `json:"customer"`
	Address  *model.Address  `json:"address"`
	Note     string          `json:"note"`
	Items    []model.Item    `json:"items"`
	Totals   json.RawMessage `json:"totals"`
}

type OrderService struct {
	store OrderStore
	pub   Publisher
	now   func() time.Time
}

func NewOrderService(store OrderStore, pub Publisher) *OrderService {
	return &OrderService{
		store: store,
		pub:   pub,
		now:   time.Now,
	}
}

func newOrderID() string {
	return "o_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.ErrEmptyItems
	}

	order := model.Order{
		ID:        newOrderID(),
		CreatedAt: s.now().UTC(),
		Mode:      req.Mode,
		Note:      req.Note,
		Items:     req.Items,
		Totals:    req.Totals,
		Status:    model.StatusNew,
	}
	if order.Mode == "" {
		order.Mode = model.ModeDelivery
	}
	if req.Customer != nil {
		order.Customer = *req.Customer
	}
	if req.Address != nil {
		order.Address = *req.Address
	}
	if len(order.Totals) == 0 || string(order.Totals) == "null" {
		order.Totals = json.RawMessage(`{}`)
	}

	if err := s.store.Append(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.pub.Publish(notify.Event{Name: notify.EventNewOrder, Order: order})
	slog.Info("order created", "id", order.ID, "mode", order.Mode, "items", len(order.Items))

	return &order, nil
}

// List returns all orders, newest first.
func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	orders, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// UpdateStatus sets a new status. An empty status only refreshes
// updatedAt; any known status may follow any other.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	if status != "" && !model.ValidStatus(status) {
		return nil, apperr.ErrInvalidStatus
	}

	order, err := s.store.UpdateStatus(ctx, id, status, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.pub.Publish(notify.Event{Name: notify.EventStatusChange, Order: *order})
	slog.Info("order status changed", "id", order.ID, "status", order.Status)

	return order, nil
}
