package model

import (
	"encoding/json"
	"time"
)

const (
	ModePickup   = "pickup"
	ModeDelivery = "delivery"
)

const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusReady      = "ready"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// ValidStatus reports whether s is one of the known order statuses.
// Transitions between them are unconstrained.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Address struct {
	Street string `json:"street,omitempty"`
	Zip    string `json:"zip,omitempty"`
	City   string `json:"city,omitempty"`
	Info   string `json:"info,omitempty"`
}

type Item struct {
	ID     string          `json:"id,omitempty"`
	Name   string          `json:"name"`
	Qty    float64         `json:"qty"`
	Price  float64         `json:"price"`
	Size   *string         `json:"size,omitempty"`
	Extras json.RawMessage `json:"extras,omitempty"`
	Notes  string          `json:"notes,omitempty"`
}

type Order struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
	Mode      string          `json:"mode"`
	Customer  Customer        `json:"customer"`
	Address   Address         `json:"address"`
	Note      string          `json:"note"`
	Items     []Item          `json:"items"`
	Totals    json.RawMessage `json:"totals"`
	Status    string          `json:"status"`
}

// MarshalJSON writes timestamps the way browsers produce them with
// Date.prototype.toISOString, so stored files stay interchangeable.
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	var updated *string
	if o.UpdatedAt != nil {
		s := FormatTime(*o.UpdatedAt)
		updated = &s
	}
	totals := o.Totals
	if len(totals) == 0 {
		totals = json.RawMessage(`{}`)
	}
	return json.Marshal(&struct {
		CreatedAt string          `json:"createdAt"`
		UpdatedAt *string         `json:"updatedAt,omitempty"`
		Totals    json.RawMessage `json:"totals"`
		*Alias
	}{
		CreatedAt: FormatTime(o.CreatedAt),
		UpdatedAt: updated,
		Totals:    totals,
		Alias:     (*Alias)(&o),
	})
}

const isoLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// Touch sets UpdatedAt to at, kept at least one millisecond after CreatedAt
// so the two stay ordered at the precision they are written with.
func (o *Order) Touch(at time.Time) {
	floor := o.CreatedAt.Truncate(time.Millisecond).Add(time.Millisecond)
	if at.Before(floor) {
		at = floor
	}
	o.UpdatedAt = &at
}
