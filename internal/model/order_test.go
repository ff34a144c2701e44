package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestValidStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []string{StatusNew, StatusInProgress, StatusReady, StatusDelivered, StatusCancelled} {
		if !ValidStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "NEW", "done", "processing"} {
		if ValidStatus(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestOrderMarshalJSON(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 14, 18, 30, 5, 123456789, time.FixedZone("CET", 3600))
	o := Order{ID: "o_1", CreatedAt: created, Status: StatusNew, Items: []Item{{Name: "Pizza", Qty: 1, Price: 9}}}

	out, err := json.Marshal(o)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)

	if !strings.Contains(s, `"createdAt":"2026-03-14T17:30:05.123Z"`) {
		t.Fatalf("expected UTC millisecond timestamp, got %s", s)
	}
	if strings.Contains(s, "updatedAt") {
		t.Fatalf("expected updatedAt to be omitted, got %s", s)
	}
	if !strings.Contains(s, `"totals":{}`) {
		t.Fatalf("expected empty totals object, got %s", s)
	}

	var back Order
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	if !back.CreatedAt.Equal(created.Truncate(time.Millisecond)) {
		t.Fatalf("expected %v, got %v", created.Truncate(time.Millisecond), back.CreatedAt)
	}

	updated := created.Add(time.Minute)
	o.UpdatedAt = &updated
	out, _ = json.Marshal(o)
	if !strings.Contains(string(out), `"updatedAt":"2026-03-14T17:31:05.123Z"`) {
		t.Fatalf("expected updatedAt, got %s", out)
	}
}

func TestOrderTouch(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 14, 18, 30, 5, 123400000, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "same_instant", at: created, want: "2026-03-14T18:30:05.124Z"},
		{name: "same_millisecond", at: created.Add(500 * time.Microsecond), want: "2026-03-14T18:30:05.124Z"},
		{name: "earlier_clock", at: created.Add(-time.Second), want: "2026-03-14T18:30:05.124Z"},
		{name: "later", at: created.Add(time.Minute), want: "2026-03-14T18:31:05.123Z"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := Order{ID: "o_1", CreatedAt: created}
			o.Touch(tt.at)

			if got := FormatTime(*o.UpdatedAt); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
			if FormatTime(*o.UpdatedAt) <= FormatTime(o.CreatedAt) {
				t.Fatalf("updatedAt %s not after createdAt %s", FormatTime(*o.UpdatedAt), FormatTime(o.CreatedAt))
			}
		})
	}
}
