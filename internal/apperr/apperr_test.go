package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "empty_items", err: ErrEmptyItems, want: "EMPTY_ITEMS"},
		{name: "not_found_wrapped", err: fmt.Errorf("order o_1: %w", ErrNotFound), want: "NOT_FOUND"},
		{name: "validation", err: &ValidationError{Field: "zip", Code: "INVALID_ZIP"}, want: "INVALID_ZIP"},
		{name: "too_large", err: fmt.Errorf("%w: limit 4096", ErrBodyTooLarge), want: "PAYLOAD_TOO_LARGE"},
		{name: "validation_wrapped", err: fmt.Errorf("contact: %w", &ValidationError{Field: "email", Code: "INVALID_EMAIL"}), want: "INVALID_EMAIL"},
		{name: "persistence", err: fmt.Errorf("%w: disk full", ErrPersistence), want: "INTERNAL_ERROR"},
		{name: "unknown", err: errors.New("boom"), want: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Code(tt.err); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "empty_items", err: ErrEmptyItems, want: http.StatusBadRequest},
		{name: "invalid_status", err: ErrInvalidStatus, want: http.StatusBadRequest},
		{name: "validation", err: &ValidationError{Field: "city", Code: "MISSING_CITY"}, want: http.StatusBadRequest},
		{name: "not_found", err: fmt.Errorf("wrapped: %w", ErrNotFound), want: http.StatusNotFound},
		{name: "too_large", err: ErrBodyTooLarge, want: http.StatusRequestEntityTooLarge},
		{name: "unauthorized", err: ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "credentials", err: ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "persistence", err: ErrPersistence, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
