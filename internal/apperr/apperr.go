// Package apperr classifies application errors into wire codes and
// HTTP statuses.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrEmptyItems         = errors.New("order has no items")
	ErrInvalidJSON        = errors.New("invalid json")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrNotFound           = errors.New("not found")
	ErrPersistence        = errors.New("persistence failure")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnsupportedCart    = errors.New("unsupported cart version")
	ErrBodyTooLarge       = errors.New("request body too large")
)

// ValidationError reports a single invalid request field.
type ValidationError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Code
}

// Code returns the machine-readable code sent to clients in the error field.
func Code(err error) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return ""

	case errors.As(err, &ve):
		return ve.Code

	case errors.Is(err, ErrEmptyItems):
		return "EMPTY_ITEMS"

	case errors.Is(err, ErrInvalidJSON):
		return "INVALID_JSON"

	case errors.Is(err, ErrInvalidStatus):
		return "INVALID_STATUS"

	case errors.Is(err, ErrUnsupportedCart):
		return "UNSUPPORTED_CART_VERSION"

	case errors.Is(err, ErrBodyTooLarge):
		return "PAYLOAD_TOO_LARGE"

	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"

	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"

	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"

	default:
		return "INTERNAL_ERROR"
	}
}

func HTTPStatus(err error) int {
	var ve *ValidationError
	switch {
	case err == nil:
		return http.StatusOK

	case errors.As(err, &ve),
		errors.Is(err, ErrEmptyItems),
		errors.Is(err, ErrInvalidJSON),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrUnsupportedCart):
		return http.StatusBadRequest

	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}
