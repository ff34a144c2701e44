// Package httpjson writes the {ok, ...} JSON envelope used by every API
// response.
package httpjson

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"campania/internal/apperr"
)

type errorBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Write writes v as a JSON response with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// Error maps err to its status and wire code. Internal causes are logged
// and never sent to the client.
func Error(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	Write(w, status, errorBody{OK: false, Error: apperr.Code(err)})
}
