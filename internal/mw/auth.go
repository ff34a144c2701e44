package mw

import (
	"net/http"
	"strings"

	"campania/internal/apperr"
	"campania/internal/httpjson"
)

type TokenVerifier interface {
	Verify(token string) error
}

// AdminMiddleware requires a valid admin token. The token is read from the
// Authorization bearer header, the x-admin-token header, or the token query
// parameter, in that order; EventSource clients can only use the latter.
// Authorization headers with another scheme are skipped.
func AdminMiddleware(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				httpjson.Error(w, apperr.ErrUnauthorized)
				return
			}

			if err := v.Verify(token); err != nil {
				httpjson.Error(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
		return parts[1]
	}
	if t := strings.TrimSpace(r.Header.Get("x-admin-token")); t != "" {
		return t
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}
