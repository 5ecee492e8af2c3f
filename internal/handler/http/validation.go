package http

import (
	"net/http"

	"news-portal/internal/handler/http/respond"
)

const (
	maxAuthorizationHeader = 8 << 10
	maxPathLength          = 2 << 10
)

// InputValidation rejects oversized Authorization headers and request paths
// before any routing or token parsing happens.
func InputValidation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.Header.Get("Authorization")) > maxAuthorizationHeader {
			respond.Failure(w, http.StatusBadRequest, "Authorization header too large.", nil)
			return
		}
		if len(r.URL.Path) > maxPathLength {
			respond.Failure(w, http.StatusRequestURITooLong, "URI too long.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
