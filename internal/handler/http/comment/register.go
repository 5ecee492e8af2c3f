package comment

import (
	"net/http"

	"news-portal/internal/common/pagination"
)

// Register mounts the /v1/comments routes on mux.
func Register(mux *http.ServeMux, svc Service, cfg pagination.Config) {
	mux.Handle("GET /v1/comments", ListHandler{Svc: svc, Pagination: cfg})
	mux.Handle("POST /v1/comments", CreateHandler{Svc: svc})
	mux.Handle("GET /v1/comments/{id}", GetHandler{Svc: svc})
	mux.Handle("PATCH /v1/comments/{id}", UpdateHandler{Svc: svc})
	mux.Handle("DELETE /v1/comments/{id}", DeleteHandler{Svc: svc})
	mux.Handle("POST /v1/comments/{id}/reply", ReplyHandler{Svc: svc})
	mux.Handle("POST /v1/comments/{id}/toggle-reaction", ToggleReactionHandler{Svc: svc})
}
