package article

import (
	"net/http"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
)

// Register mounts the back-office article routes on mux.
func Register(mux *http.ServeMux, svc Service, cfg pagination.Config) {
	mux.Handle("GET /v1/articles", ListHandler{Svc: svc, Pagination: cfg})
	mux.Handle("POST /v1/articles", CreateHandler{Svc: svc})
	mux.Handle("GET /v1/articles/{id}", GetHandler{Svc: svc})
	mux.Handle("PATCH /v1/articles/{id}", UpdateHandler{Svc: svc})
	mux.Handle("DELETE /v1/articles/{id}", DeleteHandler{Svc: svc})

	mux.Handle("POST /v1/articles/{id}/request-approval", TransitionHandler{Svc: svc, Transition: entity.TransitionSubmit})
	mux.Handle("POST /v1/articles/{id}/approve", TransitionHandler{Svc: svc, Transition: entity.TransitionApprove})
	mux.Handle("POST /v1/articles/{id}/reject", TransitionHandler{Svc: svc, Transition: entity.TransitionReject})
	mux.Handle("POST /v1/articles/{id}/publish", TransitionHandler{Svc: svc, Transition: entity.TransitionPublish})
	mux.Handle("POST /v1/articles/{id}/unpublish", TransitionHandler{Svc: svc, Transition: entity.TransitionUnpublish})

	mux.Handle("POST /v1/articles/{id}/toggle-reaction", ToggleReactionHandler{Svc: svc})
}
