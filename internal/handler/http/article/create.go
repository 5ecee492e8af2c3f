package article

import (
	"log/slog"
	"net/http"

	"news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/request"
	"news-portal/internal/handler/http/respond"
	"news-portal/internal/observability/logging"
	artUC "news-portal/internal/usecase/article"
)

type createRequest struct {
	Title   string `json:"title" example:"City council approves new park"`
	Content string `json:"content" example:"The council voted..."`
}

// CreateHandler creates a draft owned by the caller.
type CreateHandler struct{ Svc Service }

// ServeHTTP 記事作成
// @Summary      記事作成
// @Description  下書き (draft) として新しい記事を作成します
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        article body createRequest true "記事情報"
// @Success      201 {object} respond.Envelope{data=DTO} "Article has been created successfully."
// @Failure      400 {object} respond.Envelope "Invalid request body"
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      403 {object} respond.Envelope "No permission"
// @Failure      422 {object} respond.Envelope "Validation error"
// @Failure      500 {object} respond.Envelope "Failed to create article."
// @Router       /v1/articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Failure(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}

	art, err := h.Svc.Create(r.Context(), auth.ActorFromContext(r.Context()), artUC.CreateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respond.Fail(w, r, err, "Failed to create article.")
		return
	}

	logging.WithTrace(r.Context(), slog.Default()).Info("article created",
		slog.Int64("article_id", art.ID),
		slog.Int64("user_id", art.UserID))
	respond.Success(w, http.StatusCreated, "Article has been created successfully.", FromArticle(art))
}
