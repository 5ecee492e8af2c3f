package article

import (
	"net/http"

	"news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/pathutil"
	"news-portal/internal/handler/http/request"
	"news-portal/internal/handler/http/respond"
	artUC "news-portal/internal/usecase/article"
)

type updateRequest struct {
	Title   *string `json:"title,omitempty" example:"City council approves new park"`
	Content *string `json:"content,omitempty" example:"The council voted..."`
}

// UpdateHandler edits the title or content of an article.
type UpdateHandler struct{ Svc Service }

// ServeHTTP 記事更新
// @Summary      記事更新
// @Description  記事のタイトル・本文を部分更新します。作成者のみ（admin は全記事）
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "記事ID"
// @Param        article body updateRequest true "更新内容"
// @Success      200 {object} respond.Envelope{data=DTO} "Article has been updated successfully."
// @Failure      400 {object} respond.Envelope "Invalid request body"
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      403 {object} respond.Envelope "Not authorized"
// @Failure      404 {object} respond.Envelope "Article not found."
// @Failure      422 {object} respond.Envelope "Validation error"
// @Failure      500 {object} respond.Envelope "Failed to update article."
// @Router       /v1/articles/{id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, r, artUC.ErrInvalidArticleID, "Failed to update article.")
		return
	}

	var req updateRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Failure(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}

	art, err := h.Svc.Update(r.Context(), auth.ActorFromContext(r.Context()), id, artUC.UpdateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respond.Fail(w, r, err, "Failed to update article.")
		return
	}

	respond.Success(w, http.StatusOK, "Article has been updated successfully.", FromArticle(art))
}
