package article

import (
	"net/http"

	"news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/pathutil"
	"news-portal/internal/handler/http/respond"
	artUC "news-portal/internal/usecase/article"
)

// DeleteHandler soft-deletes an article.
type DeleteHandler struct{ Svc Service }

// ServeHTTP 記事削除
// @Summary      記事削除
// @Description  記事を論理削除します。作成者のみ（admin は全記事）
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "記事ID"
// @Success      200 {object} respond.Envelope "Article has been deleted successfully."
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      403 {object} respond.Envelope "Not authorized"
// @Failure      404 {object} respond.Envelope "Article not found."
// @Failure      422 {object} respond.Envelope "Invalid ID"
// @Failure      500 {object} respond.Envelope "Failed to delete article."
// @Router       /v1/articles/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, r, artUC.ErrInvalidArticleID, "Failed to delete article.")
		return
	}

	if err := h.Svc.Delete(r.Context(), auth.ActorFromContext(r.Context()), id); err != nil {
		respond.Fail(w, r, err, "Failed to delete article.")
		return
	}

	respond.Success(w, http.StatusOK, "Article has been deleted successfully.", nil)
}
