package article

import (
	"net/http"

	"news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/pathutil"
	"news-portal/internal/handler/http/respond"
	artUC "news-portal/internal/usecase/article"
)

// GetHandler returns one article with its author and aggregates.
type GetHandler struct{ Svc Service }

// ServeHTTP 記事詳細取得（管理画面）
// @Summary      記事詳細取得
// @Description  指定されたIDの記事を作成者・リアクション数・コメント数付きで取得します
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "記事ID"
// @Success      200 {object} respond.Envelope{data=DTO} "Article found."
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      403 {object} respond.Envelope "No permission"
// @Failure      404 {object} respond.Envelope "Article not found."
// @Failure      422 {object} respond.Envelope "Invalid ID"
// @Failure      500 {object} respond.Envelope "Failed get articles"
// @Router       /v1/articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, r, artUC.ErrInvalidArticleID, "Failed get articles")
		return
	}

	view, err := h.Svc.GetForActor(r.Context(), auth.ActorFromContext(r.Context()), id)
	if err != nil {
		respond.Fail(w, r, err, "Failed get articles")
		return
	}

	respond.Success(w, http.StatusOK, "Article found.", FromView(view))
}
