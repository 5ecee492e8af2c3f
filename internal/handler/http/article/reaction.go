package article

import (
	"net/http"

	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/pathutil"
	"news-portal/internal/handler/http/request"
	"news-portal/internal/handler/http/respond"
	artUC "news-portal/internal/usecase/article"
	"news-portal/internal/usecase/reaction"
)

// ToggleRequest is the body of the toggle-reaction endpoints.
type ToggleRequest struct {
	Type string `json:"type" example:"like" enums:"like,dislike"`
}

// ToggleReactionHandler adds or removes the caller's like or dislike.
type ToggleReactionHandler struct{ Svc Service }

// ServeHTTP 記事リアクション切替
// @Summary      記事リアクション切替
// @Description  like / dislike をトグルします。同じ種類を再送すると取り消されます
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "記事ID"
// @Param        reaction body ToggleRequest true "リアクション種別"
// @Success      200 {object} respond.Envelope "Successfully toggle reaction to liked"
// @Failure      400 {object} respond.Envelope "Invalid request body"
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      404 {object} respond.Envelope "Article not found."
// @Failure      422 {object} respond.Envelope "type must be like or dislike"
// @Failure      500 {object} respond.Envelope "Failed toggle reaction"
// @Router       /v1/articles/{id}/toggle-reaction [post]
func (h ToggleReactionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, r, artUC.ErrInvalidArticleID, "Failed toggle reaction")
		return
	}

	var req ToggleRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Failure(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	kind, err := entity.ParseReactionKind(req.Type)
	if err != nil {
		respond.Fail(w, r, err, "Failed toggle reaction")
		return
	}

	outcome, err := h.Svc.ToggleReaction(r.Context(), auth.ActorFromContext(r.Context()), id, kind)
	if err != nil {
		respond.Fail(w, r, err, "Failed toggle reaction")
		return
	}

	respond.Success(w, http.StatusOK, reaction.Message(kind, outcome), nil)
}
