package article

import (
	"context"
	"log/slog"
	"net/http"

	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/pathutil"
	"news-portal/internal/handler/http/respond"
	"news-portal/internal/observability/logging"
	artUC "news-portal/internal/usecase/article"
)

type transitionMessages struct {
	success  string
	fallback string
}

var messages = map[entity.Transition]transitionMessages{
	entity.TransitionSubmit:    {"Article has been requested for approval.", "Failed to request approval."},
	entity.TransitionApprove:   {"Article has been approved.", "Failed to approve article."},
	entity.TransitionReject:    {"Article has been rejected.", "Failed to reject article."},
	entity.TransitionPublish:   {"Article has been published.", "Failed to publish article."},
	entity.TransitionUnpublish: {"Article has been unpublished.", "Failed to unpublish article."},
}

// TransitionHandler runs one moderation step on an article.
type TransitionHandler struct {
	Svc        Service
	Transition entity.Transition
}

func (h TransitionHandler) run(ctx context.Context, actor entity.Actor, id int64) (*entity.Article, error) {
	switch h.Transition {
	case entity.TransitionSubmit:
		return h.Svc.RequestApproval(ctx, actor, id)
	case entity.TransitionApprove:
		return h.Svc.Approve(ctx, actor, id)
	case entity.TransitionReject:
		return h.Svc.Reject(ctx, actor, id)
	case entity.TransitionPublish:
		return h.Svc.Publish(ctx, actor, id)
	default:
		return h.Svc.Unpublish(ctx, actor, id)
	}
}

// ServeHTTP 記事ステータス遷移
// @Summary      記事ステータス遷移
// @Description  承認申請 (draft→pending, 作成者)、承認・却下 (pending→approved/rejected, admin)、
// @Description  公開 (approved→published)、非公開 (published→approved) を行います。
// @Description  前提ステータスと異なる場合は 400 "Article status is not X." を返します
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "記事ID"
// @Success      200 {object} respond.Envelope "Article has been approved."
// @Failure      400 {object} respond.Envelope "Article status is not pending."
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      403 {object} respond.Envelope "No permission / not authorized"
// @Failure      404 {object} respond.Envelope "Article not found."
// @Failure      422 {object} respond.Envelope "Invalid ID"
// @Failure      500 {object} respond.Envelope "Failed to approve article."
// @Router       /v1/articles/{id}/request-approval [post]
// @Router       /v1/articles/{id}/approve [post]
// @Router       /v1/articles/{id}/reject [post]
// @Router       /v1/articles/{id}/publish [post]
// @Router       /v1/articles/{id}/unpublish [post]
func (h TransitionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	msg := messages[h.Transition]

	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, r, artUC.ErrInvalidArticleID, msg.fallback)
		return
	}

	actor := auth.ActorFromContext(r.Context())
	art, err := h.run(r.Context(), actor, id)
	if err != nil {
		respond.Fail(w, r, err, msg.fallback)
		return
	}

	logging.WithTrace(r.Context(), slog.Default()).Info("article status changed",
		slog.Int64("article_id", art.ID),
		slog.String("transition", string(h.Transition)),
		slog.String("status", string(art.Status)),
		slog.Int64("actor_id", actor.UserID))
	respond.Success(w, http.StatusOK, msg.success, nil)
}
