package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"news-portal/internal/domain/entity"
	"news-portal/internal/domain/permission"
	"news-portal/internal/observability/logging"
	"news-portal/internal/observability/metrics"
	"news-portal/internal/observability/tracing"
	"news-portal/internal/usecase/activity"
)

type ownership int

const (
	// anyActor: the capability alone is enough.
	anyActor ownership = iota
	// ownerOnly: only the author, moderators included.
	ownerOnly
	// ownerOrModerator: the author or an actor holding ModerateAny.
	ownerOrModerator
)

type policy struct {
	capability permission.Capability
	ownership  ownership
	action     string // used in "You are not authorized to <action> this article."
}

var policies = map[entity.Transition]policy{
	entity.TransitionSubmit:    {capability: permission.ArticleRequestApproval, ownership: ownerOnly, action: "request approval for"},
	entity.TransitionApprove:   {capability: permission.ArticleApprove, ownership: anyActor},
	entity.TransitionReject:    {capability: permission.ArticleReject, ownership: anyActor},
	entity.TransitionPublish:   {capability: permission.ArticlePublish, ownership: ownerOrModerator, action: "publish"},
	entity.TransitionUnpublish: {capability: permission.ArticleUnpublish, ownership: ownerOrModerator, action: "unpublish"},
}

// RequestApproval moves the actor's own draft to pending.
func (s *Service) RequestApproval(ctx context.Context, actor entity.Actor, id int64) (*entity.Article, error) {
	return s.transition(ctx, actor, id, entity.TransitionSubmit)
}

// Approve accepts a pending article.
func (s *Service) Approve(ctx context.Context, actor entity.Actor, id int64) (*entity.Article, error) {
	return s.transition(ctx, actor, id, entity.TransitionApprove)
}

// Reject declines a pending article.
func (s *Service) Reject(ctx context.Context, actor entity.Actor, id int64) (*entity.Article, error) {
	return s.transition(ctx, actor, id, entity.TransitionReject)
}

// Publish makes an approved article public.
func (s *Service) Publish(ctx context.Context, actor entity.Actor, id int64) (*entity.Article, error) {
	return s.transition(ctx, actor, id, entity.TransitionPublish)
}

// Unpublish takes a published article back to approved.
func (s *Service) Unpublish(ctx context.Context, actor entity.Actor, id int64) (*entity.Article, error) {
	return s.transition(ctx, actor, id, entity.TransitionUnpublish)
}

func (s *Service) transition(ctx context.Context, actor entity.Actor, id int64, t entity.Transition) (art *entity.Article, err error) {
	ctx, span := tracing.StartSpan(ctx, "article."+string(t),
		attribute.Int64("article.id", id),
		attribute.Int64("actor.id", actor.UserID))
	defer func() { tracing.EndSpan(span, err) }()

	return s.applyTransition(ctx, actor, id, t)
}

func (s *Service) applyTransition(ctx context.Context, actor entity.Actor, id int64, t entity.Transition) (*entity.Article, error) {
	p, ok := policies[t]
	if !ok {
		return nil, fmt.Errorf("unknown transition %q", t)
	}

	// 1. capability
	if !permission.HasCapability(actor, p.capability) {
		metrics.RecordTransition(t, "forbidden")
		return nil, ErrNoPermission
	}

	// 2. lookup
	art, err := s.load(ctx, id)
	if err != nil {
		metrics.RecordTransition(t, resultOf(err))
		return nil, err
	}

	// 3. ownership
	switch p.ownership {
	case ownerOnly:
		if !art.IsOwnedBy(actor.UserID) {
			metrics.RecordTransition(t, "forbidden")
			return nil, notAuthorized(p.action)
		}
	case ownerOrModerator:
		if !permission.CanActOn(actor, art.UserID) {
			metrics.RecordTransition(t, "forbidden")
			return nil, notAuthorized(p.action)
		}
	}

	// 4. status
	before := activity.ArticleSnapshot(art)
	from := art.Status
	if err := art.Apply(t, s.now()); err != nil {
		metrics.RecordTransition(t, resultOf(err))
		return nil, err
	}

	if err := s.Repo.SaveTransition(ctx, art, from); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			// 読み込み後に別リクエストが状態を変えた
			metrics.RecordTransition(t, "conflict")
			return nil, &entity.StatusConflictError{Expected: from}
		}
		metrics.RecordTransition(t, "error")
		return nil, fmt.Errorf("%s article: %w", t, err)
	}
	metrics.RecordTransition(t, "success")

	s.recorder().Record(ctx, activity.Entry{
		ActorID:   actor.UserID,
		Target:    entity.LogTargetArticle,
		TargetID:  art.ID,
		Operation: entity.OperationUpdate,
		Payload:   activity.Diff(before, activity.ArticleSnapshot(art)),
	})
	s.notify(ctx, entity.ModerationEvent{
		Transition: t,
		ArticleID:  art.ID,
		Title:      art.Title,
		AuthorID:   art.UserID,
		ActorID:    actor.UserID,
		From:       from,
		To:         art.Status,
		At:         art.UpdatedAt,
	})
	return art, nil
}

func (s *Service) notify(ctx context.Context, ev entity.ModerationEvent) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.NotifyModeration(ctx, ev); err != nil {
		logging.WithTrace(ctx, slog.Default()).Warn("moderation notification not dispatched",
			slog.Int64("article_id", ev.ArticleID),
			slog.String("transition", string(ev.Transition)),
			slog.Any("error", err))
	}
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return "not_found"
	case errors.Is(err, entity.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, entity.ErrConflict):
		return "conflict"
	case errors.Is(err, entity.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
