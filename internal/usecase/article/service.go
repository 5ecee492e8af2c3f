package article

import (
	"context"
	"fmt"
	"strings"
	"time"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/domain/permission"
	"news-portal/internal/repository"
	"news-portal/internal/usecase/activity"
	"news-portal/internal/usecase/reaction"
)

// CreateInput represents the input parameters for creating a new article.
type CreateInput struct {
	Title   string
	Content string
}

// UpdateInput represents the input parameters for updating an existing article.
// Fields with nil values will not be updated.
type UpdateInput struct {
	Title   *string
	Content *string
}

// ListResult is one page of articles together with the applied window and ordering.
type ListResult struct {
	Items      []*View
	Pagination pagination.Metadata
	Sort       pagination.Sort
}

// Service provides article management and moderation use cases.
type Service struct {
	Repo      repository.ArticleRepository
	Comments  repository.CommentRepository
	Users     repository.UserRepository
	Reactions *reaction.Service
	Activity  activity.Recorder
	// Notifier is told about every committed status transition. nil disables it.
	Notifier Notifier
	Now      func() time.Time
}

// Notifier receives moderation events after they are committed.
type Notifier interface {
	NotifyModeration(ctx context.Context, ev entity.ModerationEvent) error
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) recorder() activity.Recorder {
	if s.Activity == nil {
		return activity.Discard
	}
	return s.Activity
}

// List returns the articles visible to actor in the back office.
// Actors without ModerateAny only ever see their own articles.
func (s *Service) List(ctx context.Context, actor entity.Actor, filter repository.ArticleFilter, params pagination.Params, sort pagination.Sort) (*ListResult, error) {
	if !permission.HasCapability(actor, permission.ArticleList) {
		return nil, ErrNoPermission
	}
	if !permission.HasCapability(actor, permission.ModerateAny) {
		owner := actor.UserID
		filter.UserID = &owner
	}
	return s.list(ctx, actor.UserID, filter, params, sort)
}

// ListPublished returns published articles for the public dashboard.
// viewer may be entity.Anonymous.
func (s *Service) ListPublished(ctx context.Context, viewer entity.Actor, filter repository.ArticleFilter, params pagination.Params, sort pagination.Sort) (*ListResult, error) {
	published := entity.StatusPublished
	filter.Status = &published
	return s.list(ctx, viewer.UserID, filter, params, sort)
}

func (s *Service) list(ctx context.Context, viewerID int64, filter repository.ArticleFilter, params pagination.Params, sort pagination.Sort) (*ListResult, error) {
	total, err := s.Repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	articles, err := s.Repo.List(ctx, filter, repository.ListQuery{
		Offset: pagination.CalculateOffset(params.Page, params.Limit),
		Limit:  params.Limit,
		Sort:   sort,
	})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	views, err := s.buildViews(ctx, articles, viewerID, false)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Items:      views,
		Pagination: pagination.NewMetadata(params, total),
		Sort:       sort,
	}, nil
}

// Create stores a new draft owned by actor.
// Content is stored as submitted; HTML is only sanitized when rendered.
func (s *Service) Create(ctx context.Context, actor entity.Actor, in CreateInput) (*entity.Article, error) {
	if !permission.HasCapability(actor, permission.ArticleCreate) {
		return nil, ErrNoPermission
	}

	art := entity.NewArticle(actor.UserID, strings.TrimSpace(in.Title), strings.TrimSpace(in.Content), s.now())
	if err := art.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.recorder().Record(ctx, activity.Entry{
		ActorID:   actor.UserID,
		Target:    entity.LogTargetArticle,
		TargetID:  art.ID,
		Operation: entity.OperationCreate,
		Payload:   activity.ArticleSnapshot(art),
	})
	return art, nil
}

// GetForActor returns any article the actor owns, or any article at all for moderators.
func (s *Service) GetForActor(ctx context.Context, actor entity.Actor, id int64) (*View, error) {
	if !permission.HasCapability(actor, permission.ArticleView) {
		return nil, ErrNoPermission
	}
	art, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !permission.CanActOn(actor, art.UserID) {
		return nil, notAuthorized("get")
	}
	return s.buildView(ctx, art, actor.UserID)
}

// GetPublished returns an article only while it is published.
// viewer may be entity.Anonymous.
func (s *Service) GetPublished(ctx context.Context, viewer entity.Actor, id int64) (*View, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}
	art, err := s.Repo.GetPublished(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get published article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	return s.buildView(ctx, art, viewer.UserID)
}

// Update modifies the title and/or content of an article.
// Status is never changed here.
func (s *Service) Update(ctx context.Context, actor entity.Actor, id int64, in UpdateInput) (*entity.Article, error) {
	if !permission.HasCapability(actor, permission.ArticleUpdate) {
		return nil, ErrNoPermission
	}
	art, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !permission.CanActOn(actor, art.UserID) {
		return nil, notAuthorized("update")
	}

	before := activity.ArticleSnapshot(art)
	if in.Title != nil {
		art.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		art.Content = strings.TrimSpace(*in.Content)
	}
	if err := art.Validate(); err != nil {
		return nil, err
	}
	art.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, art); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	if changes := activity.Diff(before, activity.ArticleSnapshot(art)); len(changes) > 0 {
		s.recorder().Record(ctx, activity.Entry{
			ActorID:   actor.UserID,
			Target:    entity.LogTargetArticle,
			TargetID:  art.ID,
			Operation: entity.OperationUpdate,
			Payload:   changes,
		})
	}
	return art, nil
}

// Delete soft-deletes an article.
func (s *Service) Delete(ctx context.Context, actor entity.Actor, id int64) error {
	if !permission.HasCapability(actor, permission.ArticleDelete) {
		return ErrNoPermission
	}
	art, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !permission.CanActOn(actor, art.UserID) {
		return notAuthorized("delete")
	}

	if err := s.Repo.SoftDelete(ctx, art.ID, s.now()); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	s.recorder().Record(ctx, activity.Entry{
		ActorID:   actor.UserID,
		Target:    entity.LogTargetArticle,
		TargetID:  art.ID,
		Operation: entity.OperationDelete,
		Payload:   activity.ArticleSnapshot(art),
	})
	return nil
}

// ToggleReaction flips actor's like or dislike on an article in any status.
func (s *Service) ToggleReaction(ctx context.Context, actor entity.Actor, id int64, kind entity.ReactionKind) (reaction.Outcome, error) {
	if !permission.HasCapability(actor, permission.ArticleReact) {
		return 0, ErrNoPermission
	}
	art, err := s.load(ctx, id)
	if err != nil {
		return 0, err
	}
	return s.Reactions.Toggle(ctx, entity.ArticleRef(art.ID), kind, actor.UserID)
}

// load fetches a live article or returns ErrArticleNotFound.
func (s *Service) load(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}
	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	return art, nil
}
