package comment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/domain/permission"
	"news-portal/internal/observability/metrics"
	"news-portal/internal/repository"
	"news-portal/internal/usecase/activity"
	"news-portal/internal/usecase/reaction"
)

// ListResult is one page of comments together with the applied window and ordering.
type ListResult struct {
	Items      []*View
	Pagination pagination.Metadata
	Sort       pagination.Sort
}

// Service provides comment use cases.
type Service struct {
	Repo      repository.CommentRepository
	Articles  repository.ArticleRepository
	Users     repository.UserRepository
	Reactions *reaction.Service
	Activity  activity.Recorder
	Now       func() time.Time
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

// Add creates a top-level comment on an article.
func (s *Service) Add(ctx context.Context, actor entity.Actor, articleID int64, content string) (*entity.Comment, error) {
	if !permission.HasCapability(actor, permission.CommentCreate) {
		return nil, ErrNoPermission
	}
	if err := s.articleExists(ctx, articleID); err != nil {
		return nil, err
	}

	c := entity.NewComment(articleID, actor.UserID, strings.TrimSpace(content), s.now())
	return s.create(ctx, actor, c)
}

// Reply answers an existing comment. The reply is always attached to the
// parent's article, whatever article the client believes it is on.
func (s *Service) Reply(ctx context.Context, actor entity.Actor, parentID int64, content string) (*entity.Comment, error) {
	if !permission.HasCapability(actor, permission.CommentCreate) {
		return nil, ErrNoPermission
	}
	if parentID <= 0 {
		return nil, ErrParentNotFound
	}
	parent, err := s.Repo.Get(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("get parent comment: %w", err)
	}
	if parent == nil {
		return nil, ErrParentNotFound
	}

	c := entity.NewReply(parent, actor.UserID, strings.TrimSpace(content), s.now())
	return s.create(ctx, actor, c)
}

func (s *Service) create(ctx context.Context, actor entity.Actor, c *entity.Comment) (*entity.Comment, error) {
	if err := entity.ValidateContent("content", c.Content); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	metrics.RecordCommentCreated(c.IsReply())

	s.recorder().Record(ctx, activity.Entry{
		ActorID:   actor.UserID,
		Target:    entity.LogTargetComment,
		TargetID:  c.ID,
		Operation: entity.OperationCreate,
		Payload:   activity.CommentSnapshot(c),
	})
	return c, nil
}

// Get returns one comment with its direct replies.
func (s *Service) Get(ctx context.Context, actor entity.Actor, id int64) (*View, error) {
	if !permission.HasCapability(actor, permission.CommentView) {
		return nil, ErrNoPermission
	}
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.buildViews(ctx, []*entity.Comment{c}, actor.UserID, true)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// List returns comments matching filter.
func (s *Service) List(ctx context.Context, actor entity.Actor, filter repository.CommentFilter, params pagination.Params, sort pagination.Sort) (*ListResult, error) {
	if !permission.HasCapability(actor, permission.CommentList) {
		return nil, ErrNoPermission
	}
	return s.list(ctx, actor.UserID, filter, params, sort)
}

// ListForPublishedArticle returns the top-level comments of a published
// article, each with its direct replies. viewer may be entity.Anonymous.
func (s *Service) ListForPublishedArticle(ctx context.Context, viewer entity.Actor, articleID int64, params pagination.Params, sort pagination.Sort) (*ListResult, error) {
	if articleID <= 0 {
		return nil, ErrArticleNotFound
	}
	art, err := s.Articles.GetPublished(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("get published article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	filter := repository.CommentFilter{ArticleID: &art.ID, TopLevelOnly: true}
	return s.list(ctx, viewer.UserID, filter, params, sort)
}

func (s *Service) list(ctx context.Context, viewerID int64, filter repository.CommentFilter, params pagination.Params, sort pagination.Sort) (*ListResult, error) {
	total, err := s.Repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	comments, err := s.Repo.List(ctx, filter, repository.ListQuery{
		Offset: pagination.CalculateOffset(params.Page, params.Limit),
		Limit:  params.Limit,
		Sort:   sort,
	})
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	views, err := s.buildViews(ctx, comments, viewerID, true)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Items:      views,
		Pagination: pagination.NewMetadata(params, total),
		Sort:       sort,
	}, nil
}

// Update replaces the content of a comment.
func (s *Service) Update(ctx context.Context, actor entity.Actor, id int64, content string) (*entity.Comment, error) {
	if !permission.HasCapability(actor, permission.CommentUpdate) {
		return nil, ErrNoPermission
	}
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !permission.CanActOn(actor, c.UserID) {
		return nil, notAuthorized("update")
	}

	before := activity.CommentSnapshot(c)
	c.Content = strings.TrimSpace(content)
	if err := entity.ValidateContent("content", c.Content); err != nil {
		return nil, err
	}
	c.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if changes := activity.Diff(before, activity.CommentSnapshot(c)); len(changes) > 0 {
		s.recorder().Record(ctx, activity.Entry{
			ActorID:   actor.UserID,
			Target:    entity.LogTargetComment,
			TargetID:  c.ID,
			Operation: entity.OperationUpdate,
			Payload:   changes,
		})
	}
	return c, nil
}

// Delete soft-deletes a comment.
func (s *Service) Delete(ctx context.Context, actor entity.Actor, id int64) error {
	if !permission.HasCapability(actor, permission.CommentDelete) {
		return ErrNoPermission
	}
	c, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !permission.CanActOn(actor, c.UserID) {
		return notAuthorized("delete")
	}
	if err := s.Repo.SoftDelete(ctx, c.ID, s.now()); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.recorder().Record(ctx, activity.Entry{
		ActorID:   actor.UserID,
		Target:    entity.LogTargetComment,
		TargetID:  c.ID,
		Operation: entity.OperationDelete,
		Payload:   activity.CommentSnapshot(c),
	})
	return nil
}

// ToggleReaction flips actor's like or dislike on a comment.
func (s *Service) ToggleReaction(ctx context.Context, actor entity.Actor, id int64, kind entity.ReactionKind) (reaction.Outcome, error) {
	if !permission.HasCapability(actor, permission.CommentReact) {
		return 0, ErrNoPermission
	}
	c, err := s.load(ctx, id)
	if err != nil {
		return 0, err
	}
	return s.Reactions.Toggle(ctx, entity.CommentRef(c.ID), kind, actor.UserID)
}

func (s *Service) load(ctx context.Context, id int64) (*entity.Comment, error) {
	if id <= 0 {
		return nil, ErrInvalidCommentID
	}
	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if c == nil {
		return nil, ErrCommentNotFound
	}
	return c, nil
}

// articleExists reports ErrArticleNotFound unless the article row is live.
// Status does not matter: any existing article can be commented on.
func (s *Service) articleExists(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrArticleNotFound
	}
	art, err := s.Articles.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return ErrArticleNotFound
	}
	return nil
}
