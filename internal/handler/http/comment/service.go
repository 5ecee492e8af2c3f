package comment

import (
	"context"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
	cmtUC "news-portal/internal/usecase/comment"
	"news-portal/internal/usecase/reaction"
)

// Service is the part of the comment use case the /v1/comments endpoints need.
type Service interface {
	Add(ctx context.Context, actor entity.Actor, articleID int64, content string) (*entity.Comment, error)
	Reply(ctx context.Context, actor entity.Actor, parentID int64, content string) (*entity.Comment, error)
	Get(ctx context.Context, actor entity.Actor, id int64) (*cmtUC.View, error)
	List(ctx context.Context, actor entity.Actor, filter repository.CommentFilter, params pagination.Params, sort pagination.Sort) (*cmtUC.ListResult, error)
	Update(ctx context.Context, actor entity.Actor, id int64, content string) (*entity.Comment, error)
	Delete(ctx context.Context, actor entity.Actor, id int64) error
	ToggleReaction(ctx context.Context, actor entity.Actor, id int64, kind entity.ReactionKind) (reaction.Outcome, error)
}
