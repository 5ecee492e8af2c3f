package article

import (
	"context"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
	artUC "news-portal/internal/usecase/article"
	"news-portal/internal/usecase/reaction"
)

// Service is the part of the article use case the back-office endpoints need.
type Service interface {
	List(ctx context.Context, actor entity.Actor, filter repository.ArticleFilter, params pagination.Params, sort pagination.Sort) (*artUC.ListResult, error)
	Create(ctx context.Context, actor entity.Actor, in artUC.CreateInput) (*entity.Article, error)
	GetForActor(ctx context.Context, actor entity.Actor, id int64) (*artUC.View, error)
	Update(ctx context.Context, actor entity.Actor, id int64, in artUC.UpdateInput) (*entity.Article, error)
	Delete(ctx context.Context, actor entity.Actor, id int64) error
	RequestApproval(ctx context.Context, actor entity.Actor, id int64) (*entity.Article, error)
	Approve(ctx context.Context, actor entity.Actor, id int64) (*entity.Article, error)
	Reject(ctx context.Context, actor entity.Actor, id int64) (*entity.Article, error)
	Publish(ctx context.Context, actor entity.Actor, id int64) (*entity.Article, error)
	Unpublish(ctx context.Context, actor entity.Actor, id int64) (*entity.Article, error)
	ToggleReaction(ctx context.Context, actor entity.Actor, id int64, kind entity.ReactionKind) (reaction.Outcome, error)
}
