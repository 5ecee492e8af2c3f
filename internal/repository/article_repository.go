package repository

import (
	"context"
	"time"

	"news-portal/internal/domain/entity"
)

// ArticleRepository persists articles. Soft-deleted rows are invisible to every method.
// Lookups return (nil, nil) when the row does not exist.
type ArticleRepository interface {
	List(ctx context.Context, filter ArticleFilter, q ListQuery) ([]*entity.Article, error)
	Count(ctx context.Context, filter ArticleFilter) (int64, error)
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// GetPublished returns the article only when its status is published.
	GetPublished(ctx context.Context, id int64) (*entity.Article, error)
	// Create inserts the article and sets its ID.
	Create(ctx context.Context, article *entity.Article) error
	// Update writes title, content and updated_at. Status is never written here.
	Update(ctx context.Context, article *entity.Article) error
	// SaveTransition persists the status and timestamps of an article that has just
	// run a transition, but only while the stored status still equals from.
	// It returns an error wrapping entity.ErrConflict when the row moved on.
	SaveTransition(ctx context.Context, article *entity.Article, from entity.ArticleStatus) error
	SoftDelete(ctx context.Context, id int64, at time.Time) error
	// CountByStatus returns the number of live articles per status.
	CountByStatus(ctx context.Context) (map[entity.ArticleStatus]int64, error)
}
