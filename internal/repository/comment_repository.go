package repository

import (
	"context"
	"time"

	"news-portal/internal/domain/entity"
)

// CommentRepository persists comments. Soft-deleted rows are invisible to every method.
type CommentRepository interface {
	List(ctx context.Context, filter CommentFilter, q ListQuery) ([]*entity.Comment, error)
	Count(ctx context.Context, filter CommentFilter) (int64, error)
	Get(ctx context.Context, id int64) (*entity.Comment, error)
	Create(ctx context.Context, comment *entity.Comment) error
	Update(ctx context.Context, comment *entity.Comment) error
	SoftDelete(ctx context.Context, id int64, at time.Time) error
	// ListReplies returns the direct replies of the given parents, oldest first.
	ListReplies(ctx context.Context, parentIDs []int64) ([]*entity.Comment, error)
	// CountTopLevelByArticles はバッチで記事ごとのトップレベルコメント数を返す
	CountTopLevelByArticles(ctx context.Context, articleIDs []int64) (map[int64]int64, error)
	// CountRepliesByParents はバッチでコメントごとの返信数を返す
	CountRepliesByParents(ctx context.Context, parentIDs []int64) (map[int64]int64, error)
}
