package repository

import (
	"time"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
)

// TimeRange bounds a timestamp column. Nil ends are open.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether neither end is set.
func (r TimeRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

// ArticleFilter contains optional filters for article listings.
type ArticleFilter struct {
	UserID      *int64
	Title       string // case-insensitive substring
	Content     string // case-insensitive substring
	Status      *entity.ArticleStatus
	SubmittedAt TimeRange
	ApprovedAt  TimeRange
	RejectedAt  TimeRange
	PublishedAt TimeRange
	CreatedAt   TimeRange
}

// CommentFilter contains optional filters for comment listings.
type CommentFilter struct {
	ArticleID *int64
	ParentID  *int64
	// TopLevelOnly restricts results to comments without a parent.
	// It takes precedence over ParentID.
	TopLevelOnly bool
	Content      string
	CreatedAt    TimeRange
}

// ListQuery is the page window and ordering of a listing.
type ListQuery struct {
	Offset int
	Limit  int
	Sort   pagination.Sort
}

// ArticleSortFields are the columns an article listing may be ordered by.
var ArticleSortFields = []string{
	"id", "title", "status", "created_at", "updated_at",
	"submitted_at", "approved_at", "rejected_at", "published_at",
}

// CommentSortFields are the columns a comment listing may be ordered by.
var CommentSortFields = []string{"id", "created_at", "updated_at"}
