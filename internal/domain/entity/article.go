// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article, Comment, Reaction and User,
// the article moderation state machine, and domain-specific errors.
package entity

import "time"

// Article represents a news article written by a user and moved through moderation.
//
// Status is only changed through the transition methods in status.go.
type Article struct {
	ID          int64
	UserID      int64
	Title       string
	Content     string
	Status      ArticleStatus
	SubmittedAt *time.Time
	ApprovedAt  *time.Time
	RejectedAt  *time.Time
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewArticle returns a draft article owned by userID.
func NewArticle(userID int64, title, content string, now time.Time) *Article {
	return &Article{
		UserID:    userID,
		Title:     title,
		Content:   content,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOwnedBy reports whether userID owns the article.
func (a *Article) IsOwnedBy(userID int64) bool {
	return a.UserID == userID
}

// IsDeleted reports whether the article has been soft-deleted.
func (a *Article) IsDeleted() bool {
	return a.DeletedAt != nil
}

// Validate checks the editable fields of the article.
func (a *Article) Validate() error {
	if err := ValidateTitle(a.Title); err != nil {
		return err
	}
	return ValidateContent("content", a.Content)
}
