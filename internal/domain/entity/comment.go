package entity

import "time"

// Comment is a remark on an article. A nil ParentID marks a top-level comment.
type Comment struct {
	ID        int64
	ArticleID int64
	UserID    int64
	ParentID  *int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewComment returns a top-level comment on articleID.
func NewComment(articleID, userID int64, content string, now time.Time) *Comment {
	return &Comment{
		ArticleID: articleID,
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewReply returns a reply to parent. The reply always lives on the parent's article.
func NewReply(parent *Comment, userID int64, content string, now time.Time) *Comment {
	parentID := parent.ID
	return &Comment{
		ArticleID: parent.ArticleID,
		UserID:    userID,
		ParentID:  &parentID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsReply reports whether the comment answers another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// IsOwnedBy reports whether userID wrote the comment.
func (c *Comment) IsOwnedBy(userID int64) bool {
	return c.UserID == userID
}
