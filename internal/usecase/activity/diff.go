package activity

import (
	"time"

	"news-portal/internal/domain/entity"
)

// Change is the old and new value of one field.
type Change struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Changes maps field names to their change. Only fields that differ are present.
type Changes map[string]Change

// Diff compares two snapshots produced by the same snapshot function.
func Diff(before, after map[string]any) Changes {
	changes := Changes{}
	for field, newVal := range after {
		oldVal := before[field]
		if oldVal != newVal {
			changes[field] = Change{Old: oldVal, New: newVal}
		}
	}
	return changes
}

// ArticleSnapshot flattens the audited fields of an article.
func ArticleSnapshot(a *entity.Article) map[string]any {
	return map[string]any{
		"user_id":      a.UserID,
		"title":        a.Title,
		"content":      a.Content,
		"status":       string(a.Status),
		"submitted_at": formatTime(a.SubmittedAt),
		"approved_at":  formatTime(a.ApprovedAt),
		"rejected_at":  formatTime(a.RejectedAt),
		"published_at": formatTime(a.PublishedAt),
	}
}

// CommentSnapshot flattens the audited fields of a comment.
func CommentSnapshot(c *entity.Comment) map[string]any {
	var parent any
	if c.ParentID != nil {
		parent = *c.ParentID
	}
	return map[string]any{
		"article_id": c.ArticleID,
		"user_id":    c.UserID,
		"parent_id":  parent,
		"content":    c.Content,
	}
}

// UserSnapshot flattens the audited fields of a user. The password hash is never included.
func UserSnapshot(u *entity.User) map[string]any {
	return map[string]any{
		"name":  u.Name,
		"email": u.Email,
		"role":  string(u.Role),
	}
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

