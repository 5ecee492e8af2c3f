// Package comment provides HTTP handlers for comments, replies and comment reactions.
package comment

import (
	"time"

	"news-portal/internal/domain/entity"
	cmtUC "news-portal/internal/usecase/comment"
)

// AuthorDTO is the public part of a comment's author.
type AuthorDTO struct {
	ID   int64  `json:"id" example:"4"`
	Name string `json:"name" example:"John Roe"`
}

// DTO represents the JSON structure for comment data transfer.
type DTO struct {
	ID            int64      `json:"id" example:"11"`
	ArticleID     int64      `json:"article_id" example:"5"`
	UserID        int64      `json:"user_id" example:"4"`
	ParentID      *int64     `json:"parent_id" example:"10"`
	Content       string     `json:"content" example:"Great news!"`
	CreatedAt     time.Time  `json:"created_at" example:"2025-10-26T13:00:00Z"`
	UpdatedAt     time.Time  `json:"updated_at" example:"2025-10-26T13:00:00Z"`
	TotalLikes    int64      `json:"total_likes" example:"1"`
	TotalDislikes int64      `json:"total_dislikes" example:"0"`
	IsLiked       bool       `json:"is_liked"`
	IsDisliked    bool       `json:"is_disliked"`
	TotalReplies  int64      `json:"total_replies" example:"2"`
	Author        *AuthorDTO `json:"author"`
	Replies       []DTO      `json:"replies"`
}

// FromComment converts a bare comment.
func FromComment(c *entity.Comment) DTO {
	return DTO{
		ID:        c.ID,
		ArticleID: c.ArticleID,
		UserID:    c.UserID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Replies:   []DTO{},
	}
}

// FromView converts a comment read model, replies included.
func FromView(v *cmtUC.View) DTO {
	dto := FromComment(v.Comment)
	dto.TotalLikes = v.Reactions.TotalLikes
	dto.TotalDislikes = v.Reactions.TotalDislikes
	dto.IsLiked = v.Reactions.IsLiked
	dto.IsDisliked = v.Reactions.IsDisliked
	dto.TotalReplies = v.TotalReplies
	if v.Author != nil {
		dto.Author = &AuthorDTO{ID: v.Author.ID, Name: v.Author.Name}
	}
	dto.Replies = FromViews(v.Replies)
	return dto
}

// FromViews converts a list of read models. The result is never nil.
func FromViews(views []*cmtUC.View) []DTO {
	out := make([]DTO, 0, len(views))
	for _, v := range views {
		out = append(out, FromView(v))
	}
	return out
}
