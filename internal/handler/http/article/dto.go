// Package article provides HTTP handlers for the back-office article endpoints:
// CRUD, the moderation transitions and reaction toggling.
package article

import (
	"time"

	"news-portal/internal/domain/entity"
	artUC "news-portal/internal/usecase/article"
)

// AuthorDTO is the public part of an article's author.
type AuthorDTO struct {
	ID   int64  `json:"id" example:"3"`
	Name string `json:"name" example:"Jane Doe"`
}

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID            int64      `json:"id" example:"5"`
	UserID        int64      `json:"user_id" example:"3"`
	Title         string     `json:"title" example:"City council approves new park"`
	Content       string     `json:"content" example:"The council voted..."`
	ContentHTML   string     `json:"content_html,omitempty" example:"<p>The council voted...</p>"`
	Status        string     `json:"status" example:"published"`
	SubmittedAt   *time.Time `json:"submitted_at" example:"2025-10-26T10:00:00Z"`
	ApprovedAt    *time.Time `json:"approved_at"`
	RejectedAt    *time.Time `json:"rejected_at"`
	PublishedAt   *time.Time `json:"published_at"`
	CreatedAt     time.Time  `json:"created_at" example:"2025-10-26T09:00:00Z"`
	UpdatedAt     time.Time  `json:"updated_at" example:"2025-10-26T12:00:00Z"`
	TotalLikes    int64      `json:"total_likes" example:"12"`
	TotalDislikes int64      `json:"total_dislikes" example:"1"`
	TotalComments int64      `json:"total_comments" example:"4"`
	IsLiked       bool       `json:"is_liked"`
	IsDisliked    bool       `json:"is_disliked"`
	Author        *AuthorDTO `json:"author"`
}

// FromArticle converts a bare article. Aggregates are zero.
func FromArticle(a *entity.Article) DTO {
	return DTO{
		ID:          a.ID,
		UserID:      a.UserID,
		Title:       a.Title,
		Content:     a.Content,
		Status:      string(a.Status),
		SubmittedAt: a.SubmittedAt,
		ApprovedAt:  a.ApprovedAt,
		RejectedAt:  a.RejectedAt,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// FromView converts an article read model.
func FromView(v *artUC.View) DTO {
	dto := FromArticle(v.Article)
	dto.ContentHTML = v.ContentHTML
	dto.TotalLikes = v.Reactions.TotalLikes
	dto.TotalDislikes = v.Reactions.TotalDislikes
	dto.IsLiked = v.Reactions.IsLiked
	dto.IsDisliked = v.Reactions.IsDisliked
	dto.TotalComments = v.TotalComments
	if v.Author != nil {
		dto.Author = &AuthorDTO{ID: v.Author.ID, Name: v.Author.Name}
	}
	return dto
}

// FromViews converts a page of read models.
func FromViews(views []*artUC.View) []DTO {
	out := make([]DTO, 0, len(views))
	for _, v := range views {
		out = append(out, FromView(v))
	}
	return out
}
