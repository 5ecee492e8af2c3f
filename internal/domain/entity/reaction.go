package entity

import (
	"fmt"
	"time"
)

// ReactionKind is either like or dislike.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// ParseReactionKind converts s into a ReactionKind.
func ParseReactionKind(s string) (ReactionKind, error) {
	switch ReactionKind(s) {
	case ReactionLike, ReactionDislike:
		return ReactionKind(s), nil
	case "":
		return "", &ValidationError{Field: "type", Message: "type is required"}
	default:
		return "", &ValidationError{Field: "type", Message: fmt.Sprintf("type must be one of like, dislike (got %q)", s)}
	}
}

// TargetType names the kind of row a reaction points at.
type TargetType string

const (
	TargetArticle TargetType = "article"
	TargetComment TargetType = "comment"
)

// ReactableRef identifies exactly one article or one comment.
// The zero value is invalid; build refs with ArticleRef or CommentRef.
type ReactableRef struct {
	typ TargetType
	id  int64
}

// ArticleRef references the article with the given id.
func ArticleRef(id int64) ReactableRef { return ReactableRef{typ: TargetArticle, id: id} }

// CommentRef references the comment with the given id.
func CommentRef(id int64) ReactableRef { return ReactableRef{typ: TargetComment, id: id} }

// Type returns the referenced table.
func (r ReactableRef) Type() TargetType { return r.typ }

// ID returns the referenced row id.
func (r ReactableRef) ID() int64 { return r.id }

// Valid reports whether the ref was built by ArticleRef or CommentRef with a positive id.
func (r ReactableRef) Valid() bool {
	return (r.typ == TargetArticle || r.typ == TargetComment) && r.id > 0
}

func (r ReactableRef) String() string {
	return fmt.Sprintf("%s:%d", r.typ, r.id)
}

// Reaction is one actor's like or dislike on a target.
type Reaction struct {
	ID        int64
	UserID    int64
	Target    ReactableRef
	Kind      ReactionKind
	CreatedAt time.Time
}

// ReactionStats is the read-side summary of reactions on a target.
type ReactionStats struct {
	TotalLikes    int64
	TotalDislikes int64
	IsLiked       bool
	IsDisliked    bool
}
