package reaction

import (
	"errors"

	"news-portal/internal/domain/entity"
)

var (
	// ErrInvalidTarget is returned when a ReactableRef was not built by ArticleRef or CommentRef.
	ErrInvalidTarget = &entity.ValidationError{Field: "target", Message: "invalid reaction target"}

	// ErrAnonymousReaction is returned when no user is attached to a toggle.
	ErrAnonymousReaction = errors.New("reaction requires an authenticated user")
)
