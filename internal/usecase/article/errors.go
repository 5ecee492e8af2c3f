// Package article provides use cases for writing, moderating and reading articles.
// Every mutating operation checks the actor's capability first, then looks the
// article up, then checks ownership, then the status precondition.
package article

import (
	"fmt"

	"news-portal/internal/domain/entity"
)

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the article does not exist, is deleted,
	// or is not visible to the caller.
	ErrArticleNotFound = entity.NotFound("Article not found.")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = &entity.ValidationError{Field: "id", Message: "must be positive"}

	// ErrNoPermission indicates that the actor's role lacks the capability.
	ErrNoPermission = entity.Forbidden("You don't have permission")
)

// notAuthorized returns the ownership error for an action, e.g. "publish".
func notAuthorized(action string) error {
	return entity.Forbidden(fmt.Sprintf("You are not authorized to %s this article.", action))
}
