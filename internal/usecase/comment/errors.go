// Package comment provides use cases for comments and threaded replies.
package comment

import (
	"fmt"

	"news-portal/internal/domain/entity"
)

// Sentinel errors for comment use case operations.
var (
	ErrCommentNotFound = entity.NotFound("Comment not found.")
	ErrParentNotFound  = entity.NotFound("Parent comment not found.")
	ErrArticleNotFound = entity.NotFound("Article not found.")

	// ErrInvalidCommentID indicates that the provided comment ID is not positive.
	ErrInvalidCommentID = &entity.ValidationError{Field: "id", Message: "must be positive"}

	ErrNoPermission = entity.Forbidden("You don't have permission")
)

func notAuthorized(action string) error {
	return entity.Forbidden(fmt.Sprintf("You are not authorized to %s this comment.", action))
}
