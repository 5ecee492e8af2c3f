package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "required field error",
			field:    "title",
			message:  "title is required",
			expected: "validation error on field 'title': title is required",
		},
		{
			name:     "empty message",
			field:    "content",
			message:  "",
			expected: "validation error on field 'content': ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{Field: tt.field, Message: tt.message}
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestValidationError_IsInvalidInput(t *testing.T) {
	err := fmt.Errorf("create article: %w", &ValidationError{Field: "title", Message: "x"})

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrNotFound))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "title", ve.Field)
}

func TestStatusConflictError(t *testing.T) {
	err := fmt.Errorf("approve: %w", &StatusConflictError{Expected: StatusPending, Actual: StatusDraft})

	assert.True(t, errors.Is(err, ErrConflict))
	assert.Contains(t, err.Error(), "Article status is not pending.")
}

func TestDomainError(t *testing.T) {
	nf := NotFound("Article not found.")
	assert.True(t, errors.Is(nf, ErrNotFound))
	assert.Equal(t, "Article not found.", nf.Error())

	fb := fmt.Errorf("wrap: %w", Forbidden("You are not authorized to update this article."))
	assert.True(t, errors.Is(fb, ErrForbidden))
	assert.False(t, errors.Is(fb, ErrNotFound))
}
