package entity

import (
	"fmt"
	"net/mail"
	"strings"

	"news-portal/internal/utils/text"
)

const (
	// maxTitleLength mirrors the varchar(255) title column.
	maxTitleLength = 255
	maxNameLength  = 255
	maxEmailLength = 255
	// maxContentLength keeps a single row well under the request body limit.
	maxContentLength = 100_000
)

// ValidateTitle checks an article title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if text.CountRunes(title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", maxTitleLength),
		}
	}
	return nil
}

// ValidateContent checks article or comment body text.
// A body made only of markup (e.g. "<script>x</script>") counts as empty; the
// text itself is never rewritten.
func ValidateContent(field, content string) error {
	if strings.TrimSpace(content) == "" || !text.HasVisibleText(content) {
		return &ValidationError{Field: field, Message: field + " is required"}
	}
	if text.CountRunes(content) > maxContentLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must not exceed %d characters", field, maxContentLength),
		}
	}
	return nil
}

// ValidateName checks a user's display name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if text.CountRunes(name) > maxNameLength {
		return &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name must not exceed %d characters", maxNameLength),
		}
	}
	return nil
}

// ValidateEmail checks the format of an email address.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(email) > maxEmailLength {
		return &ValidationError{
			Field:   "email",
			Message: fmt.Sprintf("email must not exceed %d characters", maxEmailLength),
		}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "email is invalid"}
	}
	return nil
}

// NormalizeEmail lower-cases and trims an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
