package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{name: "ascii", title: "Hello"},
		{name: "multibyte at limit", title: strings.Repeat("記", 255)},
		{name: "empty", title: "", wantErr: true},
		{name: "whitespace", title: " \t ", wantErr: true},
		{name: "too long", title: strings.Repeat("a", 256), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateContent(t *testing.T) {
	assert.NoError(t, ValidateContent("content", "body"))
	err := ValidateContent("content", "")
	assert.ErrorContains(t, err, "content is required")
	assert.Error(t, ValidateContent("content", strings.Repeat("x", maxContentLength+1)))
	assert.ErrorContains(t, ValidateContent("content", "<script>alert(1)</script>"), "content is required")
	assert.NoError(t, ValidateContent("content", "if a < b && c > d {}"))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{email: "user@example.com"},
		{email: "", wantErr: true},
		{email: "not-an-email", wantErr: true},
		{email: "Name <user@example.com>", wantErr: true},
		{email: strings.Repeat("a", 250) + "@x.com", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Alice"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName(strings.Repeat("n", 256)))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
}
