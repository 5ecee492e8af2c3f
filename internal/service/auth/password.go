// Package auth provides password hashing, password policy and JWT issuing.
// It is framework-agnostic and used by the user use cases and the HTTP middleware.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"news-portal/internal/domain/entity"
)

// ErrPasswordMismatch is returned by Compare when the password is wrong.
var ErrPasswordMismatch = errors.New("password mismatch")

// PasswordPolicy defines password policy requirements.
type PasswordPolicy struct {
	MinPasswordLength int
	WeakPasswords     []string
}

// DefaultPasswordPolicy is used when no security config is loaded.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinPasswordLength: 8,
		WeakPasswords:     []string{"password", "12345678", "qwerty", "letmein"},
	}
}

// Check validates password against the policy.
func (p PasswordPolicy) Check(password string) error {
	if password == "" {
		return &entity.ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < p.MinPasswordLength {
		return &entity.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", p.MinPasswordLength),
		}
	}
	// bcrypt は 72 バイトを超える入力を受け付けない
	if len(password) > 72 {
		return &entity.ValidationError{Field: "password", Message: "password must not exceed 72 bytes"}
	}
	lower := strings.ToLower(password)
	for _, weak := range p.WeakPasswords {
		if lower == strings.ToLower(weak) {
			return &entity.ValidationError{Field: "password", Message: "password is too weak"}
		}
	}
	return nil
}

// Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	Cost int // zero means bcrypt.DefaultCost
}

// Hash returns the bcrypt hash of password.
func (h Hasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Compare returns nil when password matches hash and ErrPasswordMismatch otherwise.
func (h Hasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}
