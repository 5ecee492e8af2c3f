// Package user provides account use cases: signup, login, logout and profile.
package user

import "news-portal/internal/domain/entity"

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = &entity.DomainError{Kind: entity.ErrUnauthenticated, Message: "invalid credentials"}

	// ErrEmailTaken is returned when another account already uses the email.
	ErrEmailTaken = &entity.ValidationError{Field: "email", Message: "email already exists"}

	// ErrUserNotFound is returned when the actor's account no longer exists.
	ErrUserNotFound = entity.NotFound("User not found.")

	errAnonymous = &entity.DomainError{Kind: entity.ErrUnauthenticated, Message: "Unauthenticated."}
)
