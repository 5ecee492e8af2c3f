package entity

import "time"

// Role is the coarse permission level of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is an account that can author articles and comments.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID int64
	Role   Role
}

// Anonymous is the actor used for unauthenticated reads.
var Anonymous = Actor{}

// IsAnonymous reports whether no user is attached to the actor.
func (a Actor) IsAnonymous() bool {
	return a.UserID == 0
}

// RevokedToken marks a JWT id as logged out until it would have expired anyway.
type RevokedToken struct {
	JTI       string
	UserID    int64
	ExpiresAt time.Time
}
