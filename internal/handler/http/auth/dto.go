package auth

import (
	"time"

	"news-portal/internal/domain/entity"
	userUC "news-portal/internal/usecase/user"
)

// UserDTO is the public shape of an account. The password hash is never serialised.
type UserDTO struct {
	ID        int64     `json:"id" example:"1"`
	Name      string    `json:"name" example:"Jane Doe"`
	Email     string    `json:"email" example:"jane@example.com"`
	Role      string    `json:"role" example:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserDTO converts u.
func NewUserDTO(u *entity.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// SessionDTO is returned by signup and login.
type SessionDTO struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType string    `json:"token_type" example:"Bearer"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newSessionDTO(s *userUC.Session) SessionDTO {
	return SessionDTO{
		User:      NewUserDTO(s.User),
		Token:     s.Token.Value,
		TokenType: "Bearer",
		ExpiresAt: s.Token.ExpiresAt,
	}
}
