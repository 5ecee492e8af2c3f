package repository

import (
	"context"
	"errors"
	"time"

	"news-portal/internal/domain/entity"
)

// ErrDuplicateEmail is returned by Create and Update when the email is taken.
var ErrDuplicateEmail = errors.New("email already exists")

// UserRepository persists accounts.
type UserRepository interface {
	Get(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByIDs はバッチでユーザーを取得し、N+1問題を解消する
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
}

// ActivityRepository appends audit entries.
type ActivityRepository interface {
	Append(ctx context.Context, entry *entity.ActivityLog) error
}

// TokenRepository tracks logged-out JWT ids.
type TokenRepository interface {
	Revoke(ctx context.Context, token entity.RevokedToken) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// PruneExpired deletes revocations that expired before the given time.
	PruneExpired(ctx context.Context, before time.Time) (int64, error)
}
