package postgres

import (
	"context"
	"fmt"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

// TokenRepo is the denylist of access tokens revoked before their expiry.
type TokenRepo struct {
	db Querier
}

func NewTokenRepo(db Querier) repository.TokenRepository {
	return &TokenRepo{db: db}
}

// Revoke is idempotent per jti.
func (repo *TokenRepo) Revoke(ctx context.Context, token entity.RevokedToken) error {
	const query = `
INSERT INTO revoked_tokens (jti, user_id, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (jti) DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, token.JTI, token.UserID, token.ExpiresAt); err != nil {
		return fmt.Errorf("Revoke: %w", err)
	}
	return nil
}

func (repo *TokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`
	var revoked bool
	if err := repo.db.QueryRowContext(ctx, query, jti).Scan(&revoked); err != nil {
		return false, fmt.Errorf("IsRevoked: %w", err)
	}
	return revoked, nil
}

// PruneExpired drops entries whose token would be rejected as expired anyway.
func (repo *TokenRepo) PruneExpired(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM revoked_tokens WHERE expires_at < $1`
	res, err := repo.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("PruneExpired: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("PruneExpired: RowsAffected: %w", err)
	}
	return n, nil
}
