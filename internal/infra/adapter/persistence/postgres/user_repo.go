package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

type UserRepo struct {
	db Querier
}

func NewUserRepo(db Querier) repository.UserRepository {
	return &UserRepo{db: db}
}

func scanUser(row rowScanner) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	u, err := scanUser(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return u, nil
}

// GetByEmail matches case-insensitively against the lower(email) unique index.
func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`
	u, err := scanUser(repo.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByEmail: %w", err)
	}
	return u, nil
}

// GetByIDs loads many users in one query. Unknown ids are absent from the result.
func (repo *UserRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*entity.User, error) {
	users := make(map[int64]*entity.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	const query = `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`
	rows, err := repo.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("GetByIDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("GetByIDs: Scan: %w", err)
		}
		users[u.ID] = u
	}
	return users, rows.Err()
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, string(user.Role),
		user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if isUniqueViolation(err) {
		return repository.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) Update(ctx context.Context, user *entity.User) error {
	const query = `
UPDATE users
SET name = $1, email = $2, password_hash = $3, updated_at = $4
WHERE id = $5`
	res, err := repo.db.ExecContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.UpdatedAt, user.ID)
	if isUniqueViolation(err) {
		return repository.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}
