package postgres

import (
	"context"
	"fmt"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

// ActivityRepo appends to activity_logs. Rows are never updated or deleted.
type ActivityRepo struct {
	db Querier
}

func NewActivityRepo(db Querier) repository.ActivityRepository {
	return &ActivityRepo{db: db}
}

func (repo *ActivityRepo) Append(ctx context.Context, entry *entity.ActivityLog) error {
	const query = `
INSERT INTO activity_logs (user_id, target_type, target_id, operation, payload, created_at)
VALUES ($1, $2, $3, $4, $5::jsonb, $6)
RETURNING id`
	// jsonb は文字列として渡す
	err := repo.db.QueryRowContext(ctx, query,
		entry.UserID, string(entry.TargetType), entry.TargetID, string(entry.Operation),
		string(entry.Payload), entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("Append: %w", err)
	}
	return nil
}
