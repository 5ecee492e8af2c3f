package postgres

import (
	"context"
	"fmt"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

// ReactionRepo stores likes and dislikes for articles and comments in a single
// table keyed by (target_type, target_id).
type ReactionRepo struct {
	db Querier
}

func NewReactionRepo(db Querier) repository.ReactionRepository {
	return &ReactionRepo{db: db}
}

func (repo *ReactionRepo) Exists(ctx context.Context, target entity.ReactableRef, userID int64, kind entity.ReactionKind) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1 FROM reactions
	WHERE target_type = $1 AND target_id = $2 AND user_id = $3 AND kind = $4
)`
	var exists bool
	err := repo.db.QueryRowContext(ctx, query,
		string(target.Type()), target.ID(), userID, string(kind),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return exists, nil
}

// Insert is idempotent: a concurrent insert of the same reaction is absorbed
// by the unique index.
func (repo *ReactionRepo) Insert(ctx context.Context, target entity.ReactableRef, userID int64, kind entity.ReactionKind) error {
	const query = `
INSERT INTO reactions (target_type, target_id, user_id, kind)
VALUES ($1, $2, $3, $4)
ON CONFLICT (target_type, target_id, user_id, kind) DO NOTHING`
	_, err := repo.db.ExecContext(ctx, query,
		string(target.Type()), target.ID(), userID, string(kind))
	if err != nil {
		return fmt.Errorf("Insert: %w", err)
	}
	return nil
}

// Delete reports whether a row was actually removed.
func (repo *ReactionRepo) Delete(ctx context.Context, target entity.ReactableRef, userID int64, kind entity.ReactionKind) (bool, error) {
	const query = `
DELETE FROM reactions
WHERE target_type = $1 AND target_id = $2 AND user_id = $3 AND kind = $4`
	res, err := repo.db.ExecContext(ctx, query,
		string(target.Type()), target.ID(), userID, string(kind))
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	return n > 0, nil
}

func (repo *ReactionRepo) CountByKind(ctx context.Context, target entity.ReactableRef, kind entity.ReactionKind) (int64, error) {
	const query = `
SELECT COUNT(*) FROM reactions
WHERE target_type = $1 AND target_id = $2 AND kind = $3`
	var n int64
	err := repo.db.QueryRowContext(ctx, query,
		string(target.Type()), target.ID(), string(kind),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("CountByKind: %w", err)
	}
	return n, nil
}

// Stats aggregates totals and the viewer's flags for every target in one query.
// All targets must share one type. Targets without reactions are present with zero values.
func (repo *ReactionRepo) Stats(ctx context.Context, targets []entity.ReactableRef, viewerID int64) (map[entity.ReactableRef]entity.ReactionStats, error) {
	stats := make(map[entity.ReactableRef]entity.ReactionStats, len(targets))
	if len(targets) == 0 {
		return stats, nil
	}
	defer observe("reaction_stats", time.Now())

	typ := targets[0].Type()
	ids := make([]int64, 0, len(targets))
	for _, t := range targets {
		if t.Type() != typ {
			return nil, fmt.Errorf("Stats: mixed target types %s and %s", typ, t.Type())
		}
		stats[t] = entity.ReactionStats{}
		ids = append(ids, t.ID())
	}

	const query = `
SELECT target_id,
	COUNT(*) FILTER (WHERE kind = 'like'),
	COUNT(*) FILTER (WHERE kind = 'dislike'),
	COALESCE(BOOL_OR(user_id = $3 AND kind = 'like'), FALSE),
	COALESCE(BOOL_OR(user_id = $3 AND kind = 'dislike'), FALSE)
FROM reactions
WHERE target_type = $1 AND target_id = ANY($2)
GROUP BY target_id`
	rows, err := repo.db.QueryContext(ctx, query, string(typ), ids, viewerID)
	if err != nil {
		return nil, fmt.Errorf("Stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		var s entity.ReactionStats
		if err := rows.Scan(&id, &s.TotalLikes, &s.TotalDislikes, &s.IsLiked, &s.IsDisliked); err != nil {
			return nil, fmt.Errorf("Stats: Scan: %w", err)
		}
		if typ == entity.TargetArticle {
			stats[entity.ArticleRef(id)] = s
		} else {
			stats[entity.CommentRef(id)] = s
		}
	}
	return stats, rows.Err()
}
