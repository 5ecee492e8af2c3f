package repository

import (
	"context"

	"news-portal/internal/domain/entity"
)

// ReactionRepository is the reaction ledger keyed by (target, user, kind).
type ReactionRepository interface {
	Exists(ctx context.Context, target entity.ReactableRef, userID int64, kind entity.ReactionKind) (bool, error)
	// Insert adds the reaction. Inserting a key that already exists is a no-op.
	Insert(ctx context.Context, target entity.ReactableRef, userID int64, kind entity.ReactionKind) error
	// Delete removes the reaction and reports whether a row was removed.
	Delete(ctx context.Context, target entity.ReactableRef, userID int64, kind entity.ReactionKind) (bool, error)
	CountByKind(ctx context.Context, target entity.ReactableRef, kind entity.ReactionKind) (int64, error)
	// Stats returns totals for every target, plus is_liked/is_disliked for viewerID
	// (zero viewerID means anonymous). Targets must share one TargetType.
	Stats(ctx context.Context, targets []entity.ReactableRef, viewerID int64) (map[entity.ReactableRef]entity.ReactionStats, error)
}
