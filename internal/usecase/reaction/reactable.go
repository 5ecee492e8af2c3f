package reaction

import (
	"context"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

// Reactable is anything that can carry likes and dislikes.
// It is resolved from a ReactableRef, so callers never branch on the target type.
type Reactable interface {
	Ref() entity.ReactableRef
	HasReaction(ctx context.Context, userID int64, kind entity.ReactionKind) (bool, error)
	AddReaction(ctx context.Context, userID int64, kind entity.ReactionKind) error
	RemoveReaction(ctx context.Context, userID int64, kind entity.ReactionKind) error
	CountByKind(ctx context.Context, kind entity.ReactionKind) (int64, error)
}

// ledgerTarget binds a ref to the reaction ledger.
type ledgerTarget struct {
	ref  entity.ReactableRef
	repo repository.ReactionRepository
}

func (t ledgerTarget) Ref() entity.ReactableRef { return t.ref }

func (t ledgerTarget) HasReaction(ctx context.Context, userID int64, kind entity.ReactionKind) (bool, error) {
	return t.repo.Exists(ctx, t.ref, userID, kind)
}

func (t ledgerTarget) AddReaction(ctx context.Context, userID int64, kind entity.ReactionKind) error {
	return t.repo.Insert(ctx, t.ref, userID, kind)
}

func (t ledgerTarget) RemoveReaction(ctx context.Context, userID int64, kind entity.ReactionKind) error {
	_, err := t.repo.Delete(ctx, t.ref, userID, kind)
	return err
}

func (t ledgerTarget) CountByKind(ctx context.Context, kind entity.ReactionKind) (int64, error) {
	return t.repo.CountByKind(ctx, t.ref, kind)
}
