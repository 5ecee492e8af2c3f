// Package reaction implements the like/dislike toggle shared by articles and comments.
package reaction

import (
	"context"
	"fmt"

	"news-portal/internal/domain/entity"
	"news-portal/internal/observability/metrics"
	"news-portal/internal/repository"
)

// Outcome is what a toggle did.
type Outcome int

const (
	Added Outcome = iota + 1
	Removed
)

// Label returns the past-tense word for a toggle, e.g. "liked" or "undisliked".
func Label(kind entity.ReactionKind, o Outcome) string {
	word := "liked"
	if kind == entity.ReactionDislike {
		word = "disliked"
	}
	if o == Removed {
		return "un" + word
	}
	return word
}

// Message is the client-facing success message of a toggle.
func Message(kind entity.ReactionKind, o Outcome) string {
	return "Successfully toggle reaction to " + Label(kind, o)
}

// Service provides the reaction toggle and read-side summaries.
type Service struct {
	Repo repository.ReactionRepository
}

// Target resolves ref against the reaction ledger.
func (s *Service) Target(ref entity.ReactableRef) Reactable {
	return ledgerTarget{ref: ref, repo: s.Repo}
}

// Toggle flips the actor's reaction of the given kind on target.
// Existence of the target is the caller's concern.
func (s *Service) Toggle(ctx context.Context, ref entity.ReactableRef, kind entity.ReactionKind, actorID int64) (Outcome, error) {
	if !ref.Valid() {
		return 0, ErrInvalidTarget
	}
	if _, err := entity.ParseReactionKind(string(kind)); err != nil {
		return 0, err
	}
	if actorID <= 0 {
		return 0, ErrAnonymousReaction
	}

	target := s.Target(ref)
	has, err := target.HasReaction(ctx, actorID, kind)
	if err != nil {
		return 0, fmt.Errorf("check reaction: %w", err)
	}

	outcome := Added
	if has {
		if err := target.RemoveReaction(ctx, actorID, kind); err != nil {
			return 0, fmt.Errorf("remove reaction: %w", err)
		}
		outcome = Removed
	} else {
		// 同時リクエストで既に存在していた場合も Insert は no-op になる
		if err := target.AddReaction(ctx, actorID, kind); err != nil {
			return 0, fmt.Errorf("add reaction: %w", err)
		}
	}

	metrics.RecordReactionToggle(ref.Type(), Label(kind, outcome))
	return outcome, nil
}

// Summary returns totals for target and the viewer's own flags.
// A zero viewerID yields false flags.
func (s *Service) Summary(ctx context.Context, ref entity.ReactableRef, viewerID int64) (entity.ReactionStats, error) {
	stats, err := s.Summaries(ctx, []entity.ReactableRef{ref}, viewerID)
	if err != nil {
		return entity.ReactionStats{}, err
	}
	return stats[ref], nil
}

// Summaries is the batched form of Summary. Targets must share one type.
func (s *Service) Summaries(ctx context.Context, refs []entity.ReactableRef, viewerID int64) (map[entity.ReactableRef]entity.ReactionStats, error) {
	if len(refs) == 0 {
		return map[entity.ReactableRef]entity.ReactionStats{}, nil
	}
	for _, ref := range refs {
		if !ref.Valid() || ref.Type() != refs[0].Type() {
			return nil, ErrInvalidTarget
		}
	}
	stats, err := s.Repo.Stats(ctx, refs, viewerID)
	if err != nil {
		return nil, fmt.Errorf("reaction stats: %w", err)
	}
	return stats, nil
}
