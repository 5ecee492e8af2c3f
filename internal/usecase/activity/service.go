// Package activity writes the append-only audit trail of content changes.
// Recording is fire-and-forget: a failed write is logged and counted, and the
// operation that triggered it still succeeds.
package activity

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/observability/metrics"
	"news-portal/internal/repository"
)

// Entry is one change to record.
type Entry struct {
	ActorID   int64 // zero for system actions
	Target    entity.LogTarget
	TargetID  int64
	Operation entity.Operation
	// Payload is a full snapshot for create/delete and a Changes diff for update.
	Payload any
}

// Recorder is what use cases depend on.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// Discard is a Recorder that drops every entry.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(context.Context, Entry) {}

// Service persists entries through the activity repository.
type Service struct {
	Repo   repository.ActivityRepository
	Logger *slog.Logger
	Now    func() time.Time
}

// Record appends e. Cancellation of the request context does not abort the write.
func (s *Service) Record(ctx context.Context, e Entry) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	payload, err := json.Marshal(e.Payload)
	if err != nil {
		logger.Error("activity payload encoding failed",
			slog.String("target", string(e.Target)),
			slog.Int64("target_id", e.TargetID),
			slog.Any("error", err))
		metrics.RecordActivityFailure(string(e.Target))
		return
	}

	entry := &entity.ActivityLog{
		TargetType: e.Target,
		TargetID:   e.TargetID,
		Operation:  e.Operation,
		Payload:    payload,
		CreatedAt:  now(),
	}
	if e.ActorID != 0 {
		actor := e.ActorID
		entry.UserID = &actor
	}

	if err := s.Repo.Append(context.WithoutCancel(ctx), entry); err != nil {
		logger.Error("activity log write failed",
			slog.String("target", string(e.Target)),
			slog.Int64("target_id", e.TargetID),
			slog.String("operation", string(e.Operation)),
			slog.Any("error", err))
		metrics.RecordActivityFailure(string(e.Target))
	}
}
