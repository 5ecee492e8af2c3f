package activity_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-portal/internal/domain/entity"
	"news-portal/internal/usecase/activity"
)

/* ───────── スタブ ───────── */

type stubActivityRepo struct {
	entries []*entity.ActivityLog
	ctxErr  error
	err     error
}

func (s *stubActivityRepo) Append(ctx context.Context, e *entity.ActivityLog) error {
	s.ctxErr = ctx.Err()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, e)
	return nil
}

var fixed = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(repo *stubActivityRepo) *activity.Service {
	return &activity.Service{
		Repo:   repo,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return fixed },
	}
}

/* ───────── Record ───────── */

func TestRecord_Create(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := newService(repo)

	a := entity.NewArticle(1, "T", "C", fixed)
	a.ID = 9
	svc.Record(context.Background(), activity.Entry{
		ActorID:   1,
		Target:    entity.LogTargetArticle,
		TargetID:  a.ID,
		Operation: entity.OperationCreate,
		Payload:   activity.ArticleSnapshot(a),
	})

	require.Len(t, repo.entries, 1)
	got := repo.entries[0]
	require.NotNil(t, got.UserID)
	assert.Equal(t, int64(1), *got.UserID)
	assert.Equal(t, entity.LogTargetArticle, got.TargetType)
	assert.Equal(t, int64(9), got.TargetID)
	assert.Equal(t, entity.OperationCreate, got.Operation)
	assert.Equal(t, fixed, got.CreatedAt)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(got.Payload, &payload))
	assert.Equal(t, "T", payload["title"])
	assert.Equal(t, "draft", payload["status"])
	assert.Nil(t, payload["published_at"])
}

func TestRecord_SystemActorHasNoUser(t *testing.T) {
	repo := &stubActivityRepo{}
	newService(repo).Record(context.Background(), activity.Entry{
		Target: entity.LogTargetUser, TargetID: 1, Operation: entity.OperationDelete,
	})
	require.Len(t, repo.entries, 1)
	assert.Nil(t, repo.entries[0].UserID)
}

func TestRecord_FailureIsSwallowed(t *testing.T) {
	repo := &stubActivityRepo{err: errors.New("db down")}
	assert.NotPanics(t, func() {
		newService(repo).Record(context.Background(), activity.Entry{
			ActorID: 1, Target: entity.LogTargetComment, TargetID: 2, Operation: entity.OperationUpdate,
		})
	})
	assert.Empty(t, repo.entries)
}

func TestRecord_IgnoresRequestCancellation(t *testing.T) {
	repo := &stubActivityRepo{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	newService(repo).Record(ctx, activity.Entry{
		ActorID: 1, Target: entity.LogTargetArticle, TargetID: 3, Operation: entity.OperationDelete,
	})

	require.Len(t, repo.entries, 1)
	assert.NoError(t, repo.ctxErr)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		activity.Discard.Record(context.Background(), activity.Entry{})
	})
}

/* ───────── Diff ───────── */

func TestDiff_OnlyChangedFields(t *testing.T) {
	a := entity.NewArticle(1, "Old", "Body", fixed)
	before := activity.ArticleSnapshot(a)

	a.Title = "New"
	require.NoError(t, a.Submit(fixed.Add(time.Hour)))
	after := activity.ArticleSnapshot(a)

	changes := activity.Diff(before, after)

	assert.Len(t, changes, 3)
	assert.Equal(t, activity.Change{Old: "Old", New: "New"}, changes["title"])
	assert.Equal(t, activity.Change{Old: "draft", New: "pending"}, changes["status"])
	assert.Nil(t, changes["submitted_at"].Old)
	assert.Equal(t, "2025-03-01T13:00:00Z", changes["submitted_at"].New)
	_, contentChanged := changes["content"]
	assert.False(t, contentChanged)
}

func TestDiff_NoChanges(t *testing.T) {
	c := entity.NewComment(1, 2, "hi", fixed)
	assert.Empty(t, activity.Diff(activity.CommentSnapshot(c), activity.CommentSnapshot(c)))
}

func TestUserSnapshot_HidesHash(t *testing.T) {
	u := &entity.User{Name: "n", Email: "e@example.com", Role: entity.RoleUser, PasswordHash: "$2a$10$abcdefghijklmnop"}
	snap := activity.UserSnapshot(u)
	assert.NotContains(t, snap, "password_hash")

	u2 := *u
	u2.PasswordHash = "$2a$10$zzzzzzzzzzzzwxyz"
	assert.Empty(t, activity.Diff(snap, activity.UserSnapshot(&u2)))
}
