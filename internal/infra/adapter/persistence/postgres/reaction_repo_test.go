package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"news-portal/internal/domain/entity"
	pg "news-portal/internal/infra/adapter/persistence/postgres"
)

/* ─────────────────────────── 1. Exists ─────────────────────────── */

func TestReactionRepo_Exists(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("comment", int64(3), int64(2), "dislike").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := pg.NewReactionRepo(db).Exists(context.Background(), entity.CommentRef(3), 2, entity.ReactionDislike)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v; want true", ok, err)
	}
}

/* ─────────────────────────── 2. Insert / Delete ─────────────────────────── */

func TestReactionRepo_Insert_IgnoresDuplicate(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (target_type, target_id, user_id, kind) DO NOTHING")).
		WithArgs("article", int64(1), int64(2), "like").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := pg.NewReactionRepo(db).Insert(context.Background(), entity.ArticleRef(1), 2, entity.ReactionLike); err != nil {
		t.Fatalf("Insert err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestReactionRepo_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "removed", affected: 1, want: true},
		{name: "nothing to remove", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reactions")).
				WithArgs("article", int64(1), int64(2), "like").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			got, err := pg.NewReactionRepo(db).Delete(context.Background(), entity.ArticleRef(1), 2, entity.ReactionLike)
			if err != nil || got != tt.want {
				t.Fatalf("Delete = %v, %v; want %v", got, err, tt.want)
			}
		})
	}
}

func TestReactionRepo_CountByKind(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reactions")).
		WithArgs("article", int64(1), "like").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := pg.NewReactionRepo(db).CountByKind(context.Background(), entity.ArticleRef(1), entity.ReactionLike)
	if err != nil || n != 4 {
		t.Fatalf("CountByKind = %d, %v; want 4", n, err)
	}
}

/* ─────────────────────────── 3. Stats ─────────────────────────── */

func TestReactionRepo_Stats(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE target_type = $1 AND target_id = ANY($2)")).
		WithArgs("article", []int64{1, 2}, int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"target_id", "likes", "dislikes", "is_liked", "is_disliked"}).
			AddRow(1, 3, 1, true, false))

	got, err := pg.NewReactionRepo(db).Stats(context.Background(),
		[]entity.ReactableRef{entity.ArticleRef(1), entity.ArticleRef(2)}, 9)
	if err != nil {
		t.Fatalf("Stats err=%v", err)
	}
	want := map[entity.ReactableRef]entity.ReactionStats{
		entity.ArticleRef(1): {TotalLikes: 3, TotalDislikes: 1, IsLiked: true},
		entity.ArticleRef(2): {},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(entity.ReactableRef{})); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestReactionRepo_Stats_MixedTypes(t *testing.T) {
	db, _ := newMock(t)

	_, err := pg.NewReactionRepo(db).Stats(context.Background(),
		[]entity.ReactableRef{entity.ArticleRef(1), entity.CommentRef(1)}, 0)
	if err == nil {
		t.Fatal("want error for mixed target types")
	}
}
