package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	pg "news-portal/internal/infra/adapter/persistence/postgres"
	"news-portal/internal/repository"
)

var commentCols = []string{
	"id", "article_id", "user_id", "parent_id", "content",
	"created_at", "updated_at", "deleted_at",
}

func commentRow(rows *sqlmock.Rows, c *entity.Comment) *sqlmock.Rows {
	var parent interface{}
	if c.ParentID != nil {
		parent = *c.ParentID
	}
	return rows.AddRow(c.ID, c.ArticleID, c.UserID, parent, c.Content,
		c.CreatedAt, c.UpdatedAt, nullTime(c.DeletedAt))
}

/* ─────────────────────────── 1. Get ─────────────────────────── */

func TestCommentRepo_Get(t *testing.T) {
	db, mock := newMock(t)

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	parent := int64(4)
	want := &entity.Comment{
		ID: 8, ArticleID: 1, UserID: 2, ParentID: &parent,
		Content: "reply", CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM comments\nWHERE id = $1 AND deleted_at IS NULL")).
		WithArgs(int64(8)).
		WillReturnRows(commentRow(sqlmock.NewRows(commentCols), want))

	got, err := pg.NewCommentRepo(db).Get(context.Background(), 8)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

/* ─────────────────────────── 2. List ─────────────────────────── */

func TestCommentRepo_List_TopLevel(t *testing.T) {
	db, mock := newMock(t)

	articleID := int64(1)
	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE deleted_at IS NULL AND article_id = $1 AND parent_id IS NULL\nORDER BY created_at DESC NULLS LAST, id DESC\nLIMIT $2 OFFSET $3")).
		WithArgs(int64(1), 10, 0).
		WillReturnRows(commentRow(sqlmock.NewRows(commentCols), &entity.Comment{
			ID: 1, ArticleID: 1, UserID: 2, Content: "top",
		}))

	got, err := pg.NewCommentRepo(db).List(context.Background(),
		repository.CommentFilter{ArticleID: &articleID, TopLevelOnly: true},
		repository.ListQuery{Limit: 10, Sort: pagination.DefaultSort})
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
	if got[0].ParentID != nil {
		t.Errorf("ParentID = %v, want nil", *got[0].ParentID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 3. Create ─────────────────────────── */

func TestCommentRepo_Create_Reply(t *testing.T) {
	db, mock := newMock(t)

	now := time.Now()
	reply := entity.NewReply(&entity.Comment{ID: 4, ArticleID: 1}, 2, "hi", now)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments")).
		WithArgs(int64(1), int64(2), int64(4), "hi", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	if err := pg.NewCommentRepo(db).Create(context.Background(), reply); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if reply.ID != 9 {
		t.Errorf("ID = %d, want 9", reply.ID)
	}
}

/* ─────────────────────────── 4. Batches ─────────────────────────── */

func TestCommentRepo_ListReplies(t *testing.T) {
	db, mock := newMock(t)

	p1, p2 := int64(1), int64(2)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE parent_id = ANY($1) AND deleted_at IS NULL\nORDER BY created_at ASC, id ASC")).
		WithArgs([]int64{1, 2}).
		WillReturnRows(commentRow(commentRow(sqlmock.NewRows(commentCols),
			&entity.Comment{ID: 10, ParentID: &p1}),
			&entity.Comment{ID: 11, ParentID: &p2}))

	got, err := pg.NewCommentRepo(db).ListReplies(context.Background(), []int64{1, 2})
	if err != nil || len(got) != 2 {
		t.Fatalf("ListReplies err=%v len=%d", err, len(got))
	}
	if *got[1].ParentID != 2 {
		t.Errorf("ParentID = %d, want 2", *got[1].ParentID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCommentRepo_ListReplies_Empty(t *testing.T) {
	db, mock := newMock(t)

	got, err := pg.NewCommentRepo(db).ListReplies(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("ListReplies = %v, %v", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCommentRepo_CountTopLevelByArticles(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE article_id = ANY($1) AND parent_id IS NULL")).
		WithArgs([]int64{1, 2, 3}).
		WillReturnRows(sqlmock.NewRows([]string{"article_id", "count"}).AddRow(1, 5).AddRow(3, 1))

	got, err := pg.NewCommentRepo(db).CountTopLevelByArticles(context.Background(), []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	want := map[int64]int64{1: 5, 2: 0, 3: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCommentRepo_CountRepliesByParents(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY parent_id")).
		WithArgs([]int64{7}).
		WillReturnRows(sqlmock.NewRows([]string{"parent_id", "count"}).AddRow(7, 2))

	got, err := pg.NewCommentRepo(db).CountRepliesByParents(context.Background(), []int64{7})
	if err != nil || got[7] != 2 {
		t.Fatalf("CountRepliesByParents = %v, %v", got, err)
	}
}
