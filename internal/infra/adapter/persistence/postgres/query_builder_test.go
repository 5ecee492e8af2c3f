package postgres_test

import (
	"testing"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/infra/adapter/persistence/postgres"
	"news-portal/internal/repository"
)

/* ──────────────────────────── ArticleQueryBuilder ──────────────────────────── */

func TestArticleQueryBuilder_BuildWhereClause_NoConditions(t *testing.T) {
	builder := postgres.NewArticleQueryBuilder()
	clause, args := builder.BuildWhereClause(repository.ArticleFilter{})

	if clause != "WHERE deleted_at IS NULL" {
		t.Errorf("clause = %q, want %q", clause, "WHERE deleted_at IS NULL")
	}
	if len(args) != 0 {
		t.Errorf("args should be empty, got %v", args)
	}
}

func TestArticleQueryBuilder_BuildWhereClause_OwnerAndStatus(t *testing.T) {
	builder := postgres.NewArticleQueryBuilder()
	owner := int64(7)
	status := entity.StatusPending
	clause, args := builder.BuildWhereClause(repository.ArticleFilter{UserID: &owner, Status: &status})

	expected := "WHERE deleted_at IS NULL AND user_id = $1 AND status = $2"
	if clause != expected {
		t.Errorf("clause = %q, want %q", clause, expected)
	}
	if len(args) != 2 {
		t.Fatalf("len(args) = %d, want 2", len(args))
	}
	if args[0] != int64(7) || args[1] != "pending" {
		t.Errorf("args = %v, want [7 pending]", args)
	}
}

func TestArticleQueryBuilder_BuildWhereClause_TextSearch(t *testing.T) {
	builder := postgres.NewArticleQueryBuilder()
	clause, args := builder.BuildWhereClause(repository.ArticleFilter{Title: "Go", Content: "release"})

	expected := "WHERE deleted_at IS NULL AND title ILIKE $1 AND content ILIKE $2"
	if clause != expected {
		t.Errorf("clause = %q, want %q", clause, expected)
	}
	if args[0] != "%Go%" || args[1] != "%release%" {
		t.Errorf("args = %v, want [%%Go%% %%release%%]", args)
	}
}

func TestArticleQueryBuilder_BuildWhereClause_SpecialCharactersEscaped(t *testing.T) {
	builder := postgres.NewArticleQueryBuilder()
	_, args := builder.BuildWhereClause(repository.ArticleFilter{Title: `100%_off\`})

	want := `%100\%\_off\\%`
	if args[0] != want {
		t.Errorf("args[0] = %q, want %q", args[0], want)
	}
}

func TestArticleQueryBuilder_BuildWhereClause_DateRanges(t *testing.T) {
	builder := postgres.NewArticleQueryBuilder()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)

	clause, args := builder.BuildWhereClause(repository.ArticleFilter{
		PublishedAt: repository.TimeRange{From: &from, To: &to},
		ApprovedAt:  repository.TimeRange{From: &from},
		CreatedAt:   repository.TimeRange{To: &to},
	})

	expected := "WHERE deleted_at IS NULL AND approved_at >= $1 AND published_at >= $2 AND published_at <= $3 AND created_at <= $4"
	if clause != expected {
		t.Errorf("clause = %q, want %q", clause, expected)
	}
	if len(args) != 4 {
		t.Fatalf("len(args) = %d, want 4", len(args))
	}
	if args[0] != from || args[2] != to {
		t.Errorf("args = %v", args)
	}
}

/* ──────────────────────────── CommentQueryBuilder ──────────────────────────── */

func TestCommentQueryBuilder_BuildWhereClause(t *testing.T) {
	articleID := int64(3)
	parentID := int64(9)

	tests := []struct {
		name       string
		filter     repository.CommentFilter
		wantClause string
		wantArgs   int
	}{
		{
			name:       "empty",
			filter:     repository.CommentFilter{},
			wantClause: "WHERE deleted_at IS NULL",
		},
		{
			name:       "top level of article",
			filter:     repository.CommentFilter{ArticleID: &articleID, TopLevelOnly: true},
			wantClause: "WHERE deleted_at IS NULL AND article_id = $1 AND parent_id IS NULL",
			wantArgs:   1,
		},
		{
			name:       "top level wins over parent",
			filter:     repository.CommentFilter{ParentID: &parentID, TopLevelOnly: true},
			wantClause: "WHERE deleted_at IS NULL AND parent_id IS NULL",
		},
		{
			name:       "replies with content",
			filter:     repository.CommentFilter{ParentID: &parentID, Content: "nice"},
			wantClause: "WHERE deleted_at IS NULL AND parent_id = $1 AND content ILIKE $2",
			wantArgs:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := postgres.NewCommentQueryBuilder().BuildWhereClause(tt.filter)
			if clause != tt.wantClause {
				t.Errorf("clause = %q, want %q", clause, tt.wantClause)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("len(args) = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}
