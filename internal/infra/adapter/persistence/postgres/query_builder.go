// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"slices"
	"strings"

	"news-portal/internal/common/pagination"
	"news-portal/internal/repository"
)

// whereBuilder accumulates AND-ed conditions with numbered placeholders ($1, $2, ...).
// It is shared between COUNT and SELECT queries so both see the same filter.
type whereBuilder struct {
	conditions []string
	args       []interface{}
	paramIndex int
}

func newWhereBuilder() *whereBuilder {
	return &whereBuilder{paramIndex: 1}
}

// raw adds a condition without parameters.
func (w *whereBuilder) raw(cond string) {
	w.conditions = append(w.conditions, cond)
}

// eq adds "col = $N".
func (w *whereBuilder) eq(col string, v interface{}) {
	w.conditions = append(w.conditions, fmt.Sprintf("%s = $%d", col, w.paramIndex))
	w.args = append(w.args, v)
	w.paramIndex++
}

// contains adds a case-insensitive substring match.
func (w *whereBuilder) contains(col, s string) {
	w.conditions = append(w.conditions, fmt.Sprintf("%s ILIKE $%d", col, w.paramIndex))
	w.args = append(w.args, "%"+escapeILIKE(s)+"%")
	w.paramIndex++
}

// between adds the set ends of a time range. Both ends are inclusive.
func (w *whereBuilder) between(col string, r repository.TimeRange) {
	if r.From != nil {
		w.conditions = append(w.conditions, fmt.Sprintf("%s >= $%d", col, w.paramIndex))
		w.args = append(w.args, *r.From)
		w.paramIndex++
	}
	if r.To != nil {
		w.conditions = append(w.conditions, fmt.Sprintf("%s <= $%d", col, w.paramIndex))
		w.args = append(w.args, *r.To)
		w.paramIndex++
	}
}

// clause returns the WHERE clause, or "" when there are no conditions.
func (w *whereBuilder) clause() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conditions, " AND ")
}

// page appends LIMIT and OFFSET placeholders and returns the suffix and full argument list.
func (w *whereBuilder) page(limit, offset int) (string, []interface{}) {
	suffix := fmt.Sprintf("LIMIT $%d OFFSET $%d", w.paramIndex, w.paramIndex+1)
	return suffix, append(slices.Clone(w.args), limit, offset)
}

// escapeILIKE escapes the ILIKE wildcards % and _ and the escape character itself.
func escapeILIKE(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// orderBy renders an ORDER BY clause. Fields outside allowed fall back to
// created_at; id is appended as a tiebreaker so pages are stable.
func orderBy(sort pagination.Sort, allowed []string) string {
	field := sort.Field
	if !slices.Contains(allowed, field) {
		field = pagination.DefaultSort.Field
	}
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}
	if field == "id" {
		return "ORDER BY id " + dir
	}
	return fmt.Sprintf("ORDER BY %s %s NULLS LAST, id %s", field, dir, dir)
}

// ArticleQueryBuilder builds WHERE clauses for article listings.
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// build returns the builder for filter. Soft-deleted rows are always excluded.
func (qb *ArticleQueryBuilder) build(filter repository.ArticleFilter) *whereBuilder {
	w := newWhereBuilder()
	w.raw("deleted_at IS NULL")
	if filter.UserID != nil {
		w.eq("user_id", *filter.UserID)
	}
	if filter.Title != "" {
		w.contains("title", filter.Title)
	}
	if filter.Content != "" {
		w.contains("content", filter.Content)
	}
	if filter.Status != nil {
		w.eq("status", string(*filter.Status))
	}
	w.between("submitted_at", filter.SubmittedAt)
	w.between("approved_at", filter.ApprovedAt)
	w.between("rejected_at", filter.RejectedAt)
	w.between("published_at", filter.PublishedAt)
	w.between("created_at", filter.CreatedAt)
	return w
}

// BuildWhereClause returns the WHERE clause and its arguments for filter.
func (qb *ArticleQueryBuilder) BuildWhereClause(filter repository.ArticleFilter) (clause string, args []interface{}) {
	w := qb.build(filter)
	return w.clause(), w.args
}

// CommentQueryBuilder builds WHERE clauses for comment listings.
type CommentQueryBuilder struct{}

// NewCommentQueryBuilder creates a new query builder instance.
func NewCommentQueryBuilder() *CommentQueryBuilder {
	return &CommentQueryBuilder{}
}

// build returns the builder for filter. Soft-deleted rows are always excluded.
func (qb *CommentQueryBuilder) build(filter repository.CommentFilter) *whereBuilder {
	w := newWhereBuilder()
	w.raw("deleted_at IS NULL")
	if filter.ArticleID != nil {
		w.eq("article_id", *filter.ArticleID)
	}
	switch {
	case filter.TopLevelOnly:
		w.raw("parent_id IS NULL")
	case filter.ParentID != nil:
		w.eq("parent_id", *filter.ParentID)
	}
	if filter.Content != "" {
		w.contains("content", filter.Content)
	}
	w.between("created_at", filter.CreatedAt)
	return w
}

// BuildWhereClause returns the WHERE clause and its arguments for filter.
func (qb *CommentQueryBuilder) BuildWhereClause(filter repository.CommentFilter) (clause string, args []interface{}) {
	w := qb.build(filter)
	return w.clause(), w.args
}
