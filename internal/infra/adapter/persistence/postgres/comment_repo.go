package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

const commentColumns = `id, article_id, user_id, parent_id, content, created_at, updated_at, deleted_at`

type CommentRepo struct {
	db           Querier
	queryBuilder *CommentQueryBuilder
}

func NewCommentRepo(db Querier) repository.CommentRepository {
	return &CommentRepo{
		db:           db,
		queryBuilder: NewCommentQueryBuilder(),
	}
}

func scanComment(row rowScanner) (*entity.Comment, error) {
	var c entity.Comment
	err := row.Scan(&c.ID, &c.ArticleID, &c.UserID, &c.ParentID, &c.Content,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanComments(rows *sql.Rows, capacity int) ([]*entity.Comment, error) {
	comments := make([]*entity.Comment, 0, capacity)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (repo *CommentRepo) List(ctx context.Context, filter repository.CommentFilter, q repository.ListQuery) ([]*entity.Comment, error) {
	defer observe("list_comments", time.Now())

	w := repo.queryBuilder.build(filter)
	limit, args := w.page(q.Limit, q.Offset)
	query := fmt.Sprintf(`
SELECT %s
FROM comments
%s
%s
%s`, commentColumns, w.clause(), orderBy(q.Sort, repository.CommentSortFields), limit)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	comments, err := scanComments(rows, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return comments, nil
}

func (repo *CommentRepo) Count(ctx context.Context, filter repository.CommentFilter) (int64, error) {
	clause, args := repo.queryBuilder.BuildWhereClause(filter)
	query := `SELECT COUNT(*) FROM comments ` + clause

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *CommentRepo) Get(ctx context.Context, id int64) (*entity.Comment, error) {
	const query = `
SELECT ` + commentColumns + `
FROM comments
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	c, err := scanComment(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return c, nil
}

func (repo *CommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	const query = `
INSERT INTO comments (article_id, user_id, parent_id, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		comment.ArticleID, comment.UserID, comment.ParentID, comment.Content,
		comment.CreatedAt, comment.UpdatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *CommentRepo) Update(ctx context.Context, comment *entity.Comment) error {
	const query = `
UPDATE comments
SET content = $1, updated_at = $2
WHERE id = $3 AND deleted_at IS NULL`
	res, err := repo.db.ExecContext(ctx, query, comment.Content, comment.UpdatedAt, comment.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *CommentRepo) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	const query = `UPDATE comments SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	if _, err := repo.db.ExecContext(ctx, query, at, id); err != nil {
		return fmt.Errorf("SoftDelete: %w", err)
	}
	return nil
}

// ListReplies returns the live direct replies of every parent in one query,
// oldest first.
func (repo *CommentRepo) ListReplies(ctx context.Context, parentIDs []int64) ([]*entity.Comment, error) {
	if len(parentIDs) == 0 {
		return []*entity.Comment{}, nil
	}
	defer observe("list_replies", time.Now())

	const query = `
SELECT ` + commentColumns + `
FROM comments
WHERE parent_id = ANY($1) AND deleted_at IS NULL
ORDER BY created_at ASC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("ListReplies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	comments, err := scanComments(rows, len(parentIDs))
	if err != nil {
		return nil, fmt.Errorf("ListReplies: %w", err)
	}
	return comments, nil
}

// CountTopLevelByArticles counts live top-level comments per article.
// Articles without comments are present with 0.
func (repo *CommentRepo) CountTopLevelByArticles(ctx context.Context, articleIDs []int64) (map[int64]int64, error) {
	const query = `
SELECT article_id, COUNT(*)
FROM comments
WHERE article_id = ANY($1) AND parent_id IS NULL AND deleted_at IS NULL
GROUP BY article_id`
	return repo.countBy(ctx, "CountTopLevelByArticles", query, articleIDs)
}

// CountRepliesByParents counts live direct replies per parent comment.
// Parents without replies are present with 0.
func (repo *CommentRepo) CountRepliesByParents(ctx context.Context, parentIDs []int64) (map[int64]int64, error) {
	const query = `
SELECT parent_id, COUNT(*)
FROM comments
WHERE parent_id = ANY($1) AND deleted_at IS NULL
GROUP BY parent_id`
	return repo.countBy(ctx, "CountRepliesByParents", query, parentIDs)
}

func (repo *CommentRepo) countBy(ctx context.Context, op, query string, ids []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	for _, id := range ids {
		counts[id] = 0
	}

	rows, err := repo.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
