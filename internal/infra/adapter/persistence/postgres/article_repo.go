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

const articleColumns = `id, user_id, title, content, status, submitted_at, approved_at, rejected_at, published_at, created_at, updated_at, deleted_at`

type ArticleRepo struct {
	db           Querier
	queryBuilder *ArticleQueryBuilder
}

func NewArticleRepo(db Querier) repository.ArticleRepository {
	return &ArticleRepo{
		db:           db,
		queryBuilder: NewArticleQueryBuilder(),
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var a entity.Article
	err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Content, &a.Status,
		&a.SubmittedAt, &a.ApprovedAt, &a.RejectedAt, &a.PublishedAt,
		&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns one page of articles matching filter.
func (repo *ArticleRepo) List(ctx context.Context, filter repository.ArticleFilter, q repository.ListQuery) ([]*entity.Article, error) {
	defer observe("list_articles", time.Now())

	w := repo.queryBuilder.build(filter)
	limit, args := w.page(q.Limit, q.Offset)
	query := fmt.Sprintf(`
SELECT %s
FROM articles
%s
%s
%s`, articleColumns, w.clause(), orderBy(q.Sort, repository.ArticleSortFields), limit)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	articles := make([]*entity.Article, 0, q.Limit)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// Count returns the number of articles matching filter.
func (repo *ArticleRepo) Count(ctx context.Context, filter repository.ArticleFilter) (int64, error) {
	defer observe("count_articles", time.Now())

	clause, args := repo.queryBuilder.BuildWhereClause(filter)
	query := `SELECT COUNT(*) FROM articles ` + clause

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	a, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return a, nil
}

// GetPublished filters on status in SQL so that unpublished rows are never loaded.
func (repo *ArticleRepo) GetPublished(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE id = $1 AND status = $2 AND deleted_at IS NULL
LIMIT 1`
	a, err := scanArticle(repo.db.QueryRowContext(ctx, query, id, string(entity.StatusPublished)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetPublished: %w", err)
	}
	return a, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (user_id, title, content, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		article.UserID, article.Title, article.Content, string(article.Status),
		article.CreatedAt, article.UpdatedAt,
	).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles
SET title = $1, content = $2, updated_at = $3
WHERE id = $4 AND deleted_at IS NULL`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Content, article.UpdatedAt, article.ID)
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

// SaveTransition writes the status and timestamps only while the row still has
// status from. Zero affected rows means another request moved it first.
func (repo *ArticleRepo) SaveTransition(ctx context.Context, article *entity.Article, from entity.ArticleStatus) error {
	defer observe("save_transition", time.Now())

	const query = `
UPDATE articles
SET status = $1, submitted_at = $2, approved_at = $3, rejected_at = $4, published_at = $5, updated_at = $6
WHERE id = $7 AND status = $8 AND deleted_at IS NULL`
	res, err := repo.db.ExecContext(ctx, query,
		string(article.Status), article.SubmittedAt, article.ApprovedAt, article.RejectedAt,
		article.PublishedAt, article.UpdatedAt, article.ID, string(from))
	if err != nil {
		return fmt.Errorf("SaveTransition: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("SaveTransition: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("SaveTransition: %w", entity.ErrConflict)
	}
	return nil
}

func (repo *ArticleRepo) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	const query = `UPDATE articles SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	if _, err := repo.db.ExecContext(ctx, query, at, id); err != nil {
		return fmt.Errorf("SoftDelete: %w", err)
	}
	return nil
}

// CountByStatus returns live article counts keyed by status.
func (repo *ArticleRepo) CountByStatus(ctx context.Context) (map[entity.ArticleStatus]int64, error) {
	const query = `
SELECT status, COUNT(*)
FROM articles
WHERE deleted_at IS NULL
GROUP BY status`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("CountByStatus: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[entity.ArticleStatus]int64, len(entity.AllStatuses))
	for rows.Next() {
		var status entity.ArticleStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("CountByStatus: Scan: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
