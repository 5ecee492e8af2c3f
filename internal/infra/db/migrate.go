package db

import (
	"context"
	"database/sql"
)

// tables are created in dependency order.
var tables = []string{
	`
CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    name          VARCHAR(255) NOT NULL,
    email         VARCHAR(255) NOT NULL,
    password_hash TEXT NOT NULL,
    role          VARCHAR(20) NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS articles (
    id           BIGSERIAL PRIMARY KEY,
    user_id      BIGINT NOT NULL REFERENCES users(id),
    title        VARCHAR(255) NOT NULL,
    content      TEXT NOT NULL,
    status       VARCHAR(20) NOT NULL DEFAULT 'draft'
                 CHECK (status IN ('draft', 'pending', 'approved', 'rejected', 'published')),
    submitted_at TIMESTAMPTZ,
    approved_at  TIMESTAMPTZ,
    rejected_at  TIMESTAMPTZ,
    published_at TIMESTAMPTZ,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    deleted_at   TIMESTAMPTZ
)`,
	`
CREATE TABLE IF NOT EXISTS comments (
    id         BIGSERIAL PRIMARY KEY,
    article_id BIGINT NOT NULL REFERENCES articles(id),
    user_id    BIGINT NOT NULL REFERENCES users(id),
    parent_id  BIGINT REFERENCES comments(id),
    content    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    deleted_at TIMESTAMPTZ
)`,
	`
CREATE TABLE IF NOT EXISTS reactions (
    id          BIGSERIAL PRIMARY KEY,
    target_type VARCHAR(20) NOT NULL CHECK (target_type IN ('article', 'comment')),
    target_id   BIGINT NOT NULL,
    user_id     BIGINT NOT NULL REFERENCES users(id),
    kind        VARCHAR(10) NOT NULL CHECK (kind IN ('like', 'dislike')),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (target_type, target_id, user_id, kind)
)`,
	`
CREATE TABLE IF NOT EXISTS activity_logs (
    id          BIGSERIAL PRIMARY KEY,
    user_id     BIGINT REFERENCES users(id),
    target_type VARCHAR(20) NOT NULL,
    target_id   BIGINT NOT NULL,
    operation   VARCHAR(20) NOT NULL,
    payload     JSONB NOT NULL DEFAULT '{}',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        VARCHAR(64) PRIMARY KEY,
    user_id    BIGINT NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL
)`,
}

var indexes = []string{
	// メールアドレスは大文字小文字を区別せず一意
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (lower(email))`,
	// 一覧・モデレーションキュー用(論理削除済みは除外)
	`CREATE INDEX IF NOT EXISTS idx_articles_user_id ON articles (user_id) WHERE deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_articles_status_created_at ON articles (status, created_at DESC) WHERE deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles (published_at DESC) WHERE status = 'published' AND deleted_at IS NULL`,
	// コメント・返信のバッチ取得用
	`CREATE INDEX IF NOT EXISTS idx_comments_article_id ON comments (article_id) WHERE parent_id IS NULL AND deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_comments_parent_id ON comments (parent_id, created_at) WHERE deleted_at IS NULL`,
	// リアクション集計用
	`CREATE INDEX IF NOT EXISTS idx_reactions_target ON reactions (target_type, target_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_logs_target ON activity_logs (target_type, target_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_revoked_tokens_expires_at ON revoked_tokens (expires_at)`,
}

// MigrateUp creates the schema. Every statement is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	for _, stmt := range tables {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	// pg_trgm拡張を有効化(ILIKE検索高速化用)
	// エラーを無視(既に存在する場合やスーパーユーザー権限がない場合)
	_, _ = db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_articles_title_gin ON articles USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_content_gin ON articles USING gin(content gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		// pg_trgm拡張がない場合はエラーになるため無視
		_, _ = db.ExecContext(ctx, idx)
	}

	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown drops every table in reverse order of creation.
// Use with caution: this will delete all data.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS revoked_tokens`,
		`DROP TABLE IF EXISTS activity_logs`,
		`DROP TABLE IF EXISTS reactions`,
		`DROP TABLE IF EXISTS comments`,
		`DROP TABLE IF EXISTS articles`,
		`DROP TABLE IF EXISTS users`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
