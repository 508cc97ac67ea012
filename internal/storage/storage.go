// Package storage implements postgres persistence for feed sources and articles.
package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS sources (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	feed_url   TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS articles (
	id           BIGSERIAL PRIMARY KEY,
	source_id    TEXT NOT NULL,
	title        TEXT NOT NULL,
	link         TEXT NOT NULL UNIQUE,
	summary      TEXT NOT NULL DEFAULT '',
	source       TEXT NOT NULL DEFAULT '',
	published_at TIMESTAMPTZ NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles (published_at DESC);
`

// Bootstrap creates the tables when they do not exist yet.
func Bootstrap(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
