package storage

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/0x0BSoD/newsHub/internal/model"
)

type ArticlePostgresStorage struct {
	db *sqlx.DB
}

func NewArticleStorage(db *sqlx.DB) *ArticlePostgresStorage {
	return &ArticlePostgresStorage{db: db}
}

// Store inserts the article unless one with the same link already exists.
// The conflict is resolved inside the database, so two ingestion runs racing
// on the same link both succeed and exactly one row ends up stored. Stored
// articles are never updated on conflict.
func (s *ArticlePostgresStorage) Store(ctx context.Context, article model.Article) (bool, error) {
	res, err := s.db.NamedExecContext(ctx,
		`INSERT INTO articles (source_id, title, link, summary, source, published_at)
		 VALUES (:source_id, :title, :link, :summary, :source, :published_at)
		 ON CONFLICT (link) DO NOTHING`,
		article,
	)
	if err != nil {
		return false, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return inserted == 1, nil
}

// Latest returns up to limit articles ordered by publication time, newest
// first.
func (s *ArticlePostgresStorage) Latest(ctx context.Context, limit int) ([]model.Article, error) {
	var articles []model.Article
	if err := s.db.SelectContext(ctx, &articles,
		`SELECT id, source_id, title, link, summary, source, published_at, created_at
		 FROM articles ORDER BY published_at DESC LIMIT $1`,
		limit,
	); err != nil {
		return nil, err
	}
	return articles, nil
}

// DeleteOlderThan removes articles published strictly before cutoff and
// returns the number of rows removed.
func (s *ArticlePostgresStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE published_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
