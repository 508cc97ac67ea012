package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/0x0BSoD/newsHub/internal/model"
)

type SourcePostgresStorage struct {
	db *sqlx.DB
}

func NewSourceStorage(db *sqlx.DB) *SourcePostgresStorage {
	return &SourcePostgresStorage{db: db}
}

// Sources returns all registered sources, newest first.
func (s *SourcePostgresStorage) Sources(ctx context.Context) ([]model.Source, error) {
	var sources []model.Source
	if err := s.db.SelectContext(ctx, &sources,
		`SELECT id, name, feed_url, created_at FROM sources ORDER BY created_at DESC`,
	); err != nil {
		return nil, err
	}
	return sources, nil
}

func (s *SourcePostgresStorage) Add(ctx context.Context, source model.Source) (model.Source, error) {
	source.ID = uuid.NewString()
	source.CreatedAt = time.Now().UTC()

	if _, err := s.db.NamedExecContext(ctx,
		`INSERT INTO sources (id, name, feed_url, created_at)
		 VALUES (:id, :name, :feed_url, :created_at)`,
		source,
	); err != nil {
		return model.Source{}, err
	}
	return source, nil
}

// Delete removes the source with the given id. Deleting an unknown id is a
// no-op, not an error.
func (s *SourcePostgresStorage) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sources WHERE id = $1`, id)
	return err
}
