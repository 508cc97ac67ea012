// Package sweeper prunes persisted articles that aged past the retention horizon.
package sweeper

import (
	"context"
	"time"
)

const DefaultHorizon = 7 * 24 * time.Hour

type ArticleRemover interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Sweeper struct {
	articles ArticleRemover
	horizon  time.Duration
}

func New(articles ArticleRemover, horizon time.Duration) *Sweeper {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return &Sweeper{
		articles: articles,
		horizon:  horizon,
	}
}

// Sweep deletes every article published strictly before now minus the
// horizon. Running it twice in a row with no new data deletes nothing the
// second time.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (int64, error) {
	return s.articles.DeleteOlderThan(ctx, now.Add(-s.horizon))
}
