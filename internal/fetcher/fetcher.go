package fetcher

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/0x0BSoD/newsHub/internal/logger"
	"github.com/0x0BSoD/newsHub/internal/model"
	"github.com/0x0BSoD/newsHub/internal/source"
)

type ArticleStorage interface {
	Store(ctx context.Context, article model.Article) (bool, error)
}

type SourceProvider interface {
	Sources(ctx context.Context) ([]model.Source, error)
}

type Source interface {
	ID() string
	Name() string
	Fetch(ctx context.Context) ([]model.Item, error)
}

type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int64, error)
}

// Stats aggregates the outcome of one ingestion run.
type Stats struct {
	Processed int64 `json:"processed"`
	Inserted  int64 `json:"inserted"`
	Deleted   int64 `json:"deleted"`
}

const (
	fetchRetries       = 2
	retryBaseDelay     = 500 * time.Millisecond
	defaultRunDeadline = 2 * time.Minute
)

type Fetcher struct {
	articles ArticleStorage
	sources  SourceProvider
	sweeper  Sweeper
	client   *source.Client

	fetchInterval time.Duration
	runDeadline   time.Duration
}

func New(
	articles ArticleStorage,
	sources SourceProvider,
	sweeper Sweeper,
	client *source.Client,
	fetchInterval time.Duration,
	runDeadline time.Duration,
) *Fetcher {
	if runDeadline <= 0 {
		runDeadline = defaultRunDeadline
	}
	return &Fetcher{
		articles:      articles,
		sources:       sources,
		sweeper:       sweeper,
		client:        client,
		fetchInterval: fetchInterval,
		runDeadline:   runDeadline,
	}
}

// Start runs IngestAll every fetchInterval until the context is cancelled.
// With a non-positive interval ingestion stays request-driven and Start
// returns immediately.
func (f *Fetcher) Start(ctx context.Context) error {
	if f.fetchInterval <= 0 {
		return nil
	}

	ticker := time.NewTicker(f.fetchInterval)
	defer ticker.Stop()

	if _, err := f.IngestAll(ctx); err != nil {
		logger.Errorf("scheduled ingestion failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := f.IngestAll(ctx); err != nil {
				logger.Errorf("scheduled ingestion failed: %v", err)
			}
		}
	}
}

// IngestAll fetches every registered source, persists new articles and prunes
// expired ones. A failure scoped to a single source is logged and does not
// affect its siblings; only failing to load the source list aborts the run.
func (f *Fetcher) IngestAll(ctx context.Context) (Stats, error) {
	started := time.Now()

	ctx, cancel := context.WithTimeout(ctx, f.runDeadline)
	defer cancel()

	sources, err := f.sources.Sources(ctx)
	if err != nil {
		ingestRuns.WithLabelValues("error").Inc()
		return Stats{}, err
	}
	if len(sources) == 0 {
		ingestRuns.WithLabelValues("success").Inc()
		return Stats{}, nil
	}

	var processed, inserted atomic.Int64

	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)

		rssSource := source.NewRSSSourceFromModel(src, f.client)
		go func(src Source) {
			defer wg.Done()

			items, err := f.fetchWithRetry(ctx, src)
			if err != nil {
				logger.Errorf("failed to fetch items for source %s: %v", src.ID(), err)
				return
			}
			f.processItems(ctx, src, items, &processed, &inserted)
		}(rssSource)
	}
	wg.Wait()

	stats := Stats{
		Processed: processed.Load(),
		Inserted:  inserted.Load(),
	}

	// Retention is best effort: a failed sweep must not fail the run.
	deleted, err := f.sweeper.Sweep(ctx, time.Now().UTC())
	if err != nil {
		logger.Errorf("failed to sweep expired articles: %v", err)
	}
	stats.Deleted = deleted

	observeRun(stats, time.Since(started))
	logger.Infof("ingestion finished: processed=%d inserted=%d deleted=%d",
		stats.Processed, stats.Inserted, stats.Deleted)
	return stats, nil
}

// fetchWithRetry retries fetches that failed with a temporary error, e.g. a
// timeout or an upstream 5xx.
func (f *Fetcher) fetchWithRetry(ctx context.Context, src Source) ([]model.Item, error) {
	var lastErr error
	for attempt := 0; attempt <= fetchRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBaseDelay << (attempt - 1)):
			}
		}

		items, err := src.Fetch(ctx)
		if err == nil {
			return items, nil
		}
		lastErr = err
		if !source.IsTemporary(err) {
			break
		}
	}
	return nil, lastErr
}

func (f *Fetcher) processItems(ctx context.Context, src Source, items []model.Item, processed, inserted *atomic.Int64) {
	for _, item := range items {
		processed.Add(1)

		publishedAt := item.Date
		if !item.DateValid || publishedAt.IsZero() {
			publishedAt = time.Now().UTC()
		}

		ok, err := f.articles.Store(ctx, model.Article{
			SourceID:    src.ID(),
			Title:       item.Title,
			Link:        item.Link,
			Summary:     item.Summary,
			Source:      src.Name(),
			PublishedAt: publishedAt,
		})
		if err != nil {
			logger.Errorf("failed to store article %q from source %s: %v", item.Link, src.ID(), err)
			continue
		}
		if ok {
			inserted.Add(1)
		}
	}
}
