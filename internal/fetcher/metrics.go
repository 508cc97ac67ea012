package fetcher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingestRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newshub_ingest_runs_total",
		Help: "Ingestion runs by result",
	}, []string{"status"})

	ingestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "newshub_ingest_duration_seconds",
		Help:    "Duration of a full ingestion run",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	articlesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newshub_articles_processed_total",
		Help: "Feed items considered during ingestion",
	})

	articlesInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newshub_articles_inserted_total",
		Help: "New articles persisted during ingestion",
	})

	articlesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newshub_articles_deleted_total",
		Help: "Articles removed by the retention sweep",
	})
)

func observeRun(stats Stats, elapsed time.Duration) {
	ingestRuns.WithLabelValues("success").Inc()
	ingestDuration.Observe(elapsed.Seconds())
	articlesProcessed.Add(float64(stats.Processed))
	articlesInserted.Add(float64(stats.Inserted))
	articlesDeleted.Add(float64(stats.Deleted))
}
