// Package server exposes the HTTP API of the aggregator.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/0x0BSoD/newsHub/internal/fetcher"
	"github.com/0x0BSoD/newsHub/internal/logger"
	"github.com/0x0BSoD/newsHub/internal/model"
)

const defaultNewsLimit = 100

type FeedRegistry interface {
	List(ctx context.Context) ([]model.Source, error)
	Add(ctx context.Context, url string) (model.Source, error)
	Remove(ctx context.Context, id string) error
}

type Ingester interface {
	IngestAll(ctx context.Context) (fetcher.Stats, error)
}

type NewsProvider interface {
	Latest(ctx context.Context, limit int) ([]model.Article, error)
}

type Server struct {
	router    *mux.Router
	registry  FeedRegistry
	ingester  Ingester
	news      NewsProvider
	newsLimit int
}

func New(registry FeedRegistry, ingester Ingester, news NewsProvider, authToken string, newsLimit int) *Server {
	if newsLimit <= 0 {
		newsLimit = defaultNewsLimit
	}

	s := &Server{
		router:    mux.NewRouter(),
		registry:  registry,
		ingester:  ingester,
		news:      news,
		newsLimit: newsLimit,
	}

	s.router.Use(logMiddleware)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := s.router.NewRoute().Subrouter()
	api.Use(authMiddleware(authToken))
	api.HandleFunc("/feeds", s.handleListFeeds).Methods(http.MethodGet)
	api.HandleFunc("/feeds", s.handleAddFeed).Methods(http.MethodPost)
	api.HandleFunc("/feeds/{id}", s.handleDeleteFeed).Methods(http.MethodDelete)
	api.HandleFunc("/news", s.handleNews).Methods(http.MethodGet)
	api.HandleFunc("/fetch-news", s.handleFetchNews).Methods(http.MethodPost)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves the API on addr until the context is cancelled, then shuts the
// server down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	crashed := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			crashed <- err
		}
	}()

	logger.Infof("listening on %s", addr)

	select {
	case err := <-crashed:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
