// Copyright (c) 2025, 0x0BSoD. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/0x0BSoD/newsHub/internal/config"
	"github.com/0x0BSoD/newsHub/internal/fetcher"
	"github.com/0x0BSoD/newsHub/internal/logger"
	"github.com/0x0BSoD/newsHub/internal/registry"
	"github.com/0x0BSoD/newsHub/internal/server"
	"github.com/0x0BSoD/newsHub/internal/source"
	"github.com/0x0BSoD/newsHub/internal/storage"
	"github.com/0x0BSoD/newsHub/internal/sweeper"
)

func main() {
	cfg := config.Get()

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		logger.Errorf("failed to init logger: %v", err)
		return
	}
	defer logger.Sync()

	db, err := sqlx.Connect("postgres", cfg.DatabaseDSN)
	if err != nil {
		logger.Errorf("failed to connect to db: %v", err)
		return
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := storage.Bootstrap(ctx, db); err != nil {
		logger.Errorf("failed to bootstrap db schema: %v", err)
		return
	}

	var (
		articleStorage = storage.NewArticleStorage(db)
		sourceStorage  = storage.NewSourceStorage(db)
		feedClient     = source.NewClient(cfg.FetchTimeout)
		retention      = sweeper.New(articleStorage, time.Duration(cfg.RetentionDays)*24*time.Hour)
		feedRegistry   = registry.New(sourceStorage, feedClient)
		ingester       = fetcher.New(
			articleStorage,
			sourceStorage,
			retention,
			feedClient,
			cfg.FetchInterval,
			cfg.IngestDeadline,
		)
	)

	go func(ctx context.Context) {
		if err := ingester.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorf("failed to run fetcher: %v", err)
		}
	}(ctx)

	srv := server.New(feedRegistry, ingester, articleStorage, cfg.AuthToken, cfg.NewsLimit)
	if err := srv.Run(ctx, cfg.ListenAddr); err != nil {
		logger.Errorf("failed to run http server: %v", err)
	}
}
