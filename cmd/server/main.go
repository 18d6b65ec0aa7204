// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/indexer"
	"github.com/tomtom215/marquee/internal/ingest"
	"github.com/tomtom215/marquee/internal/keywords"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

const (
	natsShutdownTimeout = 10 * time.Second

	lexiconMinBackoff = 5 * time.Second
	lexiconMaxBackoff = 5 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Marquee")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows all origins in production; set CORS_ORIGINS to restrict access")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	lex, closeLexicon, err := initLexicon(&cfg.Lexicon)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize lexicon")
	}
	defer closeLexicon()

	engineCfg := cfg.Keywords.EngineConfig()
	engine, err := keywords.NewEngine(&engineCfg, lex, logging.WithComponent("keywords"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create keyword engine")
	}

	ix := indexer.New(db, engine, indexer.Config{
		Workers: cfg.Keywords.BatchWorkers,
		Rate:    cfg.Keywords.BatchRate,
	}, logging.WithComponent("indexer"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	itemHandler := ingest.NewHandler(db, ix, logging.WithComponent("ingest-handler"))
	pipeline, err := initIngest(ctx, &cfg.NATS, itemHandler)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize item event pipeline")
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing item event pipeline")
		}
	}()

	handler := api.NewHandler(db, ix, engine, lex, pipeline.publisher, cfg)
	defer handler.Close()

	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)))
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	tree := buildTree(cfg, lex, ix, pipeline, server)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// buildTree assembles the supervisor tree:
//
//	data:      lexicon loader, periodic re-extraction
//	messaging: embedded NATS server, ingest router
//	api:       HTTP server
func buildTree(cfg *config.Config, lex services.LexiconLoader, ix services.CatalogExtractor, pipeline *ingestComponents, server *http.Server) *supervisor.SupervisorTree {
	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfigFrom(&cfg.Supervisor))

	if cfg.Lexicon.LoadOnStartup && (cfg.Lexicon.HasSource() || cfg.Lexicon.SnapshotPath != "") {
		tree.AddDataService(services.NewLexiconLoaderService(lex, lexiconMinBackoff, lexiconMaxBackoff, logging.WithComponent("supervisor")))
		logging.Info().Msg("Lexicon loader added to supervisor tree")
	}

	if cfg.Keywords.ReextractInterval > 0 {
		tree.AddDataService(services.NewReextractService(ix, services.ReextractServiceConfig{
			Interval: cfg.Keywords.ReextractInterval,
		}, logging.WithComponent("supervisor")))
		logging.Info().Dur("interval", cfg.Keywords.ReextractInterval).Msg("Keyword re-extraction added to supervisor tree")
	}

	if pipeline.server != nil {
		tree.AddMessagingService(services.NewNATSServerService(pipeline.server, natsShutdownTimeout))
		logging.Info().Msg("Embedded NATS server added to supervisor tree")
	}
	tree.AddMessagingService(services.NewRouterService(func() (services.MessageRouter, error) {
		return pipeline.consumer.NewSession()
	}))

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	return tree
}
