// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/ingest"
	"github.com/tomtom215/marquee/internal/lexicon"
	"github.com/tomtom215/marquee/internal/logging"
)

// lexiconSource selects the configured lexicon source. A file path wins
// over a URL. nil means only a snapshot can serve the vocabulary.
func lexiconSource(cfg *config.LexiconConfig) lexicon.Source {
	switch {
	case cfg.Path != "":
		return lexicon.FileSource{Path: cfg.Path}
	case cfg.URL != "":
		return lexicon.NewHTTPSource(cfg.URL, cfg.HTTPTimeout)
	default:
		return nil
	}
}

// initLexicon builds the lexicon service and opens its snapshot store when
// one is configured. The returned cleanup closes the snapshot.
func initLexicon(cfg *config.LexiconConfig) (*lexicon.Service, func(), error) {
	opts := []lexicon.Option{
		lexicon.WithLogger(logging.WithComponent("lexicon")),
		lexicon.WithLoadTimeout(cfg.LoadTimeout),
	}
	cleanup := func() {}

	if cfg.SnapshotPath != "" {
		snap, err := lexicon.OpenSnapshot(cfg.SnapshotPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open lexicon snapshot: %w", err)
		}
		opts = append(opts, lexicon.WithSnapshot(snap))
		cleanup = func() {
			if err := snap.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing lexicon snapshot")
			}
		}
	}

	source := lexiconSource(cfg)
	if source == nil && cfg.SnapshotPath == "" {
		logging.Info().Msg("No lexicon source configured, vocabulary extraction unavailable")
	}

	return lexicon.NewService(source, opts...), cleanup, nil
}

// ingestComponents holds the item event pipeline.
type ingestComponents struct {
	transport *ingest.Transport
	server    *ingest.EmbeddedServer
	consumer  *ingest.Consumer
	publisher *ingest.Publisher
}

// initIngest builds the transport, consumer and publisher for item events.
// With NATS enabled and an embedded server configured, the server is
// started before the transport connects to it.
func initIngest(ctx context.Context, cfg *config.NATSConfig, handler *ingest.Handler) (*ingestComponents, error) {
	wmLogger := logging.NewWatermillAdapterWithLogger(logging.WithComponent("ingest"))
	routerCfg := ingest.RouterConfigFrom(cfg)
	c := &ingestComponents{}

	if !cfg.Enabled {
		c.transport = ingest.NewChannelTransport(0, wmLogger)
	} else {
		if cfg.EmbeddedServer {
			srvCfg, err := ingest.ServerConfigFrom(cfg)
			if err != nil {
				return nil, err
			}
			c.server = ingest.NewEmbeddedServer(srvCfg, logging.WithComponent("nats-server"))
			if err := c.server.Start(ctx); err != nil {
				return nil, fmt.Errorf("start embedded NATS server: %w", err)
			}
		}

		transport, err := ingest.NewNATSTransport(cfg, routerCfg, wmLogger)
		if err != nil {
			c.shutdownServer()
			return nil, err
		}
		c.transport = transport
	}

	c.consumer = ingest.NewConsumer(routerCfg, cfg.Topic, c.transport, handler, wmLogger)
	c.publisher = ingest.NewPublisher(
		c.transport.Publisher(),
		cfg.Topic,
		ingest.DefaultCircuitBreakerConfig(),
		logging.WithComponent("ingest-publisher"),
	)

	logging.Info().
		Str("transport", c.transport.Name()).
		Str("topic", cfg.Topic).
		Bool("embedded_server", c.server != nil).
		Msg("Item event pipeline initialized")
	return c, nil
}

// Close releases the transport and stops the embedded server.
func (c *ingestComponents) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.transport != nil {
		if err := c.transport.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close ingest transport: %w", err))
		}
	}
	c.shutdownServer()
	return errors.Join(errs...)
}

func (c *ingestComponents) shutdownServer() {
	if c.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), natsShutdownTimeout)
	defer cancel()
	c.server.Shutdown(ctx)
}
