// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/models"
)

// CatalogExtractor runs a catalog-wide keyword extraction.
// Satisfied by *indexer.Indexer.
type CatalogExtractor interface {
	ExtractAll(ctx context.Context) (models.RunResult, error)
}

// ReextractServiceConfig holds configuration for the re-extraction service.
type ReextractServiceConfig struct {
	// RunOnStartup triggers a run when the service starts.
	RunOnStartup bool

	// Interval is how often to re-extract the whole catalog.
	Interval time.Duration

	// RunTimeout bounds a single run. Default: 1h
	RunTimeout time.Duration
}

// ReextractService periodically re-extracts keywords for the catalog so
// stored keywords follow lexicon and configuration changes.
type ReextractService struct {
	extractor CatalogExtractor
	config    ReextractServiceConfig
	logger    zerolog.Logger
	name      string
}

// NewReextractService creates a new re-extraction service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReextractService(extractor CatalogExtractor, cfg ReextractServiceConfig, logger zerolog.Logger) *ReextractService {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = time.Hour
	}
	return &ReextractService{
		extractor: extractor,
		config:    cfg,
		logger:    logger.With().Str("service", "reextract").Logger(),
		name:      "keyword-reextract",
	}
}

// Serve implements suture.Service.
func (s *ReextractService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("run_on_startup", s.config.RunOnStartup).
		Dur("interval", s.config.Interval).
		Msg("re-extraction service starting")

	if s.config.RunOnStartup {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("re-extraction service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("scheduled re-extraction triggered")
			s.run(ctx)
		}
	}
}

// run performs one extraction run. Failures are logged and retried on
// the next tick; they never restart the service.
func (s *ReextractService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	result, err := s.extractor.ExtractAll(runCtx)
	if err != nil {
		if ctx.Err() == nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn().Err(err).Msg("scheduled re-extraction failed")
		}
		return
	}
	s.logger.Info().
		Int("processed", result.Processed).
		Int("updated", result.Updated).
		Int("errors", result.Errors).
		Msg("scheduled re-extraction complete")
}

// String returns the service name for logging.
func (s *ReextractService) String() string {
	return s.name
}
