// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// LexiconLoader loads the vocabulary lexicon.
// Satisfied by *lexicon.Service.
type LexiconLoader interface {
	Load(ctx context.Context) error
	IsLoaded() bool
}

// LexiconLoaderService loads the lexicon at startup and keeps retrying
// with exponential backoff until a load succeeds. Once the lexicon is
// loaded the service exits and is not restarted.
type LexiconLoaderService struct {
	loader     LexiconLoader
	minBackoff time.Duration
	maxBackoff time.Duration
	logger     zerolog.Logger
	name       string
}

// NewLexiconLoaderService creates the loader service. Zero backoffs use
// 5s and 5m.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLexiconLoaderService(loader LexiconLoader, minBackoff, maxBackoff time.Duration, logger zerolog.Logger) *LexiconLoaderService {
	if minBackoff <= 0 {
		minBackoff = 5 * time.Second
	}
	if maxBackoff < minBackoff {
		maxBackoff = 5 * time.Minute
		if maxBackoff < minBackoff {
			maxBackoff = minBackoff
		}
	}
	return &LexiconLoaderService{
		loader:     loader,
		minBackoff: minBackoff,
		maxBackoff: maxBackoff,
		logger:     logger.With().Str("service", "lexicon-loader").Logger(),
		name:       "lexicon-loader",
	}
}

// Serve implements suture.Service. It returns suture.ErrDoNotRestart once
// the lexicon is loaded.
func (s *LexiconLoaderService) Serve(ctx context.Context) error {
	backoff := s.minBackoff
	for attempt := 1; ; attempt++ {
		if s.loader.IsLoaded() {
			return suture.ErrDoNotRestart
		}

		err := s.loader.Load(ctx)
		if err == nil {
			s.logger.Info().Int("attempt", attempt).Msg("lexicon loaded")
			return suture.ErrDoNotRestart
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.logger.Warn().Err(err).
			Int("attempt", attempt).
			Dur("retry_in", backoff).
			Msg("lexicon load failed, extraction falls back to phrases")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > s.maxBackoff {
			backoff = s.maxBackoff
		}
	}
}

// String returns the service name for logging.
func (s *LexiconLoaderService) String() string {
	return s.name
}
