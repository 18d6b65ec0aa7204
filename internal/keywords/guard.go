// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/metrics"
)

// finishExtraction must be deferred directly by every public Extract method.
// It converts a panic into an empty result, logs it, and records the
// extraction metrics.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func finishExtraction(logger zerolog.Logger, strategy Strategy, start time.Time, out *[]ExtractedKeyword) {
	outcome := metrics.OutcomeSuccess

	if r := recover(); r != nil {
		logger.Error().
			Str("strategy", string(strategy)).
			Interface("panic", r).
			Msg("keyword extraction failed, returning empty result")
		*out = []ExtractedKeyword{}
		outcome = metrics.OutcomePanic
	}

	if *out == nil {
		*out = []ExtractedKeyword{}
	}
	if len(*out) == 0 && outcome == metrics.OutcomeSuccess {
		outcome = metrics.OutcomeEmpty
	}

	metrics.RecordExtraction(string(strategy), outcome, len(*out), time.Since(start))
}
