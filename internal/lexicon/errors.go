// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package lexicon

import "errors"

var (
	// ErrNoSource is returned by Load when neither a source nor a snapshot
	// is configured.
	ErrNoSource = errors.New("lexicon: no source configured")

	// ErrEmptyLexicon is returned when a source yields no usable records.
	ErrEmptyLexicon = errors.New("lexicon: source contained no usable records")

	// ErrNoSnapshot is returned by Snapshot.Load before the first Save.
	ErrNoSnapshot = errors.New("lexicon: no snapshot stored")
)
