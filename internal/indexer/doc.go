// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package indexer extracts keywords for catalog items and stores them.
//
// ExtractAll walks every item with a synopsis in ID order, extracting on a
// bounded worker pool and pacing writes with a token bucket
// (golang.org/x/time/rate). Only one run executes at a time; a second
// caller gets ErrRunInProgress. A failed write is counted and the run
// continues; a canceled context stops the run early and reports the
// partial result.
//
// ExtractItem handles single items arriving through ingest, and Stats
// summarizes the stored keywords for the keyword statistics endpoint.
package indexer
