// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines data structures shared by the store, the indexer, the
ingest pipeline and the HTTP API.

Key Components:

  - Item: catalog entry (movie or show) with its synopsis
  - ItemKeyword: stored per-item keyword row
  - KeywordCount, KeywordStatsResponse: catalog-wide keyword statistics
  - RunResult: outcome of a batch re-extraction
  - APIResponse, APIError, Metadata: standard response envelope

Item and envelope fields use snake_case JSON. Keyword statistics payloads
keep the camelCase names their clients already consume.
*/
package models
