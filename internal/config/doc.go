// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config provides centralized configuration management for Marquee.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file (CONFIG_PATH, ./config.yaml or /etc/marquee/config.yaml), then
environment variables. Only environment variables listed in the mapping
table are read.

# Sections

  - server: HTTP listener, timeouts, response cache TTL
  - logging: zerolog level, format, caller
  - database: DuckDB catalog path and tuning
  - keywords: extraction strategy, limits, batch re-extraction
  - lexicon: vocabulary source (file or URL) and snapshot store
  - nats: NATS JetStream transport for item events (optional)
  - security: rate limiting, CORS, request body limit
  - supervisor: suture failure and shutdown tuning

# Environment Variables

Keyword extraction:
  - EXTRACTION_ENABLED: global extraction switch (default: true)
  - KEYWORD_STRATEGY: rake, vocabulary, auto (default: auto)
  - KEYWORD_MAX_PHRASES: phrases kept per text (default: 20)
  - KEYWORD_MAX_VOCABULARY_MATCHES: vocabulary matches per text (default: 30)
  - KEYWORD_TOP_N: keywords kept after aggregation (default: 50)
  - KEYWORD_BATCH_RATE: items per second during extract-all (default: 50)
  - KEYWORD_REEXTRACT_INTERVAL: periodic re-extraction, 0 disables (default: 24h)

Lexicon:
  - LEXICON_PATH: NDJSON file, .gz supported
  - LEXICON_URL: NDJSON download URL
  - LEXICON_SNAPSHOT_PATH: BadgerDB directory for the last good lexicon

Server and storage:
  - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT, ENVIRONMENT
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal("Failed to load config:", err)
	}
	engine, err := keywords.NewEngine(cfg.Keywords.EngineConfig(), lexiconSvc, logger)
*/
package config
