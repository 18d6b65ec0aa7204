// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee extracts keywords from movie and TV overviews, aggregates them
across the catalog, filters items by keyword and groups keywords into
People, Places, Themes, Actions and Other. Extraction runs either
statistically (RAKE phrases) or against a controlled vocabulary lexicon
such as the TMDB keyword export.

# Application Architecture

Long-running components run under a Suture v4 supervisor tree:

	RootSupervisor ("marquee")
	├── DataSupervisor ("data-layer")
	│   ├── Lexicon loader (retries with backoff until loaded)
	│   └── Keyword re-extraction (when KEYWORD_REEXTRACT_INTERVAL > 0)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── Embedded NATS server (NATS_ENABLED and NATS_EMBEDDED)
	│   └── Ingest router (item events -> DuckDB + extraction)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB catalog of items and stored keywords
 4. Lexicon: file or HTTP source with an optional Badger snapshot
 5. Keyword engine and batch indexer
 6. Item event pipeline: in-process channel or NATS JetStream
 7. HTTP Server: Chi router with middleware stack
 8. Supervisor Tree

# Item Events

Catalog writes arrive through PUT and DELETE on /api/v1/items. The API
publishes them as events and answers 202 Accepted; the ingest router
applies them to DuckDB and extracts keywords for upserted items. Events
that fail every retry land on the "<topic>.failed" topic.

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=3858
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Keywords
	KEYWORD_STRATEGY=auto        # rake, vocabulary, auto

	# Lexicon (one source)
	LEXICON_PATH=/data/keyword_ids.json.gz
	LEXICON_URL=https://example.org/keyword_ids.json.gz
	LEXICON_SNAPSHOT_PATH=/data/lexicon

	# NATS (optional)
	NATS_ENABLED=true
	NATS_EMBEDDED=true

# Graceful Shutdown

SIGINT and SIGTERM cancel the root context. The supervisor stops the API
layer, the ingest router and the data services, then main closes the
event transport, the lexicon snapshot and the database.
*/
package main
