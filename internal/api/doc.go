// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP interface of the keyword service.

Routing uses Chi with middleware from the Chi ecosystem:

  - go-chi/cors for CORS preflight handling
  - go-chi/httprate for per-IP rate limiting
  - chi/middleware for real IP extraction, panic recovery and body limits

Endpoint groups:

  - /health and /metrics: liveness and Prometheus exposition
  - /api/v1/keywords: stored keyword statistics, ad-hoc extraction,
    aggregation, filtering and categorization, batch re-extraction
  - /api/v1/items: catalog reads, and writes published as ingest events
  - /api/v1/lexicon: vocabulary status, reload and autocomplete
  - /api/v1/performance: per-route latency percentiles

Routes:

	GET    /health                                liveness, database and lexicon state (503 when degraded)
	GET    /metrics                               Prometheus exposition
	GET    /api/v1/performance                    per-route latency percentiles
	GET    /api/v1/keywords/stats                 top keywords, catalog counts, categorized top keywords
	GET    /api/v1/keywords/all                   stored keywords with item counts (?search, ?limit)
	GET    /api/v1/keywords/suggestions           autocomplete over stored keywords (?q, ?limit)
	GET    /api/v1/keywords/categorized           stored keywords grouped by category
	GET    /api/v1/keywords/trending-by-keyword   items carrying a keyword (?keyword, ?limit)
	POST   /api/v1/keywords/extract-all           batch re-extraction of the catalog
	POST   /api/v1/keywords/extract               extract keywords from posted text
	POST   /api/v1/keywords/aggregate             aggregate keywords across posted texts
	POST   /api/v1/keywords/filter                filter posted items by keywords
	POST   /api/v1/keywords/categorize            group posted keywords by category
	GET    /api/v1/items                          list items (?media_type, ?platform, ?search, ?extracted, ?updated_since)
	PUT    /api/v1/items                          publish item upserts (202)
	GET    /api/v1/items/{id}                     one item with its keywords
	DELETE /api/v1/items/{id}                     publish an item deletion (202)
	GET    /api/v1/lexicon                        vocabulary status
	POST   /api/v1/lexicon/load                   reload the vocabulary from its source
	GET    /api/v1/lexicon/autocomplete           vocabulary prefix search (?prefix, ?limit)

Every JSON response uses the models.APIResponse envelope. Read endpoints
backed by the store are cached in a TTL cache that is cleared after a batch
re-extraction.

Item writes are asynchronous: PUT and DELETE on /api/v1/items publish
events and answer 202 Accepted with the message IDs. The ingest consumer
applies them and re-extracts keywords.
*/
package api
