// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus metrics for the keyword service.

All collectors are registered on the default registry through promauto and
exposed at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Extraction:
  - marquee_keyword_extractions_total{strategy, outcome}
  - marquee_keyword_extraction_duration_seconds{strategy}
  - marquee_keywords_extracted_total{strategy}

Lexicon:
  - marquee_lexicon_loads_total{source, outcome}
  - marquee_lexicon_entries
  - marquee_lexicon_skipped_records_total

Lexicon source circuit breaker:
  - marquee_circuit_breaker_state{name}
  - marquee_circuit_breaker_requests_total{name, result}
  - marquee_circuit_breaker_transitions_total{name, from, to}

Catalog extraction runs:
  - marquee_extraction_runs_total{outcome}
  - marquee_extraction_run_items_total{result}
  - marquee_extraction_run_duration_seconds
  - marquee_extraction_last_success_timestamp_seconds

Ingest, API and caches:
  - marquee_ingest_messages_total{type, outcome}
  - marquee_api_requests_total{method, endpoint, status_code}
  - marquee_api_request_duration_seconds{method, endpoint}
  - marquee_api_active_requests
  - marquee_cache_hits_total{cache}, marquee_cache_misses_total{cache}

# Usage

Callers use the Record helpers rather than the collectors directly:

	start := time.Now()
	out := extractor.Extract(text)
	metrics.RecordExtraction("rake", metrics.OutcomeSuccess, len(out), time.Since(start))

All helpers are safe for concurrent use.
*/
package metrics
