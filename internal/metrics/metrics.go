// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by the counters below.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
	OutcomePanic   = "panic"

	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
)

var (
	// Extraction Metrics
	KeywordExtractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_keyword_extractions_total",
			Help: "Total number of per-text keyword extractions",
		},
		[]string{"strategy", "outcome"}, // outcome: success, empty, panic
	)

	KeywordExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_keyword_extraction_duration_seconds",
			Help:    "Duration of a single keyword extraction",
			Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05},
		},
		[]string{"strategy"},
	)

	KeywordsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_keywords_extracted_total",
			Help: "Total number of keywords returned by extractions",
		},
		[]string{"strategy"},
	)

	// Lexicon Metrics
	LexiconLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_lexicon_loads_total",
			Help: "Total number of lexicon load attempts",
		},
		[]string{"source", "outcome"},
	)

	LexiconEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_lexicon_entries",
			Help: "Number of vocabulary entries currently loaded",
		},
	)

	LexiconSkippedRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_lexicon_skipped_records_total",
			Help: "Total number of malformed lexicon records skipped during loads",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Batch Extraction Metrics
	ExtractionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_extraction_runs_total",
			Help: "Total number of catalog-wide extraction runs",
		},
		[]string{"outcome"},
	)

	ExtractionRunItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_extraction_run_items_total",
			Help: "Items handled by extraction runs",
		},
		[]string{"result"}, // processed, updated, error
	)

	ExtractionRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_extraction_run_duration_seconds",
			Help:    "Duration of catalog-wide extraction runs",
			Buckets: []float64{.1, .5, 1, 5, 10, 30, 60, 300, 900},
		},
	)

	ExtractionLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_extraction_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last completed extraction run",
		},
	)

	// Ingest Metrics
	IngestMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_ingest_messages_total",
			Help: "Total number of item events consumed",
		},
		[]string{"type", "outcome"}, // outcome: success, duplicate, invalid, error
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_api_active_requests",
			Help: "Number of API requests currently being handled",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)
)

// RecordExtraction records one per-text extraction.
func RecordExtraction(strategy, outcome string, keywords int, duration time.Duration) {
	KeywordExtractions.WithLabelValues(strategy, outcome).Inc()
	KeywordExtractionDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if keywords > 0 {
		KeywordsExtracted.WithLabelValues(strategy).Add(float64(keywords))
	}
}

// RecordLexiconLoad records a lexicon load attempt. entries is only applied
// to the gauge on success.
func RecordLexiconLoad(source string, entries, skipped int, err error) {
	if err != nil {
		LexiconLoads.WithLabelValues(source, OutcomeError).Inc()
		return
	}
	LexiconLoads.WithLabelValues(source, OutcomeSuccess).Inc()
	LexiconEntries.Set(float64(entries))
	if skipped > 0 {
		LexiconSkippedRecords.Add(float64(skipped))
	}
}

// RecordExtractionRun records a finished catalog-wide extraction run.
func RecordExtractionRun(duration time.Duration, processed, updated, failed int, err error) {
	ExtractionRunDuration.Observe(duration.Seconds())
	ExtractionRunItems.WithLabelValues("processed").Add(float64(processed))
	ExtractionRunItems.WithLabelValues("updated").Add(float64(updated))
	ExtractionRunItems.WithLabelValues("error").Add(float64(failed))

	if err != nil {
		ExtractionRuns.WithLabelValues(OutcomeError).Inc()
		return
	}
	ExtractionRuns.WithLabelValues(OutcomeSuccess).Inc()
	ExtractionLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordIngestMessage records a consumed item event.
func RecordIngestMessage(eventType, outcome string) {
	IngestMessages.WithLabelValues(eventType, outcome).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheHit records a hit on the named cache.
func RecordCacheHit(cache string) {
	CacheHits.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a miss on the named cache.
func RecordCacheMiss(cache string) {
	CacheMisses.WithLabelValues(cache).Inc()
}
