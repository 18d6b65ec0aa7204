// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package middleware provides net/http middleware for the API router.
//
// All middleware has the func(http.Handler) http.Handler shape used by chi:
//
//   - RequestID: X-Request-ID propagation and logging context
//   - PrometheusMetrics: request count, latency and in-flight gauge per route
//   - PerformanceMonitor.Middleware: sliding-window latency percentiles
//   - Compression: gzip for clients sending Accept-Encoding: gzip
//
// Metrics and the performance monitor label requests by chi route pattern
// ("/api/v1/items/{id}"), never by raw path.
package middleware
