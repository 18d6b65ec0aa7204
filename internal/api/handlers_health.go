// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/middleware"
	"github.com/tomtom215/marquee/internal/models"
)

// Health reports database connectivity, extraction settings and lexicon
// state. A missing database marks the service degraded and answers 503 so
// orchestrators stop routing to it.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dbConnected := h.store != nil && h.store.Ping(r.Context()) == nil

	health := models.HealthStatus{
		Status:            "healthy",
		Version:           Version,
		DatabaseConnected: dbConnected,
		Uptime:            time.Since(h.startTime).Seconds(),
		Timestamp:         time.Now().UTC(),
	}
	if h.engine != nil {
		health.ExtractionEnabled = h.engine.Enabled()
		health.Strategy = string(h.engine.Config().Strategy)
	}
	if h.lexicon != nil {
		st := h.lexicon.Status()
		health.LexiconLoaded = st.Loaded
		health.LexiconEntries = st.Entries
	}

	status := http.StatusOK
	if !dbConnected {
		health.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	respondSuccess(w, status, health, start)
}

// PerformanceResponse is the payload of GET /api/v1/performance.
type PerformanceResponse struct {
	Endpoints    []middleware.EndpointStats `json:"endpoints"`
	CacheHitRate float64                    `json:"cache_hit_rate"`
}

// Performance returns per-route latency percentiles for recent requests.
func (h *Handler) Performance(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()

	resp := PerformanceResponse{Endpoints: []middleware.EndpointStats{}}
	if h.perfMon != nil {
		resp.Endpoints = h.perfMon.GetStats()
	}
	if h.cache != nil {
		resp.CacheHitRate = h.cache.HitRate()
	}
	respondSuccess(w, http.StatusOK, resp, start)
}
