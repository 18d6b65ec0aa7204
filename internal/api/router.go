// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/marquee/internal/middleware"
	"github.com/tomtom215/marquee/internal/models"
)

// Router wires handlers and middleware into a Chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. mw may be nil for the default middleware
// configuration.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error:    &models.APIError{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed"},
		})
	})

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(h.PerformanceMonitor().Middleware)
		r.Use(middleware.Compression)
		if limit := router.chiMiddleware.MaxBodyBytes(); limit > 0 {
			r.Use(chimiddleware.RequestSize(limit))
		}

		r.Get("/performance", h.Performance)

		r.Route("/keywords", func(r chi.Router) {
			r.Get("/stats", h.KeywordStats)
			r.Get("/all", h.AllKeywords)
			r.Get("/suggestions", h.KeywordSuggestions)
			r.Get("/categorized", h.CategorizedKeywords)
			r.Get("/trending-by-keyword", h.ItemsByKeyword)

			r.Post("/extract-all", h.ExtractAll)
			r.Post("/extract", h.Extract)
			r.Post("/aggregate", h.Aggregate)
			r.Post("/filter", h.Filter)
			r.Post("/categorize", h.Categorize)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", h.ListItems)
			r.Put("/", h.UpsertItems)
			r.Get("/{id}", h.GetItem)
			r.Delete("/{id}", h.DeleteItem)
		})

		r.Route("/lexicon", func(r chi.Router) {
			r.Get("/", h.LexiconStatus)
			r.Post("/load", h.LoadLexicon)
			r.Get("/autocomplete", h.LexiconAutocomplete)
		})
	})

	return r
}
