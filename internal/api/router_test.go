// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/middleware"
	"github.com/tomtom215/marquee/internal/models"
)

func newTestRouter(t *testing.T, store *fakeStore, mwCfg *ChiMiddlewareConfig) (http.Handler, *fakePublisher) {
	t.Helper()
	h, _, _, pub := newTestHandler(t, store)
	return NewRouter(h, NewChiMiddleware(mwCfg)).SetupChi(), pub
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "192.0.2.10:51000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouterRoutes(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, sampleStore(), nil)

	tests := []struct {
		method string
		target string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/v1/keywords/stats", "", http.StatusOK},
		{http.MethodGet, "/api/v1/keywords/all", "", http.StatusOK},
		{http.MethodGet, "/api/v1/keywords/suggestions?q=he", "", http.StatusOK},
		{http.MethodGet, "/api/v1/keywords/categorized", "", http.StatusOK},
		{http.MethodGet, "/api/v1/keywords/trending-by-keyword?keyword=heist", "", http.StatusOK},
		{http.MethodPost, "/api/v1/keywords/extract-all", "", http.StatusOK},
		{http.MethodPost, "/api/v1/keywords/extract", `{"text":"a bank heist crew"}`, http.StatusOK},
		{http.MethodPost, "/api/v1/keywords/aggregate", `{"documents":[]}`, http.StatusOK},
		{http.MethodPost, "/api/v1/keywords/filter", `{"items":[]}`, http.StatusOK},
		{http.MethodPost, "/api/v1/keywords/categorize", `{"keywords":["heist"]}`, http.StatusOK},
		{http.MethodGet, "/api/v1/items", "", http.StatusOK},
		{http.MethodGet, "/api/v1/items/7", "", http.StatusOK},
		{http.MethodGet, "/api/v1/items/8", "", http.StatusNotFound},
		{http.MethodGet, "/api/v1/items/abc", "", http.StatusBadRequest},
		{http.MethodPut, "/api/v1/items", `{"items":[{"id":1,"title":"Heat","media_type":"movie"}]}`, http.StatusAccepted},
		{http.MethodDelete, "/api/v1/items/7", "", http.StatusAccepted},
		{http.MethodDelete, "/api/v1/items/-1", "", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/lexicon", "", http.StatusOK},
		{http.MethodPost, "/api/v1/lexicon/load", "", http.StatusOK},
		{http.MethodGet, "/api/v1/lexicon/autocomplete?prefix=ti", "", http.StatusOK},
		{http.MethodGet, "/api/v1/performance", "", http.StatusOK},
		{http.MethodGet, "/api/v1/unknown", "", http.StatusNotFound},
		{http.MethodPost, "/health", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		w := serve(router, tt.method, tt.target, tt.body)
		if w.Code != tt.want {
			t.Errorf("%s %s = %d, want %d: %s", tt.method, tt.target, w.Code, tt.want, w.Body.String())
		}
	}
}

func TestRouterErrorsUseEnvelope(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, sampleStore(), nil)
	for _, target := range []string{"/api/v1/unknown", "/api/v1/items/abc"} {
		w := serve(router, http.MethodGet, target, "")
		env := decodeEnvelope(t, w)
		if env.Status != "error" || env.Error == nil {
			t.Errorf("GET %s envelope = %+v, want error envelope", target, env)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("GET %s Content-Type = %q, want application/json", target, ct)
		}
	}
}

func TestRouterRequestID(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, sampleStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get(middleware.RequestIDHeader); got != "trace-abc" {
		t.Errorf("X-Request-ID = %q, want trace-abc", got)
	}

	w = serve(router, http.MethodGet, "/health", "")
	if got := w.Header().Get(middleware.RequestIDHeader); got == "" {
		t.Error("X-Request-ID not generated")
	}
}

func TestRouterRateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	router, _ := newTestRouter(t, sampleStore(), cfg)

	for i := 0; i < 2; i++ {
		if w := serve(router, http.MethodGet, "/api/v1/keywords/all", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}
	w := serve(router, http.MethodGet, "/api/v1/keywords/all", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Error == nil || env.Error.Code != "TOO_MANY_REQUESTS" {
		t.Errorf("error = %+v, want TOO_MANY_REQUESTS", env.Error)
	}

	if w := serve(router, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200 outside the limited group", w.Code)
	}
}

func TestRouterBodyLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.MaxBodyBytes = 64
	router, pub := newTestRouter(t, sampleStore(), cfg)

	body := `{"items":[{"id":1,"title":"` + strings.Repeat("x", 200) + `","media_type":"movie"}]}`
	w := serve(router, http.MethodPut, "/api/v1/items", body)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
	if len(pub.upserts) != 0 {
		t.Errorf("published %d upserts, want 0", len(pub.upserts))
	}
}

func TestRouterCompression(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, sampleStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/keywords/all", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", got)
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("read gzip body: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Status != "success" {
		t.Errorf("Status = %q, want success", env.Status)
	}
}

func TestRouterListItemsFilters(t *testing.T) {
	t.Parallel()

	store := sampleStore()
	router, _ := newTestRouter(t, store, nil)

	w := serve(router, http.MethodGet,
		"/api/v1/items?media_type=movie,tv&extracted=false&updated_since=2026-01-02T03:04:05Z&limit=25&offset=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	store.filterMu.Lock()
	filter := store.lastFilter
	store.filterMu.Unlock()

	if len(filter.MediaTypes) != 2 {
		t.Errorf("MediaTypes = %v, want movie and tv", filter.MediaTypes)
	}
	if filter.Extracted == nil || *filter.Extracted {
		t.Errorf("Extracted = %v, want false", filter.Extracted)
	}
	if filter.UpdatedSince == nil || !filter.UpdatedSince.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("UpdatedSince = %v, want 2026-01-02T03:04:05Z", filter.UpdatedSince)
	}
	if filter.Limit != 25 || filter.Offset != 10 {
		t.Errorf("Limit/Offset = %d/%d, want 25/10", filter.Limit, filter.Offset)
	}
}

func TestRouterListItemsValidation(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, sampleStore(), nil)
	for _, q := range []string{"media_type=book", "extracted=maybe", "updated_since=yesterday", "offset=-1", "limit=5000"} {
		if w := serve(router, http.MethodGet, "/api/v1/items?"+q, ""); w.Code != http.StatusBadRequest {
			t.Errorf("GET /api/v1/items?%s = %d, want 400", q, w.Code)
		}
	}
}

func TestRouterPerformanceStats(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, sampleStore(), nil)
	serve(router, http.MethodGet, "/api/v1/items/7", "")
	serve(router, http.MethodGet, "/api/v1/items/8", "")

	w := serve(router, http.MethodGet, "/api/v1/performance", "")
	var perf PerformanceResponse
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &perf); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, ep := range perf.Endpoints {
		if strings.Contains(ep.Endpoint, "/api/v1/items/{id}") {
			found = true
			if ep.RequestCount != 2 {
				t.Errorf("RequestCount = %d, want 2", ep.RequestCount)
			}
		}
	}
	if !found {
		t.Errorf("endpoints = %+v, want /api/v1/items/{id}", perf.Endpoints)
	}
}

func TestChiMiddlewareConfigFrom(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFrom(&config.SecurityConfig{
		RateLimitReqs:     50,
		RateLimitWindow:   30 * time.Second,
		RateLimitDisabled: true,
		CORSOrigins:       []string{"https://app.example.com"},
		MaxBodyBytes:      1024,
	})
	if cfg.RateLimitRequests != 50 || cfg.RateLimitWindow != 30*time.Second || !cfg.RateLimitDisabled {
		t.Errorf("rate limit = %d/%s/%v, want 50/30s/true", cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitDisabled)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.MaxBodyBytes != 1024 {
		t.Errorf("cors/body = %v/%d", cfg.CORSAllowedOrigins, cfg.MaxBodyBytes)
	}

	def := ChiMiddlewareConfigFrom(&config.SecurityConfig{})
	if def.RateLimitRequests != 100 || def.MaxBodyBytes != 4<<20 {
		t.Errorf("defaults = %d/%d, want 100/%d", def.RateLimitRequests, def.MaxBodyBytes, 4<<20)
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte(`{"a":1}`))
	b := generateETag([]byte(`{"a":2}`))
	if a == b {
		t.Errorf("generateETag() collided: %s", a)
	}
	if !strings.HasPrefix(a, `W/"`) {
		t.Errorf("generateETag() = %s, want weak ETag", a)
	}
}

func TestRespondErrorEnvelope(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondError(w, http.StatusConflict, ErrCodeConflict, "busy", nil)

	var resp models.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "error" || resp.Error.Code != ErrCodeConflict || resp.Data != nil {
		t.Errorf("response = %+v, want conflict error without data", resp)
	}
}
