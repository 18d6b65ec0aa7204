// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/indexer"
	"github.com/tomtom215/marquee/internal/ingest"
	"github.com/tomtom215/marquee/internal/keywords"
	"github.com/tomtom215/marquee/internal/lexicon"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/middleware"
	"github.com/tomtom215/marquee/internal/models"
)

// Version is reported by the health endpoint. Set at build time with
// -ldflags "-X github.com/tomtom215/marquee/internal/api.Version=...".
var Version = "dev"

// defaultCacheTTL applies when the server config leaves CacheTTL unset.
const defaultCacheTTL = 5 * time.Minute

// CatalogStore is the read access to the catalog. *database.DB satisfies it.
type CatalogStore interface {
	Ping(ctx context.Context) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	ListItems(ctx context.Context, filter database.ItemFilter) ([]models.Item, int, error)
	KeywordCounts(ctx context.Context, search string, limit int) ([]models.KeywordCount, error)
	ItemsByKeyword(ctx context.Context, keyword string, limit int) ([]models.Item, error)
}

// KeywordIndexer runs batch extraction and catalog statistics.
// *indexer.Indexer satisfies it.
type KeywordIndexer interface {
	ExtractAll(ctx context.Context) (models.RunResult, error)
	Stats(ctx context.Context) (models.KeywordStatsResponse, error)
	Running() bool
}

// LexiconService is the vocabulary administration surface.
// *lexicon.Service satisfies it.
type LexiconService interface {
	Load(ctx context.Context) error
	Status() lexicon.Status
	Autocomplete(prefix string, limit int) []keywords.VocabularyEntry
}

// ItemPublisher publishes catalog changes as ingest events.
// *ingest.Publisher satisfies it.
type ItemPublisher interface {
	PublishUpserts(ctx context.Context, items []models.Item) ([]string, error)
	PublishDelete(ctx context.Context, id int64) (string, error)
	BreakerState() string
}

var (
	_ CatalogStore   = (*database.DB)(nil)
	_ KeywordIndexer = (*indexer.Indexer)(nil)
	_ LexiconService = (*lexicon.Service)(nil)
	_ ItemPublisher  = (*ingest.Publisher)(nil)
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: health and performance
//   - handlers_keywords.go: keyword statistics and ad-hoc extraction
//   - handlers_items.go: catalog reads and item event publishing
//   - handlers_lexicon.go: vocabulary status, reload and autocomplete
type Handler struct {
	store     CatalogStore
	indexer   KeywordIndexer
	engine    *keywords.Engine
	lexicon   LexiconService
	publisher ItemPublisher
	config    *config.Config
	startTime time.Time
	cache     *cache.Cache
	perfMon   *middleware.PerformanceMonitor
}

// NewHandler creates the API handler. lex and pub may be nil: lexicon
// endpoints then report the service as unavailable and item writes are
// rejected.
func NewHandler(store CatalogStore, ix KeywordIndexer, engine *keywords.Engine, lex LexiconService, pub ItemPublisher, cfg *config.Config) *Handler {
	ttl := defaultCacheTTL
	if cfg != nil && cfg.Server.CacheTTL > 0 {
		ttl = cfg.Server.CacheTTL
	}

	return &Handler{
		store:     store,
		indexer:   ix,
		engine:    engine,
		lexicon:   lex,
		publisher: pub,
		config:    cfg,
		startTime: time.Now(),
		cache:     cache.New(ttl),
		perfMon:   middleware.NewPerformanceMonitor(1000, time.Second),
	}
}

// PerformanceMonitor returns the monitor the router installs as middleware.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// ClearCache invalidates all cached read responses. Called after a batch
// re-extraction so clients see fresh statistics.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Debug().Msg("API response cache cleared")
	}
}

// Close stops the response cache janitor.
func (h *Handler) Close() {
	if h.cache != nil {
		h.cache.Close()
	}
}
