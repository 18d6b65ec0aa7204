// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package indexer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/keywords"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

var (
	// ErrRunInProgress is returned by ExtractAll while another run is active.
	ErrRunInProgress = errors.New("extraction run already in progress")

	// ErrExtractionDisabled is returned when keyword extraction is switched off.
	ErrExtractionDisabled = errors.New("keyword extraction is disabled")
)

// Store is the catalog access the indexer needs. *database.DB satisfies it.
type Store interface {
	ItemsWithOverview(ctx context.Context, afterID int64, limit int) ([]models.Item, error)
	ReplaceItemKeywords(ctx context.Context, itemID int64, kws []keywords.ExtractedKeyword) error
	KeywordCounts(ctx context.Context, search string, limit int) ([]models.KeywordCount, error)
	CatalogCounts(ctx context.Context) (totalItems, itemsWithKeywords int, err error)
}

// Config controls batch extraction.
type Config struct {
	// Workers is the number of concurrent extractors. Zero uses GOMAXPROCS.
	Workers int

	// Rate caps item writes per second. Zero or less is unlimited.
	Rate float64

	// PageSize is the number of items read from the store per query.
	PageSize int
}

const defaultPageSize = 200

// Indexer runs keyword extraction over the catalog.
type Indexer struct {
	store  Store
	engine *keywords.Engine
	cfg    Config
	logger zerolog.Logger

	running atomic.Bool

	mu      sync.RWMutex
	lastRun *models.RunResult
	lastAt  time.Time
}

// New creates an indexer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(store Store, engine *keywords.Engine, cfg Config, logger zerolog.Logger) *Indexer {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	return &Indexer{
		store:  store,
		engine: engine,
		cfg:    cfg,
		logger: logger.With().Str("component", "indexer").Logger(),
	}
}

// Running reports whether a batch run is active.
func (ix *Indexer) Running() bool {
	return ix.running.Load()
}

// LastRun returns the result of the most recent finished run and when it
// finished. ok is false before the first run.
func (ix *Indexer) LastRun() (result models.RunResult, finishedAt time.Time, ok bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.lastRun == nil {
		return models.RunResult{}, time.Time{}, false
	}
	return *ix.lastRun, ix.lastAt, true
}

// ExtractAll re-extracts and stores keywords for every item with a
// synopsis. The returned result is valid even when err is non-nil.
func (ix *Indexer) ExtractAll(ctx context.Context) (models.RunResult, error) {
	if !ix.engine.Enabled() {
		return models.RunResult{}, ErrExtractionDisabled
	}
	if !ix.running.CompareAndSwap(false, true) {
		return models.RunResult{}, ErrRunInProgress
	}
	defer ix.running.Store(false)

	start := time.Now()
	ix.logger.Info().
		Int("workers", ix.cfg.Workers).
		Float64("rate", ix.cfg.Rate).
		Msg("Starting keyword extraction run")

	var processed, updated, failed, skipped atomic.Int64
	limiter := ix.limiter()
	extractor := ix.engine.Extractor()

	items := make(chan models.Item, ix.cfg.Workers)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(items)
		var afterID int64
		for {
			page, err := ix.store.ItemsWithOverview(gctx, afterID, ix.cfg.PageSize)
			if err != nil {
				return fmt.Errorf("read items after %d: %w", afterID, err)
			}
			for i := range page {
				select {
				case items <- page[i]:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			if len(page) < ix.cfg.PageSize {
				return nil
			}
			afterID = page[len(page)-1].ID
		}
	})

	for w := 0; w < ix.cfg.Workers; w++ {
		g.Go(func() error {
			for item := range items {
				if err := limiter.Wait(gctx); err != nil {
					return err
				}
				processed.Add(1)

				kws := ix.engine.ExtractWith(extractor, item.Overview)
				err := ix.store.ReplaceItemKeywords(gctx, item.ID, kws)
				switch {
				case err == nil:
					updated.Add(1)
				case errors.Is(err, database.ErrItemNotFound):
					skipped.Add(1)
				case gctx.Err() != nil:
					return gctx.Err()
				default:
					failed.Add(1)
					ix.logger.Warn().Err(err).Int64("item_id", item.ID).Msg("Failed to store item keywords")
				}
			}
			return nil
		})
	}

	err := g.Wait()
	result := models.RunResult{
		Processed:  int(processed.Load()),
		Updated:    int(updated.Load()),
		Errors:     int(failed.Load()),
		Skipped:    int(skipped.Load()),
		Canceled:   ctx.Err() != nil,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if result.Canceled {
		err = ctx.Err()
	}

	ix.mu.Lock()
	ix.lastRun = &result
	ix.lastAt = time.Now()
	ix.mu.Unlock()

	metrics.RecordExtractionRun(time.Since(start), result.Processed, result.Updated, result.Errors, err)

	event := ix.logger.Info()
	if err != nil {
		event = ix.logger.Warn().Err(err)
	}
	event.
		Int("processed", result.Processed).
		Int("updated", result.Updated).
		Int("errors", result.Errors).
		Int("skipped", result.Skipped).
		Bool("canceled", result.Canceled).
		Int64("duration_ms", result.DurationMS).
		Msg("Keyword extraction run finished")

	return result, err
}

func (ix *Indexer) limiter() *rate.Limiter {
	if ix.cfg.Rate <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := ix.cfg.Workers
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(ix.cfg.Rate), burst)
}

// ExtractItem extracts keywords from one item's synopsis and stores them,
// replacing any previous set. An item without a usable synopsis has its
// keywords cleared.
func (ix *Indexer) ExtractItem(ctx context.Context, item *models.Item) ([]keywords.ExtractedKeyword, error) {
	if !ix.engine.Enabled() {
		return nil, ErrExtractionDisabled
	}

	kws := ix.engine.Extract(item.Overview)
	if err := ix.store.ReplaceItemKeywords(ctx, item.ID, kws); err != nil {
		return nil, fmt.Errorf("store keywords of item %d: %w", item.ID, err)
	}
	return kws, nil
}
