// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// DefaultTopKeywords is the size of Stats.TopKeywords.
const DefaultTopKeywords = 50

// Minimum frequencies applied after merging. Phrase extraction produces
// one-off fragments, so the RAKE path requires a keyword to recur.
const (
	RAKEMinFrequency       = 2
	VocabularyMinFrequency = 1
)

// AggregateOptions controls merging and ranking.
type AggregateOptions struct {
	// MinFrequency drops merged keywords seen fewer times. Values below 1
	// are treated as 1.
	MinFrequency int

	// TopN bounds Stats.TopKeywords. Defaults to DefaultTopKeywords.
	TopN int

	// Workers bounds parallel per-document extraction. Defaults to
	// GOMAXPROCS.
	Workers int
}

func (o AggregateOptions) withDefaults() AggregateOptions {
	if o.MinFrequency < 1 {
		o.MinFrequency = 1
	}
	if o.TopN <= 0 {
		o.TopN = DefaultTopKeywords
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Aggregate runs ex over every document and merges the results into corpus
// statistics. Documents are extracted in parallel but merged in document
// order, so totals and tie-breaks do not depend on scheduling.
//
// If ctx is cancelled the remaining documents are skipped and the
// statistics cover only the documents extracted so far.
func Aggregate(ctx context.Context, ex Extractor, docs []Document, opts AggregateOptions) Stats {
	opts = opts.withDefaults()
	if ex == nil || len(docs) == 0 {
		return emptyStats()
	}

	results := make([][]ExtractedKeyword, len(docs))

	var g errgroup.Group
	g.SetLimit(opts.Workers)

	for i := range docs {
		if ctx.Err() != nil {
			break
		}
		if docs[i].Text == "" {
			continue
		}
		idx := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results[idx] = ex.Extract(docs[idx].Text)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return Merge(results, opts)
}

// Merge combines pre-extracted keyword lists. Keywords are keyed by their
// lowercase, whitespace-collapsed form; score and frequency are summed and
// the first non-zero vocabulary ID is kept.
func Merge(lists [][]ExtractedKeyword, opts AggregateOptions) Stats {
	opts = opts.withDefaults()

	var order []string
	merged := make(map[string]*ExtractedKeyword)

	for _, list := range lists {
		for _, kw := range list {
			key := NormalizeKeyword(kw.Keyword)
			if key == "" {
				continue
			}
			existing, ok := merged[key]
			if !ok {
				merged[key] = &ExtractedKeyword{
					Keyword:   key,
					Score:     kw.Score,
					Frequency: kw.Frequency,
					ID:        kw.ID,
				}
				order = append(order, key)
				continue
			}
			existing.Score += kw.Score
			existing.Frequency += kw.Frequency
			if existing.ID == 0 {
				existing.ID = kw.ID
			}
		}
	}

	all := make([]ExtractedKeyword, 0, len(order))
	for _, key := range order {
		if kw := merged[key]; kw.Frequency >= opts.MinFrequency {
			all = append(all, *kw)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})

	top := all
	if len(top) > opts.TopN {
		top = top[:opts.TopN]
	}

	return Stats{
		TotalKeywords: len(all),
		TopKeywords:   top,
		AllKeywords:   all,
	}
}
