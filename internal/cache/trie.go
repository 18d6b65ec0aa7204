// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"sort"
	"strings"
	"sync"
)

// TrieNode is a node in the Trie.
type TrieNode struct {
	children map[rune]*TrieNode
	isEnd    bool
	value    string // original value, preserved case
	data     any
	count    int // times this value was inserted, used for ranking
}

// Trie is a thread-safe prefix tree used for lexicon autocomplete.
// Insert, Search and prefix lookup are O(m) in the key length.
type Trie struct {
	mu             sync.RWMutex
	root           *TrieNode
	size           int
	caseSensitive  bool
	maxSuggestions int
}

// TrieResult is one autocomplete result.
type TrieResult struct {
	Value string
	Data  any
	Count int
}

// NewTrie creates a case-insensitive Trie returning at most 10 suggestions.
func NewTrie() *Trie {
	return &Trie{
		root:           newTrieNode(),
		maxSuggestions: 10,
	}
}

// NewTrieWithOptions creates a Trie with custom settings.
func NewTrieWithOptions(caseSensitive bool, maxSuggestions int) *Trie {
	if maxSuggestions <= 0 {
		maxSuggestions = 10
	}
	return &Trie{
		root:           newTrieNode(),
		caseSensitive:  caseSensitive,
		maxSuggestions: maxSuggestions,
	}
}

func newTrieNode() *TrieNode {
	return &TrieNode{children: make(map[rune]*TrieNode)}
}

func (t *Trie) normalizeKey(key string) string {
	if t.caseSensitive {
		return key
	}
	return strings.ToLower(key)
}

// Insert adds value. Returns true if it was not present before.
func (t *Trie) Insert(value string) bool {
	return t.InsertWithData(value, nil)
}

// InsertWithData adds value with associated data. Re-inserting increments
// the count and replaces the data.
func (t *Trie) InsertWithData(value string, data any) bool {
	if value == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range t.normalizeKey(value) {
		next := node.children[ch]
		if next == nil {
			next = newTrieNode()
			node.children[ch] = next
		}
		node = next
	}

	isNew := !node.isEnd
	node.isEnd = true
	node.value = value
	node.data = data
	node.count++
	if isNew {
		t.size++
	}
	return isNew
}

// Search returns the data stored for an exact value.
func (t *Trie) Search(value string) (any, bool) {
	if value == "" {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(t.normalizeKey(value))
	if node == nil || !node.isEnd {
		return nil, false
	}
	return node.data, true
}

func (t *Trie) find(key string) *TrieNode {
	node := t.root
	for _, ch := range key {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

// Autocomplete returns values starting with prefix, limited to the
// configured maximum.
func (t *Trie) Autocomplete(prefix string) []TrieResult {
	return t.AutocompleteWithLimit(prefix, t.maxSuggestions)
}

// AutocompleteWithLimit returns up to limit values starting with prefix,
// most inserted first, then alphabetically.
func (t *Trie) AutocompleteWithLimit(prefix string, limit int) []TrieResult {
	if limit <= 0 {
		limit = t.maxSuggestions
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(t.normalizeKey(prefix))
	if node == nil {
		return nil
	}

	var results []TrieResult
	collectWords(node, &results)

	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Value < results[j].Value
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func collectWords(node *TrieNode, results *[]TrieResult) {
	if node.isEnd {
		*results = append(*results, TrieResult{
			Value: node.value,
			Data:  node.data,
			Count: node.count,
		})
	}
	for _, child := range node.children {
		collectWords(child, results)
	}
}

// Size returns the number of distinct values.
func (t *Trie) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Clear removes all values.
func (t *Trie) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = newTrieNode()
	t.size = 0
}
