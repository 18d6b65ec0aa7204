// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"strings"
	"sync"
	"unicode/utf8"
)

// AhoCorasick finds every occurrence of many patterns in one pass over the
// text, in O(n + m + z) time (text length, total pattern length, matches).
//
// The lexicon builds one automaton over all vocabulary names so a synopsis
// is scanned once instead of once per entry. The categorizer builds one small
// automaton per category to test substring triggers.
//
//	ac := NewAhoCorasick()
//	ac.AddPattern("time travel", entry)
//	ac.Build()
//	matches := ac.Search("a story about time travel")
//	// matches[0] == Match{Pattern: "time travel", Data: entry, Position: 14, End: 25}
type AhoCorasick struct {
	mu            sync.RWMutex
	root          *acNode
	patterns      []Pattern
	built         bool
	caseSensitive bool
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // indices of patterns ending at this node
	depth    int
}

// Pattern is a search pattern with associated data.
type Pattern struct {
	Text string
	Data any
}

// Match is one pattern occurrence. Position and End are byte offsets into the
// searched text (after case folding for case-insensitive automata), End
// exclusive.
type Match struct {
	Pattern  string
	Data     any
	Position int
	End      int
}

// NewAhoCorasick creates a case-insensitive automaton.
func NewAhoCorasick() *AhoCorasick {
	return &AhoCorasick{root: newACNode(0)}
}

// NewAhoCorasickCaseSensitive creates a case-sensitive automaton.
func NewAhoCorasickCaseSensitive() *AhoCorasick {
	return &AhoCorasick{root: newACNode(0), caseSensitive: true}
}

func newACNode(depth int) *acNode {
	return &acNode{
		children: make(map[rune]*acNode),
		depth:    depth,
	}
}

// AddPattern adds a pattern. Empty patterns are ignored. Adding after Build
// marks the automaton for rebuild.
func (ac *AhoCorasick) AddPattern(pattern string, data any) {
	if pattern == "" {
		return
	}

	ac.mu.Lock()
	defer ac.mu.Unlock()

	if !ac.caseSensitive {
		pattern = strings.ToLower(pattern)
	}
	ac.built = false
	ac.patterns = append(ac.patterns, Pattern{Text: pattern, Data: data})
}

// AddPatterns adds several patterns sharing the same data.
func (ac *AhoCorasick) AddPatterns(patterns []string, data any) {
	for _, p := range patterns {
		ac.AddPattern(p, data)
	}
}

// Build constructs the trie and failure links. It must be called after the
// last AddPattern and before searching.
func (ac *AhoCorasick) Build() {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	if ac.built {
		return
	}

	ac.root = newACNode(0)
	for i, p := range ac.patterns {
		ac.insertPattern(i, p.Text)
	}
	ac.buildFailureLinks()
	ac.built = true
}

func (ac *AhoCorasick) insertPattern(index int, pattern string) {
	node := ac.root
	for _, ch := range pattern {
		next := node.children[ch]
		if next == nil {
			next = newACNode(node.depth + 1)
			node.children[ch] = next
		}
		node = next
	}
	node.output = append(node.output, index)
}

// buildFailureLinks wires failure links breadth first.
func (ac *AhoCorasick) buildFailureLinks() {
	queue := make([]*acNode, 0, len(ac.root.children))
	for _, child := range ac.root.children {
		child.failure = ac.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}

			if fail == nil {
				child.failure = ac.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// Search returns every match, including overlapping ones, ordered by end
// position.
func (ac *AhoCorasick) Search(text string) []Match {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	if !ac.built || len(ac.patterns) == 0 {
		return nil
	}

	if !ac.caseSensitive {
		text = strings.ToLower(text)
	}

	var matches []Match
	node := ac.root

	for i, ch := range text {
		node = ac.step(node, ch)
		if node == ac.root {
			continue
		}

		end := i + utf8.RuneLen(ch)
		for _, idx := range node.output {
			p := ac.patterns[idx]
			matches = append(matches, Match{
				Pattern:  p.Text,
				Data:     p.Data,
				Position: end - len(p.Text),
				End:      end,
			})
		}
	}

	return matches
}

// step advances the automaton by one rune.
func (ac *AhoCorasick) step(node *acNode, ch rune) *acNode {
	for node != nil && node.children[ch] == nil {
		node = node.failure
	}
	if node == nil {
		return ac.root
	}
	return node.children[ch]
}

// Contains reports whether any pattern occurs in the text.
func (ac *AhoCorasick) Contains(text string) bool {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	if !ac.built || len(ac.patterns) == 0 {
		return false
	}

	if !ac.caseSensitive {
		text = strings.ToLower(text)
	}

	node := ac.root
	for _, ch := range text {
		node = ac.step(node, ch)
		if len(node.output) > 0 {
			return true
		}
	}
	return false
}

// PatternCount returns the number of patterns added.
func (ac *AhoCorasick) PatternCount() int {
	ac.mu.RLock()
	defer ac.mu.RUnlock()
	return len(ac.patterns)
}

// Clear removes all patterns and resets the automaton.
func (ac *AhoCorasick) Clear() {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	ac.root = newACNode(0)
	ac.patterns = nil
	ac.built = false
}

// PatternMatcher is a built, read-only automaton over a fixed pattern list.
type PatternMatcher struct {
	ac *AhoCorasick
}

// NewPatternMatcherFromSlice builds a matcher where every pattern carries data.
func NewPatternMatcherFromSlice(patterns []string, data any) *PatternMatcher {
	ac := NewAhoCorasick()
	ac.AddPatterns(patterns, data)
	ac.Build()
	return &PatternMatcher{ac: ac}
}

// Match returns all matches in the text.
func (pm *PatternMatcher) Match(text string) []Match {
	return pm.ac.Search(text)
}

// Contains reports whether any pattern occurs in the text.
func (pm *PatternMatcher) Contains(text string) bool {
	return pm.ac.Contains(text)
}
