// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLRUCache_IsDuplicate(t *testing.T) {
	t.Parallel()

	c := NewLRUCache(10, time.Minute)

	if c.IsDuplicate("event-1") {
		t.Error("first sighting reported as duplicate")
	}
	if !c.IsDuplicate("event-1") {
		t.Error("second sighting not reported as duplicate")
	}
	if !c.Contains("event-1") {
		t.Error("Contains should report recorded key")
	}
}

func TestLRUCache_Expiry(t *testing.T) {
	t.Parallel()

	c := NewLRUCache(10, 10*time.Millisecond)
	c.IsDuplicate("event-1")
	time.Sleep(20 * time.Millisecond)

	if c.IsDuplicate("event-1") {
		t.Error("expired key reported as duplicate")
	}
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := NewLRUCache(2, time.Minute)
	c.IsDuplicate("a")
	c.IsDuplicate("b")
	c.IsDuplicate("a") // a becomes most recent
	c.IsDuplicate("c") // evicts b

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if c.Contains("b") {
		t.Error("b should have been evicted")
	}
	if !c.Contains("a") || !c.Contains("c") {
		t.Error("a and c should remain")
	}
	if !c.Remove("a") || c.Remove("a") {
		t.Error("Remove should succeed once")
	}
}

func TestLRUCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewLRUCache(1000, time.Minute)
	var wg sync.WaitGroup
	var mu sync.Mutex
	firsts := 0

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if !c.IsDuplicate(fmt.Sprintf("k-%d", i)) {
					mu.Lock()
					firsts++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if firsts != 100 {
		t.Errorf("first sightings = %d, want 100", firsts)
	}
}
