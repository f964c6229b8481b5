package pages

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"textpager/flow"
)

// pageCache keeps most recently used formatted pages. Pages leaving the
// cache are disposed.
type pageCache struct {
	lru *simplelru.LRU[int, *flow.Page]
}

func newPageCache(capacity int) *pageCache {
	lru, err := simplelru.NewLRU(max(capacity, 1), func(_ int, p *flow.Page) {
		p.Dispose()
	})
	if err != nil {
		// this should never happen
		panic(fmt.Sprintf("unable to create page cache: %v", err))
	}
	return &pageCache{lru: lru}
}

func (pc *pageCache) get(index int) (*flow.Page, bool) {
	return pc.lru.Get(index)
}

// peek returns page without touching recency.
func (pc *pageCache) peek(index int) (*flow.Page, bool) {
	return pc.lru.Peek(index)
}

// put stores page, replacing (and disposing) different page kept for the
// same index.
func (pc *pageCache) put(index int, page *flow.Page) {
	// Add does not call eviction callback for updated keys
	if old, ok := pc.lru.Peek(index); ok && old != page {
		old.Dispose()
	}
	pc.lru.Add(index, page)
}

func (pc *pageCache) remove(index int) {
	pc.lru.Remove(index)
}

// removeFrom drops every page with index at or after first.
func (pc *pageCache) removeFrom(first int) {
	if first <= 0 {
		pc.lru.Purge()
		return
	}
	for _, index := range pc.lru.Keys() {
		if index >= first {
			pc.lru.Remove(index)
		}
	}
}

func (pc *pageCache) len() int {
	return pc.lru.Len()
}
