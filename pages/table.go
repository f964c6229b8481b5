// Package pages keeps chain of page break records produced by pagination
// together with cache of formatted pages, and decides which pages document
// edits invalidate.
package pages

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"textpager/engine"
	"textpager/flow"
)

// Observer is notified about page chain changes.
type Observer interface {
	// OnPagesChanged reports count pages starting at start have to be
	// redrawn or formatted again.
	OnPagesChanged(start, count int)
	// OnPaginationProgress reports added new pages starting at page.
	OnPaginationProgress(page, added int)
	// OnPaginationCompleted reports the whole document has been paginated.
	OnPaginationCompleted()
}

// Entry describes formatted page i: record page i+1 resumes from, nil when
// page i is the last one, and what page layout depends on.
type Entry struct {
	Break    *flow.BreakRecord
	Segments []flow.Segment
	// DependentMax is -1 when unset.
	DependentMax int
}

// valid reports whether entry survives change starting at start.
func (e *Entry) valid(start int) bool {
	if e.DependentMax >= start {
		return false
	}
	for _, s := range e.Segments {
		if s.End > start {
			return false
		}
	}
	return true
}

// Table is break record chain. It owns records and cached pages it holds.
type Table struct {
	eng      engine.Engine
	log      *zap.Logger
	observer Observer

	entries  []Entry
	pages    *pageCache
	disposed bool
}

// New creates empty table keeping up to cacheSize formatted pages.
func New(eng engine.Engine, cacheSize int, observer Observer, log *zap.Logger) *Table {
	return &Table{
		eng:      eng,
		log:      log.Named("pages"),
		observer: observer,
		pages:    newPageCache(cacheSize),
	}
}

// Count returns number of known pages.
func (t *Table) Count() int {
	return len(t.entries)
}

// IsClean reports whether last known page ends the document.
func (t *Table) IsClean() bool {
	n := len(t.entries)
	return n > 0 && t.entries[n-1].Break == nil
}

// Entry returns entry of page n.
func (t *Table) Entry(n int) Entry {
	return t.entries[n]
}

// checkPage panics unless page n is known or next to be formatted.
func (t *Table) checkPage(n int) {
	if n < 0 || n > len(t.entries) {
		panic(fmt.Sprintf("page %d out of range [0,%d]", n, len(t.entries)))
	}
}

// GetPageBreakRecord returns record page n starts from, nil for the first
// page.
func (t *Table) GetPageBreakRecord(n int) *flow.BreakRecord {
	t.checkPage(n)
	if n == 0 {
		return nil
	}
	return t.entries[n-1].Break
}

// HasPageBreakRecord reports whether page n can be formatted: it is the
// first page or previous page did not end the document.
func (t *Table) HasPageBreakRecord(n int) bool {
	t.checkPage(n)
	return n == 0 || t.entries[n-1].Break != nil
}

// GetCachedPage returns formatted page n if it is still cached.
func (t *Table) GetCachedPage(n int) (*flow.Page, bool) {
	return t.pages.get(n)
}

// CachedPages returns number of pages kept in cache.
func (t *Table) CachedPages() int {
	return t.pages.len()
}

// UpdateEntry records result of formatting page n. Table takes ownership of
// br and page. Page n may be appended or replace existing one, when its
// break record changes pages after it are dropped.
func (t *Table) UpdateEntry(n int, page *flow.Page, br *flow.BreakRecord, dependentMax int, segments []flow.Segment) {
	t.checkPage(n)
	wasClean := t.IsClean()
	entry := Entry{Break: br, Segments: segments, DependentMax: dependentMax}

	if n == len(t.entries) {
		t.entries = append(t.entries, entry)
		if page != nil {
			t.pages.put(n, page)
		}
		t.observer.OnPaginationProgress(n, 1)
	} else {
		old := t.entries[n]
		t.entries[n] = entry
		if old.Break != br {
			t.dispose(old.Break)
			if dropped := t.truncate(n + 1); dropped > 0 {
				t.observer.OnPagesChanged(n+1, dropped)
			}
		}
		if page != nil {
			t.pages.put(n, page)
		} else {
			t.pages.remove(n)
		}
	}

	if !wasClean && t.IsClean() {
		t.log.Debug("Pagination completed", zap.Int("pages", len(t.entries)))
		t.observer.OnPaginationCompleted()
	}
}

// CachePage stores page n formatted again after eviction. Entry n stays as
// is, page has to be formatted from the same break record.
func (t *Table) CachePage(n int, page *flow.Page) {
	if n < 0 || n >= len(t.entries) {
		panic(fmt.Sprintf("page %d out of range [0,%d)", n, len(t.entries)))
	}
	t.pages.put(n, page)
}

// truncate drops entries starting at first and returns their number.
func (t *Table) truncate(first int) int {
	if first >= len(t.entries) {
		t.pages.removeFrom(first)
		return 0
	}
	dropped := len(t.entries) - first
	for _, e := range t.entries[first:] {
		t.dispose(e.Break)
	}
	clear(t.entries[first:])
	t.entries = t.entries[:first]
	t.pages.removeFrom(first)
	return dropped
}

func (t *Table) dispose(br *flow.BreakRecord) {
	if err := br.Dispose(t.eng); err != nil {
		t.log.Warn("Unable to release break record", zap.Error(err))
	}
}

// OnInvalidateLayout drops every page from the first one which depends on
// positions at or after start. Returns index of the first dropped page, or
// -1 when all pages stay.
func (t *Table) OnInvalidateLayout(start, end int) int {
	first := -1
	for i := range t.entries {
		if !t.entries[i].valid(start) {
			first = i
			break
		}
	}
	if first < 0 {
		return -1
	}
	dropped := t.truncate(first)
	t.log.Debug("Layout invalidated",
		zap.Int("start", start),
		zap.Int("end", end),
		zap.Int("first", first),
		zap.Int("dropped", dropped))
	t.observer.OnPagesChanged(first, dropped)
	return first
}

// OnInvalidateRender marks visuals of cached pages showing [start, end]
// for redraw. Break records stay.
func (t *Table) OnInvalidateRender(start, end int) {
	first, last := -1, -1
	for i := range t.entries {
		if !intersects(t.entries[i].Segments, start, end) {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
		if p, ok := t.pages.peek(i); ok {
			p.InvalidateRender(start, end)
		}
	}
	if first >= 0 {
		t.observer.OnPagesChanged(first, last-first+1)
	}
}

func intersects(segs []flow.Segment, start, end int) bool {
	for _, s := range segs {
		if s.Start <= end && start < s.End {
			return true
		}
	}
	return false
}

// InvalidateAll drops every page, page geometry changed.
func (t *Table) InvalidateAll() {
	if dropped := t.truncate(0); dropped > 0 {
		t.observer.OnPagesChanged(0, dropped)
	}
}

// Dispose releases all records and pages. Table must not be used
// afterwards.
func (t *Table) Dispose() (err error) {
	if t.disposed {
		return nil
	}
	t.disposed = true
	for _, e := range t.entries {
		multierr.AppendInto(&err, e.Break.Dispose(t.eng))
	}
	t.entries = nil
	t.pages.removeFrom(0)
	return err
}
