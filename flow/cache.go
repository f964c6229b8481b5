// Package flow is incremental layout core: it mirrors document structure
// with lazily built layout nodes, formats pages from break records, reuses
// results of nodes nothing has touched since the previous pass and tracks
// how far back each page depends on the document.
package flow

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"textpager/config"
	"textpager/dirty"
	"textpager/document"
	"textpager/engine"
	"textpager/handle"
	"textpager/margin"
)

// Stats counts format calls, reused ones are answered from the node cache.
type Stats struct {
	Formatted int
	Reused    int
}

// Cache is structural cache of a single document. It is not safe for
// concurrent use, all calls have to come from the goroutine owning the
// paginator.
type Cache struct {
	doc    *document.Document
	eng    engine.Engine
	layout config.LayoutConfig
	log    *zap.Logger
	tracer *margin.Tracer

	session     uuid.UUID
	unsubscribe func()
	dirty       dirty.List

	nodes handle.Table[*node]
	root  NodeID

	fmtStack []*FormatContext
	arrStack []ArrangeContext

	bg     BackgroundFormatInfo
	issued map[*BreakRecord]struct{}
	stats  Stats
	closed bool
}

// New creates cache for doc and subscribes to its changes.
func New(doc *document.Document, eng engine.Engine, layout config.LayoutConfig, log *zap.Logger) *Cache {
	session := uuid.Must(uuid.NewV7())
	log = log.Named("flow").With(zap.Stringer("session", session))
	c := &Cache{
		doc:     doc,
		eng:     eng,
		layout:  layout,
		log:     log,
		tracer:  margin.NewTracer(log),
		session: session,
		issued:  make(map[*BreakRecord]struct{}),
	}
	c.unsubscribe = doc.Subscribe(c.onChange)
	log.Debug("Structural cache created", zap.Int("length", doc.Len()))
	return c
}

func (c *Cache) onChange(ch document.Change) {
	r := dirty.Range{Start: ch.Offset, Added: ch.Added, Removed: ch.Removed, FromHighlight: ch.Highlight}
	c.dirty.Merge(r)
	c.log.Debug("Document changed", zap.Stringer("change", ch), zap.Int("dirty", c.dirty.Len()))
}

func (c *Cache) mustBeOpen() {
	if c.closed {
		panic("cache used after Close")
	}
}

// Session returns id all log lines of the cache are tagged with.
func (c *Cache) Session() uuid.UUID {
	return c.session
}

// Document returns document cache was built for.
func (c *Cache) Document() *document.Document {
	return c.doc
}

// Layout returns current page layout.
func (c *Cache) Layout() config.LayoutConfig {
	return c.layout
}

// Section returns root node, creating it on first request.
func (c *Cache) Section() NodeID {
	c.mustBeOpen()
	if c.root.IsZero() {
		c.root = c.newNode(c.doc.Root(), NodeID{})
	}
	return c.root
}

// DirtyRanges returns ranges recorded since the last format pass.
func (c *Cache) DirtyRanges() []dirty.Range {
	return c.dirty.Ranges()
}

// AddDirtyTextRange records change which did not come through document
// notifications.
func (c *Cache) AddDirtyTextRange(r dirty.Range) {
	c.mustBeOpen()
	c.dirty.Merge(r)
}

// ClearDirtyRanges forgets recorded changes.
func (c *Cache) ClearDirtyRanges() {
	c.dirty.Clear()
}

// InvalidateFormatCache drops results of previous passes. With
// destroyStructure the whole node tree goes away, otherwise nodes are kept
// and every one of them is formatted again.
func (c *Cache) InvalidateFormatCache(destroyStructure bool) {
	c.mustBeOpen()
	if destroyStructure {
		if !c.root.IsZero() {
			c.destroy(c.root)
			c.root = NodeID{}
		}
		c.log.Debug("Layout structure destroyed")
		return
	}
	c.nodes.Each(func(_ handle.Handle, n *node) {
		if n.change == UpdateKindNone {
			n.change = UpdateKindInside
		}
		if n.table != nil {
			n.table.dirty = true
		}
	})
}

// SetLayout changes page geometry, everything formatted before is dropped.
func (c *Cache) SetLayout(layout config.LayoutConfig) {
	c.mustBeOpen()
	c.layout = layout
	c.InvalidateFormatCache(false)
}

// Background returns state of the current background slice.
func (c *Cache) Background() *BackgroundFormatInfo {
	return &c.bg
}

// Stats returns format call counters.
func (c *Cache) Stats() Stats {
	return c.stats
}

// Nodes returns number of live layout nodes.
func (c *Cache) Nodes() int {
	return c.nodes.Len()
}

// Close releases everything cache owns. Break records handed out by
// FormatPage and not disposed by their users are disposed here.
func (c *Cache) Close() (err error) {
	if c.closed {
		return nil
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if !c.root.IsZero() {
		c.destroy(c.root)
		c.root = NodeID{}
	}
	count := 0
	for br := range c.issued {
		if !br.Disposed() {
			count++
		}
		multierr.AppendInto(&err, br.Dispose(c.eng))
	}
	c.issued = nil
	c.closed = true
	if err != nil {
		err = fmt.Errorf("unable to close structural cache: %w", err)
	}
	c.log.Debug("Structural cache closed", zap.Int("records", count), zap.Int("formatted", c.stats.Formatted), zap.Int("reused", c.stats.Reused))
	return err
}
