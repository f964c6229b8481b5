package flow

import (
	"go.uber.org/zap"

	"textpager/document"
	"textpager/handle"
)

// reaches reports whether element content is at or after start, detached
// elements always do.
func reaches(el *document.Element, start int) bool {
	return el.Document() == nil || el.Start() >= start
}

// InvalidateStructure destroys nodes which have to be rebuilt because
// document changed at start (new coordinates). It returns true when node
// content begins at or after start and the node itself has to go.
func (c *Cache) InvalidateStructure(id NodeID, start int) bool {
	n := c.node(id)
	// root and segments are dropped by their owners
	if !n.parent.IsZero() && !n.isSegment && reaches(n.el, start) {
		return true
	}

	switch n.kind {
	case NodeKindText:
		return false
	case NodeKindContainer, NodeKindCell, NodeKindRow:
		return c.invalidateChildren(n, start)
	case NodeKindTable:
		return c.invalidateTable(n, start)
	case NodeKindFigure, NodeKindFloater:
		c.invalidateFigure(n, start)
		return false
	}
	return false
}

// invalidateChildren walks materialized children, keeps everything ending
// before start and destroys the rest starting with the first child which
// cannot be kept. Returns true when no child is kept.
func (c *Cache) invalidateChildren(n *node, start int) bool {
	var last NodeID
	for ch := n.child; !ch.IsZero(); {
		cn := c.node(ch)
		if !reaches(cn.el, start) && cn.el.End() <= start {
			last, ch = ch, cn.next
			continue
		}
		if c.InvalidateStructure(ch, start) {
			c.destroyFrom(ch)
		} else {
			last = ch
			if !cn.next.IsZero() {
				c.destroyFrom(cn.next)
			}
			// element following the kept child may be new
			cn.nextDone = false
		}
		break
	}
	if last.IsZero() {
		// nothing kept, children are looked up again
		n.child, n.childDone = NodeID{}, false
		return true
	}
	if ln := c.node(last); ln.next.IsZero() {
		ln.nextDone = false
	}
	return false
}

// invalidateTable keeps rows ending before start whose cells report no
// destruction. Geometry is always recalculated.
func (c *Cache) invalidateTable(n *node, start int) bool {
	n.table.dirty = true

	var last NodeID
	for row := n.child; !row.IsZero(); {
		rn := c.node(row)
		keep := rn.el.Document() != nil && rn.el.End() <= start
		for cell := rn.child; keep && !cell.IsZero(); cell = c.node(cell).next {
			keep = !c.InvalidateStructure(cell, start)
		}
		if !keep {
			c.destroyFrom(row)
			break
		}
		last, row = row, rn.next
	}
	if last.IsZero() {
		n.child, n.childDone = NodeID{}, false
		return true
	}
	if ln := c.node(last); ln.next.IsZero() {
		ln.nextDone = false
	}
	return false
}

// invalidateFigure drops content segment when change precedes its first
// block, otherwise lets the segment sort it out.
func (c *Cache) invalidateFigure(n *node, start int) {
	if n.segment.IsZero() {
		return
	}
	first := n.el.FirstChild()
	if first == nil || first.Start() >= start {
		c.destroyFrom(n.segment)
		return
	}
	if c.InvalidateStructure(n.segment, start) {
		c.destroyFrom(n.segment)
	}
}

// PrepareFormat applies dirty ranges collected since the last pass: destroys
// nodes which have to be rebuilt and computes update info for the rest.
func (c *Cache) PrepareFormat() {
	c.mustBeOpen()
	if c.dirty.Len() == 0 {
		return
	}
	defer c.dirty.Clear()

	if c.dirty.IsHighlightOnly() {
		// highlights only change rendering
		return
	}
	if c.root.IsZero() {
		return
	}

	first := -1
	for i := range c.dirty.Len() {
		if !c.dirty.At(i).FromHighlight {
			first, _ = c.dirty.NewCoordinates(i)
			break
		}
	}
	merged, _ := c.dirty.MergedRange()
	last := merged.Start + merged.Added

	if c.InvalidateStructure(c.root, first) {
		root := c.node(c.root)
		root.child, root.childDone = NodeID{}, false
	}

	c.nodes.Each(func(_ handle.Handle, n *node) {
		start := n.el.Start()
		n.stopAsking = start > last
		switch {
		case n.client == nil:
			n.change = UpdateKindNew
		case n.el.Size() != n.lastFormattedLength:
			n.change = UpdateKindInside
		case n.stopAsking:
			// nothing past the last change could have been touched
			n.change = UpdateKindNone
		default:
			n.change = UpdateKindNone
			for _, r := range c.dirty.DtrsFromRange(start, n.lastFormattedLength) {
				if !r.FromHighlight {
					n.change = UpdateKindInside
					break
				}
			}
		}
	})
	c.log.Debug("Structure invalidated",
		zap.Int("from", first),
		zap.Int("to", last),
		zap.Int("ranges", c.dirty.Len()),
		zap.Int("nodes", c.nodes.Len()))
}
