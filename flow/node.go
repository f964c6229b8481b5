package flow

import (
	"fmt"

	"go.uber.org/zap"

	"textpager/document"
	"textpager/handle"
)

// NodeID is stable reference to a layout node. It stays valid until node is
// destroyed, using it afterwards panics.
type NodeID struct {
	h handle.Handle
}

// IsZero reports whether id refers to no node.
func (id NodeID) IsZero() bool {
	return id.h.IsZero()
}

func (id NodeID) String() string {
	return id.h.String()
}

// node is layout counterpart of a document element. Siblings and children are
// materialized lazily, nextDone and childDone tell whether the link has been
// looked up already.
type node struct {
	id   NodeID
	kind NodeKind
	el   *document.Element

	parent    NodeID
	prev      NodeID
	next      NodeID
	nextDone  bool
	child     NodeID
	childDone bool

	// content of figures and floaters, container node over the same element
	segment   NodeID
	isSegment bool

	lastFormattedLength int
	change              UpdateKind
	stopAsking          bool

	// result of the last from-start formatting
	client           *ParaClient
	lastKey          fmtKey
	lastOut          fmtOutput
	lastDependentMax int

	table *tableGeometry
}

func (c *Cache) node(id NodeID) *node {
	n, ok := c.nodes.Get(id.h)
	if !ok {
		panic(fmt.Sprintf("stale layout node %s", id))
	}
	return n
}

// alive reports whether id refers to existing node.
func (c *Cache) alive(id NodeID) bool {
	_, ok := c.nodes.Get(id.h)
	return ok
}

func (c *Cache) newNode(el *document.Element, parent NodeID) NodeID {
	n := &node{kind: nodeKind(el), el: el, parent: parent, change: UpdateKindNew}
	n.id = NodeID{h: c.nodes.Alloc(n)}
	if n.kind == NodeKindTable {
		n.table = &tableGeometry{dirty: true}
	}
	return n.id
}

func (c *Cache) newSegment(owner *node) NodeID {
	n := &node{kind: NodeKindContainer, el: owner.el, parent: owner.id, change: UpdateKindNew, isSegment: true, nextDone: true}
	n.id = NodeID{h: c.nodes.Alloc(n)}
	return n.id
}

// segmentOf returns (creating it when needed) content node of a figure or
// floater.
func (c *Cache) segmentOf(id NodeID) NodeID {
	n := c.node(id)
	if n.segment.IsZero() {
		n.segment = c.newSegment(n)
	}
	return n.segment
}

// firstChildElement returns element the first child node is built from.
func firstChildElement(n *node) *document.Element {
	switch n.kind {
	case NodeKindText, NodeKindFigure, NodeKindFloater:
		return nil
	case NodeKindTable:
		return firstRowFrom(n.el.FirstChild())
	}
	return n.el.FirstChild()
}

// nextElement returns element the next sibling node is built from.
func nextElement(n *node) *document.Element {
	if n.isSegment {
		return nil
	}
	if n.kind == NodeKindRow {
		return nextRow(n.el)
	}
	return n.el.NextSibling()
}

// firstRowFrom returns first table row at or after el, descending into row
// groups.
func firstRowFrom(el *document.Element) *document.Element {
	for ; el != nil; el = el.NextSibling() {
		switch el.Kind() {
		case document.KindTableRow:
			return el
		case document.KindTableRowGroup:
			if r := firstRowFrom(el.FirstChild()); r != nil {
				return r
			}
		}
	}
	return nil
}

func nextRow(row *document.Element) *document.Element {
	if r := firstRowFrom(row.NextSibling()); r != nil {
		return r
	}
	if p := row.Parent(); p != nil && p.Kind() == document.KindTableRowGroup {
		return firstRowFrom(p.NextSibling())
	}
	return nil
}

// firstChildOrCreate returns first child node, materializing it on first
// request.
func (c *Cache) firstChildOrCreate(id NodeID) NodeID {
	n := c.node(id)
	if !n.childDone {
		n.childDone = true
		if el := firstChildElement(n); el != nil {
			n.child = c.newNode(el, id)
		}
	}
	return n.child
}

// nextOrCreate returns next sibling node, materializing it on first request.
func (c *Cache) nextOrCreate(id NodeID) NodeID {
	n := c.node(id)
	if !n.nextDone {
		n.nextDone = true
		if el := nextElement(n); el != nil {
			next := c.newNode(el, n.parent)
			c.node(next).prev = id
			n.next = next
		}
	}
	return n.next
}

// destroy releases node with everything materialized below it. Sibling links
// of neighbours are left to the caller.
func (c *Cache) destroy(id NodeID) {
	n := c.node(id)
	for ch := n.child; !ch.IsZero(); {
		next := c.node(ch).next
		c.destroy(ch)
		ch = next
	}
	if !n.segment.IsZero() {
		c.destroy(n.segment)
	}
	if n.client != nil {
		n.client.Visual.dispose()
		n.client = nil
	}
	c.nodes.Release(id.h)
}

// destroyFrom destroys id and all siblings following it and unlinks them, so
// they are materialized again on the next traversal.
func (c *Cache) destroyFrom(id NodeID) {
	n := c.node(id)
	if prev := n.prev; !prev.IsZero() {
		p := c.node(prev)
		p.next, p.nextDone = NodeID{}, false
	} else if !n.parent.IsZero() {
		p := c.node(n.parent)
		if p.segment == id {
			p.segment = NodeID{}
		} else {
			p.child, p.childDone = NodeID{}, false
		}
	}
	count := 0
	for cur := id; !cur.IsZero(); count++ {
		next := c.node(cur).next
		c.destroy(cur)
		cur = next
	}
	c.log.Debug("Layout nodes destroyed", zap.Stringer("from", id), zap.Int("siblings", count))
}

// Properties returns resolved properties of node element.
func (c *Cache) Properties(id NodeID) document.Props {
	return c.node(id).el.Props()
}

// Element returns document element node was built for.
func (c *Cache) Element(id NodeID) *document.Element {
	return c.node(id).el
}

// Kind returns node variant.
func (c *Cache) Kind(id NodeID) NodeKind {
	return c.node(id).kind
}

// FirstChild returns first materialized child of the node.
func (c *Cache) FirstChild(id NodeID) NodeID {
	return c.node(id).child
}

// Next returns next materialized sibling of the node.
func (c *Cache) Next(id NodeID) NodeID {
	return c.node(id).next
}

// Segment returns materialized content node of a figure or floater.
func (c *Cache) Segment(id NodeID) NodeID {
	return c.node(id).segment
}

// UpdateInfo returns change flags computed for the last format pass.
func (c *Cache) UpdateInfo(id NodeID) (kind UpdateKind, stopAsking bool) {
	n := c.node(id)
	return n.change, n.stopAsking
}

// SetUpdateInfo overrides change flags of a single node.
func (c *Cache) SetUpdateInfo(id NodeID, kind UpdateKind, stopAsking bool) {
	n := c.node(id)
	n.change, n.stopAsking = kind, stopAsking
}

// ClearUpdateInfo resets change flags of node and everything materialized
// below it.
func (c *Cache) ClearUpdateInfo(id NodeID) {
	n := c.node(id)
	n.change, n.stopAsking = UpdateKindNone, false
	for ch := n.child; !ch.IsZero(); ch = c.node(ch).next {
		c.ClearUpdateInfo(ch)
	}
	if !n.segment.IsZero() {
		c.ClearUpdateInfo(n.segment)
	}
}
