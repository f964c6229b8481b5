package flow

import (
	"github.com/google/uuid"

	"textpager/common"
	"textpager/document"
	"textpager/engine"
)

// Visual stands for the rendered counterpart of a client. Renderer redraws
// invalid visuals only, so moving visual between clients of the same node
// keeps its identity.
type Visual struct {
	ID      uuid.UUID
	Redraws int

	valid    bool
	disposed bool
}

func newVisual() *Visual {
	return &Visual{ID: uuid.Must(uuid.NewV7())}
}

// Invalidate requests redraw.
func (v *Visual) Invalidate() {
	if v != nil {
		v.valid = false
	}
}

// Valid reports whether visual is up to date.
func (v *Visual) Valid() bool {
	return v != nil && v.valid
}

// Disposed reports whether visual has been released.
func (v *Visual) Disposed() bool {
	return v != nil && v.disposed
}

func (v *Visual) redraw() bool {
	if v == nil || v.valid || v.disposed {
		return false
	}
	v.valid = true
	v.Redraws++
	return true
}

func (v *Visual) dispose() {
	if v != nil {
		v.disposed = true
	}
}

// ParaClient is formatted (and, after arrange, positioned) piece of a node.
// Node split between pages produces one client per page, First and Last tell
// which piece this is.
type ParaClient struct {
	Node    NodeID
	Kind    NodeKind
	Element *document.Element

	// Local is border box relative to the content box of the parent, x is
	// measured from the start edge of the parent in its direction.
	Local engine.Rect
	// Content is content box relative to the border box, physical.
	Content engine.Rect
	// Rect is border box in page coordinates, set by arrange.
	Rect      engine.Rect
	Direction common.FlowDirection

	// Lines are set for text, relative to content box.
	Lines    []engine.Line
	Children []*ParaClient
	Extent   engine.Size
	// Marker is list item label.
	Marker string

	// Start and End are document positions covered by this piece.
	Start, End int

	First, Last bool
	Visual      *Visual
}

func newClient(n *node, dir common.FlowDirection) *ParaClient {
	return &ParaClient{
		Node:      n.id,
		Kind:      n.kind,
		Element:   n.el,
		Direction: dir,
		Visual:    newVisual(),
	}
}

// TransferVisual takes over visual of an older client of the same node.
func (cl *ParaClient) TransferVisual(old *ParaClient) {
	if old == nil || old == cl || old.Node != cl.Node || old.Visual == nil || old.Visual.disposed {
		return
	}
	cl.Visual, old.Visual = old.Visual, nil
}

// Walk visits client tree depth first, fn returning false stops descent into
// children of the current client.
func (cl *ParaClient) Walk(fn func(c *ParaClient, depth int) bool) {
	cl.walk(fn, 0)
}

func (cl *ParaClient) walk(fn func(*ParaClient, int) bool, depth int) {
	if !fn(cl, depth) {
		return
	}
	for _, ch := range cl.Children {
		ch.walk(fn, depth+1)
	}
}
