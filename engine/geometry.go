package engine

import (
	"fmt"

	"textpager/common"
)

// Size is width and height in layout units.
type Size struct {
	W, H int
}

// Rect is axis aligned rectangle, X grows from the start edge of its
// coordinate system.
type Rect struct {
	X, Y, W, H int
}

// Right returns X of the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns Y of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Offset returns rectangle moved by dx, dy.
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// CoordinateSystem is a box in absolute (page) coordinates with direction of
// its x axis. In rtl systems x is measured from the right edge.
type CoordinateSystem struct {
	X, Y      int
	Width     int
	Direction common.FlowDirection
}

// Transform maps rectangle from one coordinate system into another, x axis
// is mirrored when directions differ.
func Transform(from, to CoordinateSystem, r Rect) Rect {
	// to absolute ltr
	ax := from.X + r.X
	if from.Direction.IsRTL() {
		ax = from.X + from.Width - r.X - r.W
	}
	ay := from.Y + r.Y

	x := ax - to.X
	if to.Direction.IsRTL() {
		x = to.X + to.Width - ax - r.W
	}
	return Rect{X: x, Y: ay - to.Y, W: r.W, H: r.H}
}
