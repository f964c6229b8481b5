// Package margin implements CSS adjoining vertical margin collapsing for
// block layout.
//
// Collapsing rules:
//   - both positive: use maximum
//   - both negative: use minimum (most negative)
//   - mixed signs: add them
//
// While blocks are laid out top to bottom an open collapsing State travels
// along the block edges. Border or padding on an edge closes it: accumulated
// value becomes concrete spacing and collapsing starts over.
package margin

import "fmt"

// Collapse collapses two adjoining margins.
func Collapse(a, b int) int {
	if a >= 0 && b >= 0 {
		return max(a, b)
	} else if a <= 0 && b <= 0 {
		return min(a, b)
	}
	return a + b
}

// State is an open margin collapsing state. nil *State means there is nothing
// to collapse with.
type State struct {
	maxPositive int
	minNegative int
}

// New creates collapsing state from a single margin.
func New(m int) *State {
	s := &State{}
	s.add(m)
	return s
}

func (s *State) add(m int) {
	if m > 0 {
		s.maxPositive = max(s.maxPositive, m)
	} else {
		s.minNegative = min(s.minNegative, m)
	}
}

// Collapse folds other into s. Both may be nil, result is whichever exists.
func (s *State) Collapse(other *State) *State {
	switch {
	case s == nil:
		return other
	case other == nil:
		return s
	}
	return &State{
		maxPositive: max(s.maxPositive, other.maxPositive),
		minNegative: min(s.minNegative, other.minNegative),
	}
}

// Margin returns collapsed margin value of the state, 0 for nil.
func (s *State) Margin() int {
	if s == nil {
		return 0
	}
	return s.maxPositive + s.minNegative
}

// Equal compares two states, nil states are equal to each other only.
func (s *State) Equal(other *State) bool {
	if s == nil || other == nil {
		return s == other
	}
	return *s == *other
}

func (s *State) String() string {
	if s == nil {
		return "none"
	}
	return fmt.Sprintf("{+%d %d}", s.maxPositive, s.minNegative)
}

// Edge describes a single vertical edge of a block: its margin and combined
// border plus padding thickness.
type Edge struct {
	Margin        int
	BorderPadding int
}

// CollapseTop processes top edge of a block entered with incoming state in.
// It returns state to pass to the first child (or to the bottom edge of an
// empty block) and spacing which must be applied above the block content.
// Spacing is non-zero only when border or padding closes the edge.
func CollapseTop(edge Edge, in *State) (out *State, spacing int) {
	out = New(edge.Margin).Collapse(in)
	if edge.BorderPadding != 0 {
		return nil, out.Margin()
	}
	return out, 0
}

// CollapseBottom processes bottom edge of a block with state in coming out of
// its last child. Block without margin and without incoming state produces no
// state at all. Spacing is applied below block content (before its bottom
// border and padding) when border or padding closes the edge.
func CollapseBottom(edge Edge, in *State) (out *State, spacing int) {
	if edge.BorderPadding != 0 {
		if in != nil {
			spacing = in.Margin()
		}
		if edge.Margin == 0 {
			return nil, spacing
		}
		return New(edge.Margin), spacing
	}
	if edge.Margin == 0 {
		return in, 0
	}
	return New(edge.Margin).Collapse(in), 0
}
