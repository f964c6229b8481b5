// Package dirty keeps track of document regions changed since the last layout
// pass.
//
// Ranges are stored in "old" coordinates - positions as they were when layout
// was last produced. Incoming edits are reported in "new" coordinates, i.e.
// positions in the document after all previously recorded edits, and are
// translated while merging.
package dirty

import "fmt"

// Range describes single edit window. Starting at Start (old coordinates)
// Removed positions were replaced with Added new ones.
type Range struct {
	Start         int
	Added         int
	Removed       int
	FromHighlight bool
}

// IsEmpty reports whether range does not change anything.
func (r Range) IsEmpty() bool {
	return r.Added == 0 && r.Removed == 0
}

// OldEnd is the end of the window in old coordinates.
func (r Range) OldEnd() int {
	return r.Start + r.Removed
}

// Delta is the length change produced by the range.
func (r Range) Delta() int {
	return r.Added - r.Removed
}

func (r Range) String() string {
	h := ""
	if r.FromHighlight {
		h = " highlight"
	}
	return fmt.Sprintf("{%d +%d -%d%s}", r.Start, r.Added, r.Removed, h)
}

func (r Range) validate() {
	if r.Start < 0 || r.Added < 0 || r.Removed < 0 {
		panic(fmt.Sprintf("invalid dirty range %s", r))
	}
}
