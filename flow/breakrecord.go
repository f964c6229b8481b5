package flow

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"textpager/engine"
	"textpager/handle"
)

// BreakRecord tells where formatting resumes. Every link of the chain names a
// node, the innermost link either carries resume state of the leaf (text
// handle, per cell records) or names node which starts from its beginning.
type BreakRecord struct {
	Node NodeID

	// Inner resumes inside one of Node's children.
	Inner *BreakRecord

	// Text is engine handle for paragraphs, TextOffset is rune offset of
	// the first line to be formatted.
	Text       handle.Handle
	TextOffset int

	// Cells are per cell records of a split table row, nil entry is a cell
	// which has been completed already.
	Cells []*BreakRecord

	disposed bool
}

// fresh reports whether record names node which starts from the beginning.
func (br *BreakRecord) fresh() bool {
	return br.Text.IsZero() && br.Inner == nil && br.Cells == nil
}

// Disposed reports whether record has been released.
func (br *BreakRecord) Disposed() bool {
	return br != nil && br.disposed
}

// Dispose releases engine state of the whole chain. Calling it again is a
// no-op.
func (br *BreakRecord) Dispose(eng engine.Engine) (err error) {
	if br == nil || br.disposed {
		return nil
	}
	br.disposed = true
	if !br.Text.IsZero() {
		multierr.AppendInto(&err, eng.DestroyBreakRecord(br.Text))
	}
	multierr.AppendInto(&err, br.Inner.Dispose(eng))
	for _, c := range br.Cells {
		multierr.AppendInto(&err, c.Dispose(eng))
	}
	return err
}

// Leaf returns innermost link of the chain.
func (br *BreakRecord) Leaf() *BreakRecord {
	for br != nil && br.Inner != nil {
		br = br.Inner
	}
	return br
}

func (br *BreakRecord) String() string {
	if br == nil {
		return "<nil>"
	}
	var sb strings.Builder
	br.format(&sb)
	return sb.String()
}

func (br *BreakRecord) format(sb *strings.Builder) {
	sb.WriteString(br.Node.String())
	switch {
	case !br.Text.IsZero():
		fmt.Fprintf(sb, "@%d", br.TextOffset)
	case br.Cells != nil:
		sb.WriteString("[")
		for i, c := range br.Cells {
			if i > 0 {
				sb.WriteString(" ")
			}
			if c == nil {
				sb.WriteString("done")
			} else {
				c.format(sb)
			}
		}
		sb.WriteString("]")
	}
	if br.Inner != nil {
		sb.WriteString("/")
		br.Inner.format(sb)
	}
}
