package dirty

import "slices"

// List is an ordered set of non-overlapping dirty ranges. The zero value is an
// empty list ready for use.
type List struct {
	ranges []Range
}

// Len returns number of ranges in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.ranges)
}

// At returns i-th range.
func (l *List) At(i int) Range {
	return l.ranges[i]
}

// Ranges returns a copy of all ranges.
func (l *List) Ranges() []Range {
	if l == nil {
		return nil
	}
	return slices.Clone(l.ranges)
}

// Clear forgets all ranges, normally after layout caught up with the document.
func (l *List) Clear() {
	l.ranges = l.ranges[:0]
}

// Shift returns cumulative length change of all ranges preceding i-th one,
// which is the difference between new and old coordinates at its start.
func (l *List) Shift(i int) int {
	shift := 0
	for _, r := range l.ranges[:i] {
		shift += r.Delta()
	}
	return shift
}

// NewCoordinates returns window of i-th range in new coordinates.
func (l *List) NewCoordinates(i int) (start, end int) {
	r := l.ranges[i]
	start = r.Start + l.Shift(i)
	return start, start + r.Added
}

// IsHighlightOnly reports whether every recorded change came from highlight
// (selection and such) which does not affect layout.
func (l *List) IsHighlightOnly() bool {
	if l.Len() == 0 {
		return false
	}
	for _, r := range l.ranges {
		if !r.FromHighlight {
			return false
		}
	}
	return true
}

// Merge adds edit notification r (start in new coordinates) to the list,
// coalescing it with every range it touches.
func (l *List) Merge(r Range) {
	r.validate()
	if r.IsEmpty() {
		return
	}

	shift := 0
	for i := range l.ranges {
		e := &l.ranges[i]
		start := e.Start + shift

		if r.Start < start {
			if r.Start+r.Removed < start {
				// entirely before, no overlap
				l.ranges = slices.Insert(l.ranges, i, Range{
					Start:         r.Start - shift,
					Added:         r.Added,
					Removed:       r.Removed,
					FromHighlight: r.FromHighlight,
				})
				return
			}
			// overlaps on the left: removal reaches into e, part of what
			// it removes may have been inserted by e itself
			overlap := min(e.Added, r.Removed-(start-r.Start))
			e.Start = r.Start - shift
			e.Added += r.Added - overlap
			e.Removed += r.Removed - overlap
			e.FromHighlight = e.FromHighlight && r.FromHighlight
			l.cascade(i)
			return
		}

		if r.Start <= start+e.Added {
			// starts inside (or right after) what e inserted
			overlap := min(r.Removed, e.Added-(r.Start-start))
			e.Added += r.Added - overlap
			e.Removed += r.Removed
			e.FromHighlight = e.FromHighlight && r.FromHighlight
			l.cascade(i)
			return
		}
		shift += e.Delta()
	}

	l.ranges = append(l.ranges, Range{
		Start:         r.Start - shift,
		Added:         r.Added,
		Removed:       r.Removed,
		FromHighlight: r.FromHighlight,
	})
}

// cascade folds ranges following i-th one while their start is covered by
// its old window.
func (l *List) cascade(i int) {
	e := &l.ranges[i]
	for i+1 < len(l.ranges) {
		next := l.ranges[i+1]
		end := e.OldEnd()
		if next.Start > end {
			break
		}
		overlap := min(end-next.Start, next.Added)
		e.Added += next.Added - overlap
		e.Removed += next.Removed - overlap
		e.FromHighlight = e.FromHighlight && next.FromHighlight
		l.ranges = slices.Delete(l.ranges, i+1, i+2)
	}
	if e.Start < 0 {
		panic("dirty range moved before document start")
	}
}

// MergedRange folds all ranges into one covering range. Start is the start of
// the first range, Removed spans to the old end of the last one and Added to
// its new end. Returns false when list is empty.
func (l *List) MergedRange() (Range, bool) {
	n := l.Len()
	if n == 0 {
		return Range{}, false
	}
	first, last := l.ranges[0], l.ranges[n-1]

	highlight := true
	for _, r := range l.ranges {
		highlight = highlight && r.FromHighlight
	}
	newEnd := last.Start + l.Shift(n-1) + last.Added
	return Range{
		Start:         first.Start,
		Added:         newEnd - first.Start,
		Removed:       last.OldEnd() - first.Start,
		FromHighlight: highlight,
	}, true
}

// DtrsFromRange returns ranges intersecting window which starts at newStart
// (new coordinates) and spans oldLength positions of the old document.
// Returned starts are offset by the length change accumulated before the
// window, so result is itself a valid list for the sub-range: this is how
// table cells and figure contents derive their own dirty lists.
func (l *List) DtrsFromRange(newStart, oldLength int) []Range {
	if l.Len() == 0 {
		return nil
	}

	i, offset := 0, 0
	for ; i < len(l.ranges); i++ {
		r := l.ranges[i]
		if newStart <= r.Start+offset+r.Added {
			break
		}
		offset += r.Delta()
	}

	oldStart := newStart - offset
	var out []Range
	for ; i < len(l.ranges); i++ {
		r := l.ranges[i]
		if r.Start > oldStart+oldLength {
			break
		}
		r.Start += offset
		out = append(out, r)
	}
	return out
}
