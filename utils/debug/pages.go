package debug

import (
	"sort"

	"github.com/maruel/natural"

	"textpager/dirty"
	"textpager/document"
	"textpager/flow"
)

// Page writes page n with its tracks, clients and lines.
func (tw TreeWriter) Page(n int, p *flow.Page) {
	tw.Line(0, "page %d %dx%d %s", n, p.Size.W, p.Size.H, p.Status)
	if p.Resume != nil {
		tw.Line(1, "resume: %s", p.Resume)
	}
	if p.Break != nil {
		tw.Line(1, "break: %s", p.Break)
	}
	tw.Line(1, "dependent: %d", p.DependentMax)
	tw.Line(1, "segments: %v", p.Segments)
	for i, cl := range p.Clients {
		if i < len(p.Tracks) {
			tw.Line(1, "track %d %s", i, p.Tracks[i])
		}
		tw.client(2, cl)
	}
}

func (tw TreeWriter) client(depth int, cl *flow.ParaClient) {
	tw.Line(depth, "%s %s %s [%d,%d)%s", cl.Kind, cl.Element.Path(), cl.Rect, cl.Start, cl.End, edges(cl))
	if cl.Marker != "" {
		tw.TextBlock(depth+1, "marker", cl.Marker)
	}
	text := cl.Element.TextRunes()
	for _, l := range cl.Lines {
		var s string
		if l.Start >= 0 && l.End <= len(text) && l.Start <= l.End {
			s = string(text[l.Start:l.End])
		}
		tw.TextBlock(depth+1, "line", s)
	}
	for _, ch := range cl.Children {
		tw.client(depth+1, ch)
	}
}

func edges(cl *flow.ParaClient) string {
	switch {
	case cl.First && cl.Last:
		return ""
	case cl.First:
		return " continues"
	case cl.Last:
		return " continued"
	}
	return " continued continues"
}

// DirtyRanges writes pending document changes.
func (tw TreeWriter) DirtyRanges(depth int, ranges []dirty.Range) {
	if len(ranges) == 0 {
		tw.Line(depth, "dirty: none")
		return
	}
	tw.Line(depth, "dirty:")
	for _, r := range ranges {
		tw.Line(depth+1, "%s", r)
	}
}

// Elements writes positions of elements which have ids, in natural order of
// ids.
func (tw TreeWriter) Elements(depth int, doc *document.Document) {
	byID := make(map[string]*document.Element)
	doc.Walk(func(el *document.Element) bool {
		if el.ID != "" {
			byID[el.ID] = el
		}
		return true
	})
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Sort(natural.StringSlice(ids))
	for _, id := range ids {
		el := byID[id]
		tw.Line(depth, "%s %s [%d,%d)", id, el.Kind(), el.Start(), el.End())
	}
}
