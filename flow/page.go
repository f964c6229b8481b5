package flow

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"textpager/document"
	"textpager/engine"
)

// Segment is half open span of document positions page depends on.
type Segment struct {
	Start, End int
}

func (s Segment) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Page is result of formatting single page.
type Page struct {
	// Clients are top level clients, one per filled track.
	Clients []*ParaClient
	// Tracks are physical track rectangles relative to the page content box.
	Tracks []engine.Rect
	// Resume is record page was formatted from, nil for the first page.
	Resume *BreakRecord
	// Break is record next page resumes from, nil for the last page. It
	// belongs to whoever keeps the page.
	Break *BreakRecord
	// DependentMax is the furthest position page layout depends on beyond
	// its own content, -1 when none.
	DependentMax int
	Segments     []Segment
	Size         engine.Size
	Status       engine.Status

	cache    *Cache
	disposed bool
}

var ErrDisposedRecord = errors.New("break record has been disposed")

// FormatPage formats page starting at br, nil br is the first page.
func (c *Cache) FormatPage(br *BreakRecord) (*Page, error) {
	c.mustBeOpen()
	if br.Disposed() {
		return nil, ErrDisposedRecord
	}
	c.PrepareFormat()
	for rec := range c.issued {
		if rec.Disposed() {
			delete(c.issued, rec)
		}
	}

	l := c.layout
	w, h := l.ContentSize()
	c.PushFormatContext(FormatContext{
		Size:         engine.Size{W: w, H: h},
		Margin:       document.Insets{Top: l.Margins.Top, Right: l.Margins.Right, Bottom: l.Margins.Bottom, Left: l.Margins.Left},
		Mode:         l.Mode,
		Columns:      l.Columns,
		ColumnGap:    l.ColumnGap,
		Direction:    l.Direction,
		DependentMax: -1,
	})
	tf := newTrackFormatter(c, c.Section(), br, w, l.Direction)
	sc := engine.SubpageConstraints{
		Width:     w,
		Height:    h,
		Columns:   l.Columns,
		ColumnGap: l.ColumnGap,
		Direction: l.Direction,
	}
	var (
		res engine.SubpageResult
		err error
	)
	if l.Mode.IsFinite() {
		res, err = c.eng.CreateSubpageFinite(sc, tf)
	} else {
		res, err = c.eng.CreateSubpageBottomless(sc, tf)
	}
	ctx := c.PopFormatContext()
	if err == nil && res.Status == engine.StatusNoProgress {
		err = fmt.Errorf("no content could be placed on page starting at %s", br)
	}
	if err != nil {
		tf.release()
		for _, cl := range tf.clients {
			c.discard(fmtOutput{client: cl})
		}
		return nil, fmt.Errorf("unable to format page: %w", err)
	}

	p := &Page{
		Clients:      tf.clients,
		Tracks:       tf.tracks,
		Resume:       br,
		DependentMax: ctx.DependentMax,
		Size:         engine.Size{W: w, H: h},
		Status:       res.Status,
		cache:        c,
	}
	if res.Status == engine.StatusBroken {
		p.Break = tf.take()
	}
	tf.release()
	if !l.Mode.IsFinite() {
		p.Size.H = res.Height
	}
	if p.Break != nil {
		c.issued[p.Break] = struct{}{}
	}
	p.Segments = c.segments(p)

	c.log.Debug("Page formatted",
		zap.Stringer("from", br),
		zap.Stringer("break", p.Break),
		zap.Int("tracks", len(p.Tracks)),
		zap.Int("dependent", p.DependentMax),
		zap.Int("segments", len(p.Segments)))
	return p, nil
}

// segments collects positions page content depends on: every placed piece
// of text, element edges page holds and the position next page resumes at.
func (c *Cache) segments(p *Page) []Segment {
	var segs []Segment
	for _, root := range p.Clients {
		root.Walk(func(cl *ParaClient, _ int) bool {
			el := cl.Element
			switch cl.Kind {
			case NodeKindFigure, NodeKindFloater:
				segs = append(segs, Segment{el.Start(), el.End()})
				return false
			case NodeKindText:
				s, e := cl.Start, cl.End
				if cl.First {
					s = el.Start()
				}
				if cl.Last {
					e = el.End()
				}
				segs = append(segs, Segment{s, max(e, s+1)})
				return false
			}
			if cl.First {
				segs = append(segs, Segment{el.Start(), el.Start() + 1})
			}
			if cl.Last {
				segs = append(segs, Segment{el.End() - 1, el.End()})
			}
			return true
		})
	}
	if p.Break == nil {
		n := c.doc.Len()
		segs = append(segs, Segment{n, n + 1})
	} else {
		for _, rp := range c.resumePoints(p.Break, nil) {
			segs = append(segs, Segment{rp, rp + 1})
		}
	}
	return mergeSegments(segs)
}

// resumePoints returns document positions formatting resumes at for every
// leaf of the record.
func (c *Cache) resumePoints(br *BreakRecord, acc []int) []int {
	if br == nil {
		return acc
	}
	n := c.node(br.Node)
	switch {
	case br.Inner != nil:
		return c.resumePoints(br.Inner, acc)
	case br.Cells != nil:
		for _, cell := range br.Cells {
			acc = c.resumePoints(cell, acc)
		}
		return acc
	case !br.Text.IsZero():
		return append(acc, n.el.ContentStart()+br.TextOffset)
	}
	return append(acc, n.el.Start())
}

func mergeSegments(segs []Segment) []Segment {
	if len(segs) == 0 {
		return nil
	}
	slices.SortFunc(segs, func(a, b Segment) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})
	out := segs[:1]
	for _, s := range segs[1:] {
		last := &out[len(out)-1]
		if s.Start <= last.End {
			last.End = max(last.End, s.End)
			continue
		}
		out = append(out, s)
	}
	return out
}

// Walk visits every client of the page.
func (p *Page) Walk(fn func(cl *ParaClient, depth int) bool) {
	for _, cl := range p.Clients {
		cl.Walk(fn)
	}
}

// Render redraws invalid visuals and returns how many were redrawn.
func (p *Page) Render() int {
	count := 0
	p.Walk(func(cl *ParaClient, _ int) bool {
		if cl.Visual.redraw() {
			count++
		}
		return true
	})
	return count
}

// InvalidateRender marks visuals of clients intersecting [start, end] for
// redraw and returns their number.
func (p *Page) InvalidateRender(start, end int) int {
	count := 0
	p.Walk(func(cl *ParaClient, _ int) bool {
		if cl.Start > end || cl.End < start {
			return false
		}
		if len(cl.Children) == 0 {
			cl.Visual.Invalidate()
			count++
		}
		return true
	})
	return count
}

// Dispose releases visuals of clients nobody else keeps. Clients cached by
// their nodes stay alive, they may be placed again.
func (p *Page) Dispose() {
	if p == nil || p.disposed {
		return
	}
	p.disposed = true
	c := p.cache
	p.Walk(func(cl *ParaClient, _ int) bool {
		if c.closed || !c.ownedByNode(cl) {
			cl.Visual.dispose()
		}
		return true
	})
}

// Disposed reports whether page has been released.
func (p *Page) Disposed() bool {
	return p != nil && p.disposed
}
