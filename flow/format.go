package flow

import (
	"strconv"
	"unicode"

	"go.uber.org/zap"

	"textpager/common"
	"textpager/document"
	"textpager/engine"
	"textpager/margin"
)

// fmtInput is what parent gives to a child it formats.
type fmtInput struct {
	width    int
	height   int // available, when finite
	finite   bool
	emptyOK  bool // something has been placed on the page before
	collapse *margin.State
	resume   *BreakRecord // Node of the record is the node being formatted
	dir      common.FlowDirection
}

// fmtOutput is formatting result. height is vertical space consumed starting
// at the point parent placed child at, top and left are offsets of the client
// border box from that point. collapse is open bottom margin state.
type fmtOutput struct {
	status   engine.Status
	client   *ParaClient
	top      int
	left     int
	height   int
	collapse *margin.State
	br       *BreakRecord
}

// fmtKey is part of the input cached result depends on.
type fmtKey struct {
	width    int
	height   int
	finite   bool
	emptyOK  bool
	collapse *margin.State
	dir      common.FlowDirection
}

func keyOf(in fmtInput) fmtKey {
	k := fmtKey{width: in.width, finite: in.finite, emptyOK: in.emptyOK, collapse: in.collapse, dir: in.dir}
	if in.finite {
		k.height = in.height
	}
	return k
}

func (k fmtKey) equal(o fmtKey) bool {
	return k.width == o.width && k.height == o.height && k.finite == o.finite &&
		k.emptyOK == o.emptyOK && k.dir == o.dir && k.collapse.Equal(o.collapse)
}

// format formats node id, reusing result of the previous pass when nothing
// node depends on has changed.
func (c *Cache) format(id NodeID, in fmtInput) (fmtOutput, error) {
	n := c.node(id)
	ctx := c.CurrentFormatContext()
	saved := ctx.DependentMax
	key := keyOf(in)

	if in.resume == nil && n.change == UpdateKindNone && n.client != nil &&
		n.lastOut.status == engine.StatusComplete && n.lastKey.equal(key) {
		out := n.lastOut
		out.client = n.client
		ctx.DependentMax = max(saved, n.lastDependentMax)
		c.stats.Reused++
		return out, nil
	}

	ctx.DependentMax = -1
	var (
		out fmtOutput
		err error
	)
	switch n.kind {
	case NodeKindText:
		out, err = c.formatText(n, in)
	case NodeKindContainer, NodeKindCell:
		out, err = c.formatContainer(n, in)
	case NodeKindTable:
		out, err = c.formatTable(n, in)
	case NodeKindRow:
		out, err = c.formatRow(n, in)
	case NodeKindFigure, NodeKindFloater:
		out, err = c.formatFigure(n, in)
	}
	// formatting may have materialized nodes, but never destroys n
	ctx = c.CurrentFormatContext()
	dep := ctx.DependentMax
	ctx.DependentMax = max(saved, dep)
	if err != nil {
		return out, err
	}
	c.stats.Formatted++

	if in.resume == nil && out.client != nil {
		if old := n.client; old != nil && old != out.client {
			out.client.TransferVisual(old)
			out.client.Visual.Invalidate()
		}
		n.client = out.client
		n.lastKey = key
		n.lastOut = out
		n.lastOut.client, n.lastOut.br = nil, nil
		n.lastDependentMax = dep
		n.lastFormattedLength = n.el.Size()
		n.change = UpdateKindNone
	}
	return out, nil
}

// discard throws away result parent decided not to place.
func (c *Cache) discard(out fmtOutput) {
	if out.br != nil {
		if err := out.br.Dispose(c.eng); err != nil {
			c.log.Warn("Unable to release break record", zap.Error(err))
		}
	}
	if out.client == nil {
		return
	}
	out.client.Walk(func(cl *ParaClient, _ int) bool {
		if !c.ownedByNode(cl) {
			cl.Visual.dispose()
		}
		return true
	})
}

// ownedByNode reports whether client is cached by its node, such clients
// keep their visuals until node goes away.
func (c *Cache) ownedByNode(cl *ParaClient) bool {
	n, ok := c.nodes.Get(cl.Node.h)
	return ok && n.client == cl
}

// startMargin and endMargin are margins on the start and end edges in flow
// direction.
func startMargin(m document.Insets, dir common.FlowDirection) int {
	if dir.IsRTL() {
		return m.Right
	}
	return m.Left
}

func (c *Cache) direction(el *document.Element) common.FlowDirection {
	return el.EffectiveDirection(c.layout.Direction)
}

// resumeSpan returns how far from the break text still matters for the line
// before it: the word following the break could have fitted.
func resumeSpan(text []rune, offset int) int {
	end := offset
	for end < len(text) && !unicode.IsSpace(text[end]) {
		end++
	}
	return end
}

func (c *Cache) formatText(n *node, in fmtInput) (fmtOutput, error) {
	props := n.el.Props()
	dir := c.direction(n.el)
	first := in.resume == nil
	ins := props.Insets()

	top, insTop := 0, 0
	if first {
		// text closes collapsing, whatever is open becomes spacing
		st, spacing := margin.CollapseTop(props.TopEdge(), in.collapse)
		c.tracer.Trace("top", n.el.Path(), props.TopEdge(), in.collapse, st, spacing)
		top, insTop = spacing+st.Margin(), ins.Top
	}

	boxW := max(in.width-props.Margin.Horizontal(), 1)
	contentW := max(boxW-ins.Horizontal(), 1)
	lh := n.el.EffectiveLineHeight(c.layout.LineHeight)

	pc := engine.ParagraphConstraints{
		Text:       n.el.TextRunes(),
		Width:      contentW,
		Height:     in.height - top - insTop - ins.Bottom,
		LineHeight: lh,
		Direction:  dir,
		EmptyOK:    in.emptyOK,
	}
	if !first {
		pc.Resume = in.resume.Text
	}

	var (
		res engine.ParagraphResult
		err error
	)
	if in.finite {
		res, err = c.eng.FormatParagraphFinite(pc)
	} else {
		res, err = c.eng.FormatParagraphBottomless(pc)
	}
	if err != nil {
		return fmtOutput{}, err
	}
	if res.Status == engine.StatusNoProgress {
		return fmtOutput{status: engine.StatusNoProgress}, nil
	}

	cl := newClient(n, dir)
	cl.Lines = res.Lines
	cl.Extent = res.Extent
	cl.First = first
	cl.Last = res.Status == engine.StatusComplete
	cl.Content = engine.Rect{X: ins.Left, Y: insTop, W: contentW, H: res.Extent.H}
	base := n.el.ContentStart()
	if len(res.Lines) > 0 {
		cl.Start, cl.End = base+res.Lines[0].Start, base+res.Lines[len(res.Lines)-1].End
	} else {
		cl.Start, cl.End = base, base
	}

	boxH := insTop + res.Extent.H
	out := fmtOutput{status: res.Status, client: cl, top: top, left: startMargin(props.Margin, dir)}
	if res.Status == engine.StatusBroken {
		offset := res.Lines[len(res.Lines)-1].End
		out.br = &BreakRecord{Node: n.id, Text: res.Break, TextOffset: offset}
		c.dependOn(base + resumeSpan(pc.Text, offset))
	} else {
		boxH += ins.Bottom
		out.collapse, _ = margin.CollapseBottom(props.BottomEdge(), nil)
	}
	cl.Local = engine.Rect{X: out.left, Y: top, W: boxW, H: boxH}
	out.height = top + boxH
	return out, nil
}

// breakBefore produces record which resumes container at child.
func breakBefore(n *node, child NodeID) *BreakRecord {
	return &BreakRecord{Node: n.id, Inner: &BreakRecord{Node: child}}
}

// formatContainer formats block track of children: sections, lists, list
// items, table cells and figure content.
func (c *Cache) formatContainer(n *node, in fmtInput) (fmtOutput, error) {
	props := n.el.Props()
	dir := c.direction(n.el)
	first := in.resume == nil

	var m, ins document.Insets
	if !n.isSegment {
		// figure applies its own box
		m, ins = props.Margin, props.Insets()
	}
	topEdge := margin.Edge{Margin: m.Top, BorderPadding: ins.Top}
	bottomEdge := margin.Edge{Margin: m.Bottom, BorderPadding: ins.Bottom}

	var (
		state   *margin.State
		top     int
		insTop  int
		placed  bool
		y       int
		status  = engine.StatusComplete
		outBR   *BreakRecord
		cl      = newClient(n, dir)
		isList  = n.el.Kind() == document.KindList && !n.isSegment
		markerW int
	)
	if first {
		state, top = margin.CollapseTop(topEdge, in.collapse)
		c.tracer.Trace("top", n.el.Path(), topEdge, in.collapse, state, top)
		insTop = ins.Top
	}

	boxW := max(in.width-m.Horizontal(), 1)
	contentW := max(boxW-ins.Horizontal(), 1)
	if isList {
		last := props.StartIndex + len(n.el.Children()) - 1
		markerW = c.eng.TextWidth(strconv.Itoa(last) + ". ")
		contentW = max(contentW-markerW, 1)
		// marker width depends on the whole list
		defer func() {
			if placed {
				c.dependOn(n.el.End())
			}
		}()
	}
	avail := func() int {
		return in.height - top - insTop - y - ins.Bottom
	}

	var child NodeID
	var childResume *BreakRecord
	if !first {
		if in.resume.Inner == nil {
			// this should never happen
			panic("container break record without child")
		}
		child = in.resume.Inner.Node
		if !in.resume.Inner.fresh() {
			childResume = in.resume.Inner
		}
	} else {
		child = c.firstChildOrCreate(n.id)
	}

	noProgress := func() (fmtOutput, error) {
		c.discard(fmtOutput{client: cl})
		return fmtOutput{status: engine.StatusNoProgress}, nil
	}

	for ; !child.IsZero(); child = c.nextOrCreate(child) {
		cn := c.node(child)
		cp := cn.el.Props()
		somethingAbove := placed || in.emptyOK

		if in.finite && cp.BreakBefore && childResume == nil && somethingAbove {
			if !placed {
				return noProgress()
			}
			c.dependOn(cn.el.End())
			status, outBR = engine.StatusBroken, breakBefore(n, child)
			break
		}

		out, err := c.format(child, fmtInput{
			width:    contentW,
			height:   avail(),
			finite:   in.finite,
			emptyOK:  somethingAbove,
			collapse: state,
			resume:   childResume,
			dir:      dir,
		})
		if err != nil {
			return fmtOutput{}, err
		}

		if out.status == engine.StatusBroken && cp.KeepTogether && childResume == nil && somethingAbove {
			c.discard(out)
			out = fmtOutput{status: engine.StatusNoProgress}
		}
		if out.status == engine.StatusNoProgress {
			if !placed {
				return noProgress()
			}
			c.dependOn(cn.el.End())
			status, outBR = engine.StatusBroken, breakBefore(n, child)
			break
		}

		ccl := out.client
		ccl.Local.X = markerW + out.left
		ccl.Local.Y = y + out.top
		if isList && ccl.First {
			ccl.Marker = strconv.Itoa(props.StartIndex+cn.el.Index()) + "."
		}
		cl.Children = append(cl.Children, ccl)
		y += out.height
		state = out.collapse
		placed = true

		if out.status == engine.StatusBroken {
			status, outBR = engine.StatusBroken, &BreakRecord{Node: n.id, Inner: out.br}
			break
		}
		childResume = nil
	}

	out := fmtOutput{status: status, client: cl, top: top, left: startMargin(m, dir), br: outBR}
	boxH := insTop + y
	if status == engine.StatusComplete {
		var spacing int
		out.collapse, spacing = margin.CollapseBottom(bottomEdge, state)
		c.tracer.Trace("bottom", n.el.Path(), bottomEdge, state, out.collapse, spacing)
		boxH += spacing + ins.Bottom
	}

	cl.First, cl.Last = first, status == engine.StatusComplete
	cl.Content = engine.Rect{X: ins.Left, Y: insTop, W: contentW + markerW, H: y}
	cl.Local = engine.Rect{X: out.left, Y: top, W: boxW, H: boxH}
	cl.Extent = engine.Size{W: boxW, H: boxH}
	cl.Start, cl.End = n.el.Start(), n.el.End()
	if k := len(cl.Children); k > 0 {
		if !first {
			cl.Start = cl.Children[0].Start
		}
		if outBR != nil {
			cl.End = cl.Children[k-1].End
		}
	}
	out.height = top + boxH
	return out, nil
}
