package flow

import (
	"go.uber.org/zap"

	"textpager/common"
	"textpager/document"
	"textpager/engine"
	"textpager/margin"
)

// floaterX returns logical x of floater border box attached to side of the
// track width wide.
func floaterX(side document.FloatSide, dir common.FlowDirection, width, boxW int, m document.Insets) int {
	left := side == document.FloatSideLeft
	if side == document.FloatSideNone {
		// start edge
		left = !dir.IsRTL()
	}
	if left == !dir.IsRTL() {
		return startMargin(m, dir)
	}
	end := m.Right
	if dir.IsRTL() {
		end = m.Left
	}
	return max(width-boxW-end, 0)
}

// formatFigure formats figure or floater as atomic box. Content goes into
// subpage of its own with as many columns as the element asks for.
func (c *Cache) formatFigure(n *node, in fmtInput) (fmtOutput, error) {
	props := n.el.Props()
	dir := c.direction(n.el)
	ins := props.Insets()
	floater := n.kind == NodeKindFloater

	st, spacing := margin.CollapseTop(props.TopEdge(), in.collapse)
	c.tracer.Trace("top", n.el.Path(), props.TopEdge(), in.collapse, st, spacing)
	top := spacing + st.Margin()

	boxW := in.width - props.Margin.Horizontal()
	if floater {
		boxW = in.width / 2
	}
	if props.Width > 0 {
		boxW = props.Width + ins.Horizontal()
	}
	boxW = max(min(boxW, in.width), 1)
	contentW := max(boxW-ins.Horizontal(), 1)

	ctx := c.CurrentFormatContext()
	cols := max(props.Columns, 1)
	sc := engine.SubpageConstraints{
		Width:     contentW,
		Height:    props.Height,
		Columns:   cols,
		ColumnGap: props.ColumnGap,
		Direction: dir,
		// figure content always starts on its own subpage
		EmptyOK: false,
	}
	c.PushFormatContext(FormatContext{
		Size:         engine.Size{W: contentW, H: props.Height},
		Mode:         ctx.Mode,
		Columns:      cols,
		ColumnGap:    props.ColumnGap,
		Direction:    dir,
		DependentMax: -1,
	})
	tf := newTrackFormatter(c, c.segmentOf(n.id), nil, contentW, dir)
	var (
		res engine.SubpageResult
		err error
	)
	if props.Height > 0 {
		res, err = c.eng.CreateSubpageFinite(sc, tf)
	} else {
		res, err = c.eng.CreateSubpageBottomless(sc, tf)
	}
	c.PopFormatContext()
	// content not fitting declared height is cut off
	tf.release()
	if err != nil {
		return fmtOutput{}, err
	}

	cl := newClient(n, dir)
	contentH := res.Height
	if props.Height > 0 {
		contentH = props.Height
	}
	for i, tc := range tf.clients {
		// segment has no margins of its own
		r := tf.logical(i)
		tc.Local.X, tc.Local.Y = r.X, r.Y
		cl.Children = append(cl.Children, tc)
	}

	boxH := ins.Vertical() + contentH
	if in.finite && top+boxH > in.height {
		if in.emptyOK {
			c.discard(fmtOutput{client: cl})
			return fmtOutput{status: engine.StatusNoProgress}, nil
		}
		boxH = max(in.height-top, 0)
		c.log.Debug("Figure clipped", zap.String("figure", n.el.Path()), zap.Int("height", ins.Vertical()+contentH), zap.Int("available", boxH))
	}

	out := fmtOutput{status: engine.StatusComplete, client: cl, top: top}
	if floater {
		out.left = floaterX(props.Float, dir, in.width, boxW, props.Margin)
	} else {
		out.left = startMargin(props.Margin, dir)
	}
	out.collapse, _ = margin.CollapseBottom(props.BottomEdge(), nil)

	cl.First, cl.Last = true, true
	cl.Content = engine.Rect{X: ins.Left, Y: ins.Top, W: contentW, H: min(contentH, max(boxH-ins.Vertical(), 0))}
	cl.Local = engine.Rect{X: out.left, Y: top, W: boxW, H: boxH}
	cl.Extent = engine.Size{W: boxW, H: boxH}
	cl.Start, cl.End = n.el.Start(), n.el.End()
	out.height = top + boxH
	return out, nil
}
