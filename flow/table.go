package flow

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"textpager/document"
	"textpager/engine"
	"textpager/margin"
)

// tableGeometry is cached column layout of a table.
type tableGeometry struct {
	dirty    bool
	widths   []int
	forWidth int
	rowCount int
}

// liveRows counts rows of the table element, row groups included.
func liveRows(table *document.Element) int {
	count := 0
	for row := firstRowFrom(table.FirstChild()); row != nil; row = nextRow(row) {
		count++
	}
	return count
}

// columnWidths computes widths of table columns fitting into width. Columns
// with declared width (from single column cells) keep it, the rest share
// what is left equally.
func columnWidths(table *document.Element, width int) []int {
	var declared []int
	columns := 0
	for row := firstRowFrom(table.FirstChild()); row != nil; row = nextRow(row) {
		col := 0
		for _, cell := range row.Children() {
			p := cell.Props()
			span := max(p.ColumnSpan, 1)
			if span == 1 && p.Width > 0 {
				for len(declared) <= col {
					declared = append(declared, 0)
				}
				if declared[col] == 0 {
					declared[col] = p.Width
				}
			}
			col += span
		}
		columns = max(columns, col)
	}
	if columns == 0 {
		return nil
	}

	widths := make([]int, columns)
	left, auto := width, 0
	for i := range widths {
		if i < len(declared) && declared[i] > 0 {
			widths[i] = declared[i]
			left -= declared[i]
		} else {
			auto++
		}
	}
	if auto > 0 {
		share := max(left/auto, 1)
		for i := range widths {
			if widths[i] == 0 {
				widths[i] = share
			}
		}
	}
	return widths
}

// geometry returns column widths for the table formatted at width,
// recomputing them when structure changed.
func (c *Cache) geometry(n *node, width int) []int {
	g := n.table
	rows := liveRows(n.el)
	if !g.dirty && g.forWidth == width {
		if g.rowCount != rows {
			// this should never happen
			panic(fmt.Sprintf("table %s: cached %d rows, document has %d", n.el.Path(), g.rowCount, rows))
		}
		return g.widths
	}

	widths := columnWidths(n.el, width)
	if !slices.Equal(widths, g.widths) {
		for row := n.child; !row.IsZero(); row = c.node(row).next {
			rn := c.node(row)
			if rn.change == UpdateKindNone {
				rn.change = UpdateKindInside
			}
		}
		c.log.Debug("Table geometry changed", zap.String("table", n.el.Path()), zap.Ints("widths", widths))
	}
	*g = tableGeometry{widths: widths, forWidth: width, rowCount: rows}
	return widths
}

func (c *Cache) formatTable(n *node, in fmtInput) (fmtOutput, error) {
	props := n.el.Props()
	dir := c.direction(n.el)
	first := in.resume == nil
	ins := props.Insets()

	top, insTop := 0, 0
	if first {
		// tables close collapsing the way leaves do
		st, spacing := margin.CollapseTop(props.TopEdge(), in.collapse)
		c.tracer.Trace("top", n.el.Path(), props.TopEdge(), in.collapse, st, spacing)
		top, insTop = spacing+st.Margin(), ins.Top
	}

	boxW := max(in.width-props.Margin.Horizontal(), 1)
	contentW := max(boxW-ins.Horizontal(), 1)
	c.geometry(n, contentW)
	// column widths depend on every row
	c.dependOn(n.el.End())

	var (
		row       NodeID
		rowResume *BreakRecord
		placed    bool
		y         int
		status    = engine.StatusComplete
		outBR     *BreakRecord
		cl        = newClient(n, dir)
	)
	if first {
		row = c.firstChildOrCreate(n.id)
	} else {
		if in.resume.Inner == nil {
			// this should never happen
			panic("table break record without row")
		}
		row = in.resume.Inner.Node
		if !in.resume.Inner.fresh() {
			rowResume = in.resume.Inner
		}
	}

	noProgress := func() (fmtOutput, error) {
		c.discard(fmtOutput{client: cl})
		return fmtOutput{status: engine.StatusNoProgress}, nil
	}

	for ; !row.IsZero(); row = c.nextOrCreate(row) {
		rn := c.node(row)
		somethingAbove := placed || in.emptyOK
		out, err := c.format(row, fmtInput{
			width:   contentW,
			height:  in.height - top - insTop - y - ins.Bottom,
			finite:  in.finite,
			emptyOK: somethingAbove,
			resume:  rowResume,
			dir:     dir,
		})
		if err != nil {
			return fmtOutput{}, err
		}

		// rows move to the next page unless page has nothing else
		if out.status == engine.StatusBroken && rowResume == nil && somethingAbove {
			c.discard(out)
			out = fmtOutput{status: engine.StatusNoProgress}
		}
		if out.status == engine.StatusNoProgress {
			if !placed {
				return noProgress()
			}
			c.dependOn(rn.el.End())
			status, outBR = engine.StatusBroken, breakBefore(n, row)
			break
		}

		out.client.Local.X, out.client.Local.Y = 0, y
		cl.Children = append(cl.Children, out.client)
		y += out.height
		placed = true
		if out.status == engine.StatusBroken {
			status, outBR = engine.StatusBroken, &BreakRecord{Node: n.id, Inner: out.br}
			break
		}
		rowResume = nil
	}

	out := fmtOutput{status: status, client: cl, top: top, left: startMargin(props.Margin, dir), br: outBR}
	boxH := insTop + y
	if status == engine.StatusComplete {
		boxH += ins.Bottom
		out.collapse, _ = margin.CollapseBottom(props.BottomEdge(), nil)
	}
	cl.First, cl.Last = first, status == engine.StatusComplete
	cl.Content = engine.Rect{X: ins.Left, Y: insTop, W: contentW, H: y}
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

// formatRow formats cells side by side. Each cell is a subpage of its own,
// split rows carry per cell break records.
func (c *Cache) formatRow(n *node, in fmtInput) (fmtOutput, error) {
	widths := c.node(n.parent).table.widths
	ctx := c.CurrentFormatContext()
	first := in.resume == nil

	var (
		cl       = newClient(n, in.dir)
		records  []*BreakRecord
		broken   bool
		rowH     int
		col, x   int
		cellOuts []fmtOutput
	)
	for i, cell := 0, c.firstChildOrCreate(n.id); !cell.IsZero(); i, cell = i+1, c.nextOrCreate(cell) {
		cn := c.node(cell)
		span := max(cn.el.Props().ColumnSpan, 1)
		w := 0
		for j := col; j < col+span && j < len(widths); j++ {
			w += widths[j]
		}
		w = max(w, 1)
		cellX := x
		col, x = col+span, x+w

		var cellResume *BreakRecord
		if !first {
			if i >= len(in.resume.Cells) || in.resume.Cells[i] == nil {
				// finished on a previous page
				records = append(records, nil)
				continue
			}
			cellResume = in.resume.Cells[i]
		}

		c.PushFormatContext(FormatContext{
			Size:         engine.Size{W: w, H: in.height},
			Mode:         ctx.Mode,
			Columns:      1,
			Direction:    in.dir,
			DependentMax: -1,
		})
		out, err := c.format(cell, fmtInput{
			width:   w,
			height:  in.height,
			finite:  in.finite,
			emptyOK: in.emptyOK,
			resume:  cellResume,
			dir:     in.dir,
		})
		c.PopFormatContext()
		if err != nil {
			return fmtOutput{}, err
		}
		if out.status == engine.StatusNoProgress {
			for _, o := range cellOuts {
				c.discard(o)
			}
			c.discard(fmtOutput{client: cl})
			return fmtOutput{status: engine.StatusNoProgress}, nil
		}

		out.client.Local.X, out.client.Local.Y = cellX+out.left, out.top
		cl.Children = append(cl.Children, out.client)
		cellOuts = append(cellOuts, out)
		rowH = max(rowH, out.height)
		records = append(records, out.br)
		if out.status == engine.StatusBroken {
			broken = true
		}
	}

	// cells stretch to the row
	for _, o := range cellOuts {
		o.client.Local.H = max(o.client.Local.H, rowH-o.top)
	}

	out := fmtOutput{status: engine.StatusComplete, client: cl, height: rowH}
	if broken {
		out.status = engine.StatusBroken
		out.br = &BreakRecord{Node: n.id, Cells: records}
	}
	cl.First, cl.Last = first, !broken
	cl.Content = engine.Rect{W: x, H: rowH}
	cl.Local = engine.Rect{W: x, H: rowH}
	cl.Extent = engine.Size{W: x, H: rowH}
	cl.Start, cl.End = n.el.Start(), n.el.End()
	return out, nil
}
