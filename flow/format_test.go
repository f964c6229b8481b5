package flow

import (
	"fmt"
	"testing"

	"textpager/common"
	"textpager/document"
	"textpager/engine"
)

// threeParagraphs has paragraphs of four lines each at width 100.
func threeParagraphs() string {
	return fmt.Sprintf(`<FlowDocument>
<Paragraph id="p1">%s</Paragraph>
<Paragraph id="p2">%s</Paragraph>
<Paragraph id="p3">%s</Paragraph>
</FlowDocument>`, words(80), words(80), words(80))
}

func TestFormatPage_Paginates(t *testing.T) {
	f := newFixture(t, threeParagraphs(), testLayout())
	c := f.cache

	p1 := mustFormat(t, c, nil)
	if p1.Status != engine.StatusBroken {
		t.Fatalf("page 1 status = %s, want broken", p1.Status)
	}
	if got := countLines(p1); got != 10 {
		t.Errorf("page 1 lines = %d, want 10", got)
	}
	leaf := p1.Break.Leaf()
	if leaf.Text.IsZero() || leaf.TextOffset != 200 {
		t.Errorf("page 1 break = %s, want text break at 200", p1.Break)
	}
	// next word after the break decides whether the last line could grow
	p3 := f.doc.ElementByID("p3")
	if want := p3.ContentStart() + 204; p1.DependentMax != want {
		t.Errorf("page 1 dependent max = %d, want %d", p1.DependentMax, want)
	}
	if last := p1.Segments[len(p1.Segments)-1]; last.End != p3.ContentStart()+201 {
		t.Errorf("page 1 segments = %v, want resume point %d covered", p1.Segments, p3.ContentStart()+200)
	}

	p2 := mustFormat(t, c, p1.Break)
	if p2.Status != engine.StatusComplete || p2.Break != nil {
		t.Fatalf("page 2 status = %s break = %s, want complete and no break", p2.Status, p2.Break)
	}
	if got := countLines(p2); got != 2 {
		t.Errorf("page 2 lines = %d, want 2", got)
	}
	if p2.DependentMax != -1 {
		t.Errorf("page 2 dependent max = %d, want -1", p2.DependentMax)
	}
	cls := clientsOf(p2, p3)
	if len(cls) != 1 || cls[0].First || !cls[0].Last {
		t.Errorf("page 2 p3 clients = %v, want single last piece", cls)
	}
	if last := p2.Segments[len(p2.Segments)-1]; last.End != f.doc.Len()+1 {
		t.Errorf("page 2 segments = %v, want document end covered", p2.Segments)
	}

	if err := p1.Break.Dispose(f.eng); err != nil {
		t.Fatalf("Dispose() error = %v", err)
	}
	if _, err := c.FormatPage(p1.Break); err != ErrDisposedRecord {
		t.Errorf("FormatPage(disposed) error = %v, want %v", err, ErrDisposedRecord)
	}
}

func TestFormatPage_ReusesUntouchedNodes(t *testing.T) {
	f := newFixture(t, threeParagraphs(), testLayout())
	c := f.cache

	page := mustFormat(t, c, nil)
	if got := page.Render(); got != 4 {
		t.Fatalf("first Render() = %d, want 4", got)
	}
	el1, el2 := f.doc.ElementByID("p1"), f.doc.ElementByID("p2")
	v1, v2 := clientsOf(page, el1)[0].Visual, clientsOf(page, el2)[0].Visual
	id2 := v2.ID

	if err := f.doc.InsertText(el2, 0, "x"); err != nil {
		t.Fatalf("InsertText() error = %v", err)
	}
	c.PrepareFormat()
	if kind, _ := c.UpdateInfo(f.nodeOf(t, "p1")); kind != UpdateKindNone {
		t.Errorf("p1 update = %s, want none", kind)
	}
	if kind, _ := c.UpdateInfo(f.nodeOf(t, "p2")); kind != UpdateKindInside {
		t.Errorf("p2 update = %s, want inside", kind)
	}

	before := c.Stats()
	next := mustFormat(t, c, nil)
	page.Dispose()
	after := c.Stats()
	if after.Reused <= before.Reused {
		t.Errorf("stats = %+v, nothing reused", after)
	}
	next.Render()

	n1, n2 := clientsOf(next, el1)[0], clientsOf(next, el2)[0]
	if n1.Visual != v1 || v1.Redraws != 1 {
		t.Errorf("p1 visual redraws = %d, want untouched visual drawn once", n1.Visual.Redraws)
	}
	if n2.Visual.ID != id2 {
		t.Errorf("p2 visual id = %s, want %s", n2.Visual.ID, id2)
	}
	if n2.Visual.Redraws != 2 || n2.Visual.Disposed() {
		t.Errorf("p2 visual redraws = %d disposed = %v, want 2 and alive", n2.Visual.Redraws, n2.Visual.Disposed())
	}
	if err := next.Break.Dispose(f.eng); err != nil {
		t.Fatalf("Dispose() error = %v", err)
	}
}

func TestFormatPage_HighlightKeepsLayout(t *testing.T) {
	f := newFixture(t, threeParagraphs(), testLayout())
	c := f.cache

	page := mustFormat(t, c, nil)
	page.Render()
	nodes := c.Nodes()

	if err := f.doc.Highlight(10, 5); err != nil {
		t.Fatalf("Highlight() error = %v", err)
	}
	if got := c.DirtyRanges(); len(got) != 1 || !got[0].FromHighlight {
		t.Fatalf("dirty ranges = %v, want single highlight range", got)
	}
	if got := page.InvalidateRender(10, 15); got != 1 {
		t.Errorf("InvalidateRender() = %d, want 1", got)
	}
	if got := page.Render(); got != 1 {
		t.Errorf("Render() = %d, want 1", got)
	}

	c.PrepareFormat()
	if c.Nodes() != nodes {
		t.Errorf("nodes = %d, want %d", c.Nodes(), nodes)
	}
	if len(c.DirtyRanges()) != 0 {
		t.Errorf("dirty ranges left after PrepareFormat: %v", c.DirtyRanges())
	}
}

func TestFormatPage_StructuralInvalidation(t *testing.T) {
	f := newFixture(t, threeParagraphs(), testLayout())
	c := f.cache

	p1 := mustFormat(t, c, nil)
	p2 := mustFormat(t, c, p1.Break)
	if c.Nodes() != 4 {
		t.Fatalf("nodes = %d, want 4", c.Nodes())
	}
	p3node := f.nodeOf(t, "p3")

	if err := f.doc.RemoveElement(f.doc.ElementByID("p2")); err != nil {
		t.Fatalf("RemoveElement() error = %v", err)
	}
	c.PrepareFormat()
	// p2 and everything after it goes
	if c.Nodes() != 2 {
		t.Errorf("nodes = %d, want 2", c.Nodes())
	}
	mustPanic(t, "stale layout node", func() { c.Properties(p3node) })
	if !c.alive(f.nodeOf(t, "p1")) {
		t.Errorf("p1 node destroyed")
	}
	p1.Dispose()
	p2.Dispose()

	page := mustFormat(t, c, nil)
	if page.Break != nil {
		t.Fatalf("page break = %s, want single page", page.Break)
	}
	if got := countLines(page); got != 8 {
		t.Errorf("lines = %d, want 8", got)
	}
}

func TestFormatPage_CollapsesMargins(t *testing.T) {
	xml := `<FlowDocument>
<Paragraph id="a" style="margin-bottom: 20px">one</Paragraph>
<Paragraph id="b" style="margin-top: 30px">two</Paragraph>
</FlowDocument>`
	f := newFixture(t, xml, testLayout())
	c := f.cache

	page := mustFormat(t, c, nil)
	c.ArrangePage(page)
	a := clientsOf(page, f.doc.ElementByID("a"))[0]
	b := clientsOf(page, f.doc.ElementByID("b"))[0]
	if gap := b.Rect.Y - a.Rect.Bottom(); gap != 30 {
		t.Errorf("gap between paragraphs = %d, want 30", gap)
	}
}

func TestFormatPage_KeepTogether(t *testing.T) {
	xml := fmt.Sprintf(`<FlowDocument>
<Paragraph id="a">%s</Paragraph>
<Paragraph id="b" style="page-break-inside: avoid">%s</Paragraph>
</FlowDocument>`, words(160), words(80))
	f := newFixture(t, xml, testLayout())
	c := f.cache

	p1 := mustFormat(t, c, nil)
	if got := countLines(p1); got != 8 {
		t.Errorf("page 1 lines = %d, want 8", got)
	}
	leaf := p1.Break.Leaf()
	if leaf.Node != f.nodeOf(t, "b") || !leaf.fresh() {
		t.Errorf("page 1 break = %s, want before b", p1.Break)
	}
	if len(clientsOf(p1, f.doc.ElementByID("b"))) != 0 {
		t.Errorf("b placed on page 1")
	}

	p2 := mustFormat(t, c, p1.Break)
	if got := countLines(p2); got != 4 || p2.Break != nil {
		t.Errorf("page 2 lines = %d break = %s, want 4 and no break", got, p2.Break)
	}
}

func TestFormatPage_BreakBefore(t *testing.T) {
	xml := `<FlowDocument>
<Paragraph id="a">one</Paragraph>
<Paragraph id="b" style="page-break-before: always">two</Paragraph>
</FlowDocument>`
	f := newFixture(t, xml, testLayout())
	c := f.cache

	p1 := mustFormat(t, c, nil)
	if p1.Break == nil || p1.Break.Leaf().Node != f.nodeOf(t, "b") {
		t.Fatalf("page 1 break = %s, want before b", p1.Break)
	}
	p2 := mustFormat(t, c, p1.Break)
	if len(clientsOf(p2, f.doc.ElementByID("b"))) != 1 || p2.Break != nil {
		t.Errorf("page 2 does not hold b alone")
	}
}

func TestFormatPage_ListMarkers(t *testing.T) {
	items := ""
	for i := range 10 {
		items += fmt.Sprintf(`<ListItem><Paragraph id="i%d">item</Paragraph></ListItem>`, i+1)
	}
	xml := `<FlowDocument><List id="l">` + items + `</List><Paragraph>tail</Paragraph></FlowDocument>`
	f := newFixture(t, xml, testLayout())
	c := f.cache

	page := mustFormat(t, c, nil)
	list := f.doc.ElementByID("l")
	var markers []string
	for _, item := range list.Children() {
		cls := clientsOf(page, item)
		if len(cls) != 1 {
			t.Fatalf("item clients = %d, want 1", len(cls))
		}
		// "10. " is four characters wide
		if cls[0].Local.X != 4 {
			t.Errorf("item x = %d, want 4", cls[0].Local.X)
		}
		markers = append(markers, cls[0].Marker)
	}
	if markers[0] != "1." || markers[9] != "10." {
		t.Errorf("markers = %v", markers)
	}
	if page.DependentMax < list.End() {
		t.Errorf("dependent max = %d, want at least list end %d", page.DependentMax, list.End())
	}
}

func TestFormatPage_Table(t *testing.T) {
	xml := `<FlowDocument>
<Table id="t"><TableRow id="r1">
  <TableCell id="c1" width="30px"><Paragraph>a</Paragraph></TableCell>
  <TableCell id="c2"><Paragraph>b</Paragraph></TableCell>
</TableRow></Table>
</FlowDocument>`
	f := newFixture(t, xml, testLayout())
	c := f.cache

	page := mustFormat(t, c, nil)
	c1 := clientsOf(page, f.doc.ElementByID("c1"))[0]
	c2 := clientsOf(page, f.doc.ElementByID("c2"))[0]
	if c1.Local.X != 0 || c1.Local.W != 30 {
		t.Errorf("c1 = %s, want x 0 width 30", c1.Local)
	}
	if c2.Local.X != 30 || c2.Local.W != 70 {
		t.Errorf("c2 = %s, want x 30 width 70", c2.Local)
	}
	row := clientsOf(page, f.doc.ElementByID("r1"))[0]
	// one line plus default cell padding
	if row.Local.H != 12 {
		t.Errorf("row height = %d, want 12", row.Local.H)
	}
}

func TestFormatPage_TableRowMoves(t *testing.T) {
	xml := fmt.Sprintf(`<FlowDocument>
<Paragraph id="a">%s</Paragraph>
<Table id="t"><TableRow id="r1"><TableCell><Paragraph>cell</Paragraph></TableCell></TableRow></Table>
</FlowDocument>`, words(180))
	f := newFixture(t, xml, testLayout())
	c := f.cache

	p1 := mustFormat(t, c, nil)
	if p1.Break == nil || p1.Break.Leaf().Node != f.nodeOf(t, "t") {
		t.Fatalf("page 1 break = %s, want before table", p1.Break)
	}
	p2 := mustFormat(t, c, p1.Break)
	if len(clientsOf(p2, f.doc.ElementByID("r1"))) != 1 {
		t.Errorf("row not placed on page 2")
	}
}

func TestFormatPage_TableGeometryFollowsEdits(t *testing.T) {
	xml := `<FlowDocument>
<Table id="t"><TableRow id="r1">
  <TableCell id="c1"><Paragraph>a</Paragraph></TableCell>
  <TableCell id="c2"><Paragraph>b</Paragraph></TableCell>
</TableRow></Table>
</FlowDocument>`
	f := newFixture(t, xml, testLayout())
	c := f.cache

	mustFormat(t, c, nil).Dispose()
	if err := f.doc.SetProps(f.doc.ElementByID("c1"), func(p *document.Props) { p.Width = 20 }); err != nil {
		t.Fatalf("SetProps() error = %v", err)
	}
	page := mustFormat(t, c, nil)
	if c2 := clientsOf(page, f.doc.ElementByID("c2"))[0]; c2.Local.X != 20 || c2.Local.W != 80 {
		t.Errorf("c2 = %s, want x 20 width 80", c2.Local)
	}
}

func TestFormatPage_Figures(t *testing.T) {
	xml := `<FlowDocument>
<Figure id="f" height="30px"><Paragraph>inside</Paragraph></Figure>
<Floater id="fl" float="right" width="40px"><Paragraph>aside</Paragraph></Floater>
</FlowDocument>`
	f := newFixture(t, xml, testLayout())
	c := f.cache

	page := mustFormat(t, c, nil)
	c.ArrangePage(page)
	fig := clientsOf(page, f.doc.ElementByID("f"))[0]
	if fig.Local.H != 30 || fig.Local.W != 100 {
		t.Errorf("figure = %s, want 100x30", fig.Local)
	}
	if len(fig.Children) != 1 || countLines(&Page{Clients: fig.Children}) != 1 {
		t.Errorf("figure content not formatted")
	}
	fl := clientsOf(page, f.doc.ElementByID("fl"))[0]
	if fl.Local.X != 60 || fl.Rect.X != 60 || fl.Rect.Y != 30 {
		t.Errorf("floater local = %s rect = %s, want at right edge below figure", fl.Local, fl.Rect)
	}
}

func TestFormatPage_FigureMovesOrClips(t *testing.T) {
	xml := fmt.Sprintf(`<FlowDocument>
<Paragraph id="a">%s</Paragraph>
<Figure id="f" height="50px"><Paragraph>inside</Paragraph></Figure>
</FlowDocument>`, words(120))
	f := newFixture(t, xml, testLayout())
	c := f.cache

	p1 := mustFormat(t, c, nil)
	if p1.Break == nil || p1.Break.Leaf().Node != f.nodeOf(t, "f") {
		t.Fatalf("page 1 break = %s, want before figure", p1.Break)
	}

	layout := testLayout()
	layout.PageHeight = 40
	c.SetLayout(layout)
	p2 := mustFormat(t, c, p1.Break)
	fig := clientsOf(p2, f.doc.ElementByID("f"))[0]
	if fig.Local.H != 40 {
		t.Errorf("clipped figure height = %d, want 40", fig.Local.H)
	}
}

func TestFormatPage_Columns(t *testing.T) {
	layout := testLayout()
	layout.Columns = 2
	xml := fmt.Sprintf(`<FlowDocument>
<Paragraph>%s</Paragraph><Paragraph>%s</Paragraph>
<Paragraph>%s</Paragraph><Paragraph>%s</Paragraph>
</FlowDocument>`, words(40), words(40), words(40), words(40))
	f := newFixture(t, xml, layout)
	c := f.cache

	page := mustFormat(t, c, nil)
	if len(page.Tracks) != 2 || page.Break != nil {
		t.Fatalf("tracks = %v break = %s, want two columns on a single page", page.Tracks, page.Break)
	}
	if page.Tracks[1].X != 50 || page.Tracks[0].H != 100 || page.Tracks[1].H != 60 {
		t.Errorf("tracks = %v", page.Tracks)
	}
	if live := f.eng.LiveRecords(); live != 0 {
		t.Errorf("engine records left = %d, want 0", live)
	}
}

func TestArrangePage_RTL(t *testing.T) {
	layout := testLayout()
	layout.Direction = common.FlowDirectionRtl
	layout.Margins.Left = 10
	xml := `<FlowDocument>
<Floater id="fl" float="left" width="40px"><Paragraph>aside</Paragraph></Floater>
</FlowDocument>`
	f := newFixture(t, xml, layout)
	c := f.cache

	page := mustFormat(t, c, nil)
	c.ArrangePage(page)
	fl := clientsOf(page, f.doc.ElementByID("fl"))[0]
	// content is 90 wide, left side is the end edge
	if fl.Local.X != 50 || fl.Rect.X != 10 {
		t.Errorf("floater local = %s rect = %s, want logical 50 physical 10", fl.Local, fl.Rect)
	}
}

func TestPrepareFormat_UpdateInfo(t *testing.T) {
	type info struct {
		kind UpdateKind
		stop bool
	}
	tests := []struct {
		name string
		edit func(d *document.Document) error
		want map[string]info
	}{
		{
			name: "insert in the middle",
			edit: func(d *document.Document) error { return d.InsertText(d.ElementByID("p2"), 0, "x") },
			want: map[string]info{"p1": {UpdateKindNone, false}, "p2": {UpdateKindInside, false}, "p3": {UpdateKindNone, true}},
		},
		{
			name: "delete at the start",
			edit: func(d *document.Document) error { return d.DeleteText(d.ElementByID("p1"), 0, 5) },
			want: map[string]info{"p1": {UpdateKindInside, false}, "p2": {UpdateKindNone, true}, "p3": {UpdateKindNone, true}},
		},
		{
			name: "highlight only",
			edit: func(d *document.Document) error { return d.Highlight(d.ElementByID("p2").ContentStart(), 5) },
			want: map[string]info{"p1": {UpdateKindNone, false}, "p2": {UpdateKindNone, false}, "p3": {UpdateKindNone, false}},
		},
		{
			name: "highlight after edit",
			edit: func(d *document.Document) error {
				if err := d.InsertText(d.ElementByID("p1"), 0, "x"); err != nil {
					return err
				}
				return d.Highlight(d.ElementByID("p3").ContentStart(), 5)
			},
			want: map[string]info{"p1": {UpdateKindInside, false}, "p2": {UpdateKindNone, false}, "p3": {UpdateKindNone, false}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, threeParagraphs(), testLayout())
			c := f.cache
			mustFormat(t, c, nil).Dispose()

			if err := tt.edit(f.doc); err != nil {
				t.Fatalf("edit error = %v", err)
			}
			c.PrepareFormat()
			if got := c.DirtyRanges(); len(got) != 0 {
				t.Errorf("DirtyRanges() = %v, want none after prepare", got)
			}
			for id, want := range tt.want {
				kind, stop := c.UpdateInfo(f.nodeOf(t, id))
				if got := (info{kind, stop}); got != want {
					t.Errorf("%s update = %s stop = %v, want %s stop = %v", id, kind, stop, want.kind, want.stop)
				}
			}
		})
	}
}
