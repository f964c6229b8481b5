package document

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"textpager/common"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<FlowDocument dir="rtl">
  <Stylesheet>
    paragraph { margin-bottom: 4px }
    .note { margin: 1em 2px; font-size: 10px }
    list paragraph { page-break-inside: avoid }
  </Stylesheet>
  <Section id="s1">
    <Paragraph id="p1">  Hello
       <Run>big</Run>   world<LineBreak/>  next </Paragraph>
    <Paragraph class="note" style="margin-top: 3px">Note</Paragraph>
    <List start="3">
      <ListItem><Paragraph>item</Paragraph></ListItem>
    </List>
    <Table>
      <TableRowGroup>
        <TableRow><TableCell colspan="2" width="40px"><Paragraph>c</Paragraph></TableCell></TableRow>
      </TableRowGroup>
      <TableRow><TableCell><Paragraph>d</Paragraph></TableCell></TableRow>
    </Table>
    <Floater float="left" width="5em"><Paragraph>f</Paragraph></Floater>
    <Unknown/>
  </Section>
</FlowDocument>`

func TestLoader_Read(t *testing.T) {
	l := NewLoader(16, zaptest.NewLogger(t))
	doc, err := l.Read(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	p1 := doc.ElementByID("p1")
	if p1 == nil {
		t.Fatalf("p1 not found")
	}
	if want := "Hello big world\u2028next"; p1.Text() != want {
		t.Errorf("text = %q, want %q", p1.Text(), want)
	}
	if p1.Props().Margin.Bottom != 4 {
		t.Errorf("p1 margin-bottom = %d, want 4", p1.Props().Margin.Bottom)
	}
	if p1.EffectiveDirection(common.FlowDirectionLtr) != common.FlowDirectionRtl {
		t.Errorf("direction is not inherited from root")
	}

	sec := doc.ElementByID("s1")
	children := sec.Children()
	if len(children) != 5 {
		t.Fatalf("section has %d children, want 5", len(children))
	}

	note := children[1].Props()
	// 1em resolves against note font size, inline style wins over class
	if note.Margin != (Insets{Top: 3, Right: 2, Bottom: 10, Left: 2}) {
		t.Errorf("note margin = %v", note.Margin)
	}

	list := children[2]
	if list.Props().StartIndex != 3 {
		t.Errorf("list start = %d, want 3", list.Props().StartIndex)
	}
	item := list.FirstChild().FirstChild()
	if !item.Props().KeepTogether {
		t.Errorf("descendant selector not applied")
	}
	if p1.Props().KeepTogether {
		t.Errorf("descendant selector applied outside of list")
	}

	table := children[3]
	if len(table.Children()) != 2 {
		t.Fatalf("table has %d rows, want 2 (row group flattened)", len(table.Children()))
	}
	cell := table.FirstChild().FirstChild()
	if cell.Props().ColumnSpan != 2 || cell.Props().Width != 40 {
		t.Errorf("cell props = %+v", cell.Props())
	}

	floater := children[4]
	if floater.Props().Float != FloatSideLeft || floater.Props().Width != 80 {
		t.Errorf("floater props = %+v", floater.Props())
	}
}

func TestLoader_Errors(t *testing.T) {
	l := NewLoader(16, zaptest.NewLogger(t))

	tests := []struct {
		name    string
		xml     string
		wantDoc bool
	}{
		{"not xml", `<FlowDocument`, false},
		{"wrong root", `<Book/>`, false},
		{"bad attributes", `<FlowDocument><List start="x"><ListItem/></List><Table><TableRow><TableCell colspan="0"/></TableRow></Table></FlowDocument>`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := l.Read(strings.NewReader(tt.xml))
			if err == nil {
				t.Errorf("expected error")
			}
			if (doc != nil) != tt.wantDoc {
				t.Errorf("document returned = %v, want %v", doc != nil, tt.wantDoc)
			}
		})
	}
}

func TestLoader_Fragment(t *testing.T) {
	l := NewLoader(16, zaptest.NewLogger(t))
	doc, err := l.Read(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	list := doc.ElementByID("s1").Children()[2]

	item, err := l.Fragment(doc, list, `<ListItem><Paragraph>new</Paragraph></ListItem>`)
	if err != nil {
		t.Fatalf("Fragment() error = %v", err)
	}
	if item.Parent() != nil {
		t.Errorf("fragment is attached")
	}
	if !item.FirstChild().Props().KeepTogether {
		t.Errorf("fragment is not styled against its future ancestors")
	}
	if err := doc.InsertElement(list, 1, item); err != nil {
		t.Fatalf("InsertElement() error = %v", err)
	}

	if _, err := l.Fragment(doc, list, `<Paragraph>x</Paragraph>`); err == nil {
		t.Errorf("expected error for paragraph in list")
	}
}

func TestCollapseSpaces(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  a  b ", "a b"},
		{"a\n\t b", "a b"},
		{"a \u2028 b", "a\u2028b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := collapseSpaces(tt.in); got != tt.want {
			t.Errorf("collapseSpaces(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
