package debug

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"textpager/common"
	"textpager/config"
	"textpager/dirty"
	"textpager/document"
	"textpager/engine/basic"
	"textpager/flow"
)

const listDoc = `<FlowDocument>
<Paragraph id="p10">ten</Paragraph>
<Paragraph id="p2">two words</Paragraph>
<Paragraph id="p1">one</Paragraph>
</FlowDocument>`

func TestTreeWriter_Page(t *testing.T) {
	log := zaptest.NewLogger(t)
	layout := config.LayoutConfig{
		PageWidth: 100, PageHeight: 100,
		Mode: common.FormatModeFinite, Columns: 1,
		FontSize: 10, LineHeight: 10, CharWidth: 1,
	}
	doc, err := document.NewLoader(layout.FontSize, log).Read(strings.NewReader(listDoc))
	if err != nil {
		t.Fatalf("unable to load document: %v", err)
	}
	cache := flow.New(doc, basic.New(layout.CharWidth, log), layout, log)
	defer cache.Close()

	p, err := cache.FormatPage(nil)
	if err != nil {
		t.Fatalf("FormatPage() error = %v", err)
	}
	cache.ArrangePage(p)

	tw := NewTreeWriter()
	tw.Page(0, p)
	got := tw.String()
	for _, want := range []string{
		"page 0 100x100 complete\n",
		"  track 0 ",
		"line: \"two words\"\n",
		"#p1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("page dump misses %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "break:") {
		t.Errorf("last page dumped with break")
	}
}

func TestTreeWriter_Elements(t *testing.T) {
	doc, err := document.NewLoader(10, zaptest.NewLogger(t)).Read(strings.NewReader(listDoc))
	if err != nil {
		t.Fatalf("unable to load document: %v", err)
	}
	tw := NewTreeWriter()
	tw.Elements(1, doc)

	lines := strings.Split(strings.TrimSpace(tw.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	for i, id := range []string{"p1", "p2", "p10"} {
		if !strings.HasPrefix(strings.TrimSpace(lines[i]), id+" ") {
			t.Errorf("line %d = %q, want %s first", i, lines[i], id)
		}
	}
}

func TestTreeWriter_DirtyRanges(t *testing.T) {
	tw := NewTreeWriter()
	tw.DirtyRanges(0, nil)
	tw.DirtyRanges(0, []dirty.Range{{Start: 10, Added: 3, Removed: 2}, {Start: 40, Added: 5, Removed: 5, FromHighlight: true}})

	want := "dirty: none\ndirty:\n  {10 +3 -2}\n  {40 +5 -5 highlight}\n"
	if got := tw.String(); got != want {
		t.Errorf("DirtyRanges() = %q, want %q", got, want)
	}
}
