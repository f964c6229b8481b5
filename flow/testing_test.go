package flow

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"textpager/common"
	"textpager/config"
	"textpager/document"
	"textpager/engine/basic"
	"textpager/handle"
)

// words returns n words, at width 100 and char width 1 twenty of them fit
// on a line.
func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func testLayout() config.LayoutConfig {
	return config.LayoutConfig{
		PageWidth:  100,
		PageHeight: 100,
		Mode:       common.FormatModeFinite,
		Columns:    1,
		Direction:  common.FlowDirectionLtr,
		FontSize:   10,
		LineHeight: 10,
		CharWidth:  1,
	}
}

type fixture struct {
	doc   *document.Document
	eng   *basic.Engine
	cache *Cache
}

func newFixture(t *testing.T, xml string, layout config.LayoutConfig) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	doc, err := document.NewLoader(layout.FontSize, log).Read(strings.NewReader(xml))
	if err != nil {
		t.Fatalf("unable to load document: %v", err)
	}
	eng := basic.New(layout.CharWidth, log)
	f := &fixture{doc: doc, eng: eng, cache: New(doc, eng, layout, log)}
	t.Cleanup(func() {
		if err := f.cache.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return f
}

// nodeOf finds materialized node built for element with id.
func (f *fixture) nodeOf(t *testing.T, id string) NodeID {
	t.Helper()
	el := f.doc.ElementByID(id)
	if el == nil {
		t.Fatalf("element %q not found", id)
	}
	var found NodeID
	f.cache.nodes.Each(func(_ handle.Handle, n *node) {
		if n.el == el && !n.isSegment {
			found = n.id
		}
	})
	if found.IsZero() {
		t.Fatalf("no layout node for %q", id)
	}
	return found
}

// clientsOf returns clients of page built for element with id.
func clientsOf(p *Page, el *document.Element) []*ParaClient {
	var out []*ParaClient
	p.Walk(func(cl *ParaClient, _ int) bool {
		// figure content segments share element with the figure
		if cl.Element == el && cl.Kind == nodeKind(el) {
			out = append(out, cl)
		}
		return true
	})
	return out
}

func countLines(p *Page) int {
	n := 0
	p.Walk(func(cl *ParaClient, _ int) bool {
		n += len(cl.Lines)
		return true
	})
	return n
}

func mustFormat(t *testing.T, c *Cache, br *BreakRecord) *Page {
	t.Helper()
	p, err := c.FormatPage(br)
	if err != nil {
		t.Fatalf("FormatPage() error = %v", err)
	}
	return p
}

func mustPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic %q", want)
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, want) {
			t.Fatalf("panic = %v, want %q", r, want)
		}
	}()
	fn()
}
