package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"textpager/css"
)

type subject struct {
	element, class, id string
	parent             *subject
}

func (s *subject) SelectorNames() (string, string, string) {
	return s.element, s.class, s.id
}

func (s *subject) SelectorParent() css.Subject {
	if s.parent == nil {
		return nil
	}
	return s.parent
}

func TestParser_ElementSelector(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`paragraph { margin-bottom: 1em; }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}

	rule := sheet.Rules[0]
	if rule.Selector.Element != "paragraph" {
		t.Errorf("expected element 'paragraph', got '%s'", rule.Selector.Element)
	}
	if rule.Selector.Class != "" {
		t.Errorf("expected no class, got '%s'", rule.Selector.Class)
	}

	val, ok := rule.GetProperty("margin-bottom")
	if !ok {
		t.Fatal("expected margin-bottom property")
	}
	if val.Value != 1 || val.Unit != "em" {
		t.Errorf("expected 1em, got %v%s", val.Value, val.Unit)
	}
}

func TestParser_Selectors(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	tests := []struct {
		css      string
		element  string
		class    string
		id       string
		ancestor string
	}{
		{`.note { margin: 0; }`, "", "note", "", ""},
		{`paragraph.note { margin: 0; }`, "paragraph", "note", "", ""},
		{`#intro { margin: 0; }`, "", "", "intro", ""},
		{`section#intro.wide { margin: 0; }`, "section", "wide", "intro", ""},
		{`list paragraph { margin: 0; }`, "paragraph", "", "", "list"},
	}

	for _, tt := range tests {
		t.Run(tt.css, func(t *testing.T) {
			sheet := p.Parse([]byte(tt.css))
			if len(sheet.Rules) != 1 {
				t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
			}
			sel := sheet.Rules[0].Selector
			if sel.Element != tt.element || sel.Class != tt.class || sel.ID != tt.id {
				t.Errorf("selector = %q/%q/%q, want %q/%q/%q", sel.Element, sel.Class, sel.ID, tt.element, tt.class, tt.id)
			}
			if tt.ancestor == "" {
				if sel.IsDescendant() {
					t.Errorf("unexpected ancestor %q", sel.Ancestor.Raw)
				}
			} else if !sel.IsDescendant() || sel.Ancestor.Element != tt.ancestor {
				t.Errorf("expected ancestor %q, got %+v", tt.ancestor, sel.Ancestor)
			}
		})
	}
}

func TestParser_GroupedSelectors(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`table, figure, floater { margin-top: 12px; }`))
	if len(sheet.Rules) != 3 {
		t.Fatalf("expected 3 rules for grouped selector, got %d", len(sheet.Rules))
	}

	expected := []string{"table", "figure", "floater"}
	for i, rule := range sheet.Rules {
		if rule.Selector.Element != expected[i] {
			t.Errorf("rule %d: expected element '%s', got '%s'", i, expected[i], rule.Selector.Element)
		}
	}
}

func TestParser_UnsupportedIsSkipped(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`
		@media print { paragraph { margin: 0; } }
		paragraph:first-child { margin: 0; }
		list > item { margin: 0; }
		paragraph { margin: 1px; }
	`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	if len(sheet.Warnings) != 3 {
		t.Errorf("expected 3 warnings, got %d: %v", len(sheet.Warnings), sheet.Warnings)
	}
}

func TestParser_NumericValues(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	tests := []struct {
		css     string
		prop    string
		value   float64
		unit    string
		keyword string
	}{
		{`p { width: 50%; }`, "width", 50, "%", ""},
		{`p { margin-top: 12px; }`, "margin-top", 12, "px", ""},
		{`p { margin-top: 12pt; }`, "margin-top", 12, "pt", ""},
		{`p { line-height: 1.5; }`, "line-height", 1.5, "", ""},
		{`p { margin-top: -0.5em; }`, "margin-top", -0.5, "em", ""},
		{`p { margin-top: .5em; }`, "margin-top", 0.5, "em", ""},
		{`p { margin-top: 12PX; }`, "margin-top", 12, "px", ""},
		{`p { page-break-before: always; }`, "page-break-before", 0, "", "always"},
		{`p { float: Left; }`, "float", 0, "", "left"},
	}

	for _, tt := range tests {
		t.Run(tt.css, func(t *testing.T) {
			sheet := p.Parse([]byte(tt.css))
			if len(sheet.Rules) != 1 {
				t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
			}

			val, ok := sheet.Rules[0].GetProperty(tt.prop)
			if !ok {
				t.Fatalf("expected property %s", tt.prop)
			}
			if val.Value != tt.value {
				t.Errorf("expected value %v, got %v", tt.value, val.Value)
			}
			if val.Unit != tt.unit {
				t.Errorf("expected unit '%s', got '%s'", tt.unit, val.Unit)
			}
			if tt.keyword != "" && val.Keyword != tt.keyword {
				t.Errorf("expected keyword '%s', got '%s'", tt.keyword, val.Keyword)
			}
		})
	}
}

func TestParser_ShorthandMargin(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`p { margin: 1em 2px 3pt 0; }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}

	val, ok := sheet.Rules[0].GetProperty("margin")
	if !ok {
		t.Fatal("expected margin property")
	}
	if val.Raw != "1em 2px 3pt 0" {
		t.Errorf("expected raw '1em 2px 3pt 0', got '%s'", val.Raw)
	}

	want := []int{16, 2, 4, 0}
	parts := val.Parts()
	if len(parts) != len(want) {
		t.Fatalf("Parts() returned %d values, want %d", len(parts), len(want))
	}
	for i, part := range parts {
		px, ok := part.Pixels(16)
		if !ok || px != want[i] {
			t.Errorf("part %d (%s) = %d, %v, want %d", i, part.Raw, px, ok, want[i])
		}
	}
}

func TestParser_Comments(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`
		/* This is a comment */
		paragraph {
			/* inline comment */
			margin-top: 1em; /* trailing comment */
		}
	`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}

	val, ok := sheet.Rules[0].GetProperty("margin-top")
	if !ok {
		t.Fatal("expected margin-top property")
	}
	if val.Value != 1 || val.Unit != "em" {
		t.Errorf("expected 1em, got %v%s", val.Value, val.Unit)
	}
}

func TestParser_ParseInline(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	props := p.ParseInline([]byte(`margin-top: 10px; Page-Break-Inside: avoid; column-count: 2`))
	if len(props) != 3 {
		t.Fatalf("expected 3 declarations, got %d: %v", len(props), props)
	}
	if v := props["margin-top"]; v.Value != 10 || v.Unit != "px" {
		t.Errorf("margin-top = %+v", v)
	}
	if v := props["page-break-inside"]; v.Keyword != "avoid" {
		t.Errorf("page-break-inside = %+v", v)
	}
	if v := props["column-count"]; v.Value != 2 {
		t.Errorf("column-count = %+v", v)
	}
}

func TestValue_IsNumeric(t *testing.T) {
	tests := []struct {
		val  css.Value
		want bool
	}{
		{css.Value{Raw: "1em", Value: 1, Unit: "em"}, true},
		{css.Value{Raw: "0", Value: 0}, true},
		{css.Value{Raw: "100%", Value: 100, Unit: "%"}, true},
		{css.Value{Raw: "-0.5em", Value: -0.5, Unit: "em"}, true},
		{css.Value{Raw: "avoid", Keyword: "avoid"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.val.Raw, func(t *testing.T) {
			if got := tt.val.IsNumeric(); got != tt.want {
				t.Errorf("Value{Raw: %q}.IsNumeric() = %v, want %v", tt.val.Raw, got, tt.want)
			}
		})
	}
}

func TestValue_Pixels(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"12px", 12, true},
		{"12pt", 16, true},
		{"1.5em", 24, true},
		{"2rem", 32, true},
		{"1in", 96, true},
		{"0", 0, true},
		{"50%", 0, false},
		{"10vw", 0, false},
		{"auto", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := css.ParseValue(tt.raw).Pixels(16)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Pixels(%q) = %d, %v, want %d, %v", tt.raw, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestStylesheet_Match(t *testing.T) {
	p := css.NewParser(zap.NewNop())
	sheet := p.Parse([]byte(`
		#p1 { margin-top: 3px; }
		.note { margin-top: 2px; }
		paragraph { margin-top: 1px; }
		list paragraph { margin-left: 5px; }
		table { margin-top: 9px; }
	`))

	list := &subject{element: "list"}
	item := &subject{element: "listItem", parent: list}
	para := &subject{element: "Paragraph", class: "x note", id: "p1", parent: item}

	rules := sheet.Match(para)
	var got []string
	for _, r := range rules {
		got = append(got, r.Selector.Raw)
	}
	want := "paragraph|list paragraph|.note|#p1"
	if strings.Join(got, "|") != want {
		t.Errorf("Match() = %v, want %s", got, want)
	}
}

func TestStylesheet_String(t *testing.T) {
	p := css.NewParser(zap.NewNop())
	sheet := p.Parse([]byte(`paragraph { padding-top: 1em; margin: 0; }`))

	output := sheet.String()
	if !strings.Contains(output, "paragraph {") {
		t.Errorf("expected selector in output, got:\n%s", output)
	}
	// properties are sorted alphabetically
	if strings.Index(output, "margin") > strings.Index(output, "padding-top") {
		t.Errorf("expected properties in alphabetical order:\n%s", output)
	}
}
