package document

import (
	"fmt"
	"slices"
	"strings"

	"textpager/common"
	"textpager/css"
	"textpager/margin"
)

// Insets holds four box sides in layout units.
type Insets struct {
	Top, Right, Bottom, Left int
}

// Horizontal returns sum of left and right sides.
func (i Insets) Horizontal() int { return i.Left + i.Right }

// Vertical returns sum of top and bottom sides.
func (i Insets) Vertical() int { return i.Top + i.Bottom }

// Add returns side-wise sum of two insets.
func (i Insets) Add(o Insets) Insets {
	return Insets{Top: i.Top + o.Top, Right: i.Right + o.Right, Bottom: i.Bottom + o.Bottom, Left: i.Left + o.Left}
}

func (i Insets) String() string {
	return fmt.Sprintf("%d %d %d %d", i.Top, i.Right, i.Bottom, i.Left)
}

// Props are resolved layout properties of an element. Lengths are in layout
// units, zero Width, Height, LineHeight and FontSize mean "inherit or auto".
type Props struct {
	Margin  Insets
	Padding Insets
	Border  Insets

	Width      int
	Height     int
	FontSize   int
	LineHeight int

	BreakBefore  bool
	KeepTogether bool

	Columns    int
	ColumnGap  int
	ColumnSpan int // table cells only
	Float      FloatSide
	StartIndex int // first list item number

	Direction    common.FlowDirection
	DirectionSet bool
}

// TopEdge describes top edge for margin collapsing.
func (p *Props) TopEdge() margin.Edge {
	return margin.Edge{Margin: p.Margin.Top, BorderPadding: p.Padding.Top + p.Border.Top}
}

// BottomEdge describes bottom edge for margin collapsing.
func (p *Props) BottomEdge() margin.Edge {
	return margin.Edge{Margin: p.Margin.Bottom, BorderPadding: p.Padding.Bottom + p.Border.Bottom}
}

// Insets returns combined padding and border, content box is inside of it.
func (p *Props) Insets() Insets {
	return p.Padding.Add(p.Border)
}

// defaultProps returns properties elements of kind start with before any
// style is applied.
func defaultProps(k Kind) Props {
	p := Props{ColumnSpan: 1, StartIndex: 1}
	if k == KindTableCell {
		p.Padding = Insets{Top: 1, Right: 2, Bottom: 1, Left: 2}
	}
	return p
}

// Apply sets single CSS declaration. em is used to resolve relative lengths.
// Unknown properties and values which cannot be resolved are reported as
// errors and leave props unchanged.
func (p *Props) Apply(name string, v css.Value, em int) error {
	length := func() (int, error) {
		px, ok := v.Pixels(float64(em))
		if !ok {
			return 0, fmt.Errorf("%s: unsupported length %q", name, v.Raw)
		}
		return px, nil
	}
	set := func(dst *int) error {
		px, err := length()
		if err != nil {
			return err
		}
		*dst = px
		return nil
	}

	switch name {
	case "margin":
		return applyBox(&p.Margin, v, em, name)
	case "padding":
		return applyBox(&p.Padding, v, em, name)
	case "border-width":
		return applyBox(&p.Border, v, em, name)
	case "margin-top":
		return set(&p.Margin.Top)
	case "margin-right":
		return set(&p.Margin.Right)
	case "margin-bottom":
		return set(&p.Margin.Bottom)
	case "margin-left":
		return set(&p.Margin.Left)
	case "padding-top":
		return set(&p.Padding.Top)
	case "padding-right":
		return set(&p.Padding.Right)
	case "padding-bottom":
		return set(&p.Padding.Bottom)
	case "padding-left":
		return set(&p.Padding.Left)
	case "border-top-width":
		return set(&p.Border.Top)
	case "border-right-width":
		return set(&p.Border.Right)
	case "border-bottom-width":
		return set(&p.Border.Bottom)
	case "border-left-width":
		return set(&p.Border.Left)
	case "width":
		if v.Keyword == "auto" {
			p.Width = 0
			return nil
		}
		return set(&p.Width)
	case "height":
		if v.Keyword == "auto" {
			p.Height = 0
			return nil
		}
		return set(&p.Height)
	case "font-size":
		return set(&p.FontSize)
	case "line-height":
		if v.Keyword == "normal" {
			p.LineHeight = 0
			return nil
		}
		if v.Unit == "" && v.IsNumeric() {
			// unitless multiplier
			p.LineHeight = int(v.Value*float64(em) + 0.5)
			return nil
		}
		return set(&p.LineHeight)
	case "page-break-before", "break-before":
		switch v.Keyword {
		case "always", "page", "column":
			p.BreakBefore = true
		case "auto", "avoid":
			p.BreakBefore = false
		default:
			return fmt.Errorf("%s: unsupported value %q", name, v.Raw)
		}
	case "page-break-inside", "break-inside":
		switch v.Keyword {
		case "avoid", "avoid-page":
			p.KeepTogether = true
		case "auto":
			p.KeepTogether = false
		default:
			return fmt.Errorf("%s: unsupported value %q", name, v.Raw)
		}
	case "column-count":
		if v.Keyword == "auto" {
			p.Columns = 0
			return nil
		}
		if !v.IsNumeric() || v.Unit != "" || v.Value < 1 {
			return fmt.Errorf("%s: unsupported value %q", name, v.Raw)
		}
		p.Columns = int(v.Value)
	case "column-gap":
		if v.Keyword == "normal" {
			p.ColumnGap = em
			return nil
		}
		return set(&p.ColumnGap)
	case "float":
		side, err := ParseFloatSide(v.Keyword)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		p.Float = side
	case "direction":
		dir, err := common.ParseFlowDirection(v.Keyword)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		p.Direction, p.DirectionSet = dir, true
	case "counter-reset":
		// only "list-item N" form is understood
		parts := v.Parts()
		if len(parts) != 2 || parts[0].Keyword != "list-item" || !parts[1].IsNumeric() {
			return fmt.Errorf("%s: unsupported value %q", name, v.Raw)
		}
		p.StartIndex = int(parts[1].Value) + 1
	default:
		return fmt.Errorf("unsupported property %q", name)
	}
	return nil
}

// applyBox expands 1 to 4 value shorthand the CSS way.
func applyBox(dst *Insets, v css.Value, em int, name string) error {
	parts := v.Parts()
	px := make([]int, 0, len(parts))
	for _, part := range parts {
		n, ok := part.Pixels(float64(em))
		if !ok {
			return fmt.Errorf("%s: unsupported length %q", name, part.Raw)
		}
		px = append(px, n)
	}
	switch len(px) {
	case 1:
		*dst = Insets{px[0], px[0], px[0], px[0]}
	case 2:
		*dst = Insets{px[0], px[1], px[0], px[1]}
	case 3:
		*dst = Insets{px[0], px[1], px[2], px[1]}
	case 4:
		*dst = Insets{px[0], px[1], px[2], px[3]}
	default:
		return fmt.Errorf("%s: expected 1 to 4 values, got %d", name, len(px))
	}
	return nil
}

// ApplyAll applies declarations in deterministic order with font-size going
// first so that em lengths of the same block see it. Errors of individual
// declarations are collected and returned as warnings.
func (p *Props) ApplyAll(decls map[string]css.Value, em int) (warnings []string) {
	if fs, ok := decls["font-size"]; ok {
		if err := p.Apply("font-size", fs, em); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	if p.FontSize > 0 {
		em = p.FontSize
	}
	for _, name := range sortedNames(decls) {
		if name == "font-size" {
			continue
		}
		if err := p.Apply(name, decls[name], em); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	return warnings
}

func sortedNames(decls map[string]css.Value) []string {
	names := make([]string, 0, len(decls))
	for name := range decls {
		names = append(names, name)
	}
	// shorthands before longhands so "margin: 0; margin-top: 4px" works
	slices.SortFunc(names, func(a, b string) int {
		sa, sb := strings.Count(a, "-"), strings.Count(b, "-")
		if sa != sb {
			return sa - sb
		}
		return strings.Compare(a, b)
	})
	return names
}
