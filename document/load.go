package document

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/beevik/etree"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"textpager/common"
	"textpager/css"
)

// LineSeparator replaces LineBreak elements in paragraph text, line breaking
// treats it as mandatory break.
const LineSeparator = '\u2028'

// Loader reads flow documents in XML form:
//
//	<FlowDocument dir="ltr">
//	  <Stylesheet>paragraph { margin-bottom: 4px }</Stylesheet>
//	  <Section>
//	    <Paragraph id="p1">Text <Run>more text</Run><LineBreak/></Paragraph>
//	    <List start="3"><ListItem><Paragraph>item</Paragraph></ListItem></List>
//	    <Table><TableRow><TableCell colspan="2">...</TableCell></TableRow></Table>
//	    <Figure width="100px" height="50px">...</Figure>
//	    <Floater float="left" width="80px">...</Floater>
//	  </Section>
//	</FlowDocument>
//
// Tag names are matched case insensitively.
type Loader struct {
	log      *zap.Logger
	fontSize int
	parser   *css.Parser
}

// NewLoader creates loader, fontSize is used to resolve em lengths at the
// root.
func NewLoader(fontSize int, log *zap.Logger) *Loader {
	return &Loader{
		log:      log.Named("loader"),
		fontSize: fontSize,
		parser:   css.NewParser(log),
	}
}

// Read parses document from r.
func (l *Loader) Read(r io.Reader) (*Document, error) {
	xml := etree.NewDocument()
	if _, err := xml.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse flow document: %w", err)
	}
	return l.Parse(xml)
}

// Parse builds document from parsed XML tree. Problems with individual
// attributes do not stop loading, they are combined and returned together
// with the document.
func (l *Loader) Parse(xml *etree.Document) (*Document, error) {
	if xml == nil {
		return nil, fmt.Errorf("nil document")
	}
	root := xml.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	if kind, err := tagKind(root.Tag); err != nil || kind != KindFlowDocument {
		return nil, fmt.Errorf("unexpected root element %q", root.Tag)
	}

	sheet := &css.Stylesheet{}
	for _, child := range root.ChildElements() {
		if strings.EqualFold(child.Tag, "stylesheet") {
			s := l.parser.Parse([]byte(child.Text()), "stylesheet")
			sheet.Rules = append(sheet.Rules, s.Rules...)
			sheet.Warnings = append(sheet.Warnings, s.Warnings...)
		}
	}

	st := newLoadState()
	top := l.build(root, KindFlowDocument, st)
	l.style(top, sheet, l.fontSize, st)

	doc := New(top)
	doc.Stylesheet = sheet
	l.log.Debug("Flow document loaded", zap.Int("length", doc.Len()), zap.Int("rules", len(sheet.Rules)))
	return doc, st.errs
}

// Fragment parses single element in XML form and styles it as if it was a
// child of parent. The result is detached and can be inserted into doc.
func (l *Loader) Fragment(doc *Document, parent *Element, data string) (*Element, error) {
	xml := etree.NewDocument()
	if err := xml.ReadFromString(data); err != nil {
		return nil, fmt.Errorf("unable to parse fragment: %w", err)
	}
	root := xml.Root()
	if root == nil {
		return nil, fmt.Errorf("fragment has no root element")
	}
	kind, err := tagKind(root.Tag)
	if err != nil {
		return nil, err
	}
	if !parent.kind.Accepts(kind) {
		return nil, fmt.Errorf("%s cannot contain %s", parent.Path(), kind)
	}

	st := newLoadState()
	el := l.build(root, kind, st)
	// temporary link, so descendant selectors see real ancestors
	el.parent = parent
	l.style(el, doc.Stylesheet, parent.EffectiveFontSize(l.fontSize), st)
	el.parent = nil
	return el, st.errs
}

// loadState keeps per element style sources until properties are computed.
type loadState struct {
	errs   error
	inline map[*Element]string
	attrs  map[*Element]map[string]css.Value
}

func newLoadState() *loadState {
	return &loadState{
		inline: make(map[*Element]string),
		attrs:  make(map[*Element]map[string]css.Value),
	}
}

func tagKind(tag string) (Kind, error) {
	if tag == "" {
		return 0, ErrInvalidKind
	}
	r, n := utf8.DecodeRuneInString(tag)
	return ParseKind(string(unicode.ToLower(r)) + tag[n:])
}

func (l *Loader) build(xel *etree.Element, kind Kind, st *loadState) *Element {
	el := NewElement(kind)
	el.ID = xel.SelectAttrValue("id", "")
	el.Class = xel.SelectAttrValue("class", "")
	if style := xel.SelectAttrValue("style", ""); style != "" {
		st.inline[el] = style
	}
	l.attributes(xel, el, st)

	if kind.HasText() {
		var sb strings.Builder
		collectText(xel, &sb)
		el.text = []rune(norm.NFC.String(collapseSpaces(sb.String())))
		return el
	}

	for _, child := range xel.ChildElements() {
		if kind == KindFlowDocument && strings.EqualFold(child.Tag, "stylesheet") {
			continue
		}
		ck, err := tagKind(child.Tag)
		if err != nil {
			l.log.Warn("Unexpected tag, ignoring", zap.String("parent", xel.Tag), zap.String("tag", child.Tag))
			continue
		}
		// row groups are transparent
		if kind == KindTable && ck == KindTableRowGroup {
			for _, row := range child.ChildElements() {
				if rk, err := tagKind(row.Tag); err == nil && rk == KindTableRow {
					el.Append(l.build(row, rk, st))
				} else {
					l.log.Warn("Unexpected tag in row group, ignoring", zap.String("tag", row.Tag))
				}
			}
			continue
		}
		if !kind.Accepts(ck) {
			l.log.Warn("Misplaced element, ignoring", zap.Stringer("parent", kind), zap.Stringer("child", ck))
			continue
		}
		el.Append(l.build(child, ck, st))
	}
	return el
}

func collectText(xel *etree.Element, sb *strings.Builder) {
	for _, node := range xel.Child {
		switch token := node.(type) {
		case *etree.CharData:
			sb.WriteString(token.Data)
		case *etree.Element:
			if strings.EqualFold(token.Tag, "linebreak") {
				sb.WriteRune(LineSeparator)
				continue
			}
			collectText(token, sb)
		}
	}
}

// collapseSpaces folds XML formatting whitespace the way HTML does.
func collapseSpaces(s string) string {
	var sb strings.Builder
	space, last := false, LineSeparator
	for _, r := range s {
		if r != LineSeparator && unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && last != LineSeparator && r != LineSeparator {
			sb.WriteByte(' ')
		}
		space, last = false, r
		sb.WriteRune(r)
	}
	return sb.String()
}

func (l *Loader) attributes(xel *etree.Element, el *Element, st *loadState) {
	for _, attr := range xel.Attr {
		var err error
		switch strings.ToLower(attr.Key) {
		case "colspan":
			var n int
			if n, err = strconv.Atoi(attr.Value); err == nil && n < 1 {
				err = fmt.Errorf("must be positive")
			}
			if err == nil {
				el.props.ColumnSpan = n
			}
		case "start":
			var n int
			if n, err = strconv.Atoi(attr.Value); err == nil {
				el.props.StartIndex = n
			}
		case "dir":
			var dir common.FlowDirection
			if dir, err = common.ParseFlowDirection(strings.ToLower(attr.Value)); err == nil {
				el.props.Direction, el.props.DirectionSet = dir, true
			}
		case "float":
			var side FloatSide
			if side, err = ParseFloatSide(strings.ToLower(attr.Value)); err == nil {
				el.props.Float = side
			}
		case "width", "height", "columns":
			// lengths need em, resolved together with styles
			name := strings.ToLower(attr.Key)
			if name == "columns" {
				name = "column-count"
			}
			if st.attrs[el] == nil {
				st.attrs[el] = make(map[string]css.Value)
			}
			st.attrs[el][name] = css.ParseValue(attr.Value)
		}
		if err != nil {
			multierr.AppendInto(&st.errs, fmt.Errorf("%s: attribute %s=%q: %w", el.kind, attr.Key, attr.Value, err))
		}
	}
}

// style computes properties: presentational attributes, then stylesheet
// rules by specificity, then inline style.
func (l *Loader) style(el *Element, sheet *css.Stylesheet, em int, st *loadState) {
	apply := func(decls map[string]css.Value, source string) {
		for _, w := range el.props.ApplyAll(decls, em) {
			l.log.Warn("Unsupported style declaration, ignoring", zap.String("element", el.Path()), zap.String("source", source), zap.String("problem", w))
		}
	}
	if decls, ok := st.attrs[el]; ok {
		apply(decls, "attributes")
	}
	for _, rule := range sheet.Match(el) {
		apply(rule.Properties, rule.Selector.Raw)
	}
	if inline, ok := st.inline[el]; ok {
		apply(l.parser.ParseInline([]byte(inline)), "style")
	}

	em = el.EffectiveFontSize(em)
	for _, c := range el.children {
		l.style(c, sheet, em, st)
	}
}
