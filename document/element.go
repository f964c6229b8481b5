package document

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"textpager/common"
	"textpager/css"
)

// Element is a node of the flow document tree. Opening and closing edges of
// every element take one position each, paragraph text takes one position
// per rune.
type Element struct {
	doc      *Document
	parent   *Element
	index    int // in parent children
	kind     Kind
	children []*Element
	text     []rune

	ID    string
	Class string
	props Props

	// position cache, valid while stamps match document stamp
	sizeStamp  uint64
	startStamp uint64
	start      int
	size       int
}

// NewElement creates detached element of the given kind.
func NewElement(kind Kind) *Element {
	if !kind.IsValid() {
		panic(fmt.Sprintf("invalid element kind %d", kind))
	}
	return &Element{kind: kind, props: defaultProps(kind)}
}

// NewParagraph creates detached paragraph holding NFC normalized text.
func NewParagraph(text string) *Element {
	el := NewElement(KindParagraph)
	el.text = []rune(norm.NFC.String(text))
	return el
}

// Append adds child to detached element, it is used to build trees before
// they are attached to a document.
func (e *Element) Append(children ...*Element) *Element {
	if e.doc != nil {
		panic("append to attached element, use Document.InsertElement")
	}
	for _, c := range children {
		if c.parent != nil || c.doc != nil {
			panic("element already has parent")
		}
		if !e.kind.Accepts(c.kind) {
			panic(fmt.Sprintf("%s cannot contain %s", e.kind, c.kind))
		}
		c.parent = e
		c.index = len(e.children)
		e.children = append(e.children, c)
	}
	return e
}

// Kind returns element kind.
func (e *Element) Kind() Kind { return e.kind }

// Parent returns parent element or nil for the root and detached elements.
func (e *Element) Parent() *Element { return e.parent }

// Document returns owning document or nil for detached elements.
func (e *Element) Document() *Document { return e.doc }

// Children returns direct children. Callers must not modify the slice.
func (e *Element) Children() []*Element { return e.children }

// Index returns position of the element among its siblings.
func (e *Element) Index() int { return e.index }

// NextSibling returns following sibling or nil.
func (e *Element) NextSibling() *Element {
	if e.parent == nil || e.index+1 >= len(e.parent.children) {
		return nil
	}
	return e.parent.children[e.index+1]
}

// FirstChild returns first child or nil.
func (e *Element) FirstChild() *Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

// Text returns paragraph text.
func (e *Element) Text() string { return string(e.text) }

// TextRunes returns paragraph text as runes. Callers must not modify it.
func (e *Element) TextRunes() []rune { return e.text }

// Props returns properties of the element.
func (e *Element) Props() Props { return e.props }

// EffectiveFontSize resolves inherited font size, def is used when neither
// element nor its ancestors set it.
func (e *Element) EffectiveFontSize(def int) int {
	for el := e; el != nil; el = el.parent {
		if el.props.FontSize > 0 {
			return el.props.FontSize
		}
	}
	return def
}

// EffectiveLineHeight resolves inherited line height.
func (e *Element) EffectiveLineHeight(def int) int {
	for el := e; el != nil; el = el.parent {
		if el.props.LineHeight > 0 {
			return el.props.LineHeight
		}
	}
	return def
}

// EffectiveDirection resolves inherited flow direction.
func (e *Element) EffectiveDirection(def common.FlowDirection) common.FlowDirection {
	for el := e; el != nil; el = el.parent {
		if el.props.DirectionSet {
			return el.props.Direction
		}
	}
	return def
}

// SelectorNames implements css.Subject.
func (e *Element) SelectorNames() (element, class, id string) {
	return e.kind.String(), e.Class, e.ID
}

// SelectorParent implements css.Subject.
func (e *Element) SelectorParent() css.Subject {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Size returns number of positions element occupies including its edges.
func (e *Element) Size() int {
	if e.doc != nil && e.sizeStamp == e.doc.stamp {
		return e.size
	}
	size := 2
	if e.kind.HasText() {
		size += len(e.text)
	} else {
		for _, c := range e.children {
			size += c.Size()
		}
	}
	if e.doc != nil {
		e.size, e.sizeStamp = size, e.doc.stamp
	}
	return size
}

// Len returns number of content positions, edges excluded.
func (e *Element) Len() int { return e.Size() - 2 }

// Start returns position of the opening edge. Root starts at -1 so its
// content occupies [0, Len()). Detached elements start at -1 as well.
func (e *Element) Start() int {
	if e.parent == nil || e.doc == nil {
		return -1
	}
	if e.startStamp == e.doc.stamp {
		return e.start
	}
	// all siblings are computed in one pass
	pos := e.parent.ContentStart()
	for _, c := range e.parent.children {
		c.start, c.startStamp = pos, e.doc.stamp
		pos += c.Size()
	}
	return e.start
}

// ContentStart returns position of the first content position.
func (e *Element) ContentStart() int { return e.Start() + 1 }

// ContentEnd returns position of the closing edge.
func (e *Element) ContentEnd() int { return e.Start() + e.Size() - 1 }

// End returns position following the closing edge.
func (e *Element) End() int { return e.Start() + e.Size() }

// Path returns slash separated kind path for diagnostics.
func (e *Element) Path() string {
	var parts []string
	for el := e; el != nil; el = el.parent {
		name := el.kind.String()
		if el.ID != "" {
			name += "#" + el.ID
		} else if el.parent != nil {
			name += fmt.Sprintf("[%d]", el.index)
		}
		parts = append(parts, name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

func (e *Element) String() string {
	return fmt.Sprintf("%s[%d,%d)", e.Path(), e.Start(), e.End())
}

func (e *Element) setDocument(doc *Document) {
	e.doc = doc
	e.sizeStamp, e.startStamp = 0, 0
	for _, c := range e.children {
		c.setDocument(doc)
	}
}

func (e *Element) reindex(from int) {
	for i := from; i < len(e.children); i++ {
		e.children[i].index = i
	}
}
