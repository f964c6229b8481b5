package document

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"textpager/css"
)

// Change describes single document modification in positions of the
// document before the change.
type Change struct {
	Offset    int
	Added     int
	Removed   int
	Kind      ChangeKind
	Highlight bool
}

func (c Change) String() string {
	if c.Highlight {
		return fmt.Sprintf("highlight@%d+%d", c.Offset, c.Added)
	}
	return fmt.Sprintf("%s@%d+%d-%d", c.Kind, c.Offset, c.Added, c.Removed)
}

type subscriber struct {
	id int
	fn func(Change)
}

// Document is a flow document: a tree of elements with position mapping
// and change notifications. It is not safe for concurrent use.
type Document struct {
	root       *Element
	stamp      uint64
	subs       []subscriber
	nextSub    int
	Stylesheet *css.Stylesheet
}

var ErrNotAttached = errors.New("element does not belong to document")

// New wraps detached root element into a document.
func New(root *Element) *Document {
	if root == nil || root.kind != KindFlowDocument {
		panic("document root must be flowDocument element")
	}
	if root.parent != nil || root.doc != nil {
		panic("document root already attached")
	}
	d := &Document{root: root, stamp: 1}
	root.setDocument(d)
	return d
}

// Root returns root element.
func (d *Document) Root() *Element { return d.root }

// Len returns number of content positions of the whole document.
func (d *Document) Len() int { return d.root.Len() }

// Stamp changes on every modification.
func (d *Document) Stamp() uint64 { return d.stamp }

// Subscribe registers change listener, returned function unsubscribes it.
// Listeners are called synchronously after document has been modified.
func (d *Document) Subscribe(fn func(Change)) (unsubscribe func()) {
	d.nextSub++
	id := d.nextSub
	d.subs = append(d.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

func (d *Document) notify(c Change) {
	d.stamp++
	// listeners may unsubscribe while being notified
	subs := append([]subscriber(nil), d.subs...)
	for _, s := range subs {
		s.fn(c)
	}
}

func (d *Document) owns(el *Element) error {
	if el == nil || el.doc != d {
		return ErrNotAttached
	}
	return nil
}

// InsertText inserts text into paragraph at rune offset.
func (d *Document) InsertText(p *Element, offset int, text string) error {
	if err := d.owns(p); err != nil {
		return err
	}
	if !p.kind.HasText() {
		return fmt.Errorf("insert text: %s is not a paragraph", p.Path())
	}
	if offset < 0 || offset > len(p.text) {
		return fmt.Errorf("insert text: offset %d out of range [0,%d]", offset, len(p.text))
	}
	runes := []rune(norm.NFC.String(text))
	if len(runes) == 0 {
		return nil
	}
	pos := p.ContentStart() + offset

	p.text = append(p.text[:offset], append(runes, p.text[offset:]...)...)
	d.notify(Change{Offset: pos, Added: len(runes), Kind: ChangeKindAdded})
	return nil
}

// DeleteText removes count runes from paragraph starting at offset.
func (d *Document) DeleteText(p *Element, offset, count int) error {
	if err := d.owns(p); err != nil {
		return err
	}
	if !p.kind.HasText() {
		return fmt.Errorf("delete text: %s is not a paragraph", p.Path())
	}
	if offset < 0 || count < 0 || offset+count > len(p.text) {
		return fmt.Errorf("delete text: range [%d,%d) out of [0,%d)", offset, offset+count, len(p.text))
	}
	if count == 0 {
		return nil
	}
	pos := p.ContentStart() + offset

	p.text = append(p.text[:offset], p.text[offset+count:]...)
	d.notify(Change{Offset: pos, Removed: count, Kind: ChangeKindRemoved})
	return nil
}

// InsertElement attaches detached child to parent at index.
func (d *Document) InsertElement(parent *Element, index int, child *Element) error {
	if err := d.owns(parent); err != nil {
		return err
	}
	if child == nil || child.parent != nil || child.doc != nil {
		return errors.New("insert element: child must be detached")
	}
	if !parent.kind.Accepts(child.kind) {
		return fmt.Errorf("insert element: %s cannot contain %s", parent.Path(), child.kind)
	}
	if index < 0 || index > len(parent.children) {
		return fmt.Errorf("insert element: index %d out of range [0,%d]", index, len(parent.children))
	}
	pos := parent.ContentStart()
	if index < len(parent.children) {
		pos = parent.children[index].Start()
	} else if index > 0 {
		pos = parent.children[index-1].End()
	}

	parent.children = append(parent.children, nil)
	copy(parent.children[index+1:], parent.children[index:])
	parent.children[index] = child
	parent.reindex(index)
	child.parent = parent
	child.setDocument(d)
	d.notify(Change{Offset: pos, Added: child.Size(), Kind: ChangeKindAdded})
	return nil
}

// RemoveElement detaches element from the document.
func (d *Document) RemoveElement(el *Element) error {
	if err := d.owns(el); err != nil {
		return err
	}
	if el.parent == nil {
		return errors.New("remove element: root cannot be removed")
	}
	pos, size := el.Start(), el.Size()

	parent := el.parent
	parent.children = append(parent.children[:el.index], parent.children[el.index+1:]...)
	parent.reindex(el.index)
	el.parent = nil
	el.setDocument(nil)
	d.notify(Change{Offset: pos, Removed: size, Kind: ChangeKindRemoved})
	return nil
}

// SetProps modifies element properties. The whole element is reported as
// modified.
func (d *Document) SetProps(el *Element, modify func(*Props)) error {
	if err := d.owns(el); err != nil {
		return err
	}
	modify(&el.props)
	pos, size := el.Start(), el.Size()
	if el.parent == nil {
		pos, size = 0, el.Len()
	}
	d.notify(Change{Offset: pos, Added: size, Removed: size, Kind: ChangeKindPropertyModified})
	return nil
}

// Highlight reports render only change of [start, start+length).
func (d *Document) Highlight(start, length int) error {
	if start < 0 || length < 0 || start+length > d.Len() {
		return fmt.Errorf("highlight: range [%d,%d) out of [0,%d)", start, start+length, d.Len())
	}
	if length == 0 {
		return nil
	}
	d.notify(Change{Offset: start, Added: length, Removed: length, Kind: ChangeKindPropertyModified, Highlight: true})
	return nil
}

// Walk visits elements in document order until fn returns false.
func (d *Document) Walk(fn func(*Element) bool) {
	walk(d.root, fn)
}

func walk(el *Element, fn func(*Element) bool) bool {
	if !fn(el) {
		return false
	}
	for _, c := range el.children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// ElementByID finds element with the given id.
func (d *Document) ElementByID(id string) (found *Element) {
	d.Walk(func(el *Element) bool {
		if el.ID == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// ElementAt returns the deepest element whose span contains pos.
func (d *Document) ElementAt(pos int) *Element {
	el := d.root
	for {
		var next *Element
		for _, c := range el.children {
			if pos >= c.Start() && pos < c.End() {
				next = c
				break
			}
		}
		if next == nil {
			return el
		}
		el = next
	}
}

// ParagraphAt maps position to paragraph and rune offset in it. Position of
// the closing edge maps to the end of paragraph text.
func (d *Document) ParagraphAt(pos int) (*Element, int, bool) {
	el := d.ElementAt(pos)
	if !el.kind.HasText() || pos < el.ContentStart() {
		return nil, 0, false
	}
	return el, pos - el.ContentStart(), true
}
