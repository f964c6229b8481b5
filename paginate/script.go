package paginate

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"textpager/document"
)

// PropsPatch lists properties set by setProps step, absent fields stay.
type PropsPatch struct {
	MarginTop    *int  `yaml:"margin_top,omitempty"`
	MarginBottom *int  `yaml:"margin_bottom,omitempty"`
	Width        *int  `yaml:"width,omitempty"`
	Height       *int  `yaml:"height,omitempty"`
	FontSize     *int  `yaml:"font_size,omitempty"`
	LineHeight   *int  `yaml:"line_height,omitempty"`
	Columns      *int  `yaml:"columns,omitempty"`
	StartIndex   *int  `yaml:"start_index,omitempty"`
	KeepTogether *bool `yaml:"keep_together,omitempty"`
	BreakBefore  *bool `yaml:"break_before,omitempty"`
}

func (pp *PropsPatch) apply(p *document.Props) {
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Margin.Top, pp.MarginTop)
	set(&p.Margin.Bottom, pp.MarginBottom)
	set(&p.Width, pp.Width)
	set(&p.Height, pp.Height)
	set(&p.FontSize, pp.FontSize)
	set(&p.LineHeight, pp.LineHeight)
	set(&p.Columns, pp.Columns)
	set(&p.StartIndex, pp.StartIndex)
	if pp.KeepTogether != nil {
		p.KeepTogether = *pp.KeepTogether
	}
	if pp.BreakBefore != nil {
		p.BreakBefore = *pp.BreakBefore
	}
}

// Step is single document edit. Target is element id, offsets are in runes
// of target paragraph text. Highlight without target uses document
// positions.
type Step struct {
	Op     Op          `yaml:"op"`
	Target string      `yaml:"target,omitempty"`
	Offset int         `yaml:"offset,omitempty"`
	Count  int         `yaml:"count,omitempty"`
	Text   string      `yaml:"text,omitempty"`
	Index  int         `yaml:"index,omitempty"`
	XML    string      `yaml:"xml,omitempty"`
	Props  *PropsPatch `yaml:"props,omitempty"`
}

func (s *Step) String() string {
	if s.Target == "" {
		return s.Op.String()
	}
	return s.Op.String() + " #" + s.Target
}

// Script is edit script read from YAML.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// ReadScript decodes script, unknown fields are errors.
func ReadScript(r io.Reader) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read edit script: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode edit script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() (err error) {
	for i, st := range s.Steps {
		switch {
		case !st.Op.IsValid():
			err = multierr.Append(err, fmt.Errorf("step %d: unknown operation %d", i, st.Op))
		case st.Target == "" && st.Op != OpHighlight:
			err = multierr.Append(err, fmt.Errorf("step %d: %s requires target", i, st.Op))
		case st.Op == OpSetProps && st.Props == nil:
			err = multierr.Append(err, fmt.Errorf("step %d: setProps requires props", i))
		case st.Op == OpInsertElement && st.XML == "":
			err = multierr.Append(err, fmt.Errorf("step %d: insertElement requires xml", i))
		}
	}
	return err
}

// Apply performs step on doc.
func (s *Step) Apply(doc *document.Document, loader *document.Loader) error {
	var target *document.Element
	if s.Target != "" {
		if target = doc.ElementByID(s.Target); target == nil {
			return fmt.Errorf("%s: element not found", s)
		}
	}

	var err error
	switch s.Op {
	case OpInsertText:
		err = doc.InsertText(target, s.Offset, s.Text)
	case OpDeleteText:
		err = doc.DeleteText(target, s.Offset, s.Count)
	case OpSetProps:
		err = doc.SetProps(target, s.Props.apply)
	case OpHighlight:
		start := s.Offset
		if target != nil {
			start += target.ContentStart()
		}
		err = doc.Highlight(start, s.Count)
	case OpInsertElement:
		var el *document.Element
		if el, err = loader.Fragment(doc, target, s.XML); err == nil {
			err = doc.InsertElement(target, s.Index, el)
		}
	case OpRemoveElement:
		err = doc.RemoveElement(target)
	default:
		// this should never happen
		panic(fmt.Sprintf("unexpected edit operation %d", s.Op))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", s, err)
	}
	return nil
}
