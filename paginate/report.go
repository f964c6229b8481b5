package paginate

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"textpager/common"
	"textpager/flow"
	"textpager/utils/debug"
)

// PageInfo summarizes single page.
type PageInfo struct {
	Index     int    `yaml:"index"`
	Start     int    `yaml:"start"`
	End       int    `yaml:"end"`
	Lines     int    `yaml:"lines"`
	Height    int    `yaml:"height"`
	Dependent int    `yaml:"dependent"`
	Break     string `yaml:"break,omitempty"`
}

// StepInfo reports result of edit script step.
type StepInfo struct {
	Step    int         `yaml:"step"`
	Op      string      `yaml:"op"`
	Changed []PageRange `yaml:"changed,omitempty"`
	Pages   int         `yaml:"pages"`
}

// Report is pagination result.
type Report struct {
	Source    string     `yaml:"source"`
	Session   string     `yaml:"session"`
	Length    int        `yaml:"length"`
	Complete  bool       `yaml:"complete"`
	Formatted int        `yaml:"formatted"`
	Reused    int        `yaml:"reused"`
	Pages     []PageInfo `yaml:"pages"`
	Steps     []StepInfo `yaml:"steps,omitempty"`
}

func countLines(p *flow.Page) int {
	n := 0
	p.Walk(func(cl *flow.ParaClient, _ int) bool {
		n += len(cl.Lines)
		return true
	})
	return n
}

// Report collects summary of every known page. Pages evicted from cache are
// formatted again.
func (s *Session) Report(name string, steps []StepInfo) (*Report, error) {
	cache, table := s.Pager.Cache(), s.Pager.Table()
	stats := cache.Stats()
	r := &Report{
		Source:    name,
		Session:   cache.Session().String(),
		Length:    s.Doc.Len(),
		Complete:  table.IsClean(),
		Formatted: stats.Formatted,
		Reused:    stats.Reused,
		Steps:     steps,
	}
	for i := range table.Count() {
		p, err := s.Pager.FormatPage(i)
		if err != nil {
			return nil, err
		}
		info := PageInfo{Index: i, Lines: countLines(p), Height: p.Size.H, Dependent: p.DependentMax}
		if n := len(p.Segments); n > 0 {
			info.Start, info.End = p.Segments[0].Start, p.Segments[n-1].End
		}
		if p.Break != nil {
			info.Break = p.Break.String()
		}
		r.Pages = append(r.Pages, info)
	}
	return r, nil
}

// PagesDump writes every page as text tree.
func (s *Session) PagesDump() (*debug.TreeWriter, error) {
	tw := debug.NewTreeWriter()
	for i := range s.Pager.Table().Count() {
		p, err := s.Pager.FormatPage(i)
		if err != nil {
			return nil, err
		}
		tw.Page(i, p)
	}
	return tw, nil
}

// DirtyDump writes changes not yet absorbed by formatting.
func (s *Session) DirtyDump() *debug.TreeWriter {
	tw := debug.NewTreeWriter()
	tw.DirtyRanges(0, s.Pager.Cache().DirtyRanges())
	return tw
}

// ElementsDump writes element index of the document.
func (s *Session) ElementsDump() *debug.TreeWriter {
	tw := debug.NewTreeWriter()
	tw.Line(0, "elements:")
	tw.Elements(1, s.Doc)
	return tw
}

// Dump writes every page as text tree, followed by dirty ranges and element
// index.
func (s *Session) Dump() (string, error) {
	pages, err := s.PagesDump()
	if err != nil {
		return "", err
	}
	return pages.String() + s.DirtyDump().String() + s.ElementsDump().String(), nil
}

// Encode renders report in requested format.
func (s *Session) Encode(r *Report, format common.ReportFormat) ([]byte, error) {
	switch format {
	case common.ReportFormatYaml:
		data, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("unable to marshal report: %w", err)
		}
		return data, nil
	case common.ReportFormatText:
		dump, err := s.Dump()
		if err != nil {
			return nil, err
		}
		tw := debug.NewTreeWriter()
		tw.Line(0, "source: %s", r.Source)
		tw.Line(0, "pages: %d complete: %v", len(r.Pages), r.Complete)
		for _, st := range r.Steps {
			tw.Line(1, "step %d %s changed %v, %d pages", st.Step, st.Op, st.Changed, st.Pages)
		}
		return []byte(tw.String() + dump), nil
	default:
		// this should never happen
		panic("unsupported report format requested")
	}
}
