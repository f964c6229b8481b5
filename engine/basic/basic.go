// Package basic is reference layout engine: monospaced metrics, UAX #14 line
// breaking and equal width columns.
package basic

import (
	"bufio"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/uax/uax14"
	"go.uber.org/zap"

	"textpager/engine"
	"textpager/handle"
)

var setupOnce sync.Once

// Engine implements engine.Engine. Break records are rune offsets kept in a
// generation checked table. It is not safe for concurrent use.
type Engine struct {
	log       *zap.Logger
	charWidth int
	records   handle.Table[int]
}

var _ engine.Engine = (*Engine)(nil)

// New creates engine, charWidth is width of a single column cell in layout
// units, wide East Asian characters take two cells.
func New(charWidth int, log *zap.Logger) *Engine {
	setupOnce.Do(grapheme.SetupGraphemeClasses)
	if charWidth <= 0 {
		charWidth = 1
	}
	return &Engine{log: log.Named("engine"), charWidth: charWidth}
}

// LiveRecords returns number of break records not yet destroyed.
func (e *Engine) LiveRecords() int {
	return e.records.Len()
}

// TextWidth implements engine.Engine.
func (e *Engine) TextWidth(s string) int {
	if s == "" {
		return 0
	}
	return uax11.StringWidth(grapheme.StringFromString(s), uax11.LatinContext) * e.charWidth
}

// DestroyBreakRecord implements engine.Engine.
func (e *Engine) DestroyBreakRecord(h handle.Handle) error {
	if h.IsZero() {
		return nil
	}
	if !e.records.Release(h) {
		e.log.Debug("Break record already destroyed", zap.Stringer("handle", h))
	}
	return nil
}

// TransformRectangle implements engine.Engine.
func (e *Engine) TransformRectangle(from, to engine.CoordinateSystem, r engine.Rect) engine.Rect {
	return engine.Transform(from, to, r)
}

// FormatParagraphFinite implements engine.Engine.
func (e *Engine) FormatParagraphFinite(c engine.ParagraphConstraints) (engine.ParagraphResult, error) {
	return e.formatParagraph(c, true)
}

// FormatParagraphBottomless implements engine.Engine.
func (e *Engine) FormatParagraphBottomless(c engine.ParagraphConstraints) (engine.ParagraphResult, error) {
	return e.formatParagraph(c, false)
}

func (e *Engine) formatParagraph(c engine.ParagraphConstraints, finite bool) (engine.ParagraphResult, error) {
	from := 0
	if !c.Resume.IsZero() {
		from = e.records.MustGet(c.Resume)
	}
	lh := max(c.LineHeight, 1)
	lines := e.breakLines(c.Text, from, c.Width)

	fit := len(lines)
	if finite {
		fit = min(fit, max(c.Height, 0)/lh)
		if fit == 0 {
			if c.EmptyOK {
				return engine.ParagraphResult{Status: engine.StatusNoProgress}, nil
			}
			// at least one line has to go somewhere
			fit = 1
		}
	}

	res := engine.ParagraphResult{Status: engine.StatusComplete, Lines: lines[:fit]}
	for i := range res.Lines {
		l := &res.Lines[i]
		l.Y, l.Height = i*lh, lh
		if c.Direction.IsRTL() {
			l.X = c.Width - l.Width
		}
	}
	res.Extent = engine.Size{W: c.Width, H: fit * lh}
	if fit < len(lines) {
		res.Status = engine.StatusBroken
		res.Break = e.records.Alloc(lines[fit].Start)
	}

	e.log.Debug("Paragraph formatted",
		zap.Int("from", from),
		zap.Int("lines", fit),
		zap.Stringer("status", res.Status),
		zap.Stringer("break", res.Break),
	)
	return res, nil
}

func isHardBreak(r rune) bool {
	return r == '\n' || r == '\u2028' || r == '\u2029'
}

// breakLines splits text[from:] into lines not wider than width, unless
// single unbreakable fragment is wider. Hard break characters end the line
// they belong to.
func (e *Engine) breakLines(text []rune, from, width int) []engine.Line {
	var lines []engine.Line
	start := from
	for {
		end := start
		for end < len(text) && !isHardBreak(text[end]) {
			end++
		}
		lines = e.wrap(text, start, end, width, lines)
		if end >= len(text) {
			return lines
		}
		lines[len(lines)-1].End = end + 1
		start = end + 1
		if start >= len(text) {
			return lines
		}
	}
}

// wrap is first fit over UAX #14 break opportunities.
func (e *Engine) wrap(text []rune, start, end, width int, lines []engine.Line) []engine.Line {
	if start == end {
		return append(lines, engine.Line{Start: start, End: end})
	}

	seg := segment.NewSegmenter(uax14.NewLineWrap())
	seg.Init(bufio.NewReader(strings.NewReader(string(text[start:end]))))

	lineStart, pos := start, start
	lineWidth, contentWidth := 0, 0
	for seg.Next() {
		frag := string(seg.Bytes())
		visible := e.TextWidth(strings.TrimRight(frag, " \t"))
		if pos > lineStart && lineWidth+visible > width {
			lines = append(lines, engine.Line{Start: lineStart, End: pos, Width: contentWidth})
			lineStart, lineWidth = pos, 0
		}
		contentWidth = lineWidth + visible
		lineWidth += e.TextWidth(frag)
		pos += utf8.RuneCountInString(frag)
	}
	return append(lines, engine.Line{Start: lineStart, End: end, Width: contentWidth})
}

// CreateSubpageFinite implements engine.Engine.
func (e *Engine) CreateSubpageFinite(c engine.SubpageConstraints, f engine.TrackFormatter) (engine.SubpageResult, error) {
	n := max(c.Columns, 1)
	gap := max(c.ColumnGap, 0)
	colW := (c.Width - gap*(n-1)) / n
	if colW <= 0 {
		n, gap, colW = 1, 0, c.Width
	}

	logical := engine.CoordinateSystem{Width: c.Width, Direction: c.Direction}
	physical := engine.CoordinateSystem{Width: c.Width}

	res := engine.SubpageResult{Status: engine.StatusComplete}
	for i := range n {
		r := engine.Transform(logical, physical, engine.Rect{X: i * (colW + gap), W: colW, H: c.Height})
		tr, err := f.FormatTrack(engine.Track{Index: i, Rect: r, Finite: true, EmptyOK: c.EmptyOK || i > 0})
		if err != nil {
			return res, err
		}
		if tr.Status == engine.StatusNoProgress {
			if i == 0 {
				res.Status = engine.StatusNoProgress
			}
			// remaining content goes to the next page
			break
		}
		r.H = tr.Height
		res.Tracks = append(res.Tracks, r)
		res.Height = max(res.Height, tr.Height)
		res.Status = tr.Status
		if tr.Status == engine.StatusComplete {
			break
		}
	}
	e.log.Debug("Subpage formatted", zap.Int("columns", n), zap.Int("used", len(res.Tracks)), zap.Stringer("status", res.Status))
	return res, nil
}

// CreateSubpageBottomless implements engine.Engine. Columns are not
// balanced, all content goes into single track.
func (e *Engine) CreateSubpageBottomless(c engine.SubpageConstraints, f engine.TrackFormatter) (engine.SubpageResult, error) {
	r := engine.Rect{W: c.Width}
	tr, err := f.FormatTrack(engine.Track{Rect: r, EmptyOK: c.EmptyOK})
	if err != nil {
		return engine.SubpageResult{}, err
	}
	r.H = tr.Height
	res := engine.SubpageResult{Status: tr.Status, Height: tr.Height}
	if tr.Status != engine.StatusNoProgress {
		res.Tracks = []engine.Rect{r}
	}
	return res, nil
}
