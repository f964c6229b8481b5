// Package engine defines contract between incremental pagination core and
// line/subpage layout engine. Core owns document structure and page
// resumption state, engine owns line breaking and column geometry.
package engine

import (
	"textpager/common"
	"textpager/handle"
)

// Result of a formatting call. Capacity and progress problems are reported
// through it and never as errors.
// ENUM(complete, broken, noProgress)
type Status int

// Engine formats paragraphs and subpages.
type Engine interface {
	// FormatParagraphFinite places as many lines as fit into available
	// height. When text does not fit completely, result carries break
	// handle to resume from on the next page.
	FormatParagraphFinite(c ParagraphConstraints) (ParagraphResult, error)
	// FormatParagraphBottomless places all remaining lines.
	FormatParagraphBottomless(c ParagraphConstraints) (ParagraphResult, error)
	// CreateSubpageFinite splits subpage into columns and calls back into
	// core to fill them one after another.
	CreateSubpageFinite(c SubpageConstraints, f TrackFormatter) (SubpageResult, error)
	// CreateSubpageBottomless formats subpage content in single track of
	// unlimited height.
	CreateSubpageBottomless(c SubpageConstraints, f TrackFormatter) (SubpageResult, error)
	// TransformRectangle maps rectangle between coordinate systems.
	TransformRectangle(from, to CoordinateSystem, r Rect) Rect
	// DestroyBreakRecord releases engine state behind break handle. Stale
	// and zero handles are ignored.
	DestroyBreakRecord(h handle.Handle) error
	// TextWidth measures single line string, used for list markers.
	TextWidth(s string) int
}

// ParagraphConstraints describe single paragraph formatting request.
type ParagraphConstraints struct {
	Text       []rune
	Width      int
	Height     int // available height, ignored when bottomless
	LineHeight int
	Direction  common.FlowDirection
	// Resume is break handle returned by previous call for the same text,
	// zero handle formats from the beginning.
	Resume handle.Handle
	// EmptyOK allows result without lines, otherwise at least one line is
	// placed even if it does not fit.
	EmptyOK bool
}

// Line is a laid out line of paragraph text. Start and End are rune offsets
// into paragraph text, X is offset from the paragraph start edge.
type Line struct {
	Start, End int
	X, Y       int
	Width      int
	Height     int
}

// ParagraphResult is outcome of paragraph formatting.
type ParagraphResult struct {
	Status Status
	Lines  []Line
	Extent Size
	// Break is non zero when Status is broken.
	Break handle.Handle
}

// Track is a single column of a subpage.
type Track struct {
	Index   int
	Rect    Rect // in subpage coordinates
	Finite  bool
	EmptyOK bool
}

// TrackResult is returned by core after filling a track.
type TrackResult struct {
	Status Status
	Height int
}

// TrackFormatter is implemented by core. Engine calls it for each track in
// order, core keeps its own resumption state between calls.
type TrackFormatter interface {
	FormatTrack(t Track) (TrackResult, error)
}

// SubpageConstraints describe subpage (figure, floater) to create.
type SubpageConstraints struct {
	Width     int
	Height    int // ignored when bottomless
	Columns   int
	ColumnGap int
	Direction common.FlowDirection
	EmptyOK   bool
}

// SubpageResult is outcome of subpage creation.
type SubpageResult struct {
	Status Status
	Height int    // tallest used track
	Tracks []Rect // tracks which received content
}
