package flow

import (
	"go.uber.org/zap"

	"textpager/common"
	"textpager/engine"
)

// trackFormatter fills subpage tracks with content of a single node,
// resuming every next track where the previous one stopped. Incoming record
// belongs to the caller, records produced between tracks are disposed as
// soon as they are consumed.
type trackFormatter struct {
	c     *Cache
	root  NodeID
	width int
	dir   common.FlowDirection

	pending *BreakRecord
	owned   bool

	clients []*ParaClient
	tracks  []engine.Rect // physical, subpage coordinates
	done    bool
}

var _ engine.TrackFormatter = (*trackFormatter)(nil)

func newTrackFormatter(c *Cache, root NodeID, resume *BreakRecord, width int, dir common.FlowDirection) *trackFormatter {
	return &trackFormatter{c: c, root: root, pending: resume, width: width, dir: dir}
}

// FormatTrack implements engine.TrackFormatter.
func (t *trackFormatter) FormatTrack(tr engine.Track) (engine.TrackResult, error) {
	if t.done {
		return engine.TrackResult{Status: engine.StatusComplete}, nil
	}
	out, err := t.c.format(t.root, fmtInput{
		width:   max(tr.Rect.W, 1),
		height:  tr.Rect.H,
		finite:  tr.Finite,
		emptyOK: tr.EmptyOK,
		resume:  t.pending,
		dir:     t.dir,
	})
	if err != nil {
		return engine.TrackResult{}, err
	}
	if out.status == engine.StatusNoProgress {
		return engine.TrackResult{Status: engine.StatusNoProgress}, nil
	}

	if t.owned {
		if err := t.pending.Dispose(t.c.eng); err != nil {
			t.c.log.Warn("Unable to release break record", zap.Error(err))
		}
	}
	t.pending, t.owned = out.br, out.br != nil
	t.done = out.status == engine.StatusComplete

	r := tr.Rect
	r.H = out.height
	t.clients = append(t.clients, out.client)
	t.tracks = append(t.tracks, r)
	return engine.TrackResult{Status: out.status, Height: out.height}, nil
}

// take hands outgoing record over to the caller.
func (t *trackFormatter) take() *BreakRecord {
	if !t.owned {
		return nil
	}
	br := t.pending
	t.pending, t.owned = nil, false
	return br
}

// release disposes record nobody took.
func (t *trackFormatter) release() {
	if br := t.take(); br != nil {
		if err := br.Dispose(t.c.eng); err != nil {
			t.c.log.Warn("Unable to release break record", zap.Error(err))
		}
	}
}

// logical returns track rectangle i in flow direction of the subpage.
func (t *trackFormatter) logical(i int) engine.Rect {
	physical := engine.CoordinateSystem{Width: t.width}
	return engine.Transform(physical, engine.CoordinateSystem{Width: t.width, Direction: t.dir}, t.tracks[i])
}
