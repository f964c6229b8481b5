package margin

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Tracer records collapsing decisions at debug level. nil *Tracer is valid
// and does nothing.
type Tracer struct {
	log *zap.Logger
}

// NewTracer returns tracer writing to log, or nil when debug level is not
// enabled there, so callers pay nothing in normal runs.
func NewTracer(log *zap.Logger) *Tracer {
	if log == nil || !log.Core().Enabled(zapcore.DebugLevel) {
		return nil
	}
	return &Tracer{log: log.Named("margins")}
}

// IsEnabled returns true if tracing is active.
func (t *Tracer) IsEnabled() bool {
	return t != nil
}

// Trace logs single collapse operation for the node identified by id.
func (t *Tracer) Trace(op, id string, edge Edge, in, out *State, spacing int) {
	if !t.IsEnabled() {
		return
	}
	t.log.Debug("Margin collapse",
		zap.String("op", op),
		zap.String("node", id),
		zap.Int("margin", edge.Margin),
		zap.Int("border+padding", edge.BorderPadding),
		zap.Stringer("in", in),
		zap.Stringer("out", out),
		zap.Int("spacing", spacing))
}
