// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/asteroid-belt/pkg/logging"
)

// NullSink discards everything it is given, logging each primitive at debug
// level. It is used for headless runs.
type NullSink struct {
	logger *logging.Logger
	drawn  int
}

// NewNullSink creates a new NullSink with structured logging.
func NewNullSink(logger *logging.Logger) *NullSink {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullSink{logger: logger}
}

// Begin implements Sink.
func (d *NullSink) Begin() {
	d.drawn = 0
}

// Draw implements Sink.
func (d *NullSink) Draw(r Resolved) {
	d.drawn++
	d.logger.Debug(context.Background(), "Draw called",
		"list_id", r.ID,
		"kind", r.Kind.String(),
		"layer", r.Layer,
		"vertices", len(r.Points),
	)
}

// End implements Sink.
func (d *NullSink) End() {
	d.logger.Debug(context.Background(), "Frame drawn", "primitives", d.drawn)
}

// Drawn is the number of primitives in the last frame.
func (d *NullSink) Drawn() int {
	return d.drawn
}
