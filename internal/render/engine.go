package render

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-driftloop/internal/gfx"
	"github.com/coreman2200/funtimes-driftloop/internal/scene"
)

// Engine owns the canvas and the fixed pass pipeline and fans finished
// frames out to the attached sinks. It is driven by the animator, one frame
// at a time; every frame is a full repaint.
type Engine struct {
	W, H int

	canvas *gfx.Canvas
	passes []Pass

	mu    sync.Mutex
	sinks []Driver

	frameID uint64

	// metrics (last durations in ms)
	Last struct {
		RenderMS float64
		WriteMS  float64
		TotalMS  float64
	}
}

func NewEngine(w, h int) (*Engine, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("render: invalid dimensions")
	}
	return &Engine{
		W:      w,
		H:      h,
		canvas: gfx.NewCanvas(w, h),
		passes: Pipeline(),
	}, nil
}

// Size reports the frame dimensions; capture sessions size their encoders
// from it.
func (e *Engine) Size() (int, int) { return e.W, e.H }

func (e *Engine) FrameID() uint64 { return e.frameID }

// SetPasses replaces the pipeline; tests use it to install fakes.
func (e *Engine) SetPasses(p []Pass) { e.passes = p }

func (e *Engine) AttachSink(d Driver) {
	if d == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sinks = append(e.sinks, d)
}

func (e *Engine) DetachSink(d Driver) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, s := range e.sinks {
		if s == d {
			e.sinks = append(e.sinks[:i], e.sinks[i+1:]...)
			return
		}
	}
}

// RenderFrame repaints the full frame for the given scene position and
// writes it to every sink. Sink failures are logged and skipped; a capture
// fault must never stall the animation (the session surfaces its own error).
func (e *Engine) RenderFrame(sc scene.Descriptor, progress, elapsedMS float64) {
	start := time.Now()
	for _, p := range e.passes {
		p.Draw(e.canvas, sc, progress, elapsedMS)
	}
	e.Last.RenderMS = float64(time.Since(start).Microseconds()) / 1000.0

	wstart := time.Now()
	e.frameID++
	frame := e.canvas.Image()

	e.mu.Lock()
	sinks := make([]Driver, len(e.sinks))
	copy(sinks, e.sinks)
	e.mu.Unlock()

	for _, d := range sinks {
		if err := d.Write(frame); err != nil {
			log.Warn().Err(err).Uint64("frame_id", e.frameID).Msg("frame sink write failed")
		}
	}
	e.Last.WriteMS = float64(time.Since(wstart).Microseconds()) / 1000.0
	e.Last.TotalMS = float64(time.Since(start).Microseconds()) / 1000.0
}
