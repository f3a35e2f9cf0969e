package animator

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-driftloop/internal/gfx"
	"github.com/coreman2200/funtimes-driftloop/internal/scene"
	"github.com/coreman2200/funtimes-driftloop/internal/timeline"
)

// Renderer is the slice of the engine the driver needs.
type Renderer interface {
	RenderFrame(sc scene.Descriptor, progress, elapsedMS float64)
}

// SceneChangeFunc is invoked exactly once per scene-boundary crossing,
// before the frame for the new scene renders.
type SceneChangeFunc func(index int, sc scene.Descriptor)

// State is the driver's per-loop book-keeping, passed through Advance rather
// than hidden in globals so synthetic elapsed-time sequences can drive it in
// tests.
type State struct {
	LastScene int
}

// NewState starts with no scene seen, so the first tick reports entry into
// scene 0.
func NewState() State { return State{LastScene: -1} }

// Animator owns the frame loop: it wraps wall-clock elapsed time onto the
// timeline, reports boundary crossings and hands eased progress to the
// renderer. States are {stopped, running}.
type Animator struct {
	tl      *timeline.Timeline
	ren     Renderer
	fps     int
	onScene SceneChangeFunc

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(tl *timeline.Timeline, ren Renderer, fps int, onScene SceneChangeFunc) *Animator {
	if fps <= 0 {
		fps = 60
	}
	return &Animator{tl: tl, ren: ren, fps: fps, onScene: onScene}
}

// Advance resolves the wrapped position for elapsedMS and reports whether a
// scene boundary was crossed since st. Pure with respect to the clock.
func (a *Animator) Advance(st State, elapsedMS float64) (State, timeline.Position, bool) {
	pos := a.tl.Resolve(a.tl.Wrap(elapsedMS))
	changed := pos.Index != st.LastScene
	st.LastScene = pos.Index
	return st, pos, changed
}

// Start records the loop start timestamp and begins ticking at the display
// rate. Calling Start on a running animator is a no-op.
func (a *Animator) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return
	}
	a.running = true
	ctx, a.cancel = context.WithCancel(ctx)
	a.done = make(chan struct{})
	go a.loop(ctx, a.done)
}

func (a *Animator) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	start := time.Now()
	st := NewState()
	tick := time.NewTicker(time.Second / time.Duration(a.fps))
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			elapsed := float64(time.Since(start)) / float64(time.Millisecond)
			var pos timeline.Position
			var changed bool
			st, pos, changed = a.Advance(st, elapsed)
			sc := a.tl.Scene(pos.Index)
			if changed {
				log.Debug().Int("scene", pos.Index).Str("label", sc.Label).Msg("scene boundary")
				if a.onScene != nil {
					a.onScene(pos.Index, sc)
				}
			}
			a.ren.RenderFrame(sc, gfx.EaseInOut(pos.Progress), pos.ElapsedMS)
		}
	}
}

// Stop halts the loop and returns once no further frame can render. A tick
// already dispatched completes at most once more before Stop returns.
// Stopping a stopped animator is a no-op.
func (a *Animator) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	cancel, done := a.cancel, a.done
	a.mu.Unlock()

	cancel()
	<-done
}
