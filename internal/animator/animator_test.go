package animator

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coreman2200/funtimes-driftloop/internal/scene"
	"github.com/coreman2200/funtimes-driftloop/internal/timeline"
)

type countingRenderer struct {
	frames atomic.Int64
}

func (r *countingRenderer) RenderFrame(sc scene.Descriptor, progress, elapsedMS float64) {
	r.frames.Add(1)
}

func mustTimeline(t *testing.T) *timeline.Timeline {
	t.Helper()
	tl, err := timeline.New(scene.Catalog())
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	return tl
}

// Drive Advance with a synthetic clock across one full loop: each boundary
// must be reported exactly once, in order.
func TestAdvanceReportsEachBoundaryOnce(t *testing.T) {
	tl := mustTimeline(t)
	a := New(tl, &countingRenderer{}, 60, nil)

	st := NewState()
	var entered []int
	for e := 0.0; e <= tl.TotalMS(); e += 50 {
		var pos timeline.Position
		var changed bool
		st, pos, changed = a.Advance(st, e)
		if changed {
			entered = append(entered, pos.Index)
		}
	}

	// first tick enters scene 0, then four interior boundaries, then the
	// wrap back to scene 0 at exactly one loop
	want := []int{0, 1, 2, 3, 4, 0}
	if len(entered) != len(want) {
		t.Fatalf("expected %v boundary entries, got %v", want, entered)
	}
	for i := range want {
		if entered[i] != want[i] {
			t.Fatalf("boundary order mismatch: expected %v, got %v", want, entered)
		}
	}
}

func TestAdvanceQuietBetweenBoundaries(t *testing.T) {
	tl := mustTimeline(t)
	a := New(tl, &countingRenderer{}, 60, nil)

	st, _, changed := a.Advance(NewState(), 8100)
	if !changed {
		t.Fatal("first advance must report scene entry")
	}
	for e := 8150.0; e < 15000; e += 50 {
		var c bool
		st, _, c = a.Advance(st, e)
		if c {
			t.Fatalf("no boundary expected at e=%v", e)
		}
	}
}

func TestStartIsIdempotentWhileRunning(t *testing.T) {
	tl := mustTimeline(t)
	ren := &countingRenderer{}
	a := New(tl, ren, 240, nil)

	ctx := context.Background()
	a.Start(ctx)
	a.Start(ctx) // second Start must not spawn a second loop
	defer a.Stop()

	time.Sleep(60 * time.Millisecond)
	if ren.frames.Load() == 0 {
		t.Fatal("running animator rendered no frames")
	}
}

func TestStopHaltsFrameDelivery(t *testing.T) {
	tl := mustTimeline(t)
	ren := &countingRenderer{}
	a := New(tl, ren, 240, nil)

	a.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	a.Stop()

	after := ren.frames.Load()
	time.Sleep(50 * time.Millisecond)
	if got := ren.frames.Load(); got != after {
		t.Fatalf("frames rendered after Stop returned: %d -> %d", after, got)
	}
}

func TestStopIdempotent(t *testing.T) {
	a := New(mustTimeline(t), &countingRenderer{}, 60, nil)

	// stopping a never-started animator must not panic or block
	a.Stop()

	a.Start(context.Background())
	a.Stop()
	a.Stop()
}

func TestSceneCallbackFiresOnEntry(t *testing.T) {
	var first atomic.Int64
	first.Store(-1)
	a := New(mustTimeline(t), &countingRenderer{}, 240, func(index int, sc scene.Descriptor) {
		first.CompareAndSwap(-1, int64(index))
	})

	a.Start(context.Background())
	defer a.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for first.Load() == -1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := first.Load(); got != 0 {
		t.Fatalf("expected first callback for scene 0, got %d", got)
	}
}
