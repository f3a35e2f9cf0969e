package timeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/funtimes-driftloop/internal/scene"
)

func mustTimeline(t *testing.T) *Timeline {
	t.Helper()
	tl, err := New(scene.Catalog())
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	return tl
}

func TestWrapNormalizes(t *testing.T) {
	assert.Equal(t, 0.0, Wrap(0, 34500))
	assert.Equal(t, 500.0, Wrap(35000, 34500))
	assert.Equal(t, 0.0, Wrap(34500, 34500))
	// negative deltas (clock adjustment) wrap to the end, never negative
	assert.Equal(t, 34000.0, Wrap(-500, 34500))
	assert.Equal(t, 0.0, Wrap(123, 0), "zero modulus degrades to 0")
}

func TestWrapIdempotent(t *testing.T) {
	for _, e := range []float64{-70000, -1, 0, 1, 8000, 34499.999, 34500, 70000, 1e9} {
		w := Wrap(e, 34500)
		assert.GreaterOrEqual(t, w, 0.0, "e=%v", e)
		assert.Less(t, w, 34500.0, "e=%v", e)
		assert.InDelta(t, w, Wrap(w, 34500), 1e-9, "wrap(wrap(e)) != wrap(e) for e=%v", e)
	}
}

func TestResolveCoversWholeLoop(t *testing.T) {
	tl := mustTimeline(t)
	for e := 0.0; e < tl.TotalMS(); e += 12.5 {
		pos := tl.Resolve(e)
		assert.GreaterOrEqual(t, pos.Index, 0)
		assert.Less(t, pos.Index, tl.SceneCount())
		assert.GreaterOrEqual(t, pos.Progress, 0.0, "e=%v", e)
		assert.Less(t, pos.Progress, 1.0, "e=%v", e)
	}
}

func TestResolveBoundaries(t *testing.T) {
	tl := mustTimeline(t)

	// approaching the first boundary from below: progress -> 1 on scene 0
	pos := tl.Resolve(7999.9)
	assert.Equal(t, 0, pos.Index)
	assert.InDelta(t, 1.0, pos.Progress, 1e-4)

	// at the boundary: index increments, progress resets
	pos = tl.Resolve(8000)
	assert.Equal(t, 1, pos.Index)
	assert.Equal(t, 0.0, pos.Progress)
}

func TestResolveSparkAndDrift(t *testing.T) {
	tl := mustTimeline(t)
	assert.Equal(t, 34500.0, tl.TotalMS())

	pos := tl.Resolve(8500)
	assert.Equal(t, 1, pos.Index)
	assert.Equal(t, "Spark & Drift", tl.Scene(pos.Index).Label)
	assert.InDelta(t, 500.0/7000.0, pos.Progress, 1e-9)

	// exactly one loop wraps to the start
	pos = tl.Resolve(tl.Wrap(34500))
	assert.Equal(t, 0, pos.Index)
	assert.Equal(t, 0.0, pos.Progress)
}

func TestResolveDefensiveFallback(t *testing.T) {
	tl := mustTimeline(t)
	// unreachable under correct wrapping; degrades to the last scene
	pos := tl.Resolve(40000)
	assert.Equal(t, tl.SceneCount()-1, pos.Index)
	assert.Equal(t, 1.0, pos.Progress)
	assert.False(t, math.IsNaN(pos.Progress))
}

func TestNewRejectsBadCatalogs(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	bad := []scene.Descriptor{{ID: "zero", DurationMS: 0}}
	_, err = New(bad)
	assert.Error(t, err)
}
