package timeline

import (
	"errors"
	"math"

	"github.com/coreman2200/funtimes-driftloop/internal/scene"
)

// Position is the resolved spot on the looping timeline. It is derived on
// every tick and never stored.
type Position struct {
	Index     int     // 0-based scene index
	Progress  float64 // fraction of the scene elapsed, [0,1)
	ElapsedMS float64 // wrapped elapsed time since loop start
}

// Timeline maps wrapped elapsed time onto the scene catalog. Resolution is a
// linear scan over cumulative durations; pure, no mutable state.
type Timeline struct {
	scenes []scene.Descriptor
	total  float64
}

// New validates the catalog: at least one scene, every duration positive.
func New(scenes []scene.Descriptor) (*Timeline, error) {
	if len(scenes) == 0 {
		return nil, errors.New("timeline: no scenes")
	}
	total := 0.0
	for _, sc := range scenes {
		if sc.DurationMS <= 0 {
			return nil, errors.New("timeline: scene " + sc.ID + " has non-positive duration")
		}
		total += sc.DurationMS
	}
	return &Timeline{scenes: scenes, total: total}, nil
}

func (t *Timeline) TotalMS() float64 { return t.total }

func (t *Timeline) SceneCount() int { return len(t.scenes) }

func (t *Timeline) Scene(i int) scene.Descriptor { return t.scenes[i] }

// Wrap normalizes a raw delta into [0, total). Negative deltas (clock
// adjustments) wrap to the end of the loop rather than producing negative
// progress.
func (t *Timeline) Wrap(deltaMS float64) float64 {
	return Wrap(deltaMS, t.total)
}

// Wrap returns delta mod m, normalized to [0, m). m <= 0 yields 0.
func Wrap(deltaMS, m float64) float64 {
	if m <= 0 {
		return 0
	}
	r := math.Mod(deltaMS, m)
	if r < 0 {
		r += m
	}
	return r
}

// Resolve finds the scene whose window contains elapsedMS, already wrapped
// into [0, total). The first matching scene wins; windows are contiguous so
// exactly one matches. elapsedMS at or past the total (wrap failed, or a
// floating-point edge) degrades to the final scene at progress 1.
func (t *Timeline) Resolve(elapsedMS float64) Position {
	acc := 0.0
	for i, sc := range t.scenes {
		if elapsedMS < acc+sc.DurationMS {
			return Position{
				Index:     i,
				Progress:  (elapsedMS - acc) / sc.DurationMS,
				ElapsedMS: elapsedMS,
			}
		}
		acc += sc.DurationMS
	}
	return Position{Index: len(t.scenes) - 1, Progress: 1, ElapsedMS: elapsedMS}
}
