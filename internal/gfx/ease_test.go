package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEaseInOutEndpoints(t *testing.T) {
	assert.Equal(t, 0.0, EaseInOut(0))
	assert.InDelta(t, 0.5, EaseInOut(0.5), 1e-12)
	assert.InDelta(t, 1.0, EaseInOut(1), 1e-12)
	// out-of-range input clamps instead of extrapolating
	assert.Equal(t, 0.0, EaseInOut(-0.3))
	assert.InDelta(t, 1.0, EaseInOut(1.7), 1e-12)
}

func TestEaseInOutMonotonic(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 1000; i++ {
		v := EaseInOut(float64(i) / 1000)
		assert.GreaterOrEqual(t, v, prev, "ease must be non-decreasing at step %d", i)
		prev = v
	}
}

func TestShimmerBounded(t *testing.T) {
	for e := 0.0; e < 5000; e += 37 {
		v := Shimmer(e)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestScatterStableAndBounded(t *testing.T) {
	for i := 0; i < 200; i++ {
		a := Scatter(i, 1.3)
		b := Scatter(i, 1.3)
		assert.Equal(t, a, b, "scatter must not move between calls")
		assert.GreaterOrEqual(t, a, 0.0)
		assert.Less(t, a, 1.0)
	}
	// different salts decorrelate
	assert.NotEqual(t, Scatter(7, 1.3), Scatter(7, 7.7))
}
