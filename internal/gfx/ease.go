package gfx

import "math"

// EaseInOut is the symmetric cosine ease used for all animated geometry:
// 0.5*(1-cos(pi*t)). Monotonic on [0,1] with exact endpoints and midpoint.
func EaseInOut(t float64) float64 {
	t = Clamp01(t)
	return 0.5 * (1 - math.Cos(math.Pi*t))
}

// ShimmerPeriodMS is the shared period of the frame-wide brightness
// modulator. Sky glow, aurora amplitude and star twinkle all key off it so
// the passes breathe together.
const ShimmerPeriodMS = 1200.0

// Shimmer returns the shared modulator in [0,1] for the given elapsed time.
func Shimmer(elapsedMS float64) float64 {
	return 0.5 + 0.5*math.Sin(2*math.Pi*elapsedMS/ShimmerPeriodMS)
}

// Scatter is a stable pseudo-random value in [0,1) keyed by index and salt.
// Same trig-hash family as the lightning flash trick; positions derived from
// it never move between frames.
func Scatter(i int, salt float64) float64 {
	return Fract(math.Sin(float64(i)*127.1+salt*311.7) * 43758.5453)
}

func Fract(x float64) float64 { return x - math.Floor(x) }

func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }
