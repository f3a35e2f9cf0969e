package gfx

import (
	"image/color"
	"math"
	"strconv"
)

// RGB holds the 8-bit components of a parsed hex triplet.
type RGB struct{ R, G, B uint8 }

// fallback when a palette entry is malformed. A bad color degrades the frame
// to white instead of halting the loop.
var fallback = RGB{255, 255, 255}

// ParseHex decodes a "#rrggbb" triplet. Anything else (wrong length, missing
// '#', non-hex digits) returns opaque white and ok=false.
func ParseHex(s string) (RGB, bool) {
	if len(s) != 7 || s[0] != '#' {
		return fallback, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return fallback, false
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

// WithAlpha composes a hex triplet with an explicit alpha in [0,1]. This is
// the single alpha path for every pass; the string-suffix trick from gradient
// stops goes through here too so scene transitions can't disagree on color.
func WithAlpha(hex string, a float64) color.NRGBA {
	c, _ := ParseHex(hex)
	a = Clamp01(a)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}

// Opaque returns the hex triplet at full alpha.
func Opaque(hex string) color.NRGBA { return WithAlpha(hex, 1) }

// MixHex linearly blends two hex triplets in component space.
func MixHex(a, b string, t float64) color.NRGBA {
	ca, _ := ParseHex(a)
	cb, _ := ParseHex(b)
	t = Clamp01(t)
	return color.NRGBA{
		R: uint8(math.Round(Lerp(float64(ca.R), float64(cb.R), t))),
		G: uint8(math.Round(Lerp(float64(ca.G), float64(cb.G), t))),
		B: uint8(math.Round(Lerp(float64(ca.B), float64(cb.B), t))),
		A: 255,
	}
}
