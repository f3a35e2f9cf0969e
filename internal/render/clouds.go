package render

import (
	"math"

	"github.com/coreman2200/funtimes-driftloop/internal/gfx"
	"github.com/coreman2200/funtimes-driftloop/internal/scene"
)

// Clouds drifts six puff clusters across the sky on a 14 s horizontal loop.
// Each cluster is five overlapping soft-edged circles with per-puff jitter,
// tinted from the accent palette, bobbing vertically with scene progress.
type Clouds struct{}

func (Clouds) Name() string { return "clouds" }

const (
	cloudCount      = 6
	puffsPerCloud   = 5
	cloudLoopMS     = 14000.0
	cloudMarginPX   = 260.0
	cloudBobAmpPX   = 18.0
	cloudBaseAlpha  = 0.10
	cloudAlphaSpan  = 0.05
)

func (Clouds) Draw(c *gfx.Canvas, sc scene.Descriptor, progress, elapsedMS float64) {
	w, h := float64(c.W), float64(c.H)
	span := w + 2*cloudMarginPX

	for i := 0; i < cloudCount; i++ {
		fi := float64(i)
		// wrap the cluster across the widened span so it re-enters seamlessly
		cx := gfx.Fract(gfx.Scatter(i, 31.4)+elapsedMS/cloudLoopMS)*span - cloudMarginPX
		cy := h*(0.10+0.26*gfx.Scatter(i, 37.7)) + cloudBobAmpPX*math.Sin(2*math.Pi*progress+fi*0.9)

		hex := sc.Accents[i%len(sc.Accents)]
		a := cloudBaseAlpha + cloudAlphaSpan*gfx.Scatter(i, 41.1)

		for j := 0; j < puffsPerCloud; j++ {
			k := i*puffsPerCloud + j
			px := cx + (gfx.Scatter(k, 43.3)-0.5)*190
			py := cy + (gfx.Scatter(k, 47.9)-0.5)*56
			pr := 58 + 82*gfx.Scatter(k, 53.7)
			c.FillRadialGlow(px, py, pr, gfx.WithAlpha(hex, a))
		}
	}
}
