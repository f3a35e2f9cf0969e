package render

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/coreman2200/funtimes-driftloop/internal/gfx"
	"github.com/coreman2200/funtimes-driftloop/internal/scene"
)

// Stars scatters a fixed field of twinkling points over the upper sky, then
// composites one large soft orb per accent color with additive blending.
// Star positions are seeded by index only, so they hold still frame to
// frame; only brightness moves.
type Stars struct{}

func (Stars) Name() string { return "stars" }

const starCount = 90

func (Stars) Draw(c *gfx.Canvas, sc scene.Descriptor, progress, elapsedMS float64) {
	w, h := float64(c.W), float64(c.H)
	dc := c.Ctx()

	for i := 0; i < starCount; i++ {
		x := gfx.Scatter(i, 1.3) * w
		y := gfx.Scatter(i, 7.7) * h * 0.58
		r := 0.8 + 1.9*gfx.Scatter(i, 3.9)

		// per-star twinkle period between ~700 and ~1600 ms
		period := 700.0 + 900.0*gfx.Scatter(i, 5.1)
		tw := 0.5 + 0.5*math.Sin(2*math.Pi*elapsedMS/period+float64(i))
		a := 0.20 + 0.70*tw

		dc.SetRGBA(1, 1, 1, a)
		dc.DrawCircle(x, y, r)
		dc.Fill()
	}

	// accent orbs, additive so overlaps stack into brighter light
	c.Additive(func(sdc *gg.Context) {
		for i, hex := range sc.Accents {
			fi := float64(i)
			ox := w*(0.18+0.64*gfx.Scatter(i, 11.7)) + 58*math.Sin(2*math.Pi*elapsedMS/9000.0+fi*2.1)
			oy := h*(0.14+0.30*gfx.Scatter(i, 17.3)) + 40*math.Cos(2*math.Pi*elapsedMS/11500.0+fi*1.4)
			or := w * (0.16 + 0.06*gfx.Scatter(i, 23.9))
			gfx.RadialGlow(sdc, ox, oy, or, gfx.WithAlpha(hex, 0.16))
		}
	})
}
