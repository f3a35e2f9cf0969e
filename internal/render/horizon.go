package render

import (
	"math"

	"github.com/coreman2200/funtimes-driftloop/internal/gfx"
	"github.com/coreman2200/funtimes-driftloop/internal/scene"
)

// Horizon lays the ground gradient over the lower 55% of the frame and draws
// a breathing ridge silhouette along its top edge as one cubic curve whose
// control points oscillate with scene progress.
type Horizon struct{}

func (Horizon) Name() string { return "horizon" }

const (
	horizonTop     = 0.45 // band covers [0.45h, h)
	ridgeBreathPX  = 30.0
	ridgeLiftPX    = 56.0
)

func (Horizon) Draw(c *gfx.Canvas, sc scene.Descriptor, progress, elapsedMS float64) {
	w, h := float64(c.W), float64(c.H)
	y0 := h * horizonTop

	c.FillVerticalGradient(y0, h, gfx.Opaque(sc.GroundTop), gfx.Opaque(sc.GroundBottom))

	// ridge silhouette, slightly darker than the band it sits on
	breathe := math.Sin(2 * math.Pi * progress)
	dc := c.Ctx()
	dc.MoveTo(0, y0+18)
	dc.CubicTo(
		w*0.28, y0-ridgeLiftPX+ridgeBreathPX*breathe,
		w*0.62, y0+ridgeLiftPX*0.6-ridgeBreathPX*breathe,
		w, y0+8,
	)
	dc.LineTo(w, y0+140)
	dc.LineTo(0, y0+140)
	dc.ClosePath()
	dc.SetColor(gfx.MixHex(sc.GroundTop, sc.GroundBottom, 0.35))
	dc.Fill()
}
