package render

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/coreman2200/funtimes-driftloop/internal/gfx"
	"github.com/coreman2200/funtimes-driftloop/internal/scene"
)

// Water overlays the band below 60% height with a darker gradient and six
// horizontal wave strokes. Each wave is a polyline sampled every 24 px; its
// vertical offset sums a progress-driven phase and an elapsed-time phase,
// with the row index offsetting both so rows never sync up.
type Water struct{}

func (Water) Name() string { return "water" }

const (
	waterTop     = 0.60
	waveRows     = 6
	waveStepPX   = 24.0
	waveRowGap   = 0.055
	waveAmpSlow  = 9.0
	waveAmpFast  = 6.0
)

func (Water) Draw(c *gfx.Canvas, sc scene.Descriptor, progress, elapsedMS float64) {
	w, h := float64(c.W), float64(c.H)
	y0 := h * waterTop

	c.FillVerticalGradient(y0, h,
		gfx.WithAlpha(sc.SkyBottom, 0.35),
		gfx.WithAlpha(sc.GroundBottom, 0.85))

	dc := c.Ctx()
	dc.SetLineCap(gg.LineCapRound)
	for row := 0; row < waveRows; row++ {
		fr := float64(row)
		baseY := y0 + h*waveRowGap*(fr+0.7)
		hex := sc.Accents[row%len(sc.Accents)]

		dc.NewSubPath()
		first := true
		for x := 0.0; x <= w; x += waveStepPX {
			off := waveAmpSlow*math.Sin(2*math.Pi*progress*2+x*0.008+fr*0.9) +
				waveAmpFast*math.Sin(elapsedMS/1700.0+x*0.013+fr*1.7)
			if first {
				dc.MoveTo(x, baseY+off)
				first = false
			} else {
				dc.LineTo(x, baseY+off)
			}
		}
		dc.SetColor(gfx.WithAlpha(hex, 0.22))
		dc.SetLineWidth(3)
		dc.Stroke()
	}
}
