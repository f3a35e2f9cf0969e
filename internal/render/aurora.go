package render

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/coreman2200/funtimes-driftloop/internal/gfx"
	"github.com/coreman2200/funtimes-driftloop/internal/scene"
)

// Aurora strokes five ribbons across the upper third. Each ribbon's vertical
// displacement sums a fast and a slow sinusoid, scaled by the shared shimmer
// so the whole curtain brightens and dims together. The group rotates
// slightly with scene progress; ribbons cycle the accent palette with
// decreasing stroke width.
type Aurora struct{}

func (Aurora) Name() string { return "aurora" }

const (
	ribbonCount    = 5
	ribbonStepPX   = 20.0
	ribbonSpanLo   = 0.08
	ribbonSpanHi   = 0.92
	ribbonFastAmp  = 46.0
	ribbonSlowAmp  = 26.0
	ribbonMaxWidth = 26.0
)

func (Aurora) Draw(c *gfx.Canvas, sc scene.Descriptor, progress, elapsedMS float64) {
	w, h := float64(c.W), float64(c.H)
	dc := c.Ctx()
	shim := 0.55 + 0.45*gfx.Shimmer(elapsedMS)

	dc.Push()
	dc.RotateAbout(0.06*(progress-0.5), w*0.5, h*0.30)
	dc.SetLineCap(gg.LineCapRound)

	for k := 0; k < ribbonCount; k++ {
		fk := float64(k)
		baseY := h * (0.18 + 0.05*fk)
		hex := sc.Accents[k%len(sc.Accents)]

		dc.NewSubPath()
		first := true
		for x := w * ribbonSpanLo; x <= w*ribbonSpanHi; x += ribbonStepPX {
			disp := shim * (ribbonFastAmp*math.Sin(x*0.004+elapsedMS/900.0+fk*1.3) +
				ribbonSlowAmp*math.Sin(x*0.0016+elapsedMS/3400.0+fk*2.6))
			if first {
				dc.MoveTo(x, baseY+disp)
				first = false
			} else {
				dc.LineTo(x, baseY+disp)
			}
		}
		dc.SetColor(gfx.WithAlpha(hex, 0.15))
		dc.SetLineWidth(ribbonMaxWidth - 4*fk)
		dc.Stroke()
	}
	dc.Pop()
}
