package render

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/coreman2200/funtimes-driftloop/internal/gfx"
	"github.com/coreman2200/funtimes-driftloop/internal/scene"
)

// Vignette darkens toward the edges with a static radial gradient, identical
// across all scenes. Always the final pass.
type Vignette struct{}

func (Vignette) Name() string { return "vignette" }

var vignetteInk = color.NRGBA{R: 5, G: 3, B: 15, A: 145}

func (Vignette) Draw(c *gfx.Canvas, sc scene.Descriptor, progress, elapsedMS float64) {
	w, h := float64(c.W), float64(c.H)
	cx, cy := w*0.5, h*0.5
	diag := math.Hypot(w, h)

	grad := gg.NewRadialGradient(cx, cy, diag*0.18, cx, cy, diag*0.56)
	clear := vignetteInk
	clear.A = 0
	grad.AddColorStop(0, clear)
	grad.AddColorStop(1, vignetteInk)

	dc := c.Ctx()
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}
