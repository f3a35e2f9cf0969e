package render

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/coreman2200/funtimes-driftloop/internal/gfx"
	"github.com/coreman2200/funtimes-driftloop/internal/scene"
)

// Character draws Drift: a rounded-rectangle body with blinking eyes, a
// mouth curve, two trailing tail ribbons with independent phase, and a
// glowing orb accessory bobbing beside it. The body drifts on two
// independent low-frequency sinusoids, one keyed to elapsed time and one to
// scene progress.
type Character struct{}

func (Character) Name() string { return "character" }

const (
	bodyW = 150.0
	bodyH = 190.0

	blinkPeriodMS = 3700.0
	// blink fires only inside this narrow window near the oscillator peak
	blinkThreshold = 0.985

	tailSegments = 18
)

func (Character) Draw(c *gfx.Canvas, sc scene.Descriptor, progress, elapsedMS float64) {
	w, h := float64(c.W), float64(c.H)
	dc := c.Ctx()

	bx := w*0.5 + 70*math.Sin(2*math.Pi*elapsedMS/11000.0)
	by := h*0.70 + 26*math.Sin(2*math.Pi*progress+1.3)

	// halo behind the body, scene-tinted
	c.FillRadialGlow(bx, by, bodyW*1.7, gfx.WithAlpha(sc.Accents[0], 0.22))

	// tail ribbons trail from the lower body, each on its own phase
	dc.SetLineCap(gg.LineCapRound)
	for side, phase := range []float64{0.0, 2.4} {
		sign := float64(side*2 - 1) // -1, +1
		dc.NewSubPath()
		dc.MoveTo(bx+sign*bodyW*0.22, by+bodyH*0.42)
		for s := 1; s <= tailSegments; s++ {
			t := float64(s) / tailSegments
			tx := bx + sign*(bodyW*0.22+t*90) + 22*math.Sin(elapsedMS/800.0+t*4.2+phase)
			ty := by + bodyH*0.42 + t*170
			dc.LineTo(tx, ty)
		}
		dc.SetColor(gfx.WithAlpha(sc.Accents[(side+1)%len(sc.Accents)], 0.45))
		dc.SetLineWidth(10 - 3*float64(side))
		dc.Stroke()
	}

	// body
	dc.SetRGBA(0.97, 0.95, 1.0, 0.96)
	dc.DrawRoundedRectangle(bx-bodyW/2, by-bodyH/2, bodyW, bodyH, 54)
	dc.Fill()

	// eyes; vertical radius collapses during the blink window
	eyeRY := 9.0
	if math.Sin(2*math.Pi*elapsedMS/blinkPeriodMS) > blinkThreshold {
		eyeRY = 0.8
	}
	dc.SetRGBA(0.10, 0.08, 0.20, 1)
	dc.DrawEllipse(bx-30, by-22, 8, eyeRY)
	dc.Fill()
	dc.DrawEllipse(bx+30, by-22, 8, eyeRY)
	dc.Fill()

	// mouth
	dc.NewSubPath()
	dc.MoveTo(bx-16, by+16)
	dc.QuadraticTo(bx, by+28, bx+16, by+16)
	dc.SetRGBA(0.10, 0.08, 0.20, 0.9)
	dc.SetLineWidth(4)
	dc.Stroke()

	// orb accessory, bobbing on its own short period
	ox := bx + 104.0
	oy := by - 72 + 10*math.Sin(2*math.Pi*elapsedMS/2300.0)
	c.Additive(func(sdc *gg.Context) {
		gfx.RadialGlow(sdc, ox, oy, 46, gfx.WithAlpha(sc.Accents[len(sc.Accents)-1], 0.55))
	})
	dc.SetColor(gfx.Opaque(sc.Accents[len(sc.Accents)-1]))
	dc.DrawCircle(ox, oy, 9)
	dc.Fill()
}
