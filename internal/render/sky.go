package render

import (
	"math"

	"github.com/coreman2200/funtimes-driftloop/internal/gfx"
	"github.com/coreman2200/funtimes-driftloop/internal/scene"
)

// Sky paints the backdrop: the scene's two-stop vertical gradient plus a
// breathing radial glow parked around 32% height. Glow opacity rides the
// shared shimmer; its vertical drift runs on a slower independent period so
// the two never lock step.
type Sky struct{}

func (Sky) Name() string { return "sky" }

const (
	skyGlowAnchorY  = 0.32
	skyGlowDriftMS  = 5200.0
	skyGlowDriftAmp = 42.0
)

func (Sky) Draw(c *gfx.Canvas, sc scene.Descriptor, progress, elapsedMS float64) {
	w, h := float64(c.W), float64(c.H)

	c.FillVerticalGradient(0, h, gfx.Opaque(sc.SkyTop), gfx.Opaque(sc.SkyBottom))

	shim := gfx.Shimmer(elapsedMS)
	drift := skyGlowDriftAmp * math.Sin(2*math.Pi*elapsedMS/skyGlowDriftMS)
	glow := gfx.WithAlpha(sc.Accents[0], 0.10+0.10*shim)
	c.FillRadialGlow(w*0.5, h*skyGlowAnchorY+drift, w*0.85, glow)
}
