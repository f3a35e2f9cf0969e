package gfx

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Canvas is the fixed-size raster surface every pass draws onto. It wraps a
// gg context over one *image.RGBA plus a reusable scratch layer for additive
// compositing (gg itself only does source-over).
type Canvas struct {
	W, H int

	dc  *gg.Context
	img *image.RGBA

	scratch *image.RGBA
	sdc     *gg.Context
}

func NewCanvas(w, h int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Canvas{W: w, H: h, dc: gg.NewContextForRGBA(img), img: img}
}

// Ctx exposes the drawing context for path/stroke work.
func (c *Canvas) Ctx() *gg.Context { return c.dc }

// Image returns the backing frame. The pixel buffer is reused across frames;
// sinks that hold frames must copy.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear repaints the whole surface with one color.
func (c *Canvas) Clear(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

// FillVerticalGradient paints a two-stop vertical gradient over the band
// [y0,y1) at full width.
func (c *Canvas) FillVerticalGradient(y0, y1 float64, top, bottom color.Color) {
	grad := gg.NewLinearGradient(0, y0, 0, y1)
	grad.AddColorStop(0, top)
	grad.AddColorStop(1, bottom)
	c.dc.SetFillStyle(grad)
	c.dc.DrawRectangle(0, y0, float64(c.W), y1-y0)
	c.dc.Fill()
}

// FillRadialGlow paints a soft circular glow fading from col at the center
// to fully transparent at radius r.
func (c *Canvas) FillRadialGlow(x, y, r float64, col color.NRGBA) {
	RadialGlow(c.dc, x, y, r, col)
}

// RadialGlow is FillRadialGlow against an arbitrary context, so additive
// layers can reuse it.
func RadialGlow(dc *gg.Context, x, y, r float64, col color.NRGBA) {
	if r <= 0 {
		return
	}
	grad := gg.NewRadialGradient(x, y, 0, x, y, r)
	grad.AddColorStop(0, col)
	edge := col
	edge.A = 0
	grad.AddColorStop(1, edge)
	dc.SetFillStyle(grad)
	dc.DrawCircle(x, y, r)
	dc.Fill()
}

// Additive runs draw against a transparent scratch layer, then composites
// the result with saturating per-channel addition. Used for orb glows where
// overlapping light should stack instead of occlude.
func (c *Canvas) Additive(draw func(dc *gg.Context)) {
	if c.scratch == nil {
		c.scratch = image.NewRGBA(image.Rect(0, 0, c.W, c.H))
		c.sdc = gg.NewContextForRGBA(c.scratch)
	}
	pix := c.scratch.Pix
	for i := range pix {
		pix[i] = 0
	}
	draw(c.sdc)
	AddRGBA(c.img, c.scratch)
}

// AddRGBA adds src onto dst channel-wise with clamping. Both images are
// premultiplied, so the color channels already carry their alpha weight;
// dst alpha is left untouched.
func AddRGBA(dst, src *image.RGBA) {
	d, s := dst.Pix, src.Pix
	n := len(d)
	if len(s) < n {
		n = len(s)
	}
	for i := 0; i+3 < n; i += 4 {
		if s[i]|s[i+1]|s[i+2] == 0 {
			continue
		}
		d[i+0] = satAdd(d[i+0], s[i+0])
		d[i+1] = satAdd(d[i+1], s[i+1])
		d[i+2] = satAdd(d[i+2], s[i+2])
	}
}

func satAdd(a, b uint8) uint8 {
	v := uint16(a) + uint16(b)
	if v > 255 {
		return 255
	}
	return uint8(v)
}
