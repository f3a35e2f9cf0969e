package render

import (
	"image"

	"github.com/coreman2200/funtimes-driftloop/internal/gfx"
	"github.com/coreman2200/funtimes-driftloop/internal/scene"
)

// Fixed portrait frame, 9:16.
const (
	Width  = 1080
	Height = 1920
)

// Driver abstracts a frame sink (preview stream, capture tap, fakes in
// tests). Write is called from the render loop goroutine; the frame buffer
// is reused, so sinks that keep frames must copy.
type Driver interface {
	Write(frame *image.RGBA) error
}

// Pass draws one layer of the frame. progress is the eased intra-scene
// fraction in [0,1]; elapsedMS is the raw wrapped loop time. Passes hold no
// state between calls.
type Pass interface {
	Name() string
	Draw(c *gfx.Canvas, sc scene.Descriptor, progress, elapsedMS float64)
}

// Pipeline returns the fixed draw order, back to front.
func Pipeline() []Pass {
	return []Pass{
		Sky{},
		Stars{},
		Clouds{},
		Horizon{},
		Water{},
		Aurora{},
		Character{},
		Vignette{},
	}
}
