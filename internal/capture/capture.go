package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-driftloop/internal/render"
)

var (
	// ErrUnsupported means no encoder exists on this host; no session is
	// ever created.
	ErrUnsupported = errors.New("capture: encoder unavailable on this host")
	// ErrActive rejects a second Record while one is in flight. The running
	// session is untouched.
	ErrActive = errors.New("capture: session already in progress")
)

// Encoder starts encoding sessions against a raw RGBA frame stream.
type Encoder interface {
	Start(ctx context.Context, w, h, fps int) (Session, error)
}

// Session consumes frames and yields the assembled artifact on Finalize.
// Chunks accumulate append-only while the session runs.
type Session interface {
	WriteFrame(frame *image.RGBA) error
	Finalize() ([]byte, error)
	Abort()
}

// FrameSource is the slice of the engine a session taps.
type FrameSource interface {
	AttachSink(d render.Driver)
	DetachSink(d render.Driver)
	Size() (int, int)
}

// Controller coordinates at most one recording session at a time against
// the live frame stream.
type Controller struct {
	enc    Encoder
	src    FrameSource
	fps    int
	settle time.Duration

	mu     sync.Mutex
	active bool
}

func NewController(enc Encoder, src FrameSource, fps int, settle time.Duration) *Controller {
	if fps <= 0 {
		fps = 60
	}
	return &Controller{enc: enc, src: src, fps: fps, settle: settle}
}

// Active reports whether a session is in flight.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Record taps the frame stream for dur plus the settle margin, then asks the
// encoder to finalize and returns the assembled artifact. Early stop is not
// exposed; a session runs its fixed duration or fails outright. Any failure
// resets the active flag and discards the partial session.
func (c *Controller) Record(ctx context.Context, dur time.Duration) ([]byte, error) {
	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return nil, ErrActive
	}
	c.active = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.active = false
		c.mu.Unlock()
	}()

	w, h := c.src.Size()
	sess, err := c.enc.Start(ctx, w, h, c.fps)
	if err != nil {
		return nil, fmt.Errorf("capture: encoder init: %w", err)
	}

	t := &tap{sess: sess, failed: make(chan error, 1)}
	c.src.AttachSink(t)
	log.Info().Dur("duration", dur).Dur("settle", c.settle).Msg("capture session started")

	timer := time.NewTimer(dur + c.settle)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		c.src.DetachSink(t)
		sess.Abort()
		return nil, ctx.Err()
	case err := <-t.failed:
		c.src.DetachSink(t)
		sess.Abort()
		return nil, fmt.Errorf("capture: encoder failed mid-session: %w", err)
	case <-timer.C:
	}

	c.src.DetachSink(t)
	art, err := sess.Finalize()
	if err != nil {
		return nil, fmt.Errorf("capture: finalize: %w", err)
	}
	if len(art) == 0 {
		return nil, errors.New("capture: encoder produced an empty artifact")
	}
	log.Info().Int("bytes", len(art)).Msg("capture session complete")
	return art, nil
}

// tap adapts a Session to the frame-sink contract. The first write failure
// is surfaced once; later frames are dropped silently so the render loop
// never stalls on a dead encoder.
type tap struct {
	sess   Session
	failed chan error
	dead   bool
	mu     sync.Mutex
}

func (t *tap) Write(frame *image.RGBA) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dead {
		return nil
	}
	if err := t.sess.WriteFrame(frame); err != nil {
		t.dead = true
		select {
		case t.failed <- err:
		default:
		}
		return err
	}
	return nil
}
