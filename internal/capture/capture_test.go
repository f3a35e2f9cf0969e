package capture

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/coreman2200/funtimes-driftloop/internal/render"
)

// fakeSource drives attached sinks from the test instead of a render loop.
type fakeSource struct {
	mu    sync.Mutex
	sinks []render.Driver
}

func (s *fakeSource) AttachSink(d render.Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, d)
}

func (s *fakeSource) DetachSink(d render.Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, x := range s.sinks {
		if x == d {
			s.sinks = append(s.sinks[:i], s.sinks[i+1:]...)
			return
		}
	}
}

func (s *fakeSource) Size() (int, int) { return 16, 32 }

func (s *fakeSource) push(frame *image.RGBA) {
	s.mu.Lock()
	sinks := append([]render.Driver(nil), s.sinks...)
	s.mu.Unlock()
	for _, d := range sinks {
		_ = d.Write(frame)
	}
}

type fakeSession struct {
	mu       sync.Mutex
	frames   int
	writeErr error
	artifact []byte
	finalErr error
	aborted  bool
}

func (s *fakeSession) WriteFrame(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.frames++
	return nil
}

func (s *fakeSession) Finalize() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifact, s.finalErr
}

func (s *fakeSession) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aborted = true
}

type fakeEncoder struct {
	mu       sync.Mutex
	starts   int
	startErr error
	sess     *fakeSession
}

func (e *fakeEncoder) Start(ctx context.Context, w, h, fps int) (Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.starts++
	if e.startErr != nil {
		return nil, e.startErr
	}
	return e.sess, nil
}

func TestRecordCollectsArtifact(t *testing.T) {
	sess := &fakeSession{artifact: []byte("mkv-bytes")}
	enc := &fakeEncoder{sess: sess}
	src := &fakeSource{}
	ctrl := NewController(enc, src, 30, 10*time.Millisecond)

	done := make(chan struct{})
	var art []byte
	var err error
	go func() {
		defer close(done)
		art, err = ctrl.Record(context.Background(), 30*time.Millisecond)
	}()

	// feed frames while the session runs
	frame := image.NewRGBA(image.Rect(0, 0, 16, 32))
	feedUntil(src, frame, done)

	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if string(art) != "mkv-bytes" {
		t.Fatalf("unexpected artifact %q", art)
	}
	if sess.frames == 0 {
		t.Fatal("session received no frames")
	}
	if ctrl.Active() {
		t.Fatal("active flag must clear after completion")
	}
	if len(src.sinks) != 0 {
		t.Fatal("tap must detach after the session")
	}
}

func TestRecordRejectsConcurrentSession(t *testing.T) {
	sess := &fakeSession{artifact: []byte("x")}
	enc := &fakeEncoder{sess: sess}
	ctrl := NewController(enc, &fakeSource{}, 30, 0)

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		close(started)
		_, _ = ctrl.Record(context.Background(), 100*time.Millisecond)
	}()
	<-started

	// wait for the first session to take the flag
	deadline := time.Now().Add(time.Second)
	for !ctrl.Active() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !ctrl.Active() {
		t.Fatal("first session never became active")
	}

	_, err := ctrl.Record(context.Background(), 10*time.Millisecond)
	if !errors.Is(err, ErrActive) {
		t.Fatalf("expected ErrActive, got %v", err)
	}
	<-done
}

func TestRecordInitFailureResetsFlag(t *testing.T) {
	enc := &fakeEncoder{startErr: errors.New("spawn failed")}
	ctrl := NewController(enc, &fakeSource{}, 30, 0)

	_, err := ctrl.Record(context.Background(), 10*time.Millisecond)
	if err == nil {
		t.Fatal("expected init error")
	}
	if ctrl.Active() {
		t.Fatal("failed init must clear the active flag")
	}

	// a later attempt with a working encoder goes through
	enc.mu.Lock()
	enc.startErr = nil
	enc.sess = &fakeSession{artifact: []byte("ok")}
	enc.mu.Unlock()
	art, err := ctrl.Record(context.Background(), 5*time.Millisecond)
	if err != nil {
		t.Fatalf("retry after init failure: %v", err)
	}
	if string(art) != "ok" {
		t.Fatalf("unexpected artifact %q", art)
	}
}

func TestRecordSurfacesMidSessionFailure(t *testing.T) {
	sess := &fakeSession{writeErr: errors.New("pipe closed")}
	enc := &fakeEncoder{sess: sess}
	src := &fakeSource{}
	// long duration: only the write failure can end the session this fast
	ctrl := NewController(enc, src, 30, 0)

	done := make(chan struct{})
	var err error
	go func() {
		defer close(done)
		_, err = ctrl.Record(context.Background(), 10*time.Second)
	}()

	frame := image.NewRGBA(image.Rect(0, 0, 16, 32))
	feedUntil(src, frame, done)

	if err == nil {
		t.Fatal("expected mid-session failure")
	}
	if !sess.aborted {
		t.Fatal("failed session must be aborted")
	}
	if ctrl.Active() {
		t.Fatal("failure must clear the active flag")
	}
}

func TestRecordEmptyArtifactIsError(t *testing.T) {
	sess := &fakeSession{artifact: nil}
	enc := &fakeEncoder{sess: sess}
	ctrl := NewController(enc, &fakeSource{}, 30, 0)

	_, err := ctrl.Record(context.Background(), 5*time.Millisecond)
	if err == nil {
		t.Fatal("empty artifact must be reported as an error")
	}
}

func TestRecordHonorsContextCancel(t *testing.T) {
	sess := &fakeSession{artifact: []byte("x")}
	enc := &fakeEncoder{sess: sess}
	ctx, cancel := context.WithCancel(context.Background())
	ctrl := NewController(enc, &fakeSource{}, 30, 0)

	done := make(chan struct{})
	var err error
	go func() {
		defer close(done)
		_, err = ctrl.Record(ctx, 10*time.Second)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	<-done

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !sess.aborted {
		t.Fatal("cancelled session must be aborted")
	}
}

func TestTapDropsFramesAfterFirstFailure(t *testing.T) {
	sess := &fakeSession{writeErr: errors.New("dead")}
	tp := &tap{sess: sess, failed: make(chan error, 1)}
	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))

	if err := tp.Write(frame); err == nil {
		t.Fatal("first write should surface the session error")
	}
	// later writes are silent no-ops; the render loop never sees the error twice
	if err := tp.Write(frame); err != nil {
		t.Fatalf("dead tap must swallow frames, got %v", err)
	}
	select {
	case <-tp.failed:
	default:
		t.Fatal("failure was not reported on the channel")
	}
}

// feedUntil pushes frames at a steady cadence until done closes.
func feedUntil(src *fakeSource, frame *image.RGBA, done chan struct{}) {
	tick := time.NewTicker(2 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-done:
			return
		case <-tick.C:
			src.push(frame)
		}
	}
}
