package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FFmpegEncoder shells out to ffmpeg: raw RGBA frames in on stdin, a
// streamable Matroska container out on stdout. Matroska (not mp4) because
// chunks must be collectable while the session runs and mp4 needs a seekable
// output.
type FFmpegEncoder struct {
	binary  string
	codec   string
	quality int
}

// NewFFmpegEncoder probes for the ffmpeg binary up front; a host without it
// gets ErrUnsupported before any session state exists.
func NewFFmpegEncoder(codec string, quality int) (*FFmpegEncoder, error) {
	bin, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, ErrUnsupported
	}
	if codec == "" {
		codec = "libx264"
	}
	if quality <= 0 {
		quality = 23
	}
	return &FFmpegEncoder{binary: bin, codec: codec, quality: quality}, nil
}

func (e *FFmpegEncoder) Start(ctx context.Context, w, h, fps int) (Session, error) {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", w, h),
		"-framerate", strconv.Itoa(fps),
		"-i", "-",
		"-c:v", e.codec,
		"-pix_fmt", "yuv420p",
	}
	// quality flag depends on the encoder family
	switch e.codec {
	case "h264_videotoolbox":
		args = append(args, "-b:v", fmt.Sprintf("%dk", e.quality*100))
	case "h264_nvenc":
		args = append(args, "-cq", strconv.Itoa(e.quality))
	default: // libx264 and friends
		args = append(args, "-crf", strconv.Itoa(e.quality), "-preset", "veryfast")
	}
	args = append(args, "-f", "matroska", "-")

	cmd := exec.CommandContext(ctx, e.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start: %w", err)
	}

	s := &ffmpegSession{cmd: cmd, stdin: stdin, stderr: &stderr}
	s.grp, _ = errgroup.WithContext(ctx)
	s.grp.Go(func() error {
		buf := make([]byte, 64<<10)
		for {
			n, rerr := stdout.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				s.mu.Lock()
				s.chunks = append(s.chunks, chunk)
				s.mu.Unlock()
			}
			if rerr == io.EOF {
				return nil
			}
			if rerr != nil {
				return rerr
			}
		}
	})
	return s, nil
}

type ffmpegSession struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *bytes.Buffer
	grp    *errgroup.Group

	mu     sync.Mutex
	chunks [][]byte

	closeOnce sync.Once
}

func (s *ffmpegSession) WriteFrame(frame *image.RGBA) error {
	b := frame.Bounds()
	// the engine canvas is contiguous; anything else gets repacked
	if frame.Stride != b.Dx()*4 || b.Min.X != 0 || b.Min.Y != 0 {
		packed := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(packed, packed.Bounds(), frame, b.Min, draw.Src)
		frame = packed
	}
	if _, err := s.stdin.Write(frame.Pix); err != nil {
		return fmt.Errorf("encoder write: %w", err)
	}
	return nil
}

func (s *ffmpegSession) Finalize() ([]byte, error) {
	s.closeOnce.Do(func() { _ = s.stdin.Close() })
	readErr := s.grp.Wait()
	if err := s.cmd.Wait(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %v: %s", err, lastLine(s.stderr.String()))
	}
	if readErr != nil {
		return nil, fmt.Errorf("chunk reader: %w", readErr)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Join(s.chunks, nil), nil
}

func (s *ffmpegSession) Abort() {
	s.closeOnce.Do(func() { _ = s.stdin.Close() })
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.grp.Wait()
	_ = s.cmd.Wait()
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
