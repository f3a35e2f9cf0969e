package stream

import (
	"encoding/base64"
	"encoding/json"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	xdraw "golang.org/x/image/draw"

	diag "github.com/coreman2200/funtimes-driftloop/internal/diagnostics"
)

// State owns the preview fan-out and health reporting. It implements the
// engine's frame-sink contract: every rendered frame is throttled,
// downscaled and broadcast to connected websocket clients.
type State struct {
	mu          sync.RWMutex
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	frameID    uint64
	startTime  time.Time
	sceneIdx   int
	sceneLabel string
	narrative  string

	preview  *image.RGBA
	throttle time.Duration
	lastEmit time.Time
}

// NewState sizes the preview buffer at frame/scale. throttle bounds the
// broadcast rate independently of the render rate (~20 FPS by default).
func NewState(frameW, frameH, scale int, throttle time.Duration) *State {
	if scale < 1 {
		scale = 1
	}
	if throttle <= 0 {
		throttle = 50 * time.Millisecond
	}
	return &State{
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		startTime:   time.Now(),
		preview:     image.NewRGBA(image.Rect(0, 0, frameW/scale, frameH/scale)),
		throttle:    throttle,
		sceneIdx:    -1,
	}
}

// SetScene records the active scene for health and frame payloads.
func (s *State) SetScene(idx int, label, narrative string) {
	s.mu.Lock()
	s.sceneIdx, s.sceneLabel, s.narrative = idx, label, narrative
	s.mu.Unlock()
}

// Write implements the frame-sink contract. Frames inside the throttle
// window are dropped, not queued.
func (s *State) Write(frame *image.RGBA) error {
	s.mu.Lock()
	now := time.Now()
	if s.lastEmit.Add(s.throttle).After(now) {
		s.mu.Unlock()
		return nil
	}
	s.lastEmit = now
	s.frameID++

	xdraw.ApproxBiLinear.Scale(s.preview, s.preview.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)

	type framePayload struct {
		T         int64  `json:"t"`
		FrameID   uint64 `json:"frame_id"`
		W         int    `json:"w"`
		H         int    `json:"h"`
		Scene     int    `json:"scene"`
		Label     string `json:"label"`
		Narrative string `json:"narrative"`
		RGBA      string `json:"rgba"`
	}
	b, _ := json.Marshal(framePayload{
		T:         now.UnixNano(),
		FrameID:   s.frameID,
		W:         s.preview.Rect.Dx(),
		H:         s.preview.Rect.Dy(),
		Scene:     s.sceneIdx,
		Label:     s.sceneLabel,
		Narrative: s.narrative,
		RGBA:      base64.StdEncoding.EncodeToString(s.preview.Pix),
	})
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write preview frame")
		}
	}
	return nil
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.diagClients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// HandleHealth reports loop position plus host load via gopsutil.
func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.startTime).Seconds(),
		"scene":    s.sceneIdx,
		"label":    s.sceneLabel,
	}
	s.mu.RUnlock()

	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		resp["cpu_pct"] = pct[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		resp["mem_used_pct"] = vm.UsedPercent
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// PushDiag broadcasts a diagnostic to all diag clients.
func (s *State) PushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	s.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(s.diagClients))
	for c := range s.diagClients {
		conns = append(conns, c)
	}
	s.mu.RUnlock()
	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}
