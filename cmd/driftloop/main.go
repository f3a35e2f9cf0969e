package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-driftloop/internal/animator"
	"github.com/coreman2200/funtimes-driftloop/internal/capture"
	"github.com/coreman2200/funtimes-driftloop/internal/config"
	diag "github.com/coreman2200/funtimes-driftloop/internal/diagnostics"
	"github.com/coreman2200/funtimes-driftloop/internal/render"
	"github.com/coreman2200/funtimes-driftloop/internal/scene"
	"github.com/coreman2200/funtimes-driftloop/internal/stream"
	"github.com/coreman2200/funtimes-driftloop/internal/timeline"
)

func main() {
	// ---- Flags (config.yaml can override most) ----
	var (
		fps        = flag.Int("fps", 60, "target frames per second")
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		scale      = flag.Int("preview-scale", 4, "preview downscale divisor")
		throttleMs = flag.Int("preview-throttle-ms", 50, "min ms between preview frames")
		encoder    = flag.String("encoder", "libx264", "capture video encoder")
		quality    = flag.Int("quality", 23, "capture quality (crf/cq)")
		settleMs   = flag.Int("settle-ms", 400, "capture settle margin past one loop")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Load config.yaml (optional) ----
	var cfg *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
	}

	// ---- Effective params (config overrides flags where available) ----
	eFPS, eAddr := *fps, *addr
	eScale, eThrottle := *scale, *throttleMs
	eEncoder, eQuality, eSettle := *encoder, *quality, *settleMs
	if cfg != nil {
		if cfg.FPS > 0 {
			eFPS = cfg.FPS
		}
		if cfg.Addr != "" {
			eAddr = cfg.Addr
		}
		if cfg.Preview.Scale > 0 {
			eScale = cfg.Preview.Scale
		}
		if cfg.Preview.ThrottleMs > 0 {
			eThrottle = cfg.Preview.ThrottleMs
		}
		if cfg.Capture.Encoder != "" {
			eEncoder = cfg.Capture.Encoder
		}
		if cfg.Capture.Quality > 0 {
			eQuality = cfg.Capture.Quality
		}
		if cfg.Capture.SettleMs > 0 {
			eSettle = cfg.Capture.SettleMs
		}
	}

	// ---- Timeline + engine ----
	tl, err := timeline.New(scene.Catalog())
	if err != nil {
		log.Fatal().Err(err).Msg("scene catalog invalid")
	}
	eng, err := render.NewEngine(render.Width, render.Height)
	if err != nil {
		log.Fatal().Err(err).Msg("engine init failed")
	}

	// ---- Preview state as a frame sink ----
	state := stream.NewState(render.Width, render.Height, eScale, time.Duration(eThrottle)*time.Millisecond)
	eng.AttachSink(state)

	// ---- Animation driver ----
	anim := animator.New(tl, eng, eFPS, func(idx int, sc scene.Descriptor) {
		log.Info().Int("scene", idx).Str("label", sc.Label).Msg("scene change")
		state.SetScene(idx, sc.Label, sc.Narrative)
	})
	anim.Start(context.Background())

	// ---- Capture (optional: host may lack ffmpeg) ----
	var ctrl *capture.Controller
	if enc, err := capture.NewFFmpegEncoder(eEncoder, eQuality); err != nil {
		log.Warn().Err(err).Msg("capture disabled")
		state.PushDiag(diag.Warnf("CAPTURE.UNSUPPORTED", "capture disabled", err.Error()))
	} else {
		ctrl = capture.NewController(enc, eng, eFPS, time.Duration(eSettle)*time.Millisecond)
	}

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", state.HandleFramesWS)
	mux.HandleFunc("/diag", state.HandleDiagWS)
	mux.HandleFunc("/health", state.HandleHealth)
	mux.HandleFunc("/capture", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		if ctrl == nil {
			http.Error(w, capture.ErrUnsupported.Error(), http.StatusNotImplemented)
			return
		}
		loop := time.Duration(tl.TotalMS()) * time.Millisecond
		state.PushDiag(diag.Infof("CAPTURE.START", "recording one loop"))
		art, err := ctrl.Record(r.Context(), loop)
		if err != nil {
			state.PushDiag(diag.Errf("CAPTURE.FAILED", "capture failed", err))
			code := http.StatusInternalServerError
			if errors.Is(err, capture.ErrActive) {
				code = http.StatusConflict
			}
			http.Error(w, err.Error(), code)
			return
		}
		state.PushDiag(diag.Infof("CAPTURE.DONE", "capture complete"))
		w.Header().Set("Content-Type", "video/x-matroska")
		w.Header().Set("Content-Disposition", `attachment; filename="driftloop.mkv"`)
		w.Header().Set("Content-Length", fmt.Sprint(len(art)))
		_, _ = w.Write(art)
	})

	srv := &http.Server{
		Addr:         eAddr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 120 * time.Second, // capture responses hold for a full loop
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", eAddr).Int("fps", eFPS).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	_ = srv.Close()
	anim.Stop()
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
