// driftcap renders the cinematic headless and captures exactly one full
// timeline loop into a video file.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-driftloop/internal/animator"
	"github.com/coreman2200/funtimes-driftloop/internal/capture"
	"github.com/coreman2200/funtimes-driftloop/internal/render"
	"github.com/coreman2200/funtimes-driftloop/internal/scene"
	"github.com/coreman2200/funtimes-driftloop/internal/timeline"
)

func main() {
	var (
		out      = flag.String("o", "driftloop.mkv", "output file")
		fps      = flag.Int("fps", 60, "render and capture frame rate")
		encoder  = flag.String("encoder", "libx264", "video encoder")
		quality  = flag.Int("quality", 23, "capture quality (crf/cq)")
		settleMs = flag.Int("settle-ms", 400, "settle margin past one loop")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	tl, err := timeline.New(scene.Catalog())
	if err != nil {
		log.Fatal().Err(err).Msg("scene catalog invalid")
	}
	eng, err := render.NewEngine(render.Width, render.Height)
	if err != nil {
		log.Fatal().Err(err).Msg("engine init failed")
	}

	enc, err := capture.NewFFmpegEncoder(*encoder, *quality)
	if err != nil {
		log.Fatal().Err(err).Msg("no usable encoder")
	}
	ctrl := capture.NewController(enc, eng, *fps, time.Duration(*settleMs)*time.Millisecond)

	anim := animator.New(tl, eng, *fps, func(idx int, sc scene.Descriptor) {
		log.Info().Int("scene", idx).Str("label", sc.Label).Msg("scene change")
	})
	anim.Start(context.Background())
	defer anim.Stop()

	loop := time.Duration(tl.TotalMS()) * time.Millisecond
	log.Info().Dur("loop", loop).Str("out", *out).Msg("recording one loop")

	art, err := ctrl.Record(context.Background(), loop)
	if err != nil {
		log.Fatal().Err(err).Msg("capture failed")
	}
	if err := os.WriteFile(*out, art, 0644); err != nil {
		log.Fatal().Err(err).Msg("write output")
	}
	log.Info().Int("bytes", len(art)).Str("out", *out).Msg("done")
}
