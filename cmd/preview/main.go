package main

import (
	"context"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/config"
	"faceless-timeline/infrastructure/adapters"
	"flag"
	"fmt"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"os"
	"os/signal"
	"syscall"
)

// preview follows a project's playback stream and logs one line per frame.
func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load .env")
	}

	baseURL := flag.String("api", "http://localhost:8080", "timeline api base URL")
	projectID := flag.String("project", "", "project to preview")
	from := flag.Float64("from", 0, "seek position in seconds")
	fps := flag.Float64("fps", 0, "playback rate; 0 uses the server default")
	loop := flag.Bool("loop", false, "restart from the beginning past the end")
	flag.Parse()

	if *projectID == "" {
		log.Fatal().Msg("-project is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zeroLogger := adapters.NewZerologWrapper(os.Getenv("LOG_LEVEL"))

	workerPool, err := ants.NewPool(4, ants.WithPanicHandler(func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	subscriber := adapters.NewPreviewStreamSubscriber(zeroLogger, workerPool)

	descriptors, errCh := subscriber.Subscribe(ctx, outbound.SubscribePreviewRequest{
		BaseURL:   *baseURL,
		ProjectID: *projectID,
		Token:     os.Getenv("PREVIEW_TOKEN"),
		From:      *from,
		FPS:       *fps,
		Loop:      *loop,
	})

	for d := range descriptors {
		fields := map[string]interface{}{
			"frame":   d.Frame,
			"segment": d.ActiveSegmentIndex,
			"effect":  d.Effect,
			"opacity": d.EffectTransform.Opacity,
			"scale":   d.EffectTransform.Scale,
		}
		if d.CaptionBatch != nil {
			words := make([]string, len(d.CaptionBatch.Words))
			for i, w := range d.CaptionBatch.Words {
				words[i] = w.Text
				if w.IsActive {
					words[i] = "[" + w.Text + "]"
				}
			}
			fields["caption"] = words
		}
		zeroLogger.InfoWithFields("frame", fields)
	}

	for err := range errCh {
		log.Fatal().Err(err).Msg("Preview stream failed")
	}
}
