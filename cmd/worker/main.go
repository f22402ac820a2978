package main

import (
	"context"
	"faceless-timeline/application/services"
	"faceless-timeline/config"
	"faceless-timeline/infrastructure/adapters"
	"faceless-timeline/infrastructure/platform"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load .env")
	}

	renderConfig, err := config.GetRenderConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get render config")
	}

	redisConfig, err := config.GetRedisConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get redis config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	captionPreset, err := config.GetCaptionPreset(renderConfig.CaptionPresetsFile, renderConfig.CaptionPreset)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load caption preset")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zeroLogger := adapters.NewZerologWrapper(renderConfig.LogLevel)

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(renderConfig.WorkerPoolSize, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	projectReader, closeStore, err := platform.NewProjectReader(renderConfig, zeroLogger, sess)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create project reader")
	}
	defer closeStore()

	rdb, err := platform.NewRedisClient(ctx, redisConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	defer rdb.Close()

	s3Client := s3.New(sess, aws.NewConfig().WithRegion(s3Config.Region))

	audioProbe := adapters.NewFFprobeAudioDurationProbe(zeroLogger, renderConfig.FFprobePath)
	wordIndexCache := adapters.NewMemoryWordIndexCache(adapters.DefaultWordIndexCacheSize)
	manifestPublisher := adapters.NewS3ManifestPublisher(zeroLogger, s3Client, s3Config)
	exportQueue := adapters.NewRedisExportQueue(zeroLogger, rdb, redisConfig)

	durationResolver := services.NewSegmentDurationResolver(zeroLogger, audioProbe, workerPool)
	projectLoader := services.NewProjectTimelineLoader(zeroLogger, projectReader, durationResolver, captionPreset)
	compositor := services.NewTimelineCompositor(zeroLogger, wordIndexCache)
	exportPipeline := services.NewFrameExportPipeline(zeroLogger, projectLoader, compositor, manifestPublisher, workerPool)
	exportWorker := services.NewExportWorker(zeroLogger, exportQueue, exportPipeline, services.DefaultDequeueRetryDelay)

	if err := exportWorker.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Export worker stopped")
	}
}
