package main

import (
	"context"
	"faceless-timeline/application/services"
	"faceless-timeline/config"
	"faceless-timeline/infrastructure/adapters"
	"faceless-timeline/infrastructure/gin_interface/controllers"
	"faceless-timeline/infrastructure/platform"
	"faceless-timeline/middleware"
	"fmt"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
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

	authConfig, err := config.NewAuthConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get auth config")
	}

	captionPreset, err := config.GetCaptionPreset(renderConfig.CaptionPresetsFile, renderConfig.CaptionPreset)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load caption preset")
	}

	zeroLogger := adapters.NewZerologWrapper(renderConfig.LogLevel)

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(renderConfig.WorkerPoolSize, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	// a preview holds one worker while its client listens; probes and exports
	// stay on workerPool
	previewPool, err := ants.NewPool(renderConfig.PreviewMaxStreams, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create preview pool")
	}
	defer previewPool.Release()

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	projectReader, closeStore, err := platform.NewProjectReader(renderConfig, zeroLogger, sess)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create project reader")
	}
	defer closeStore()

	rdb, err := platform.NewRedisClient(context.Background(), redisConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	defer rdb.Close()

	audioProbe := adapters.NewFFprobeAudioDurationProbe(zeroLogger, renderConfig.FFprobePath)
	wordIndexCache := adapters.NewMemoryWordIndexCache(adapters.DefaultWordIndexCacheSize)
	exportQueue := adapters.NewRedisExportQueue(zeroLogger, rdb, redisConfig)

	durationResolver := services.NewSegmentDurationResolver(zeroLogger, audioProbe, workerPool)
	projectLoader := services.NewProjectTimelineLoader(zeroLogger, projectReader, durationResolver, captionPreset)
	compositor := services.NewTimelineCompositor(zeroLogger, wordIndexCache)
	playbackPreview := services.NewPlaybackPreview(zeroLogger, compositor, previewPool)
	exportScheduler := services.NewExportScheduler(zeroLogger, exportQueue)

	timelineController := controllers.NewTimelineController(zeroLogger, compositor, projectLoader, renderConfig.FPS)
	previewController := controllers.NewPreviewController(zeroLogger, playbackPreview, projectLoader,
		renderConfig.FPS, renderConfig.PreviewLoop, renderConfig.PreviewMaxStreams)
	exportController := controllers.NewExportController(zeroLogger, exportScheduler, projectLoader, renderConfig.FPS)
	schemaController := controllers.NewSchemaController()

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(authConfig, zeroLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}

	router.Use(authHandler.AuthMiddleware())

	schemaController.RegisterRoutes(router)
	timelineController.RegisterRoutes(router)
	previewController.RegisterRoutes(router)
	exportController.RegisterRoutes(router)

	zeroLogger.InfoWithFields("starting timeline api", map[string]interface{}{
		"addr":          renderConfig.ListenAddr,
		"project_store": renderConfig.ProjectStore,
		"fps":           renderConfig.FPS,
	})

	err = router.Run(renderConfig.ListenAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
