package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	ProjectStoreDynamo   = "dynamo"
	ProjectStorePostgres = "postgres"
	ProjectStoreFile     = "file"
)

const (
	defaultFPS            = 30
	defaultWorkerPoolSize = 120
	defaultPreviewStreams = 16
)

type RenderConfig struct {
	FPS                float64
	LogLevel           string
	ListenAddr         string
	ProjectStore       string
	FixturesDir        string
	CaptionPresetsFile string
	CaptionPreset      string
	FFprobePath        string
	WorkerPoolSize     int
	PreviewLoop        bool
	// PreviewMaxStreams sizes the dedicated preview pool and caps open streams.
	PreviewMaxStreams int
}

func GetRenderConfig() (*RenderConfig, error) {
	cfg := &RenderConfig{
		FPS:                defaultFPS,
		LogLevel:           getEnvDefault("LOG_LEVEL", "info"),
		ListenAddr:         getEnvDefault("LISTEN_ADDR", ":8080"),
		ProjectStore:       getEnvDefault("PROJECT_STORE", ProjectStoreDynamo),
		FixturesDir:        getEnvDefault("PROJECT_FIXTURES_DIR", "fixtures"),
		CaptionPresetsFile: os.Getenv("CAPTION_PRESETS_FILE"),
		CaptionPreset:      getEnvDefault("CAPTION_PRESET", DefaultCaptionPresetName),
		FFprobePath:        getEnvDefault("FFPROBE_PATH", "ffprobe"),
		WorkerPoolSize:     defaultWorkerPoolSize,
		PreviewLoop:        true,
		PreviewMaxStreams:  defaultPreviewStreams,
	}

	if fps := os.Getenv("RENDER_FPS"); fps != "" {
		fpsVal, err := strconv.ParseFloat(fps, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RENDER_FPS: %w", err)
		}
		if fpsVal <= 0 {
			return nil, fmt.Errorf("RENDER_FPS must be positive, got %v", fpsVal)
		}
		cfg.FPS = fpsVal
	}

	if size := os.Getenv("WORKER_POOL_SIZE"); size != "" {
		sizeVal, err := strconv.Atoi(size)
		if err != nil || sizeVal <= 0 {
			return nil, fmt.Errorf("WORKER_POOL_SIZE must be a positive integer")
		}
		cfg.WorkerPoolSize = sizeVal
	}

	if loop := os.Getenv("PREVIEW_LOOP"); loop != "" {
		loopVal, err := strconv.ParseBool(loop)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PREVIEW_LOOP: %w", err)
		}
		cfg.PreviewLoop = loopVal
	}

	if streams := os.Getenv("PREVIEW_MAX_STREAMS"); streams != "" {
		streamsVal, err := strconv.Atoi(streams)
		if err != nil || streamsVal <= 0 {
			return nil, fmt.Errorf("PREVIEW_MAX_STREAMS must be a positive integer")
		}
		cfg.PreviewMaxStreams = streamsVal
	}

	switch cfg.ProjectStore {
	case ProjectStoreDynamo, ProjectStorePostgres, ProjectStoreFile:
	default:
		return nil, fmt.Errorf("PROJECT_STORE must be one of %s, %s, %s; got %q",
			ProjectStoreDynamo, ProjectStorePostgres, ProjectStoreFile, cfg.ProjectStore)
	}

	return cfg, nil
}
