package config

import "testing"

func TestGetRenderConfigDefaults(t *testing.T) {
	for _, key := range []string{"RENDER_FPS", "WORKER_POOL_SIZE", "PREVIEW_LOOP", "PROJECT_STORE", "LOG_LEVEL", "PREVIEW_MAX_STREAMS"} {
		t.Setenv(key, "")
	}

	cfg, err := GetRenderConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != defaultFPS {
		t.Errorf("FPS = %v, want %v", cfg.FPS, defaultFPS)
	}
	if cfg.ProjectStore != ProjectStoreDynamo {
		t.Errorf("ProjectStore = %q, want %q", cfg.ProjectStore, ProjectStoreDynamo)
	}
	if !cfg.PreviewLoop {
		t.Error("PreviewLoop should default to true")
	}
	if cfg.PreviewMaxStreams != defaultPreviewStreams {
		t.Errorf("PreviewMaxStreams = %d, want %d", cfg.PreviewMaxStreams, defaultPreviewStreams)
	}
}

func TestGetRenderConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero fps", key: "RENDER_FPS", value: "0"},
		{name: "non numeric fps", key: "RENDER_FPS", value: "fast"},
		{name: "unknown store", key: "PROJECT_STORE", value: "mongo"},
		{name: "negative pool", key: "WORKER_POOL_SIZE", value: "-1"},
		{name: "zero preview streams", key: "PREVIEW_MAX_STREAMS", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := GetRenderConfig(); err == nil {
				t.Fatalf("expected an error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
