package config

import (
	"faceless-timeline/domain"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

const DefaultCaptionPresetName = "default"

type captionPresetsFile struct {
	Presets map[string]domain.CaptionConfig `yaml:"presets"`
}

// DefaultCaptionPreset is used when no presets file is configured.
func DefaultCaptionPreset() domain.CaptionConfig {
	return domain.CaptionConfig{
		FontSize:          48,
		FontFamily:        "Montserrat",
		ActiveWordColor:   "#FFD700",
		InactiveWordColor: "#FFFFFF",
		BackgroundColor:   "rgba(0, 0, 0, 0.5)",
		FontWeight:        "bold",
		TextTransform:     "uppercase",
		WordsPerBatch:     domain.DefaultWordsPerBatch,
		FromBottom:        20,
	}
}

func LoadCaptionPresets(path string) (map[string]domain.CaptionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read caption presets %s: %w", path, err)
	}

	var file captionPresetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse caption presets %s: %w", path, err)
	}
	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("caption presets %s defines no presets", path)
	}

	for name, preset := range file.Presets {
		if preset.WordsPerBatch < 0 {
			return nil, fmt.Errorf("caption preset %q: words_per_batch must not be negative", name)
		}
	}

	return file.Presets, nil
}

// GetCaptionPreset resolves the named preset from path. An empty path yields
// DefaultCaptionPreset.
func GetCaptionPreset(path, name string) (domain.CaptionConfig, error) {
	if path == "" {
		return DefaultCaptionPreset(), nil
	}
	if name == "" {
		name = DefaultCaptionPresetName
	}

	presets, err := LoadCaptionPresets(path)
	if err != nil {
		return domain.CaptionConfig{}, err
	}

	preset, ok := presets[name]
	if !ok {
		return domain.CaptionConfig{}, fmt.Errorf("caption preset %q not found in %s", name, path)
	}

	return preset, nil
}
