package adapters

import (
	"context"
	"faceless-timeline/application/ports/outbound"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strconv"
	"strings"
)

const defaultFFprobeBinary = "ffprobe"

var ErrUnsupportedAudioSource = errors.New("unsupported audio source")

type ffprobeAudioDurationProbe struct {
	logger outbound.LoggerPort
	binary string
}

// NewFFprobeAudioDurationProbe shells out to ffprobe, which accepts both local
// paths and http(s) URLs. An empty binary means "ffprobe" from PATH.
func NewFFprobeAudioDurationProbe(logger outbound.LoggerPort, binary string) outbound.AudioDurationProbePort {
	if binary == "" {
		binary = defaultFFprobeBinary
	}
	return &ffprobeAudioDurationProbe{
		logger: logger,
		binary: binary,
	}
}

func (p *ffprobeAudioDurationProbe) Probe(ctx context.Context, audioURL string) (float64, error) {
	input, err := probeInput(audioURL)
	if err != nil {
		p.logger.ErrorWithFields(err, "refusing to probe audio source", map[string]interface{}{
			"audio_url": audioURL,
		})
		return 0, err
	}

	cmd := exec.CommandContext(ctx, p.binary, "-v", "error", "-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", input)

	out, err := cmd.Output()
	if err != nil {
		p.logger.ErrorWithFields(err, "error getting audio duration", map[string]interface{}{
			"audio_url": audioURL,
		})
		return 0, err
	}

	return parseProbeDuration(string(out))
}

// probeInput only lets http(s) URLs and plain local paths through. Local paths
// are pinned to ffprobe's file protocol so they can never be read as an
// option or as another protocol.
func probeInput(audioURL string) (string, error) {
	if audioURL == "" || strings.HasPrefix(audioURL, "-") {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAudioSource, audioURL)
	}

	u, err := url.Parse(audioURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedAudioSource, err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return "", fmt.Errorf("%w: %q has no host", ErrUnsupportedAudioSource, audioURL)
		}
		return audioURL, nil
	case "":
		if strings.Contains(audioURL, ":") {
			return "", fmt.Errorf("%w: %q", ErrUnsupportedAudioSource, audioURL)
		}
		return "file:" + audioURL, nil
	default:
		return "", fmt.Errorf("%w: scheme %q", ErrUnsupportedAudioSource, u.Scheme)
	}
}

// parseProbeDuration keeps the fractional part: word timings are sub-second,
// so truncating would shift every later segment.
func parseProbeDuration(raw string) (float64, error) {
	durationStr := strings.TrimSpace(raw)
	if durationStr == "" || durationStr == "N/A" {
		return 0, fmt.Errorf("ffprobe reported no duration")
	}

	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", durationStr, err)
	}

	return duration, nil
}
