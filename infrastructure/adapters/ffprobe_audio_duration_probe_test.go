package adapters

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestParseProbeDuration(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "keeps fraction", raw: "4.736000\n", want: 4.736},
		{name: "integer", raw: "12", want: 12},
		{name: "empty", raw: "  \n", wantErr: true},
		{name: "not available", raw: "N/A\n", wantErr: true},
		{name: "garbage", raw: "four seconds", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProbeDuration(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFFprobeAudioDurationProbe_MissingBinary(t *testing.T) {
	probe := NewFFprobeAudioDurationProbe(NewZerologWrapperTo(&bytes.Buffer{}, "error"), "/nonexistent/ffprobe")

	if _, err := probe.Probe(context.Background(), "audio.mp3"); err == nil {
		t.Fatal("expected an error when ffprobe cannot run")
	}
}

func TestProbeInput(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "https url", in: "https://cdn.example.com/a.mp3", want: "https://cdn.example.com/a.mp3"},
		{name: "http url", in: "http://media:9000/a.mp3", want: "http://media:9000/a.mp3"},
		{name: "local path", in: "/var/audio/a.mp3", want: "file:/var/audio/a.mp3"},
		{name: "relative path", in: "fixtures/a.mp3", want: "file:fixtures/a.mp3"},
		{name: "option", in: "-report", wantErr: true},
		{name: "file url", in: "file:///etc/passwd", wantErr: true},
		{name: "other protocol", in: "concat:a.mp3|b.mp3", wantErr: true},
		{name: "url without host", in: "https:///a.mp3", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := probeInput(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFFprobeAudioDurationProbe_RejectsBeforeRunning(t *testing.T) {
	probe := NewFFprobeAudioDurationProbe(NewZerologWrapperTo(&bytes.Buffer{}, "error"), "/nonexistent/ffprobe")

	_, err := probe.Probe(context.Background(), "-report")
	if !errors.Is(err, ErrUnsupportedAudioSource) {
		t.Fatalf("err = %v, want ErrUnsupportedAudioSource", err)
	}
}
