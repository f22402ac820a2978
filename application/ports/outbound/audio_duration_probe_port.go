package outbound

import "context"

type AudioDurationProbePort interface {
	Probe(ctx context.Context, audioURL string) (float64, error)
}
