package services

import (
	"context"
	"faceless-timeline/domain"
	"math"
	"testing"
)

func TestSegmentDurationResolver_Resolve(t *testing.T) {
	probe := &fakeProbe{durations: map[string]float64{
		"ok.mp3":   4.25,
		"zero.mp3": 0,
	}}
	resolver := NewSegmentDurationResolver(newTestLogger(), probe, newTestPool(t))

	segments := []domain.Segment{
		{ID: "kept", Duration: 2.5},
		{ID: "probed", AudioURL: "ok.mp3"},
		{ID: "no audio"},
		{ID: "probe fails", AudioURL: "missing.mp3", Duration: -1},
		{ID: "probe says zero", AudioURL: "zero.mp3", Duration: math.NaN()},
		{ID: "infinite", Duration: math.Inf(1)},
	}

	got, err := resolver.Resolve(context.Background(), segments)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{2.5, 4.25, domain.DefaultSegmentDuration, domain.DefaultSegmentDuration,
		domain.DefaultSegmentDuration, domain.DefaultSegmentDuration}
	for i, w := range want {
		if got[i].Duration != w {
			t.Errorf("%s: duration = %v, want %v", got[i].ID, got[i].Duration, w)
		}
		if got[i].ID != segments[i].ID {
			t.Errorf("segment %d reordered: %s", i, got[i].ID)
		}
	}

	if segments[1].Duration != 0 || segments[3].Duration != -1 {
		t.Fatal("input segments were mutated")
	}
	if len(probe.calls) != 3 {
		t.Fatalf("probed %d times, want 3 (%v)", len(probe.calls), probe.calls)
	}
}

func TestSegmentDurationResolver_NothingToProbe(t *testing.T) {
	probe := &fakeProbe{}
	resolver := NewSegmentDurationResolver(newTestLogger(), probe, newTestPool(t))

	got, err := resolver.Resolve(context.Background(), []domain.Segment{{ID: "a", Duration: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Duration != 1 || len(probe.calls) != 0 {
		t.Fatalf("unexpected result %+v, calls %v", got, probe.calls)
	}
}

func TestSegmentDurationResolver_Cancelled(t *testing.T) {
	resolver := NewSegmentDurationResolver(newTestLogger(), &fakeProbe{}, newTestPool(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := resolver.Resolve(ctx, []domain.Segment{{ID: "a", AudioURL: "x.mp3"}}); err == nil {
		t.Fatal("expected the cancellation to surface")
	}
}
