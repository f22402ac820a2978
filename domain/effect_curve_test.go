package domain

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestEffectTransformAt_PanZoomStaysBounded(t *testing.T) {
	for step := 0; step <= 150; step++ {
		progress := float64(step) / 100
		got := EffectTransformAt(EffectPanZoom, EffectClock{Progress: progress})
		if got.Scale < 1.0 || got.Scale > 1.1+epsilon {
			t.Fatalf("progress %v: scale %v outside [1.0, 1.1]", progress, got.Scale)
		}
	}
	if got := EffectTransformAt(EffectPanZoom, EffectClock{Progress: 1.5}); math.Abs(got.Scale-1.1) > epsilon {
		t.Errorf("extrapolated scale = %v; want 1.1", got.Scale)
	}
	if got := EffectTransformAt(EffectPanZoom, EffectClock{Progress: 0.5}); math.Abs(got.Scale-1.05) > epsilon {
		t.Errorf("midpoint scale = %v; want 1.05", got.Scale)
	}
}

func TestEffectTransformAt_SlideRight(t *testing.T) {
	tests := []struct {
		progress float64
		want     float64
	}{
		{progress: 0, want: -100},
		{progress: 0.15, want: -50},
		{progress: 0.3, want: 0},
		{progress: 0.9, want: 0},
		{progress: -0.2, want: -100},
	}
	for _, tc := range tests {
		got := EffectTransformAt(EffectSlideRight, EffectClock{Progress: tc.progress})
		if math.Abs(got.TranslateXPercent-tc.want) > epsilon {
			t.Errorf("progress %v: translateX = %v; want %v", tc.progress, got.TranslateXPercent, tc.want)
		}
		if got.Scale != 1 || got.Opacity != 1 {
			t.Errorf("progress %v: slide must not touch scale/opacity: %+v", tc.progress, got)
		}
	}
}

func TestEffectTransformAt_BlurClears(t *testing.T) {
	prev := math.Inf(1)
	for step := 0; step <= 20; step++ {
		progress := float64(step) / 10
		got := EffectTransformAt(EffectBlur, EffectClock{Progress: progress}).BlurPx
		if got > prev || got < 0 || got > MaxBlurPx {
			t.Fatalf("progress %v: blur %v not monotonically clearing within [0, 5]", progress, got)
		}
		prev = got
	}
	if got := EffectTransformAt(EffectBlur, EffectClock{Progress: 0}).BlurPx; got != 5 {
		t.Errorf("blur at start = %v; want 5", got)
	}
	if got := EffectTransformAt(EffectBlur, EffectClock{Progress: 1}).BlurPx; got != 0 {
		t.Errorf("blur at end = %v; want 0", got)
	}
}

func TestEffectTransformAt_NoneAndUnknownAreIdentity(t *testing.T) {
	for _, effect := range []Effect{EffectNone, Effect("sparkle"), ""} {
		got := EffectTransformAt(effect, EffectClock{Progress: 0.4, LocalTime: 1.2, Frame: 37})
		if got != IdentityTransform() {
			t.Errorf("effect %q: got %+v; want identity", effect, got)
		}
	}
}

func TestEffectTransformAt_BounceRepeatsEveryHalfSecond(t *testing.T) {
	for _, local := range []float64{0, 0.1, 0.23, 0.4} {
		a := EffectTransformAt(EffectBounceAndFlash, EffectClock{LocalTime: local, Progress: 0.1})
		b := EffectTransformAt(EffectBounceAndFlash, EffectClock{LocalTime: local + 2*BouncePeriodSeconds, Progress: 0.9})
		if math.Abs(a.Scale-b.Scale) > 1e-6 {
			t.Errorf("local %v: scale %v vs %v one cycle later", local, a.Scale, b.Scale)
		}
		if a.Scale < 1-BounceAmplitude || a.Scale > 1+BounceAmplitude {
			t.Errorf("local %v: scale %v outside spring amplitude", local, a.Scale)
		}
	}
	if got := EffectTransformAt(EffectBounceAndFlash, EffectClock{}).Scale; math.Abs(got-1.1) > epsilon {
		t.Errorf("scale at cycle start = %v; want 1.1", got)
	}
}

func TestEffectTransformAt_FlashFollowsFrameParity(t *testing.T) {
	for frame := 0; frame < 10; frame++ {
		got := EffectTransformAt(EffectBounceAndFlash, EffectClock{LocalTime: 0.2, Frame: frame})
		want := 1.0
		if frame%2 == 1 {
			want = FlashDimmedOpacity
		}
		if got.Opacity != want {
			t.Errorf("frame %d: opacity %v; want %v", frame, got.Opacity, want)
		}
	}
}

func TestParseEffect(t *testing.T) {
	tests := map[string]Effect{
		"blur":           EffectBlur,
		"panZoom":        EffectPanZoom,
		"pan_zoom":       EffectPanZoom,
		"slideRight":     EffectSlideRight,
		"bounceAndFlash": EffectBounceAndFlash,
		"":               EffectNone,
		"unknown":        EffectNone,
	}
	for in, want := range tests {
		if got := ParseEffect(in); got != want {
			t.Errorf("ParseEffect(%q) = %q; want %q", in, got, want)
		}
	}
}
