package domain

import (
	"math"
	"strings"
)

const (
	MaxBlurPx              = 5.0
	PanZoomMaxScale        = 1.1
	SlideRightDuration     = 0.3 // share of the segment spent sliding in
	BouncePeriodSeconds    = 0.5
	BounceAmplitude        = 0.1
	BounceDamping          = 4.0
	BounceOscillations     = 1.5 // spring oscillations per period
	FlashDimmedOpacity     = 0.8
	slideRightStartPercent = -100.0
)

// EffectClock is the playback position an effect is evaluated at.
// Progress is local time over segment duration. Frame is the absolute render
// frame and only matters for bounceAndFlash.
type EffectClock struct {
	Progress  float64
	LocalTime float64
	Frame     int
}

type EffectTransform struct {
	Opacity           float64 `json:"opacity"`
	Scale             float64 `json:"scale"`
	TranslateXPercent float64 `json:"translateXPercent"`
	BlurPx            float64 `json:"blurPx"`
}

func IdentityTransform() EffectTransform {
	return EffectTransform{Opacity: 1, Scale: 1}
}

func ParseEffect(name string) Effect {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "blur":
		return EffectBlur
	case "panzoom", "pan_zoom", "pan-zoom":
		return EffectPanZoom
	case "slideright", "slide_right", "slide-right":
		return EffectSlideRight
	case "bounceandflash", "bounce_and_flash", "bounce-and-flash":
		return EffectBounceAndFlash
	default:
		return EffectNone
	}
}

// EffectTransformAt evaluates a segment effect. It is a pure function of its
// inputs so that live playback and frame export agree.
func EffectTransformAt(effect Effect, clock EffectClock) EffectTransform {
	out := IdentityTransform()
	progress := clamp01(clock.Progress)

	switch effect {
	case EffectBlur:
		out.BlurPx = lerp(MaxBlurPx, 0, progress)
	case EffectPanZoom:
		out.Scale = lerp(1.0, PanZoomMaxScale, progress)
	case EffectSlideRight:
		out.TranslateXPercent = lerp(slideRightStartPercent, 0, clamp01(clock.Progress/SlideRightDuration))
	case EffectBounceAndFlash:
		out.Scale = bounceScale(clock.LocalTime)
		// Flicker follows frame parity, so its rate is tied to the render fps.
		if clock.Frame&1 == 1 {
			out.Opacity = FlashDimmedOpacity
		}
	}

	return out
}

// bounceScale is a damped spring restarting every BouncePeriodSeconds of
// segment-local time, independent of the segment duration.
func bounceScale(localTime float64) float64 {
	if !finite(localTime) {
		localTime = 0
	}
	phase := math.Mod(localTime, BouncePeriodSeconds)
	if phase < 0 {
		phase += BouncePeriodSeconds
	}
	phase /= BouncePeriodSeconds

	return 1 + BounceAmplitude*math.Exp(-BounceDamping*phase)*math.Cos(2*math.Pi*BounceOscillations*phase)
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
