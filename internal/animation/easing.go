package animation

import (
	"github.com/tanema/gween/ease"
)

// Easing curve names.
const (
	EaseLinear  = "linear"
	EaseIn      = "ease-in"
	EaseOut     = "ease-out"
	EaseInOut   = "ease-in-out"
	EaseElastic = "elastic"
	EaseBounce  = "bounce"
)

var easings = map[string]ease.TweenFunc{
	EaseLinear:  ease.Linear,
	EaseIn:      ease.InCubic,
	EaseOut:     ease.OutCubic,
	EaseInOut:   ease.InOutCubic,
	EaseElastic: ease.OutElastic,
	EaseBounce:  ease.OutBounce,
}

// IsEasing reports whether name is a known curve.
func IsEasing(name string) bool {
	_, ok := easings[name]
	return ok
}

// Ease maps t in [0,1] through the named curve. Unknown names are linear.
func Ease(name string, t float64) float64 {
	fn, ok := easings[name]
	if !ok {
		return t
	}
	// Endpoints are exact so clamped progress lands precisely on 0 and 1.
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return float64(fn(float32(t), 0, 1, 1))
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easeOutBack overshoots slightly before settling, used by pop.
func easeOutBack(t float64) float64 {
	return float64(ease.OutBack(float32(t), 0, 1, 1))
}
