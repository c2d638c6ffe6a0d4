package utils

import (
	"fmt"
	"math"
	"strings"
)

// Easing Functions (缓动函数)
//
// An easing function maps a progress value t ∈ [0, 1] to an eased value,
// also ∈ [0, 1]. The viewer uses them to move emitters along a path.
//
// Reference: https://easings.net/

// Easing maps linear progress to eased progress.
type Easing func(t float64) float64

// EaseLinear returns t unchanged.
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic starts fast and ends slow.
// f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic starts slow and ends fast.
// f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInOutCubic is slow at both ends.
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseInOutSine follows half a cosine wave.
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

var easings = map[string]Easing{
	"linear":     EaseLinear,
	"incubic":    EaseInCubic,
	"outcubic":   EaseOutCubic,
	"inoutcubic": EaseInOutCubic,
	"inoutsine":  EaseInOutSine,
}

// EasingByName looks up an easing function by its config name. Matching
// ignores case, dashes and underscores ("in-out-cubic" == "InOutCubic").
// An empty name selects linear.
func EasingByName(name string) (Easing, error) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	if key == "" {
		return EaseLinear, nil
	}
	if e, ok := easings[key]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}

// PingPong folds an unbounded progress value into a 0→1→0 triangle wave
// with the given period.
func PingPong(value, period float64) float64 {
	if period <= 0 {
		return 0
	}
	phase := math.Mod(value, 2*period)
	if phase < 0 {
		phase += 2 * period
	}
	if phase > period {
		phase = 2*period - phase
	}
	return phase / period
}

// Interpolate returns min + (max-min)*value. value is not clamped.
func Interpolate(min, max, value float64) float64 {
	return min + (max-min)*value
}

// Between reports whether min <= value <= max.
func Between(value, min, max float64) bool {
	return value >= min && value <= max
}

// Clamp limits value to [min, max].
func Clamp(value, min, max float64) float64 {
	return math.Min(math.Max(value, min), max)
}
