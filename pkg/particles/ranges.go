package particles

import (
	"fmt"

	"github.com/decker502/sparks/pkg/utils"
)

// NumberRange is a numeric interval sampled uniformly over [Min, Max).
type NumberRange struct {
	Min float64
	Max float64
}

// Fixed returns the degenerate range v..v.
func Fixed(v float64) NumberRange {
	return NumberRange{Min: v, Max: v}
}

// RandomValue samples the range through src.
// A degenerate range returns Min without consulting src.
func (r NumberRange) RandomValue(src RandomSource) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return src.IntBetween(r.Min, r.Max)
}

// Sorted returns the range with Min <= Max.
func (r NumberRange) Sorted() NumberRange {
	if r.Min > r.Max {
		return NumberRange{Min: r.Max, Max: r.Min}
	}
	return r
}

// Lerp returns Min + (Max-Min)*t.
func (r NumberRange) Lerp(t float64) float64 {
	return utils.Interpolate(r.Min, r.Max, t)
}

func (r NumberRange) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("%g", r.Min)
	}
	return fmt.Sprintf("[%g %g]", r.Min, r.Max)
}

// ColorRange is a two-endpoint color gradient.
type ColorRange struct {
	Min utils.Color
	Max utils.Color
}

// SolidColor returns a range whose endpoints are both c.
func SolidColor(c utils.Color) ColorRange {
	return ColorRange{Min: c, Max: c}
}

// Interpolate blends each channel independently. t is neither clamped nor
// rounded, so values outside [0, 1] extrapolate.
func (r ColorRange) Interpolate(t float64) utils.Color {
	return utils.Color{
		R: utils.Interpolate(r.Min.R, r.Max.R, t),
		G: utils.Interpolate(r.Min.G, r.Max.G, t),
		B: utils.Interpolate(r.Min.B, r.Max.B, t),
		A: utils.Interpolate(r.Min.A, r.Max.A, t),
	}
}
