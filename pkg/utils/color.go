package utils

import (
	"fmt"
	"image/color"
	"math"
)

// Color is an RGBA color with float channels in the 0..255 range.
//
// Channels are kept as floats so that interpolated colors (颜色渐变) do not
// lose precision between frames; conversion to 8-bit happens only when the
// color is handed to a renderer through the color.Color interface.
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

var (
	// White is opaque white.
	White = Color{R: 255, G: 255, B: 255, A: 255}
	// Black is opaque black.
	Black = Color{A: 255}
	// Transparent is fully transparent black.
	Transparent = Color{}
)

// NewColor returns a Color from its four channels.
func NewColor(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Equals reports whether all four channels match exactly.
func (c Color) Equals(other Color) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B && c.A == other.A
}

// WithAlpha returns c with the alpha channel replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA implements color.Color. Channels are clamped to 0..255 and the
// result is alpha-premultiplied as the interface requires.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts c to a non-premultiplied 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: channelByte(c.R),
		G: channelByte(c.G),
		B: channelByte(c.B),
		A: channelByte(c.A),
	}
}

// CSS formats c as rgba(r, g, b, a) with the alpha channel normalised to 0..1.
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.3g)",
		channelByte(c.R), channelByte(c.G), channelByte(c.B), Clamp(c.A, 0, 255)/255)
}

// Hex formats c as #rrggbbaa.
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// ColorFromStd converts any color.Color into a Color.
func ColorFromStd(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: float64(n.R), G: float64(n.G), B: float64(n.B), A: float64(n.A)}
}

func channelByte(v float64) uint8 {
	return uint8(Clamp(v, 0, 255) + 0.5)
}

// ColorFromHSV converts hue (degrees), saturation and value (0..1) into
// an opaque Color.
func ColorFromHSV(h, s, v float64) Color {
	h = NormalizeDegrees(h)
	s = Clamp(s, 0, 1)
	v = Clamp(v, 0, 1)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return Color{R: (r + m) * 255, G: (g + m) * 255, B: (b + m) * 255, A: 255}
}
