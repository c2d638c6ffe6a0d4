package particle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/decker502/sparks/pkg/particles"
	"github.com/decker502/sparks/pkg/utils"
)

// errEmpty marks a value left blank; callers fall back to defaults.
var errEmpty = errors.New("empty value")

// ParseRange parses a value string into a NumberRange.
// Supports:
//   - Fixed value: "1500" → 1500..1500
//   - Range: "[0.7 0.9]" → 0.7..0.9
//   - Single-item range: "[5]" → 5..5
//
// The bounds are kept in the order given; inverted ranges are allowed.
func ParseRange(s string) (particles.NumberRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return particles.NumberRange{}, errEmpty
	}

	if !strings.HasPrefix(s, "[") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return particles.NumberRange{}, fmt.Errorf("invalid number %q", s)
		}
		return particles.Fixed(v), nil
	}

	if !strings.HasSuffix(s, "]") {
		return particles.NumberRange{}, fmt.Errorf("unterminated range %q", s)
	}
	parts := strings.Fields(strings.Trim(s, "[]"))
	values := make([]float64, 0, 2)
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, ","), 64)
		if err != nil {
			return particles.NumberRange{}, fmt.Errorf("invalid number %q in range %q", p, s)
		}
		values = append(values, v)
	}

	switch len(values) {
	case 1:
		return particles.Fixed(values[0]), nil
	case 2:
		return particles.NumberRange{Min: values[0], Max: values[1]}, nil
	default:
		return particles.NumberRange{}, fmt.Errorf("range %q needs one or two numbers", s)
	}
}

// rangeOr parses v or returns def when v is empty.
func rangeOr(v Value, def particles.NumberRange) (particles.NumberRange, error) {
	r, err := ParseRange(string(v))
	if errors.Is(err, errEmpty) {
		return def, nil
	}
	return r, err
}

var namedColors = map[string]utils.Color{
	"white":       utils.White,
	"black":       utils.Black,
	"transparent": utils.Transparent,
	"red":         {R: 255, A: 255},
	"green":       {G: 255, A: 255},
	"blue":        {B: 255, A: 255},
	"yellow":      {R: 255, G: 255, A: 255},
	"orange":      {R: 255, G: 165, A: 255},
	"cyan":        {G: 255, B: 255, A: 255},
	"magenta":     {R: 255, B: 255, A: 255},
	"purple":      {R: 128, B: 128, A: 255},
	"gray":        {R: 128, G: 128, B: 128, A: 255},
}

// ParseColor parses a color string. Supports:
//   - Hex: "#rrggbb", "#rrggbbaa"
//   - CSS functions: "rgb(r, g, b)", "rgba(r, g, b, a)" with a in 0..1
//   - Names: white, black, transparent, red, green, blue, yellow,
//     orange, cyan, magenta, purple, gray
func ParseColor(s string) (utils.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return utils.Color{}, errEmpty
	}

	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}

	for _, fn := range []string{"rgba(", "rgb("} {
		if strings.HasPrefix(s, fn) && strings.HasSuffix(s, ")") {
			return parseColorFunc(strings.TrimSuffix(strings.TrimPrefix(s, fn), ")"), fn == "rgba(")
		}
	}

	return utils.Color{}, fmt.Errorf("unknown color %q", s)
}

func parseHexColor(s string) (utils.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return utils.Color{}, fmt.Errorf("hex color %q must be #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return utils.Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	return utils.Color{
		R: float64(n >> 24 & 0xff),
		G: float64(n >> 16 & 0xff),
		B: float64(n >> 8 & 0xff),
		A: float64(n & 0xff),
	}, nil
}

func parseColorFunc(args string, withAlpha bool) (utils.Color, error) {
	parts := strings.Split(args, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return utils.Color{}, fmt.Errorf("color function needs %d arguments, got %d", want, len(parts))
	}

	ch := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return utils.Color{}, fmt.Errorf("invalid color channel %q", p)
		}
		ch[i] = v
	}

	c := utils.Color{R: ch[0], G: ch[1], B: ch[2], A: 255}
	if withAlpha {
		// CSS alpha 0..1 → 0..255
		c.A = ch[3] * 255
	}
	return c, nil
}

// ParseShape parses a shape name. Empty selects the square default.
func ParseShape(s string) (particles.Shape, error) {
	if strings.TrimSpace(s) == "" {
		return particles.ShapeSquare, nil
	}
	return particles.ParseShape(s)
}
