package particles

import (
	"fmt"
	"strings"

	"github.com/decker502/sparks/pkg/utils"
)

// Shape selects how a particle is drawn.
type Shape int

const (
	// ShapeSquare draws an axis-aligned square centered on the particle.
	ShapeSquare Shape = iota
	// ShapeCircle draws a filled circle centered on the particle.
	ShapeCircle
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape parses "circle" or "square" (case-insensitive).
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle":
		return ShapeCircle, nil
	case "square", "rect":
		return ShapeSquare, nil
	default:
		return ShapeSquare, fmt.Errorf("unknown shape %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ProjectileSettings describes the distribution new particles are drawn
// from. Every NumberRange is sampled independently per particle.
type ProjectileSettings struct {
	Angle      NumberRange // degrees, 0 = right, 90 = down
	Velocity   NumberRange // pixels per second
	TimeToLive NumberRange // ms
	MinSize    NumberRange
	MaxSize    NumberRange

	Shape     Shape
	FromColor utils.Color
	ToColor   utils.Color
	Gravity   utils.Vector // pixels per second²

	// Callback, if set, runs on every new particle right before it is
	// handed to the system.
	Callback func(p *Particle)
}

// NewProjectileSettings returns the default settings: a stationary white
// 2px square living 1000..1500 ms.
func NewProjectileSettings() ProjectileSettings {
	return ProjectileSettings{
		Angle:      Fixed(0),
		Velocity:   Fixed(1),
		TimeToLive: NumberRange{Min: 1000, Max: 1500},
		MinSize:    Fixed(2),
		MaxSize:    Fixed(2),
		Shape:      ShapeSquare,
		FromColor:  utils.White,
		ToColor:    utils.White,
	}
}

// SetColor sets both color endpoints to c.
func (s *ProjectileSettings) SetColor(c utils.Color) {
	s.FromColor = c
	s.ToColor = c
}

// SetSize sets both size ranges to the fixed value size.
func (s *ProjectileSettings) SetSize(size float64) {
	s.MinSize = Fixed(size)
	s.MaxSize = Fixed(size)
}

// Clone returns a copy of s. The callback is shared.
func (s ProjectileSettings) Clone() ProjectileSettings {
	return s
}
