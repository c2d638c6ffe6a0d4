// Package particle provides data structures and parsing functionality for
// YAML particle effect libraries.
//
// A library file holds named effects. Each effect is a group of emitters
// sharing one lifetime, and each emitter carries the projectile settings
// its particles are drawn from:
//
//	effects:
//	  - name: firework
//	    timeToLive: 1200
//	    emitters:
//	      - name: burst
//	        interval: 400
//	        count: "[20 40]"
//	        projectile:
//	          angle: "[0 360]"
//	          velocity: "[60 160]"
//	          fromColor: "#ffd040"
//	          toColor: transparent
//	          gravity: {x: 0, y: 120}
package particle

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoEmitters is returned for an effect without emitters.
	ErrNoEmitters = errors.New("effect has no emitters")
	// ErrDuplicateEffect is returned when two effects share a name.
	ErrDuplicateEffect = errors.New("duplicate effect name")
)

// Library is the root of an effect library file.
type Library struct {
	Effects []EffectConfig `yaml:"effects"`
}

// EffectConfig is a named group of emitters.
type EffectConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// TimeToLive is the lifetime of the whole effect in milliseconds.
	// Empty or non-positive means the effect runs until cleared.
	TimeToLive Value           `yaml:"timeToLive,omitempty"`
	Emitters   []EmitterConfig `yaml:"emitters"`
}

// EmitterConfig describes one emitter of an effect.
//
// Numeric fields keep their textual form and accept either a fixed
// value "100" or a range "[80 120]". They are resolved when the effect is
// instantiated.
type EmitterConfig struct {
	Name       string           `yaml:"name"`
	Offset     Point            `yaml:"offset,omitempty"`     // 相对特效原点的偏移
	Interval   Value            `yaml:"interval,omitempty"`   // ms between batches
	Count      Value            `yaml:"count,omitempty"`      // particles per batch
	TimeToLive Value            `yaml:"timeToLive,omitempty"` // ms, empty = unbounded
	Projectile ProjectileConfig `yaml:"projectile"`
}

// ProjectileConfig describes the particles an emitter produces.
type ProjectileConfig struct {
	Angle      Value `yaml:"angle,omitempty"`      // degrees
	Velocity   Value `yaml:"velocity,omitempty"`   // pixels per second
	TimeToLive Value `yaml:"timeToLive,omitempty"` // ms

	// Size sets both size bounds; MinSize/MaxSize override it.
	Size    Value `yaml:"size,omitempty"`
	MinSize Value `yaml:"minSize,omitempty"`
	MaxSize Value `yaml:"maxSize,omitempty"`

	Shape string `yaml:"shape,omitempty"` // circle | square

	// Color sets both color endpoints; FromColor/ToColor override it.
	Color     string `yaml:"color,omitempty"`
	FromColor string `yaml:"fromColor,omitempty"`
	ToColor   string `yaml:"toColor,omitempty"`

	Gravity Point `yaml:"gravity,omitempty"` // pixels per second²

	// Callback names a registered post-spawn hook.
	Callback string `yaml:"callback,omitempty"`
}

// Point is a 2D offset in pixels.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Value is a numeric value in text form: "12", "[10 20]" or "[5]".
//
// In YAML it may be written as a scalar (12, "[10 20]") or as a flow
// sequence ([10, 20]).
type Value string

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = Value(node.Value)
		return nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: range items must be scalars", item.Line)
			}
			parts = append(parts, strings.Fields(item.Value)...)
		}
		*v = Value("[" + strings.Join(parts, " ") + "]")
		return nil
	default:
		return fmt.Errorf("line %d: expected a number or a range", node.Line)
	}
}

// IsZero reports whether the value was left empty.
func (v Value) IsZero() bool {
	return strings.TrimSpace(string(v)) == ""
}

// Validate checks every effect for a name, unique naming, at least one
// emitter and parseable values.
func (l *Library) Validate() error {
	seen := make(map[string]bool, len(l.Effects))
	for i := range l.Effects {
		e := &l.Effects[i]
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("effect #%d: name is required", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("effect %q: %w", e.Name, ErrDuplicateEffect)
		}
		seen[e.Name] = true

		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single effect.
func (e *EffectConfig) Validate() error {
	if len(e.Emitters) == 0 {
		return fmt.Errorf("effect %q: %w", e.Name, ErrNoEmitters)
	}
	if _, err := e.Lifetime(); err != nil {
		return fmt.Errorf("effect %q: %w", e.Name, err)
	}
	for i, em := range e.Emitters {
		if _, err := em.Resolve(); err != nil {
			name := em.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return fmt.Errorf("effect %q emitter %s: %w", e.Name, name, err)
		}
	}
	return nil
}
