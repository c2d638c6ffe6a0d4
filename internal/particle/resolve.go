package particle

import (
	"errors"
	"fmt"

	"github.com/decker502/sparks/pkg/particles"
	"github.com/decker502/sparks/pkg/utils"
)

// ResolvedEmitter is an EmitterConfig with every value parsed.
type ResolvedEmitter struct {
	Name       string
	Offset     utils.Vector
	Interval   float64
	Count      particles.NumberRange
	TimeToLive float64
	Settings   particles.ProjectileSettings

	// Callback is the unresolved hook name; empty for none.
	Callback string
}

// Lifetime returns the effect lifetime in milliseconds, or
// particles.Unbounded when none is configured.
func (e *EffectConfig) Lifetime() (float64, error) {
	return lifetime(e.TimeToLive, "timeToLive")
}

// Resolve parses every value of the emitter, applying defaults for the
// ones left empty.
func (c EmitterConfig) Resolve() (ResolvedEmitter, error) {
	out := ResolvedEmitter{
		Name:     c.Name,
		Offset:   utils.NewVector(c.Offset.X, c.Offset.Y),
		Callback: c.Projectile.Callback,
	}

	interval, err := rangeOr(c.Interval, particles.Fixed(particles.DefaultEmitInterval))
	if err != nil {
		return out, fmt.Errorf("interval: %w", err)
	}
	if interval.Min != interval.Max {
		return out, fmt.Errorf("interval: must be a fixed value, got %s", interval)
	}
	if interval.Min < 0 {
		return out, fmt.Errorf("interval: must be >= 0, got %g", interval.Min)
	}
	out.Interval = interval.Min

	if out.Count, err = rangeOr(c.Count, particles.Fixed(1)); err != nil {
		return out, fmt.Errorf("count: %w", err)
	}
	if out.Count.Min < 0 || out.Count.Max < 0 {
		return out, fmt.Errorf("count: must be >= 0, got %s", out.Count)
	}

	if out.TimeToLive, err = lifetime(c.TimeToLive, "timeToLive"); err != nil {
		return out, err
	}

	if out.Settings, err = c.Projectile.Settings(); err != nil {
		return out, fmt.Errorf("projectile: %w", err)
	}
	return out, nil
}

// Settings builds ProjectileSettings on top of particles.NewProjectileSettings.
// The callback is left unset; hooks are bound by name elsewhere.
func (c ProjectileConfig) Settings() (particles.ProjectileSettings, error) {
	s := particles.NewProjectileSettings()
	var err error

	if s.Angle, err = rangeOr(c.Angle, s.Angle); err != nil {
		return s, fmt.Errorf("angle: %w", err)
	}
	if s.Velocity, err = rangeOr(c.Velocity, s.Velocity); err != nil {
		return s, fmt.Errorf("velocity: %w", err)
	}
	if s.TimeToLive, err = rangeOr(c.TimeToLive, s.TimeToLive); err != nil {
		return s, fmt.Errorf("timeToLive: %w", err)
	}
	if s.TimeToLive.Min < 0 || s.TimeToLive.Max < 0 {
		return s, fmt.Errorf("timeToLive: must be >= 0, got %s", s.TimeToLive)
	}

	// size 同时设置上下界，minSize/maxSize 可单独覆盖
	size, err := rangeOr(c.Size, s.MinSize)
	if err != nil {
		return s, fmt.Errorf("size: %w", err)
	}
	s.MinSize, s.MaxSize = size, size
	if s.MinSize, err = rangeOr(c.MinSize, s.MinSize); err != nil {
		return s, fmt.Errorf("minSize: %w", err)
	}
	if s.MaxSize, err = rangeOr(c.MaxSize, s.MaxSize); err != nil {
		return s, fmt.Errorf("maxSize: %w", err)
	}

	if s.Shape, err = ParseShape(c.Shape); err != nil {
		return s, err
	}

	if c.Color != "" {
		col, err := ParseColor(c.Color)
		if err != nil {
			return s, fmt.Errorf("color: %w", err)
		}
		s.SetColor(col)
	}
	if s.FromColor, err = colorOr(c.FromColor, s.FromColor); err != nil {
		return s, fmt.Errorf("fromColor: %w", err)
	}
	if s.ToColor, err = colorOr(c.ToColor, s.ToColor); err != nil {
		return s, fmt.Errorf("toColor: %w", err)
	}

	s.Gravity = utils.NewVector(c.Gravity.X, c.Gravity.Y)
	return s, nil
}

func colorOr(s string, def utils.Color) (utils.Color, error) {
	c, err := ParseColor(s)
	if errors.Is(err, errEmpty) {
		return def, nil
	}
	return c, err
}

// lifetime parses an optional fixed, non-negative lifetime. Empty or 0
// maps to particles.Unbounded.
func lifetime(v Value, field string) (float64, error) {
	r, err := rangeOr(v, particles.Fixed(particles.Unbounded))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if r.Min != r.Max {
		return 0, fmt.Errorf("%s: must be a fixed value, got %s", field, r)
	}
	if r.Min == particles.Unbounded || r.Min == 0 {
		return particles.Unbounded, nil
	}
	if r.Min < 0 {
		return 0, fmt.Errorf("%s: must be >= 0, got %g", field, r.Min)
	}
	return r.Min, nil
}
