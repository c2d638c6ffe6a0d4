package entities

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/decker502/sparks/internal/particle"
	"github.com/decker502/sparks/pkg/particles"
	"github.com/decker502/sparks/pkg/utils"
)

// ErrUnknownCallback is returned when an emitter names a projectile
// callback that was never registered.
var ErrUnknownCallback = errors.New("unknown particle callback")

// EffectSource looks up effect definitions by name.
// *game.EffectLibrary satisfies it.
type EffectSource interface {
	Get(name string) (*particle.EffectConfig, error)
}

// CallbackFactory builds a projectile callback bound to one particle
// system, so the hook can draw from the system's random source.
type CallbackFactory func(system *particles.ParticleSystem) func(p *particles.Particle)

var (
	callbacksMu sync.RWMutex
	callbacks   = map[string]CallbackFactory{
		"rainbow": rainbowCallback,
		"sparkle": sparkleCallback,
	}
)

// RegisterParticleCallback makes fn available to effect files under name.
// Registering an existing name replaces it.
func RegisterParticleCallback(name string, fn CallbackFactory) {
	callbacksMu.Lock()
	defer callbacksMu.Unlock()
	callbacks[name] = fn
}

// ParticleCallbacks returns the registered callback names, sorted.
func ParticleCallbacks() []string {
	callbacksMu.RLock()
	defer callbacksMu.RUnlock()

	names := make([]string, 0, len(callbacks))
	for name := range callbacks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupCallback(name string) (CallbackFactory, error) {
	callbacksMu.RLock()
	defer callbacksMu.RUnlock()

	fn, ok := callbacks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCallback, name)
	}
	return fn, nil
}

// CreateParticleEffect builds the named effect at (x, y) and registers it
// with the system.
//
// The effect becomes one EmitterGroup carrying the effect lifetime, with
// one Emitter per configured emitter placed at (x, y) plus its offset.
// Nothing is registered when any emitter fails to resolve.
//
// Example:
//
//	group, err := CreateParticleEffect(system, library, "firework", 400, 300, now)
//	if err != nil {
//	    logger.Error("failed to create particle effect", "err", err)
//	}
func CreateParticleEffect(system *particles.ParticleSystem, source EffectSource, name string, x, y float64, t particles.FrameTime) (*particles.EmitterGroup, error) {
	effect, err := source.Get(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load particle effect '%s': %w", name, err)
	}

	group, err := BuildEffect(system, effect, utils.NewVector(x, y), t)
	if err != nil {
		return nil, err
	}

	system.AddEmitter(group)
	system.Logger().Debug("particle effect created",
		"effect", name, "x", x, "y", y, "emitters", group.Len())
	return group, nil
}

// BuildEffect turns an effect definition into an unregistered EmitterGroup
// anchored at origin.
func BuildEffect(system *particles.ParticleSystem, effect *particle.EffectConfig, origin utils.Vector, t particles.FrameTime) (*particles.EmitterGroup, error) {
	if len(effect.Emitters) == 0 {
		return nil, fmt.Errorf("particle effect '%s': %w", effect.Name, particle.ErrNoEmitters)
	}

	ttl, err := effect.Lifetime()
	if err != nil {
		return nil, fmt.Errorf("particle effect '%s': %w", effect.Name, err)
	}

	group := particles.NewEmitterGroup(t)
	group.TimeToLive = ttl

	for i, cfg := range effect.Emitters {
		resolved, err := cfg.Resolve()
		if err != nil {
			return nil, fmt.Errorf("particle effect '%s' emitter %d: %w", effect.Name, i, err)
		}

		emitter, err := NewConfiguredEmitter(system, resolved, origin, t)
		if err != nil {
			return nil, fmt.Errorf("particle effect '%s' emitter %d: %w", effect.Name, i, err)
		}
		group.Add(emitter)
	}
	return group, nil
}

// NewConfiguredEmitter creates an emitter from a resolved configuration,
// binding its named callback.
func NewConfiguredEmitter(system *particles.ParticleSystem, cfg particle.ResolvedEmitter, origin utils.Vector, t particles.FrameTime) (*particles.Emitter, error) {
	emitter := particles.NewEmitter(origin.Add(cfg.Offset), t, system)
	emitter.Interval = cfg.Interval
	emitter.Count = cfg.Count
	emitter.TimeToLive = cfg.TimeToLive
	emitter.Settings = cfg.Settings

	if cfg.Callback != "" {
		factory, err := lookupCallback(cfg.Callback)
		if err != nil {
			return nil, err
		}
		emitter.Settings.Callback = factory(system)
	}
	return emitter, nil
}

// rainbowCallback 随机色相，并在生命周期内淡出为透明
func rainbowCallback(system *particles.ParticleSystem) func(p *particles.Particle) {
	return func(p *particles.Particle) {
		hue := system.Random().IntBetween(0, 360)
		c := utils.ColorFromHSV(hue, 1, 1)
		p.ColorRange = particles.ColorRange{Min: c, Max: c.WithAlpha(0)}
		p.Color = c
	}
}

// sparkleCallback 随机放大粒子并在生命周期内缩回原尺寸
func sparkleCallback(system *particles.ParticleSystem) func(p *particles.Particle) {
	return func(p *particles.Particle) {
		scale := system.Random().IntBetween(150, 300) / 100
		p.SizeRange = particles.NumberRange{Min: p.SizeRange.Max * scale, Max: p.SizeRange.Min}
		p.Size = p.SizeRange.Min
	}
}
