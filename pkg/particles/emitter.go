package particles

import (
	"math"

	"github.com/decker502/sparks/pkg/utils"
)

const (
	// DefaultEmitInterval is the default minimum gap between batches (ms).
	DefaultEmitInterval = 100
	// Unbounded marks a spawner without a lifetime limit.
	Unbounded = -1

	// neverEmitted puts the last emission far enough in the past that the
	// first tick is always eligible.
	neverEmitted = -100000
)

// Emitter periodically spawns batches of particles at its location into
// the owning ParticleSystem.
//
// Fields may be changed between ticks. Settings are copied once at the
// start of every batch.
type Emitter struct {
	Location   utils.Vector
	Interval   float64 // ms between batches
	Count      NumberRange
	Settings   ProjectileSettings
	TimeToLive float64 // ms, Unbounded if <= 0

	created      float64
	lastEmission float64
	system       *ParticleSystem

	batches uint64
	emitted uint64
}

// NewEmitter creates an emitter at location, owned by system. The emitter
// is not registered; pass it to system.AddEmitter or an EmitterGroup.
func NewEmitter(location utils.Vector, t FrameTime, system *ParticleSystem) *Emitter {
	return &Emitter{
		Location:     location,
		Interval:     DefaultEmitInterval,
		Count:        Fixed(1),
		Settings:     NewProjectileSettings(),
		TimeToLive:   Unbounded,
		created:      t.CurrentTime,
		lastEmission: neverEmitted,
		system:       system,
	}
}

// System returns the owning particle system.
func (e *Emitter) System() *ParticleSystem {
	return e.system
}

// Age returns the milliseconds elapsed since creation.
func (e *Emitter) Age(t FrameTime) float64 {
	return t.CurrentTime - e.created
}

// Expired reports whether a bounded lifetime has run out at t.
func (e *Emitter) Expired(t FrameTime) bool {
	return e.TimeToLive > 0 && e.Age(t) > e.TimeToLive
}

// Emitted returns how many batches and particles this emitter produced.
func (e *Emitter) Emitted() (batches, particles uint64) {
	return e.batches, e.emitted
}

// Translate moves the emitter by delta.
func (e *Emitter) Translate(delta utils.Vector) {
	e.Location = e.Location.Add(delta)
}

// Update implements Spawner. At most one batch fires per call; intervals
// skipped by a long frame are not caught up.
func (e *Emitter) Update(t FrameTime) bool {
	if e.Expired(t) {
		return false
	}

	if t.CurrentTime-e.lastEmission >= e.Interval {
		e.emit(t)
		e.lastEmission = t.CurrentTime
	}
	return true
}

func (e *Emitter) emit(t FrameTime) {
	settings := e.Settings.Clone()
	rng := e.system.Random()

	count := int(e.Count.RandomValue(rng))
	for i := 0; i < count; i++ {
		angle := settings.Angle.RandomValue(rng)
		speed := settings.Velocity.RandomValue(rng)
		ttl := settings.TimeToLive.RandomValue(rng)
		a := settings.MinSize.RandomValue(rng)
		b := settings.MaxSize.RandomValue(rng)

		p := NewParticle(t)
		p.Location = e.Location
		p.Velocity = utils.VectorFromDegreeAngle(angle).MultiplyScalar(speed)
		p.Gravity = settings.Gravity
		p.Shape = settings.Shape
		p.TimeToLive = ttl
		p.SizeRange = NumberRange{Min: math.Min(a, b), Max: math.Max(a, b)}
		p.Size = p.SizeRange.Min
		p.ColorRange = ColorRange{Min: settings.FromColor, Max: settings.ToColor}
		p.Color = settings.FromColor

		if settings.Callback != nil {
			settings.Callback(p)
		}

		e.system.Add(p)
		e.emitted++
	}
	e.batches++
}
