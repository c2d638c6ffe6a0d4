// Package particles is the frame-driven particle simulation core.
//
// A ParticleSystem owns the live particles and the top-level spawners
// (Emitter, EmitterGroup or any custom Spawner). Every frame the caller
// supplies a FrameTime:
//
//	system.Update(t)
//	system.Render(surface)
//
// Update runs in two phases. Spawners are ticked first and may add
// particles; then every particle, including the ones spawned this frame,
// is advanced once and expired particles are dropped.
//
// A ParticleSystem is not safe for concurrent use. Independent systems may
// run on different goroutines.
package particles

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

// Stats is a snapshot of a system's counters.
type Stats struct {
	Particles     int
	Spawners      int
	Spawned       uint64 // particles accepted by Add since creation
	Dropped       uint64 // particles rejected by the particle budget
	PeakParticles int
}

// Option configures a ParticleSystem.
type Option func(*ParticleSystem)

// WithRandomSource sets the source used by emitters owned by the system.
func WithRandomSource(src RandomSource) Option {
	return func(s *ParticleSystem) {
		if src != nil {
			s.random = src
		}
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *log.Logger) Option {
	return func(s *ParticleSystem) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxParticles caps the number of live particles. Particles added past
// the cap are dropped and counted. 0 means unbounded.
func WithMaxParticles(n int) Option {
	return func(s *ParticleSystem) {
		if n > 0 {
			s.maxParticles = n
		}
	}
}

// ParticleSystem is the registry of live particles and spawners.
type ParticleSystem struct {
	particles []*Particle
	spawners  []Spawner

	random       RandomSource
	logger       *log.Logger
	maxParticles int

	// generation is bumped by Clear so an in-flight Update can tell its
	// spawner snapshot was discarded.
	generation uint64
	updating   bool
	removed    []Spawner

	spawned     uint64
	dropped     uint64
	peak        int
	budgetWarns int
}

// NewParticleSystem returns an empty system. Without WithRandomSource it
// uses a time-seeded source.
func NewParticleSystem(opts ...Option) *ParticleSystem {
	s := &ParticleSystem{}
	for _, opt := range opts {
		opt(s)
	}
	if s.random == nil {
		s.random = NewTimeSeededSource()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Random returns the random source shared by the system's emitters.
func (s *ParticleSystem) Random() RandomSource {
	return s.random
}

// Logger returns the system logger.
func (s *ParticleSystem) Logger() *log.Logger {
	return s.logger
}

// Add registers a particle. It returns false if the particle budget is
// exhausted and the particle was dropped.
func (s *ParticleSystem) Add(p *Particle) bool {
	if s.maxParticles > 0 && len(s.particles) >= s.maxParticles {
		s.dropped++
		if s.budgetWarns == 0 {
			s.logger.Warn("particle budget exhausted, dropping", "max", s.maxParticles)
		}
		s.budgetWarns++
		return false
	}

	s.particles = append(s.particles, p)
	s.spawned++
	if len(s.particles) > s.peak {
		s.peak = len(s.particles)
	}
	return true
}

// AddEmitter registers a top-level spawner. Spawners added during Update
// are first ticked on the next frame.
func (s *ParticleSystem) AddEmitter(sp Spawner) {
	s.spawners = append(s.spawners, sp)
}

// RemoveEmitter drops a top-level spawner by identity. It is a no-op if
// the spawner is not registered, and it takes effect immediately even
// while Update is ticking spawners.
func (s *ParticleSystem) RemoveEmitter(sp Spawner) {
	if s.updating {
		s.removed = append(s.removed, sp)
	}
	s.spawners = removeSpawner(s.spawners, sp)
}

// Clear drops every particle and spawner.
func (s *ParticleSystem) Clear() {
	n := len(s.particles)
	clear(s.particles)
	s.particles = s.particles[:0]
	s.spawners = nil
	s.removed = nil
	s.generation++
	s.budgetWarns = 0
	s.logger.Debug("cleared", "particles", n)
}

// Update advances the system by one frame.
func (s *ParticleSystem) Update(t FrameTime) {
	s.updateSpawners(t)
	s.updateParticles(t)
}

// updateSpawners ticks a snapshot of the spawners. Spawners registered
// during the pass land in s.spawners and are appended after the
// survivors.
func (s *ParticleSystem) updateSpawners(t FrameTime) {
	gen := s.generation
	snapshot := s.spawners
	s.spawners = nil
	s.removed = nil
	s.updating = true
	defer func() {
		s.updating = false
		s.removed = nil
	}()

	kept := make([]Spawner, 0, len(snapshot))
	for _, sp := range snapshot {
		if s.generation != gen {
			break
		}
		if s.wasRemoved(sp) {
			continue
		}
		if sp.Update(t) && s.generation == gen && !s.wasRemoved(sp) {
			kept = append(kept, sp)
		}
	}

	if s.generation != gen {
		// Clear ran mid-pass; only spawners added after it survive
		return
	}
	// 已经更新过的生成器也可能在本轮稍后被移除
	kept = slices.DeleteFunc(kept, s.wasRemoved)
	s.spawners = append(kept, s.spawners...)
}

func (s *ParticleSystem) wasRemoved(sp Spawner) bool {
	for _, r := range s.removed {
		if r == sp {
			return true
		}
	}
	return false
}

// updateParticles advances every particle, including those spawned in
// the spawner pass of the same frame, and compacts out the dead ones.
func (s *ParticleSystem) updateParticles(t FrameTime) {
	live := s.particles[:0]
	for _, p := range s.particles {
		if p.Update(t) {
			live = append(live, p)
		}
	}
	clear(s.particles[len(live):])
	s.particles = live
}

// Render draws every live particle in spawn order.
func (s *ParticleSystem) Render(surface Surface) {
	for _, p := range s.particles {
		p.Render(surface)
	}
}

// ParticleCount returns the number of live particles.
func (s *ParticleSystem) ParticleCount() int {
	return len(s.particles)
}

// SpawnerCount returns the number of registered top-level spawners.
func (s *ParticleSystem) SpawnerCount() int {
	return len(s.spawners)
}

// Particles returns a copy of the live particle list.
func (s *ParticleSystem) Particles() []*Particle {
	out := make([]*Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Stats returns the current counters.
func (s *ParticleSystem) Stats() Stats {
	return Stats{
		Particles:     len(s.particles),
		Spawners:      len(s.spawners),
		Spawned:       s.spawned,
		Dropped:       s.dropped,
		PeakParticles: s.peak,
	}
}
