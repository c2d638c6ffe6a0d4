package particles

import "github.com/decker502/sparks/pkg/utils"

// EmitterGroup bundles spawners under one shared lifetime.
//
// When the group's own lifetime runs out it reports death without ticking
// its children; they are abandoned rather than individually stopped.
type EmitterGroup struct {
	TimeToLive float64 // ms, Unbounded if <= 0

	created  float64
	spawners []Spawner
}

// NewEmitterGroup creates an empty, unbounded group at t.
func NewEmitterGroup(t FrameTime) *EmitterGroup {
	return &EmitterGroup{
		TimeToLive: Unbounded,
		created:    t.CurrentTime,
	}
}

// Age returns the milliseconds elapsed since creation.
func (g *EmitterGroup) Age(t FrameTime) float64 {
	return t.CurrentTime - g.created
}

// Expired reports whether a bounded lifetime has run out at t.
func (g *EmitterGroup) Expired(t FrameTime) bool {
	return g.TimeToLive > 0 && g.Age(t) > g.TimeToLive
}

// Update implements Spawner. Children that report death are dropped; the
// group itself stays alive until its own lifetime ends.
func (g *EmitterGroup) Update(t FrameTime) bool {
	if g.Expired(t) {
		return false
	}

	children := g.spawners
	g.spawners = nil
	kept := children[:0:0]
	for _, s := range children {
		if s.Update(t) {
			kept = append(kept, s)
		}
	}
	// spawners added during the pass go after the survivors
	g.spawners = append(kept, g.spawners...)
	return true
}

// Add appends a child spawner.
func (g *EmitterGroup) Add(s Spawner) {
	g.spawners = append(g.spawners, s)
}

// Remove drops s by identity. Removing an absent spawner is a no-op.
func (g *EmitterGroup) Remove(s Spawner) {
	g.spawners = removeSpawner(g.spawners, s)
}

// Len returns the number of children.
func (g *EmitterGroup) Len() int {
	return len(g.spawners)
}

// Spawners returns a copy of the children.
func (g *EmitterGroup) Spawners() []Spawner {
	out := make([]Spawner, len(g.spawners))
	copy(out, g.spawners)
	return out
}

// Translate moves every child that supports it.
func (g *EmitterGroup) Translate(delta utils.Vector) {
	for _, s := range g.spawners {
		if tr, ok := s.(Translator); ok {
			tr.Translate(delta)
		}
	}
}

func removeSpawner(list []Spawner, s Spawner) []Spawner {
	for i, candidate := range list {
		if candidate == s {
			out := make([]Spawner, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return list
}
