package particles

import "github.com/decker502/sparks/pkg/utils"

// Spawner is anything that can be advanced once per frame and may emit
// particles as a side effect. Update returns false once the spawner is
// finished; the owner drops it and never ticks it again.
//
// Spawners are removed by identity, so implementations must be comparable.
// Use pointer receivers.
type Spawner interface {
	Update(t FrameTime) bool
}

// Translator is implemented by spawners that can be moved after creation.
type Translator interface {
	Translate(delta utils.Vector)
}

// SpawnerFunc adapts a plain function to the Spawner interface.
// Register it as a pointer (&SpawnerFunc{...}) so removal works.
type SpawnerFunc struct {
	Fn func(t FrameTime) bool
}

// Update implements Spawner.
func (f *SpawnerFunc) Update(t FrameTime) bool {
	return f.Fn(t)
}
