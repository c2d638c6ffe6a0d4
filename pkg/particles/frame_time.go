package particles

import "github.com/decker502/sparks/pkg/utils"

// FrameTime is the per-tick time sample handed to every Update call.
//
// Both fields are milliseconds. CurrentTime never decreases between ticks
// (its epoch is arbitrary) and TimeSinceLastFrame is >= 0; it is 0 while
// the clock is paused.
type FrameTime struct {
	CurrentTime        float64
	TimeSinceLastFrame float64
}

// NewFrameTime returns a FrameTime at current with the given delta.
func NewFrameTime(current, delta float64) FrameTime {
	return FrameTime{CurrentTime: current, TimeSinceLastFrame: delta}
}

// Advance returns the next frame, delta milliseconds later.
func (t FrameTime) Advance(delta float64) FrameTime {
	return FrameTime{CurrentTime: t.CurrentTime + delta, TimeSinceLastFrame: delta}
}

// CalculateMovement converts a per-second quantity into the amount covered
// during this frame.
func (t FrameTime) CalculateMovement(pixelsPerSecond float64) float64 {
	return pixelsPerSecond / 1000 * t.TimeSinceLastFrame
}

// ScaleVector applies CalculateMovement to both components of v.
func (t FrameTime) ScaleVector(v utils.Vector) utils.Vector {
	return utils.Vector{
		X: t.CalculateMovement(v.X),
		Y: t.CalculateMovement(v.Y),
	}
}
