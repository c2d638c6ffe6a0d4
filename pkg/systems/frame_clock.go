package systems

import (
	"time"

	"github.com/decker502/sparks/pkg/game"
	"github.com/decker502/sparks/pkg/particles"
)

const (
	// MaxFrameDelta 单帧最大时间步长（毫秒）。窗口拖动或断点暂停后
	// 不会一次性推进过长时间。
	MaxFrameDelta = 250.0
)

// FrameClock produces the FrameTime handed to particle systems each tick.
//
// It runs either on wall-clock time or on a fixed step. Paused clocks
// report a zero delta and a frozen current time. The reported current
// time never decreases.
type FrameClock struct {
	fixedStep float64 // ms, 0 = real time
	timeScale float64
	paused    bool

	now     func() time.Time
	last    time.Time
	started bool

	current float64
	delta   float64
}

// NewFrameClock creates a clock. fixedStep > 0 advances every Tick by
// exactly that many milliseconds; otherwise real elapsed time is used.
func NewFrameClock(fixedStep float64) *FrameClock {
	if fixedStep < 0 {
		fixedStep = 0
	}
	return &FrameClock{
		fixedStep: fixedStep,
		timeScale: 1,
		now:       time.Now,
	}
}

// NewFrameClockWithSource creates a real-time clock reading from now.
func NewFrameClockWithSource(now func() time.Time) *FrameClock {
	c := NewFrameClock(0)
	c.now = now
	return c
}

// Tick advances the clock by one frame and returns the new frame time.
func (c *FrameClock) Tick() particles.FrameTime {
	raw := c.fixedStep
	if raw == 0 {
		t := c.now()
		if c.started {
			raw = float64(t.Sub(c.last)) / float64(time.Millisecond)
		}
		c.last = t
		c.started = true
	}

	if raw < 0 {
		raw = 0
	}
	if raw > MaxFrameDelta {
		raw = MaxFrameDelta
	}

	c.delta = 0
	if !c.paused {
		c.delta = raw * c.timeScale
	}
	c.current += c.delta
	return c.Now()
}

// Now returns the last produced frame time without advancing.
func (c *FrameClock) Now() particles.FrameTime {
	return particles.FrameTime{CurrentTime: c.current, TimeSinceLastFrame: c.delta}
}

// SetPaused freezes or resumes the clock.
func (c *FrameClock) SetPaused(paused bool) {
	c.paused = paused
}

// TogglePause flips the paused state and returns the new one.
func (c *FrameClock) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

func (c *FrameClock) Paused() bool {
	return c.paused
}

// SetTimeScale sets the playback speed multiplier, clamped to [0.1, 4].
func (c *FrameClock) SetTimeScale(scale float64) {
	switch {
	case scale < game.MinTimeScale:
		scale = game.MinTimeScale
	case scale > game.MaxTimeScale:
		scale = game.MaxTimeScale
	}
	c.timeScale = scale
}

func (c *FrameClock) TimeScale() float64 {
	return c.timeScale
}

// FixedStep returns the fixed step in ms, or 0 for a real-time clock.
func (c *FrameClock) FixedStep() float64 {
	return c.fixedStep
}
