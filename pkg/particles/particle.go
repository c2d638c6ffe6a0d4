package particles

import (
	"math"

	"github.com/decker502/sparks/pkg/utils"
)

// Particle is a single simulated point with physics, size-over-life and
// color-over-life.
//
// A particle is alive while age <= TimeToLive, where age is measured from
// the frame it was created in. A particle with TimeToLive <= 0 never
// survives its first check.
type Particle struct {
	created float64

	Location utils.Vector
	Velocity utils.Vector // pixels per second
	Gravity  utils.Vector // pixels per second²

	Shape      Shape
	Size       float64 // derived from SizeRange each Update
	SizeRange  NumberRange
	Color      utils.Color // derived from ColorRange each Update
	ColorRange ColorRange
	TimeToLive float64 // ms
}

// NewParticle returns a 2px white square living 100 ms, created at t.
func NewParticle(t FrameTime) *Particle {
	return &Particle{
		created:    t.CurrentTime,
		Shape:      ShapeSquare,
		Size:       2,
		SizeRange:  Fixed(2),
		Color:      utils.White,
		ColorRange: SolidColor(utils.White),
		TimeToLive: 100,
	}
}

// CreatedAt returns the frame time the particle was created at.
func (p *Particle) CreatedAt() float64 {
	return p.created
}

// Age returns the milliseconds elapsed since creation.
func (p *Particle) Age(t FrameTime) float64 {
	return t.CurrentTime - p.created
}

// Expired reports whether the particle is past its lifetime at t.
func (p *Particle) Expired(t FrameTime) bool {
	return p.TimeToLive <= 0 || p.Age(t) > p.TimeToLive
}

// Progress returns age / TimeToLive, or 1 when the particle has no lifetime.
func (p *Particle) Progress(t FrameTime) float64 {
	if p.TimeToLive <= 0 {
		return 1
	}
	return p.Age(t) / p.TimeToLive
}

// Update advances the particle by one frame. It returns false, without
// touching any field, once the particle has expired.
func (p *Particle) Update(t FrameTime) bool {
	if p.Expired(t) {
		return false
	}

	progress := p.Progress(t)
	p.Size = p.SizeRange.Lerp(progress)
	p.Color = p.ColorRange.Interpolate(progress)

	// 显式欧拉积分：先速度后位置
	p.Velocity = p.Velocity.Add(t.ScaleVector(p.Gravity))
	p.Location = p.Location.Add(t.ScaleVector(p.Velocity))
	return true
}

// Render draws the particle onto s.
func (p *Particle) Render(s Surface) {
	if p.Shape == ShapeCircle {
		s.FillCircle(p.Location.X, p.Location.Y, p.Size, p.Color)
		return
	}

	half := p.Size / 2
	s.FillRect(
		math.Floor(p.Location.X-half),
		math.Floor(p.Location.Y-half),
		math.Floor(p.Size),
		math.Floor(p.Size),
		p.Color,
	)
}
