package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/sparks/pkg/particles"
	"github.com/decker502/sparks/pkg/utils"
)

// EbitenSurface 在 *ebiten.Image 上实现 particles.Surface
//
// 所有坐标先减去相机偏移（Camera）再绘制，因此粒子始终使用世界坐标。
type EbitenSurface struct {
	Target    *ebiten.Image
	Camera    utils.Vector // 世界坐标中屏幕左上角的位置
	Antialias bool
}

// NewEbitenSurface creates a surface drawing onto target.
func NewEbitenSurface(target *ebiten.Image, antialias bool) *EbitenSurface {
	return &EbitenSurface{Target: target, Antialias: antialias}
}

// ToScreen converts a world position into target coordinates.
func (s *EbitenSurface) ToScreen(x, y float64) (float64, float64) {
	return x - s.Camera.X, y - s.Camera.Y
}

// FillRect implements particles.Surface.
func (s *EbitenSurface) FillRect(x, y, w, h float64, c color.Color) {
	if s.Target == nil || w <= 0 || h <= 0 {
		return
	}
	sx, sy := s.ToScreen(x, y)
	vector.DrawFilledRect(s.Target, float32(sx), float32(sy), float32(w), float32(h), c, s.Antialias)
}

// FillCircle implements particles.Surface. diameter is the full width.
func (s *EbitenSurface) FillCircle(cx, cy, diameter float64, c color.Color) {
	if s.Target == nil || diameter <= 0 {
		return
	}
	sx, sy := s.ToScreen(cx, cy)
	vector.DrawFilledCircle(s.Target, float32(sx), float32(sy), float32(diameter/2), c, s.Antialias)
}

// DrawImage blits img with its top-left corner at the world position (x, y).
func (s *EbitenSurface) DrawImage(img *ebiten.Image, x, y float64) {
	if s.Target == nil || img == nil {
		return
	}
	sx, sy := s.ToScreen(x, y)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(sx, sy)
	s.Target.DrawImage(img, op)
}

// RenderSystem draws a particle system onto ebiten images, keeping one
// reusable surface and the camera position between frames.
type RenderSystem struct {
	system  *particles.ParticleSystem
	surface *EbitenSurface
}

// NewRenderSystem creates a render system for the given particle system.
func NewRenderSystem(system *particles.ParticleSystem, antialias bool) *RenderSystem {
	return &RenderSystem{
		system:  system,
		surface: NewEbitenSurface(nil, antialias),
	}
}

// Draw renders every live particle onto screen.
func (rs *RenderSystem) Draw(screen *ebiten.Image) {
	rs.surface.Target = screen
	rs.system.Render(rs.surface)
	rs.surface.Target = nil
}

// Surface returns the underlying surface.
func (rs *RenderSystem) Surface() *EbitenSurface {
	return rs.surface
}

// SetAntialias toggles anti-aliased drawing.
func (rs *RenderSystem) SetAntialias(on bool) {
	rs.surface.Antialias = on
}

func (rs *RenderSystem) Antialias() bool {
	return rs.surface.Antialias
}

// PanCamera moves the camera by delta world pixels.
func (rs *RenderSystem) PanCamera(delta utils.Vector) {
	rs.surface.Camera = rs.surface.Camera.Add(delta)
}

// SetCamera places the camera at pos.
func (rs *RenderSystem) SetCamera(pos utils.Vector) {
	rs.surface.Camera = pos
}

func (rs *RenderSystem) Camera() utils.Vector {
	return rs.surface.Camera
}

// ScreenToWorld converts a screen position (e.g. the cursor) into world
// coordinates.
func (rs *RenderSystem) ScreenToWorld(x, y float64) utils.Vector {
	return utils.NewVector(x+rs.surface.Camera.X, y+rs.surface.Camera.Y)
}
