package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/sparks/pkg/entities"
	"github.com/decker502/sparks/pkg/game"
	"github.com/decker502/sparks/pkg/particles"
	"github.com/decker502/sparks/pkg/systems"
	"github.com/decker502/sparks/pkg/utils"
)

// ViewerScene 交互式特效查看场景
//
// 操作：
//   - 鼠标左键或触摸：在指针处生成当前特效
//   - 空格：在屏幕中心生成当前特效
//   - 方向键：切换特效
//   - R：清空所有粒子和发射器
type ViewerScene struct {
	system   *particles.ParticleSystem
	renderer *systems.RenderSystem
	library  *game.EffectLibrary
	clock    *systems.FrameClock
	settings *game.SettingsManager
	logger   *log.Logger

	names  []string
	index  int
	center utils.Vector
}

// NewViewerScene creates the viewer scene. start selects the initial
// effect; an unknown or empty name falls back to the first effect.
func NewViewerScene(system *particles.ParticleSystem, renderer *systems.RenderSystem, library *game.EffectLibrary,
	clock *systems.FrameClock, settings *game.SettingsManager, start string, center utils.Vector, logger *log.Logger) *ViewerScene {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &ViewerScene{
		system:   system,
		renderer: renderer,
		library:  library,
		clock:    clock,
		settings: settings,
		logger:   logger,
		names:    library.Names(),
		center:   center,
	}
	if i := library.IndexOf(start); i >= 0 {
		s.index = i
	}
	return s
}

// Update 处理输入并推进粒子系统
func (s *ViewerScene) Update(t particles.FrameTime) {
	s.handleInput()
	s.system.Update(t)
}

func (s *ViewerScene) handleInput() {
	if pressed, x, y := isPointerJustPressed(); pressed {
		pos := s.renderer.ScreenToWorld(float64(x), float64(y))
		s.SpawnAt(pos.X, pos.Y)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.SpawnAt(s.center.X, s.center.Y)
	}
	if isAnyKeyJustPressed(ebiten.KeyRight, ebiten.KeyDown) {
		s.Next()
	}
	if isAnyKeyJustPressed(ebiten.KeyLeft, ebiten.KeyUp) {
		s.Prev()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.system.Clear()
	}
}

// Draw 绘制所有粒子
func (s *ViewerScene) Draw(screen *ebiten.Image) {
	s.renderer.Draw(screen)
}

// OnEnter 进入场景时在中心生成一次当前特效
func (s *ViewerScene) OnEnter() {
	s.SpawnAt(s.center.X, s.center.Y)
}

// OnExit 离开场景时清空粒子系统
func (s *ViewerScene) OnExit() {
	s.system.Clear()
}

// SaveOnExit 保存当前选中的特效
func (s *ViewerScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	s.settings.SetLastEffect(s.Current())
	if err := s.settings.Save(); err != nil {
		s.logger.Warn("failed to save settings", "err", err)
		return false
	}
	return true
}

// SpawnAt creates the current effect at the world position (x, y).
func (s *ViewerScene) SpawnAt(x, y float64) {
	name := s.Current()
	if name == "" {
		return
	}
	if _, err := entities.CreateParticleEffect(s.system, s.library, name, x, y, s.clock.Now()); err != nil {
		s.logger.Error("failed to spawn effect", "effect", name, "err", err)
	}
}

// Current returns the selected effect name, or "" for an empty library.
func (s *ViewerScene) Current() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[s.index]
}

// Next selects the following effect, wrapping around.
func (s *ViewerScene) Next() {
	s.step(1)
}

// Prev selects the previous effect, wrapping around.
func (s *ViewerScene) Prev() {
	s.step(-1)
}

func (s *ViewerScene) step(delta int) {
	if len(s.names) == 0 {
		return
	}
	s.index = (s.index + delta + len(s.names)) % len(s.names)
	if s.settings != nil {
		s.settings.SetLastEffect(s.Current())
	}
	s.logger.Debug("effect selected", "effect", s.Current())
}

// System returns the scene's particle system.
func (s *ViewerScene) System() *particles.ParticleSystem {
	return s.system
}

// Status 返回 HUD 中显示的场景状态
func (s *ViewerScene) Status() string {
	return fmt.Sprintf("viewer  effect: %s (%d/%d)", s.Current(), s.index+1, len(s.names))
}
