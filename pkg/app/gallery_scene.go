package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/sparks/pkg/config"
	"github.com/decker502/sparks/pkg/entities"
	"github.com/decker502/sparks/pkg/game"
	"github.com/decker502/sparks/pkg/particles"
	"github.com/decker502/sparks/pkg/systems"
	"github.com/decker502/sparks/pkg/utils"
)

// GalleryScene 自动轮播所有特效
//
// 每个特效展示 Interval 毫秒后清空并切换到下一个。配置了 Sweep 时，
// 当前特效会按缓动曲线在中心两侧往返移动。
type GalleryScene struct {
	system   *particles.ParticleSystem
	renderer *systems.RenderSystem
	library  *game.EffectLibrary
	clock    *systems.FrameClock
	logger   *log.Logger

	interval float64
	sweep    float64
	period   float64
	easing   utils.Easing

	names   []string
	index   int
	center  utils.Vector
	current *particles.EmitterGroup
	offset  float64 // 当前特效相对中心的水平偏移
	shownAt float64
}

// NewGalleryScene creates the gallery scene from the gallery settings.
func NewGalleryScene(system *particles.ParticleSystem, renderer *systems.RenderSystem, library *game.EffectLibrary,
	clock *systems.FrameClock, cfg config.GalleryConfig, center utils.Vector, logger *log.Logger) (*GalleryScene, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	easing, err := utils.EasingByName(cfg.Easing)
	if err != nil {
		return nil, fmt.Errorf("gallery: %w", err)
	}
	return &GalleryScene{
		system:   system,
		renderer: renderer,
		library:  library,
		clock:    clock,
		logger:   logger,
		interval: cfg.Interval,
		sweep:    cfg.Sweep,
		period:   cfg.SweepPeriod,
		easing:   easing,
		names:    library.Names(),
		center:   center,
	}, nil
}

// Update 处理输入、轮播和摆动，然后推进粒子系统
func (s *GalleryScene) Update(t particles.FrameTime) {
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		s.show(s.index+1, t)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		s.show(s.index-1, t)
	}
	s.advance(t)
}

func (s *GalleryScene) advance(t particles.FrameTime) {
	if len(s.names) == 0 {
		return
	}
	if t.CurrentTime-s.shownAt >= s.interval {
		s.show(s.index+1, t)
	}

	if s.current != nil {
		target := s.sweepOffset(t.CurrentTime - s.shownAt)
		s.current.Translate(utils.NewVector(target-s.offset, 0))
		s.offset = target
	}
	s.system.Update(t)
}

// sweepOffset 计算展示 elapsed 毫秒后的水平偏移
func (s *GalleryScene) sweepOffset(elapsed float64) float64 {
	if s.sweep <= 0 || s.period <= 0 {
		return 0
	}
	return utils.Interpolate(-s.sweep, s.sweep, s.easing(utils.PingPong(elapsed, s.period)))
}

// show clears the stage and spawns the effect at index i (wrapping).
func (s *GalleryScene) show(i int, t particles.FrameTime) {
	if len(s.names) == 0 {
		return
	}
	s.index = (i%len(s.names) + len(s.names)) % len(s.names)
	s.system.Clear()
	s.current = nil
	s.shownAt = t.CurrentTime
	s.offset = s.sweepOffset(0)

	name := s.names[s.index]
	group, err := entities.CreateParticleEffect(s.system, s.library, name, s.center.X+s.offset, s.center.Y, t)
	if err != nil {
		s.logger.Error("failed to spawn effect", "effect", name, "err", err)
		return
	}
	s.current = group
	s.logger.Debug("gallery showing effect", "effect", name)
}

// Draw 绘制所有粒子
func (s *GalleryScene) Draw(screen *ebiten.Image) {
	s.renderer.Draw(screen)
}

// OnEnter 从第一个特效开始轮播
func (s *GalleryScene) OnEnter() {
	s.show(0, s.clock.Now())
}

// OnExit 清空粒子系统
func (s *GalleryScene) OnExit() {
	s.system.Clear()
	s.current = nil
}

// Current returns the effect on display.
func (s *GalleryScene) Current() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[s.index]
}

// System returns the scene's particle system.
func (s *GalleryScene) System() *particles.ParticleSystem {
	return s.system
}

// Status 返回 HUD 中显示的场景状态
func (s *GalleryScene) Status() string {
	return fmt.Sprintf("gallery  effect: %s (%d/%d)", s.Current(), s.index+1, len(s.names))
}
