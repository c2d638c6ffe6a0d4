// Package app 提供粒子查看器的应用包装器
//
// 包括 ebiten 窗口查看器（交互场景 + 画廊场景）、bubbletea 终端预览，
// 以及用于基准测试和运行记录的无界面模拟。
package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/sparks/pkg/config"
	"github.com/decker502/sparks/pkg/game"
	"github.com/decker502/sparks/pkg/particles"
	"github.com/decker502/sparks/pkg/systems"
	"github.com/decker502/sparks/pkg/utils"
)

// 场景名
const (
	SceneViewer  = "viewer"
	SceneGallery = "gallery"
)

// timeScaleStep +/- 每次调整的时间缩放量
const timeScaleStep = 0.25

// Config 定义应用启动配置
type Config struct {
	Viewer  *config.ViewerConfig
	Library *game.EffectLibrary
	// Settings 可为 nil，此时偏好只保存在内存中
	Settings *game.SettingsManager
	Logger   *log.Logger
}

// particleScene 是持有独立粒子系统的场景
type particleScene interface {
	game.Scene
	System() *particles.ParticleSystem
	Status() string
}

// App 是查看器的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          *config.ViewerConfig
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	clock        *systems.FrameClock
	logger       *log.Logger

	viewer  *ViewerScene
	gallery *GalleryScene

	renderers  []*systems.RenderSystem
	background utils.Color

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器
func NewApp(cfg Config) (*App, error) {
	if cfg.Viewer == nil {
		return nil, fmt.Errorf("app: viewer config is required")
	}
	if cfg.Library == nil || cfg.Library.Len() == 0 {
		return nil, fmt.Errorf("app: effect library is empty")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	settings := cfg.Settings
	if settings == nil {
		settings = game.NewSettingsManager(nil, logger)
		settings.SetAntialias(cfg.Viewer.Antialias)
	}
	prefs := settings.GetSettings()

	a := &App{
		cfg:          cfg.Viewer,
		sceneManager: game.NewSceneManager(logger),
		settings:     settings,
		clock:        systems.NewFrameClock(cfg.Viewer.FrameStep()),
		logger:       logger,
		background:   cfg.Viewer.BackgroundColor(),
	}
	a.clock.SetTimeScale(prefs.TimeScale)

	center := utils.NewVector(float64(cfg.Viewer.Window.Width)/2, float64(cfg.Viewer.Window.Height)/2)

	// 上次选中的特效优先于配置中的起始特效
	start := cfg.Viewer.StartEffect
	if prefs.LastEffect != "" && cfg.Library.IndexOf(prefs.LastEffect) >= 0 {
		start = prefs.LastEffect
	}

	viewerSystem, viewerRenderer := a.newSystem(cfg.Viewer, prefs.Antialias)
	a.viewer = NewViewerScene(viewerSystem, viewerRenderer, cfg.Library, a.clock, settings, start, center, logger)

	gallerySystem, galleryRenderer := a.newSystem(cfg.Viewer, prefs.Antialias)
	gallery, err := NewGalleryScene(gallerySystem, galleryRenderer, cfg.Library, a.clock, cfg.Viewer.Gallery, center, logger)
	if err != nil {
		return nil, err
	}
	a.gallery = gallery

	a.sceneManager.Register(SceneViewer, a.viewer)
	a.sceneManager.Register(SceneGallery, a.gallery)
	if err := a.sceneManager.Switch(SceneViewer); err != nil {
		return nil, err
	}

	logger.Info("viewer ready", "effects", cfg.Library.Len(), "start", a.viewer.Current(),
		"config", cfg.Viewer.Source, "persistent", settings.Persistent())
	return a, nil
}

func (a *App) newSystem(cfg *config.ViewerConfig, antialias bool) (*particles.ParticleSystem, *systems.RenderSystem) {
	var src particles.RandomSource
	if cfg.Seed == 0 {
		src = particles.NewTimeSeededSource()
	} else {
		src = particles.NewRandomSource(cfg.Seed)
	}
	system := particles.NewParticleSystem(
		particles.WithRandomSource(src),
		particles.WithLogger(a.logger),
		particles.WithMaxParticles(cfg.MaxParticles),
	)
	renderer := systems.NewRenderSystem(system, antialias)
	a.renderers = append(a.renderers, renderer)
	return system, renderer
}

// Run 打开窗口并运行主循环，退出时保存偏好设置
func (a *App) Run() error {
	ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(a.cfg.TPS)

	err := ebiten.RunGame(a)
	a.saveOnExit()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (a *App) saveOnExit() {
	if s, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		s.SaveOnExit()
	}
	if err := a.settings.Save(); err != nil {
		a.logger.Warn("failed to save settings", "err", err)
	}
}

// Update 处理全局按键并推进当前场景
// 每个 tick 调用一次
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		a.toggleFullscreen()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		a.ToggleGallery()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		a.ToggleHUD()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		a.ToggleAntialias()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		a.AdjustTimeScale(timeScaleStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		a.AdjustTimeScale(-timeScaleStep)
	}

	a.sceneManager.Update(a.clock.Tick())
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		return
	}
	ebiten.SetFullscreen(true)
}

// Draw 绘制背景、当前场景和 HUD
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.background)
	a.sceneManager.Draw(screen)
	if a.settings.GetSettings().ShowHUD {
		ebitenutil.DebugPrintAt(screen, a.HUD(ebiten.ActualTPS()), 8, 8)
	}
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// ToggleGallery 在查看场景和画廊场景之间切换
func (a *App) ToggleGallery() {
	next := SceneGallery
	if a.sceneManager.CurrentName() == SceneGallery {
		next = SceneViewer
	}
	if err := a.sceneManager.Switch(next); err != nil {
		a.logger.Error("failed to switch scene", "scene", next, "err", err)
	}
}

// TogglePause 暂停或继续模拟
func (a *App) TogglePause() {
	paused := a.clock.TogglePause()
	a.logger.Debug("pause toggled", "paused", paused)
}

// AdjustTimeScale changes the time scale by delta within the allowed range
// and remembers it as a preference.
func (a *App) AdjustTimeScale(delta float64) {
	a.clock.SetTimeScale(a.clock.TimeScale() + delta)
	a.settings.SetTimeScale(a.clock.TimeScale())
}

// ToggleHUD 显示或隐藏调试信息
func (a *App) ToggleHUD() {
	a.settings.SetShowHUD(!a.settings.GetSettings().ShowHUD)
}

// ToggleAntialias 切换矢量绘制抗锯齿
func (a *App) ToggleAntialias() {
	on := !a.settings.GetSettings().Antialias
	a.settings.SetAntialias(on)
	for _, r := range a.renderers {
		r.SetAntialias(on)
	}
}

// CurrentScene returns the active scene name.
func (a *App) CurrentScene() string {
	return a.sceneManager.CurrentName()
}

// Clock returns the frame clock driving all scenes.
func (a *App) Clock() *systems.FrameClock {
	return a.clock
}

// Viewer returns the interactive scene.
func (a *App) Viewer() *ViewerScene {
	return a.viewer
}

// Gallery returns the auto-cycling scene.
func (a *App) Gallery() *GalleryScene {
	return a.gallery
}

// HUD 返回调试信息文本
func (a *App) HUD(tps float64) string {
	scene, ok := a.sceneManager.GetCurrentScene().(particleScene)
	if !ok {
		return ""
	}
	stats := scene.System().Stats()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", scene.Status())
	fmt.Fprintf(&sb, "particles: %d (peak %d)  spawners: %d\n", stats.Particles, stats.PeakParticles, stats.Spawners)
	fmt.Fprintf(&sb, "spawned: %d  dropped: %d\n", stats.Spawned, stats.Dropped)
	fmt.Fprintf(&sb, "tps: %.0f  speed: x%.2f", tps, a.clock.TimeScale())
	if a.clock.Paused() {
		sb.WriteString("  [paused]")
	}
	sb.WriteString("\nclick/space spawn  arrows select  R clear  P pause  +/- speed  G gallery  H hud")
	return sb.String()
}
