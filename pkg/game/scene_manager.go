package game

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/sparks/pkg/particles"
)

// SceneManager manages the viewer's high-level state by controlling which
// scene is active. Only one scene's Update and Draw methods are called at
// any given time.
type SceneManager struct {
	currentScene Scene
	currentName  string
	scenes       map[string]Scene // 已注册的命名场景
	logger       *log.Logger
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Switch to set
// the initial scene. A nil logger discards output.
func NewSceneManager(logger *log.Logger) *SceneManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SceneManager{
		scenes: make(map[string]Scene),
		logger: logger,
	}
}

// Register adds a named scene so it can be activated with Switch.
func (sm *SceneManager) Register(name string, scene Scene) {
	sm.scenes[name] = scene
}

// Names returns the registered scene names, sorted.
func (sm *SceneManager) Names() []string {
	names := make([]string, 0, len(sm.scenes))
	for name := range sm.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Switch activates a registered scene by name.
func (sm *SceneManager) Switch(name string) error {
	scene, ok := sm.scenes[name]
	if !ok {
		return fmt.Errorf("unknown scene %q", name)
	}
	if scene == sm.currentScene {
		return nil
	}
	sm.SwitchTo(scene)
	sm.currentName = name
	sm.logger.Debug("switched scene", "scene", name)
	return nil
}

// SwitchTo changes the active scene to the provided scene.
// The outgoing scene's OnExit runs before the incoming scene's OnEnter.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if lc, ok := sm.currentScene.(Lifecycle); ok {
		lc.OnExit()
	}
	sm.currentScene = scene
	sm.currentName = ""
	if lc, ok := scene.(Lifecycle); ok {
		lc.OnEnter()
	}
}

// GetCurrentScene 返回当前活动的场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回当前场景的注册名，未通过 Switch 激活时为空
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(t particles.FrameTime) {
	if sm.currentScene != nil {
		sm.currentScene.Update(t)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
