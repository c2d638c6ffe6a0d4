package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/sparks/pkg/particles"
)

// Scene represents a viewer scene (e.g., interactive viewer, gallery).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by one frame.
	Update(t particles.FrameTime)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Lifecycle 是一个可选接口，场景切换时被调用
//
// OnEnter 在场景成为当前场景时调用；OnExit 在场景被替换时调用。
// 场景在 OnExit 中应清空自己的粒子系统，避免切回时残留粒子。
type Lifecycle interface {
	OnEnter()
	OnExit()
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 窗口关闭
//   - 用户通过 OS 命令关闭程序
type Saveable interface {
	// SaveOnExit 在程序退出时保存状态
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
