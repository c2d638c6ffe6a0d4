package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/decker502/sparks/internal/particle"
	"github.com/decker502/sparks/pkg/embedded"
	"github.com/decker502/sparks/pkg/utils"
)

// ErrInvalidConfig 配置值超出允许范围
var ErrInvalidConfig = errors.New("invalid viewer config")

// DefaultConfigPath 嵌入的默认配置
const DefaultConfigPath = "data/viewer.yaml"

// ViewerConfig 查看器配置
//
// 配置文件查找顺序（第一个存在的文件生效）:
//  1. 显式指定的路径（--config）
//  2. ~/.sparks/viewer.yaml
//  3. ./configs/viewer.yaml
//  4. 嵌入的 data/viewer.yaml
//
// 文件中缺失的字段保留嵌入默认值。
type ViewerConfig struct {
	Window WindowConfig `yaml:"window"`

	// TPS 每秒逻辑帧数
	TPS int `yaml:"tps"`

	// Background 背景色（#rrggbb / rgba() / 颜色名）
	Background string `yaml:"background"`

	// EffectsDir 特效库目录，空字符串表示使用内置特效
	EffectsDir  string `yaml:"effectsDir"`
	StartEffect string `yaml:"startEffect"`

	// Seed 随机种子，0 表示按时间播种
	Seed uint64 `yaml:"seed"`

	// MaxParticles 粒子数量上限，0 表示不限制
	MaxParticles int  `yaml:"maxParticles"`
	Antialias    bool `yaml:"antialias"`

	Terminal TerminalConfig `yaml:"terminal"`
	Gallery  GalleryConfig  `yaml:"gallery"`

	// Source 实际加载的配置来源（不序列化）
	Source string `yaml:"-"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// TerminalConfig 终端预览配置
type TerminalConfig struct {
	// CellWidth/CellHeight 每个字符单元对应的像素块大小
	CellWidth  int `yaml:"cellWidth"`
	CellHeight int `yaml:"cellHeight"`
	FPS        int `yaml:"fps"`
}

// GalleryConfig 画廊场景配置
type GalleryConfig struct {
	// Interval 每个特效的展示时长（毫秒）
	Interval float64 `yaml:"interval"`
	// Sweep 发射器左右摆动的幅度（像素），0 表示不移动
	Sweep float64 `yaml:"sweep"`
	// SweepPeriod 单程摆动时长（毫秒）
	SweepPeriod float64 `yaml:"sweepPeriod"`
	Easing      string  `yaml:"easing"`
}

// LoadViewerConfig 加载查看器配置
//
// 显式路径读取失败时直接返回错误；其余候选路径不存在或解析失败时
// 跳过，最终回退到嵌入的默认配置。
func LoadViewerConfig(path string) (*ViewerConfig, error) {
	cfg, err := defaultViewerConfig()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read viewer config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse viewer config %s: %w", path, err)
		}
		cfg.Source = path
		return validated(cfg)
	}

	for _, candidate := range []string{userConfigPath("viewer.yaml"), filepath.Join("configs", "viewer.yaml")} {
		if candidate == "" {
			continue
		}
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		overlay := *cfg
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			continue
		}
		overlay.Source = candidate
		return validated(&overlay)
	}

	return validated(cfg)
}

func defaultViewerConfig() (*ViewerConfig, error) {
	// 始终读取嵌入数据，--effects 替换的文件系统中不一定有 viewer.yaml
	data, err := fs.ReadFile(embedded.Default(), DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded viewer config: %w", err)
	}

	var cfg ViewerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse embedded viewer config: %w", err)
	}
	cfg.Source = "embedded"
	return &cfg, nil
}

func validated(cfg *ViewerConfig) (*ViewerConfig, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Source, err)
	}
	return cfg, nil
}

// userConfigPath 返回用户配置文件路径，无法获取 HOME 时返回空字符串
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sparks", filename)
}

// Validate 验证配置有效性
func (c *ViewerConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d",
			ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.TPS <= 0 || c.TPS > 240 {
		return fmt.Errorf("%w: tps must be in 1..240, got %d", ErrInvalidConfig, c.TPS)
	}
	if c.MaxParticles < 0 {
		return fmt.Errorf("%w: maxParticles must be >= 0, got %d", ErrInvalidConfig, c.MaxParticles)
	}
	if _, err := particle.ParseColor(c.Background); err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalidConfig, err)
	}

	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("%w: terminal cell size must be positive", ErrInvalidConfig)
	}
	if c.Terminal.FPS <= 0 || c.Terminal.FPS > 120 {
		return fmt.Errorf("%w: terminal fps must be in 1..120, got %d", ErrInvalidConfig, c.Terminal.FPS)
	}

	if c.Gallery.Interval <= 0 {
		return fmt.Errorf("%w: gallery interval must be positive", ErrInvalidConfig)
	}
	if c.Gallery.Sweep < 0 || c.Gallery.SweepPeriod < 0 {
		return fmt.Errorf("%w: gallery sweep must be >= 0", ErrInvalidConfig)
	}
	if _, err := utils.EasingByName(c.Gallery.Easing); err != nil {
		return fmt.Errorf("%w: gallery easing: %v", ErrInvalidConfig, err)
	}
	return nil
}

// BackgroundColor 返回解析后的背景色
func (c *ViewerConfig) BackgroundColor() utils.Color {
	col, err := particle.ParseColor(c.Background)
	if err != nil {
		return utils.Black
	}
	return col
}

// FrameStep 返回固定帧长（毫秒）
func (c *ViewerConfig) FrameStep() float64 {
	return 1000 / float64(c.TPS)
}
