package app

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/decker502/sparks/pkg/config"
	"github.com/decker502/sparks/pkg/entities"
	"github.com/decker502/sparks/pkg/game"
	"github.com/decker502/sparks/pkg/particles"
	"github.com/decker502/sparks/pkg/systems"
	"github.com/decker502/sparks/pkg/utils"
)

// cell 字符网格中的一个单元，记录最后绘制的颜色
type cell struct {
	color utils.Color
	set   bool
}

// CellSurface implements particles.Surface on a character grid. Each cell
// covers a CellWidth x CellHeight block of pixels and keeps the color of
// the last shape drawn over it.
type CellSurface struct {
	cellW, cellH float64
	cols, rows   int
	cells        []cell
}

// NewCellSurface creates a cols x rows grid.
func NewCellSurface(cols, rows int, cellW, cellH float64) *CellSurface {
	s := &CellSurface{cellW: math.Max(cellW, 1), cellH: math.Max(cellH, 1)}
	s.Resize(cols, rows)
	return s
}

// Resize changes the grid size and clears it.
func (s *CellSurface) Resize(cols, rows int) {
	s.cols = max(cols, 0)
	s.rows = max(rows, 0)
	s.cells = make([]cell, s.cols*s.rows)
}

// Clear empties every cell.
func (s *CellSurface) Clear() {
	clear(s.cells)
}

func (s *CellSurface) Cols() int { return s.cols }
func (s *CellSurface) Rows() int { return s.rows }

// PixelSize returns the pixel area the grid covers.
func (s *CellSurface) PixelSize() (w, h float64) {
	return float64(s.cols) * s.cellW, float64(s.rows) * s.cellH
}

// Cell returns the color of the cell at (col, row) and whether anything
// was drawn there.
func (s *CellSurface) Cell(col, row int) (utils.Color, bool) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return utils.Color{}, false
	}
	c := s.cells[row*s.cols+col]
	return c.color, c.set
}

func (s *CellSurface) set(col, row int, c utils.Color) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	s.cells[row*s.cols+col] = cell{color: c, set: true}
}

// FillRect implements particles.Surface. Every cell the rectangle overlaps
// takes the color; a rectangle smaller than a cell still marks the cell
// holding its corner.
func (s *CellSurface) FillRect(x, y, w, h float64, c color.Color) {
	col := utils.ColorFromStd(c)
	if col.A <= 0 {
		return
	}

	c0, c1 := span(x, x+max(w-1e-9, 0), s.cellW, s.cols)
	r0, r1 := span(y, y+max(h-1e-9, 0), s.cellH, s.rows)
	for row := r0; row <= r1; row++ {
		for cl := c0; cl <= c1; cl++ {
			s.set(cl, row, col)
		}
	}
}

// FillCircle implements particles.Surface. Cells whose centers fall inside
// the circle take the color; the cell holding the center always does.
func (s *CellSurface) FillCircle(cx, cy, diameter float64, c color.Color) {
	col := utils.ColorFromStd(c)
	if col.A <= 0 {
		return
	}

	r := diameter / 2
	c0, c1 := span(cx-r, cx+r, s.cellW, s.cols)
	r0, r1 := span(cy-r, cy+r, s.cellH, s.rows)
	for row := r0; row <= r1; row++ {
		for cl := c0; cl <= c1; cl++ {
			center := utils.NewVector((float64(cl)+0.5)*s.cellW, (float64(row)+0.5)*s.cellH)
			if center.DistanceTo(utils.NewVector(cx, cy)) <= r {
				s.set(cl, row, col)
			}
		}
	}
	hc, hc1 := span(cx, cx, s.cellW, s.cols)
	hr, hr1 := span(cy, cy, s.cellH, s.rows)
	if hc <= hc1 && hr <= hr1 {
		s.set(hc, hr, col)
	}
}

// span 返回 [lo, hi] 覆盖的单元下标，已裁剪到 [0, n-1]；
// 完全在网格外时返回 first > last
func span(lo, hi, cell float64, n int) (first, last int) {
	limit := cell * float64(n)
	if n <= 0 || hi < 0 || lo >= limit || math.IsNaN(lo) || math.IsNaN(hi) {
		return 0, -1
	}
	lo = utils.Clamp(lo, 0, limit)
	hi = utils.Clamp(hi, 0, limit)
	first = min(int(lo/cell), n-1)
	last = max(min(int(hi/cell), n-1), first)
	return first, last
}

// glyph 按透明度选择字符密度
func glyph(alpha float64) rune {
	switch {
	case alpha >= 192:
		return '█'
	case alpha >= 128:
		return '▓'
	case alpha >= 64:
		return '▒'
	default:
		return '░'
	}
}

// Render converts the grid to a styled string. Adjacent cells with the
// same color share one escape sequence.
func (s *CellSurface) Render() string {
	var sb strings.Builder
	sb.Grow(s.cols*s.rows*2 + s.rows)

	for row := range s.rows {
		if row > 0 {
			sb.WriteRune('\n')
		}

		col := 0
		for col < s.cols {
			start := s.cells[row*s.cols+col]

			var run strings.Builder
			for col < s.cols {
				c := s.cells[row*s.cols+col]
				if c.set != start.set || (c.set && c.color.NRGBA() != start.color.NRGBA()) {
					break
				}
				if c.set {
					run.WriteRune(glyph(c.color.A))
				} else {
					run.WriteRune(' ')
				}
				col++
			}

			if !start.set {
				sb.WriteString(run.String())
				continue
			}
			hex := start.color.Hex()[:7] // lipgloss 不支持 alpha
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(run.String()))
		}
	}
	return sb.String()
}

// TerminalOptions configures the terminal preview.
type TerminalOptions struct {
	Viewer  *config.ViewerConfig
	Library *game.EffectLibrary
	Effect  string
	Logger  *log.Logger

	// Cols/Rows 初始网格大小，收到 WindowSizeMsg 后更新
	Cols, Rows int
}

// terminalTickMsg is sent to trigger a simulation tick.
type terminalTickMsg time.Time

// tickCmd returns a command that sends tick messages at the given rate.
func tickCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return terminalTickMsg(t)
	})
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// TerminalModel is the Bubble Tea model previewing one effect at a time.
// The effect restarts whenever the stage runs empty.
type TerminalModel struct {
	system  *particles.ParticleSystem
	library *game.EffectLibrary
	clock   *systems.FrameClock
	surface *CellSurface
	logger  *log.Logger

	fps   int
	names []string
	index int

	err      error
	quitting bool
}

// NewTerminalModel creates the terminal preview model.
func NewTerminalModel(opts TerminalOptions) (TerminalModel, error) {
	if opts.Viewer == nil || opts.Library == nil || opts.Library.Len() == 0 {
		return TerminalModel{}, fmt.Errorf("terminal: viewer config and a non-empty library are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	index := 0
	if opts.Effect != "" {
		if _, err := opts.Library.Get(opts.Effect); err != nil {
			return TerminalModel{}, err
		}
		index = opts.Library.IndexOf(opts.Effect)
	}

	var src particles.RandomSource = particles.NewTimeSeededSource()
	if opts.Viewer.Seed != 0 {
		src = particles.NewRandomSource(opts.Viewer.Seed)
	}

	term := opts.Viewer.Terminal
	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 || rows <= 0 {
		cols, rows = 80, 24
	}

	return TerminalModel{
		system: particles.NewParticleSystem(
			particles.WithRandomSource(src),
			particles.WithLogger(logger),
			particles.WithMaxParticles(opts.Viewer.MaxParticles),
		),
		library: opts.Library,
		clock:   systems.NewFrameClock(1000 / float64(term.FPS)),
		surface: NewCellSurface(cols, rows-1, float64(term.CellWidth), float64(term.CellHeight)),
		logger:  logger,
		fps:     term.FPS,
		names:   opts.Library.Names(),
		index:   index,
	}, nil
}

// Init starts the tick loop.
func (m TerminalModel) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m TerminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// 最后一行留给状态栏
		m.surface.Resize(msg.Width, max(msg.Height-1, 1))
		m.system.Clear()
		return m, nil

	case terminalTickMsg:
		m.Step()
		if m.err != nil {
			return m, tea.Quit
		}
		return m, tickCmd(m.fps)
	}

	return m, nil
}

func (m TerminalModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "right", "l", "n":
		m.index = (m.index + 1) % len(m.names)
		m.system.Clear()
	case "left", "h":
		m.index = (m.index - 1 + len(m.names)) % len(m.names)
		m.system.Clear()
	case " ":
		m.spawn()
	case "r":
		m.system.Clear()
	case "p":
		m.clock.TogglePause()
	case "+", "=":
		m.clock.SetTimeScale(m.clock.TimeScale() + timeScaleStep)
	case "-":
		m.clock.SetTimeScale(m.clock.TimeScale() - timeScaleStep)
	}
	return m, nil
}

// Step advances the simulation by one frame, respawning the effect when
// nothing is left on stage.
func (m *TerminalModel) Step() {
	if m.system.SpawnerCount() == 0 && m.system.ParticleCount() == 0 && !m.clock.Paused() {
		m.spawn()
	}
	m.system.Update(m.clock.Tick())
}

func (m *TerminalModel) spawn() {
	w, h := m.surface.PixelSize()
	name := m.Current()
	if _, err := entities.CreateParticleEffect(m.system, m.library, name, w/2, h/2, m.clock.Now()); err != nil {
		m.logger.Error("failed to spawn effect", "effect", name, "err", err)
		m.err = err
	}
}

// Current returns the effect being previewed.
func (m TerminalModel) Current() string {
	return m.names[m.index]
}

// System returns the preview's particle system.
func (m TerminalModel) System() *particles.ParticleSystem {
	return m.system
}

// Err returns the error that stopped the preview, if any.
func (m TerminalModel) Err() error {
	return m.err
}

// View renders the current state to a string for display.
func (m TerminalModel) View() string {
	if m.quitting {
		return ""
	}

	m.surface.Clear()
	m.system.Render(m.surface)

	stats := m.system.Stats()
	status := fmt.Sprintf(" %d particles  x%.2f  ←/→ effect  space spawn  r clear  p pause  q quit",
		stats.Particles, m.clock.TimeScale())
	if m.clock.Paused() {
		status += "  [paused]"
	}
	return m.surface.Render() + "\n" + titleStyle.Render(m.Current()) + statusStyle.Render(status)
}

// RunTerminal starts the Bubble Tea program for the terminal preview.
func RunTerminal(opts TerminalOptions) error {
	model, err := NewTerminalModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(TerminalModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
