package viz

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fractalab/internal/config"
	"github.com/san-kum/fractalab/internal/dispatch"
	"github.com/san-kum/fractalab/internal/export"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/metrics"
	"github.com/san-kum/fractalab/internal/render"
	"github.com/san-kum/fractalab/internal/storage"
)

const (
	panelWidth  = 34
	chromeLines = 3
	historySize = 60
)

var fractalInfo = map[dispatch.Kind]string{
	dispatch.Carpet: "sierpinski carpet",
	dispatch.Word:   "fibonacci word",
	dispatch.Tree:   "binary tree",
	dispatch.Escape: "mandelbrot set",
}

// Options configures a Model. Config is the starting point and the target
// of reset; Store and ExportDir may be left empty to disable saving.
type Options struct {
	Config    *config.Config
	Store     *storage.Store
	ExportDir string
}

// Model is the interactive fractal explorer.
type Model struct {
	sel       *dispatch.Selector
	base      *config.Config
	store     *storage.Store
	exportDir string

	theme  int
	cursor int
	help   bool
	growth bool

	width, height int
	canvas        *Canvas
	frame         []fractal.Primitive
	stats         render.Stats
	builds        []float64
	status        string
}

// NewModel applies opts.Config to a fresh selector.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	sel := dispatch.New()
	if err := cfg.Apply(sel); err != nil {
		return Model{}, err
	}
	m := Model{
		sel:       sel,
		base:      cfg.Clone(),
		store:     opts.Store,
		exportDir: opts.ExportDir,
		theme:     themeIndex(cfg.Theme),
		width:     100,
		height:    32,
	}
	m.refresh()
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.canvas = nil
		m.refresh()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	params := m.sel.Params()
	key := msg.String()
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "n":
		m.sel.Next()
		m.cursor = 0
	case "1", "2", "3", "4":
		kinds := dispatch.Kinds()
		idx := int(key[0] - '1')
		if idx < len(kinds) {
			m.sel.Select(kinds[idx])
			m.cursor = 0
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(params)-1 {
			m.cursor++
		}
	case "left", "h":
		if m.cursor < len(params) {
			params[m.cursor].Nudge(-1)
		}
	case "right", "l", " ":
		if m.cursor < len(params) {
			params[m.cursor].Nudge(1)
		}
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.status = "theme " + Themes[m.theme].Name
		return m, nil
	case "g":
		m.growth = !m.growth
		return m, nil
	case "?":
		m.help = !m.help
		return m, nil
	case "r":
		m.reset()
		m.status = "reset " + string(m.sel.Active())
	case "s":
		m.status = m.save()
		return m, nil
	case "x":
		m.status = m.export()
		return m, nil
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// reset restores the active fractal to the starting configuration.
func (m *Model) reset() {
	switch m.sel.Active() {
	case dispatch.Carpet:
		m.sel.Carpet().Params = m.base.Carpet
	case dispatch.Word:
		m.sel.Word().Params = m.base.Word
	case dispatch.Tree:
		m.sel.Tree().Params = m.base.Tree
	case dispatch.Escape:
		m.sel.Escape().Params = m.base.Escape
	}
}

// virtual returns the canvas frames are generated for: the configured
// height, widened to the aspect ratio of the terminal canvas.
func (m *Model) virtual() geom.Canvas {
	dots := m.canvas.Dots()
	h := m.base.Canvas.Height
	return geom.Canvas{Width: dots.Width * h / dots.Height, Height: h}
}

func (m *Model) refresh() {
	if m.canvas == nil {
		m.canvas = NewCanvas(max(m.width-panelWidth-2, 8), max(m.height-chromeLines, 4))
	}
	virtual := m.virtual()

	gen := m.sel.Generator()
	before := gen.Recomputations()
	start := time.Now()
	m.frame = m.sel.Frame(virtual)
	if gen.Recomputations() != before {
		m.builds = append(m.builds, float64(time.Since(start).Microseconds())/1000)
		if len(m.builds) > historySize {
			m.builds = m.builds[len(m.builds)-historySize:]
		}
	}

	m.canvas.Clear()
	scale := m.canvas.Dots().Height / virtual.Height
	m.stats = render.Draw(render.Scaled{Sink: m.canvas, Factor: scale}, m.frame, virtual)
}

// snapshot captures the live parameters over the starting configuration.
func (m *Model) snapshot() *config.Config {
	cfg := m.base.Clone()
	cfg.Capture(m.sel)
	cfg.Theme = Themes[m.theme].Name
	return cfg
}

func (m *Model) save() string {
	if m.store == nil {
		return "no render store configured"
	}
	if err := m.store.Init(); err != nil {
		return "save failed: " + err.Error()
	}
	cfg := m.snapshot()
	prims := m.sel.Frame(cfg.Canvas)
	id, err := m.store.Save(cfg, prims, metrics.Collect(prims, metrics.Standard(cfg.Canvas)...))
	if err != nil {
		return "save failed: " + err.Error()
	}
	return "saved " + id
}

func (m *Model) export() string {
	cfg := m.snapshot()
	name := fmt.Sprintf("%s_%d.svg", cfg.Fractal, time.Now().Unix())
	path := filepath.Join(m.exportDir, name)
	if err := export.WriteFile(path, m.sel.Frame(cfg.Canvas), cfg.Canvas, cfg.Background); err != nil {
		return "export failed: " + err.Error()
	}
	return "exported " + path
}

func (m Model) View() string {
	s := newStyles(Themes[m.theme])
	if m.help {
		return m.viewHelp(s)
	}

	left := m.canvas.Render()
	if m.growth {
		left = m.viewGrowth(s)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, s.panel.Render(m.viewPanel(s)))
	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewStatus(s),
		s.hints("tab", "fractal", "j/k", "param", "h/l", "adjust", "s", "save", "x", "svg", "?", "help", "q", "quit"))
}

func (m Model) viewPanel(s styles) string {
	var b strings.Builder
	active := m.sel.Active()
	b.WriteString(s.title.Render("FRACTALAB") + "\n")
	b.WriteString(s.muted.Render(fractalInfo[active]) + "\n\n")

	for i, k := range dispatch.Kinds() {
		label := fmt.Sprintf("%d %s", i+1, k)
		if k == active {
			b.WriteString(s.accent.Render("▸ "+label) + "\n")
		} else {
			b.WriteString(s.muted.Render("  "+label) + "\n")
		}
	}
	b.WriteString("\n")

	for i, p := range m.sel.Params() {
		line := fmt.Sprintf("%-16s %8s", p.Label, p.Format())
		if i == m.cursor {
			b.WriteString(s.accent.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(s.text.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(s.muted.Render(fmt.Sprintf("%-10s %d", "primitives", len(m.frame))) + "\n")
	b.WriteString(s.muted.Render(fmt.Sprintf("%-10s %d", "drawn", m.stats.Drawn())) + "\n")
	b.WriteString(s.muted.Render(fmt.Sprintf("%-10s %d", "culled", m.stats.Culled)) + "\n")
	if n := len(m.builds); n > 0 {
		b.WriteString(s.muted.Render(fmt.Sprintf("%-10s %.2fms", "build", m.builds[n-1])) + "\n")
		b.WriteString(s.accent.Render(Sparkline(m.builds, panelWidth-6)) + "\n")
	}
	return b.String()
}

func (m Model) viewGrowth(s styles) string {
	var data []float64
	var caption string
	switch m.sel.Active() {
	case dispatch.Carpet:
		data, caption = metrics.CarpetGrowth(fractal.MaxCarpetDepth), "squares per depth"
	case dispatch.Word:
		data, caption = metrics.WordGrowth(fractal.MaxWordLength), "segments per word length"
	case dispatch.Tree:
		data, caption = metrics.TreeGrowth(m.sel.Tree().Params), "segments per detail"
	case dispatch.Escape:
		data, caption = metrics.EscapeHistogram(m.sel.Escape().Params, 32), "escape counts"
	}
	h := max(m.canvas.Height-2, 3)
	w := max(m.canvas.Width-16, 10)
	return s.text.Render(metrics.Plot(data, caption, h, w))
}

func (m Model) viewStatus(s styles) string {
	if err := m.sel.Err(); err != nil {
		return s.err.Render(err.Error())
	}
	if m.status != "" {
		return s.muted.Render(m.status)
	}
	return ""
}

func (m Model) viewHelp(s styles) string {
	rows := [][2]string{
		{"tab / n", "next fractal"},
		{"1-4", "select fractal"},
		{"j / k", "select parameter"},
		{"h / l", "adjust parameter"},
		{"g", "toggle growth chart"},
		{"t", "cycle theme"},
		{"s", "save render to store"},
		{"x", "export svg"},
		{"r", "reset fractal"},
		{"?", "close help"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString("\n  " + s.title.Render("KEYS") + "\n\n")
	for _, r := range rows {
		b.WriteString("  " + s.key.Render(fmt.Sprintf("%-10s", r[0])) + s.text.Render(r[1]) + "\n")
	}
	return b.String()
}

// Run starts the explorer on the alternate screen.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
