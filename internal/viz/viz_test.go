package viz

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"seehuhn.de/go/geom/vec"

	"github.com/san-kum/fractalab/internal/dispatch"
	"github.com/san-kum/fractalab/internal/palette"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0, palette.Red)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("grid = %U, want U+2801", c.Grid[0][0])
	}
	if !c.Lit(0, 0) || c.Lit(1, 0) {
		t.Error("wrong dots lit")
	}
	c.Unset(0, 0)
	if c.Grid[0][0] != blank {
		t.Errorf("grid = %U after unset", c.Grid[0][0])
	}

	// out of range is ignored
	c.Set(-1, 0, palette.Red)
	c.Set(4, 8, palette.Red)
	if got := c.String(); strings.ContainsFunc(got, func(r rune) bool { return r > blank }) {
		t.Errorf("unexpected dots: %q", got)
	}
}

func TestCanvasFillRect(t *testing.T) {
	tests := []struct {
		name   string
		center vec.Vec2
		half   vec.Vec2
		cell   [2]int
		want   rune
	}{
		{"full cell", vec.Vec2{X: 1, Y: 2}, vec.Vec2{X: 1, Y: 2}, [2]int{0, 0}, 0x28FF},
		{"sub-dot", vec.Vec2{X: 2.2, Y: 4.7}, vec.Vec2{X: 0.01, Y: 0.01}, [2]int{1, 1}, 0x2801},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(3, 3)
			c.FillRect(tt.center, tt.half, palette.Blue)
			if got := c.Grid[tt.cell[1]][tt.cell[0]]; got != tt.want {
				t.Errorf("cell = %U, want %U", got, tt.want)
			}
			if got := c.Colors[tt.cell[1]][tt.cell[0]]; got != palette.Blue {
				t.Errorf("colour = %v", got)
			}
		})
	}
}

func TestCanvasBlackClears(t *testing.T) {
	c := NewCanvas(1, 1)
	c.FillRect(vec.Vec2{X: 1, Y: 2}, vec.Vec2{X: 1, Y: 2}, palette.Red)
	c.FillRect(vec.Vec2{X: 1, Y: 2}, vec.Vec2{X: 1, Y: 2}, palette.Black)
	if c.Grid[0][0] != blank {
		t.Errorf("grid = %U, want blank", c.Grid[0][0])
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.StrokeLine(vec.Vec2{X: 0, Y: 1}, vec.Vec2{X: 7, Y: 1}, palette.Green, 3)
	for x := 0; x < 8; x++ {
		if !c.Lit(x, 1) {
			t.Errorf("dot %d not lit", x)
		}
		if c.Lit(x, 0) {
			t.Errorf("dot %d above line lit", x)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 5); got != "─────" {
		t.Errorf("empty sparkline = %q", got)
	}
	got := Sparkline([]float64{0, 1, 2, 3}, 10)
	if utf8.RuneCountInString(got) != 4 {
		t.Errorf("sparkline %q has wrong length", got)
	}
	if !strings.HasPrefix(got, "▁") || !strings.HasSuffix(got, "█") {
		t.Errorf("sparkline %q not rising", got)
	}
	if n := utf8.RuneCountInString(Sparkline(make([]float64, 20), 8)); n != 8 {
		t.Errorf("truncated sparkline has %d runes", n)
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("phosphor").Name != "phosphor" {
		t.Error("phosphor not found")
	}
	if GetTheme("nope").Name != "dark" {
		t.Error("unknown theme should fall back to dark")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func TestModelSwitchFractal(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.sel.Active() != dispatch.Carpet {
		t.Fatalf("active = %s", m.sel.Active())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.sel.Active() != dispatch.Word {
		t.Errorf("after tab active = %s", m.sel.Active())
	}
	m = press(t, m, runes("4"))
	if m.sel.Active() != dispatch.Escape {
		t.Errorf("after 4 active = %s", m.sel.Active())
	}
	if len(m.frame) == 0 {
		t.Error("escape frame is empty")
	}
	if m.stats.Drawn() == 0 {
		t.Error("nothing drawn")
	}
}

func TestModelAdjustAndReset(t *testing.T) {
	m := newTestModel(t, Options{})
	before := len(m.frame)

	m = press(t, m, runes("l"))
	if got := m.sel.Carpet().Params.Depth; got != 2 {
		t.Fatalf("depth = %d, want 2", got)
	}
	if len(m.frame) <= before {
		t.Errorf("frame did not grow: %d -> %d", before, len(m.frame))
	}

	m = press(t, m, runes("j"), runes("l"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d", m.cursor)
	}
	if got := m.sel.Carpet().Params.Zoom; math.Abs(got-0.95) > 1e-9 {
		t.Errorf("zoom = %g", got)
	}

	m = press(t, m, runes("r"))
	if got := m.sel.Carpet().Params.Depth; got != 1 {
		t.Errorf("depth after reset = %d", got)
	}
	if len(m.frame) != before {
		t.Errorf("frame after reset = %d, want %d", len(m.frame), before)
	}
}

func TestModelCursorBounds(t *testing.T) {
	m := newTestModel(t, Options{})
	m = press(t, m, runes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d", m.cursor)
	}
	for i := 0; i < 20; i++ {
		m = press(t, m, runes("j"))
	}
	if want := len(m.sel.Params()) - 1; m.cursor != want {
		t.Errorf("cursor = %d, want %d", m.cursor, want)
	}
}

func TestModelSaveWithoutStore(t *testing.T) {
	m := newTestModel(t, Options{})
	m = press(t, m, runes("s"))
	if m.status != "no render store configured" {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelExport(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{ExportDir: dir})
	m = press(t, m, runes("x"))
	if !strings.HasPrefix(m.status, "exported ") {
		t.Fatalf("status = %q", m.status)
	}
	files, err := filepath.Glob(filepath.Join(dir, "carpet_*.svg"))
	if err != nil || len(files) != 1 {
		t.Errorf("exported files = %v (%v)", files, err)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, Options{})
	if v := m.View(); !strings.Contains(v, "FRACTALAB") {
		t.Error("view missing title")
	}
	m = press(t, m, runes("?"))
	if v := m.View(); !strings.Contains(v, "KEYS") {
		t.Error("help view missing")
	}
	m = press(t, m, runes("?"), runes("g"))
	if v := m.View(); !strings.Contains(v, "squares per depth") {
		t.Error("growth chart missing")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Error("q should quit")
	}
}
