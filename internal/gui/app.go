package gui

import (
	"fmt"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/fractalab/internal/config"
	"github.com/san-kum/fractalab/internal/dispatch"
	"github.com/san-kum/fractalab/internal/export"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
	"github.com/san-kum/fractalab/internal/render"
)

var (
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColPanel   = rl.NewColor(0, 0, 0, 170)
)

const maxTelemetry = 200

type App struct {
	Sel       *dispatch.Selector
	Base      *config.Config
	ParamSel  int
	ShowHUD   bool
	Status    string
	ExportDir string

	// Telemetry holds the build time in milliseconds of every regenerated
	// frame.
	Telemetry []float64
	Stats     render.Stats
}

func initWindow(canvas geom.Canvas) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(canvas.Width), int32(canvas.Height), "fractalab")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// NewApp applies cfg to a fresh selector.
func NewApp(cfg *config.Config) (*App, error) {
	sel := dispatch.New()
	if err := cfg.Apply(sel); err != nil {
		return nil, err
	}
	return &App{
		Sel:       sel,
		Base:      cfg.Clone(),
		ShowHUD:   true,
		ExportDir: ".",
		Telemetry: make([]float64, 0, maxTelemetry),
	}, nil
}

// Run opens a window on cfg and blocks until it is closed.
func Run(cfg *config.Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	initWindow(cfg.Canvas)
	defer rl.CloseWindow()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) canvas() geom.Canvas {
	return geom.Canvas{Width: float64(rl.GetScreenWidth()), Height: float64(rl.GetScreenHeight())}
}

// Update handles input and reports whether the window should stay open.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}

	kinds := dispatch.Kinds()
	for i, key := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour} {
		if rl.IsKeyPressed(key) && i < len(kinds) {
			a.Sel.Select(kinds[i])
			a.ParamSel = 0
		}
	}
	if rl.IsKeyPressed(rl.KeyTab) || rl.IsKeyPressed(rl.KeyN) {
		a.Sel.Next()
		a.ParamSel = 0
	}

	params := a.Sel.Params()
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.ParamSel = min(a.ParamSel+1, len(params)-1)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.ParamSel = max(a.ParamSel-1, 0)
	}
	if a.ParamSel < len(params) {
		if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
			params[a.ParamSel].Nudge(1)
		}
		if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
			params[a.ParamSel].Nudge(-1)
		}
	}

	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}
	if rl.IsKeyPressed(rl.KeyV) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.exportPNG()
	}
	return true
}

func (a *App) reset() {
	switch a.Sel.Active() {
	case dispatch.Carpet:
		a.Sel.Carpet().Params = a.Base.Carpet
	case dispatch.Word:
		a.Sel.Word().Params = a.Base.Word
	case dispatch.Tree:
		a.Sel.Tree().Params = a.Base.Tree
	case dispatch.Escape:
		a.Sel.Escape().Params = a.Base.Escape
	}
	a.Status = "reset " + string(a.Sel.Active())
}

func (a *App) exportPNG() {
	canvas := a.canvas()
	path := filepath.Join(a.ExportDir, fmt.Sprintf("%s_%d.png", a.Sel.Active(), time.Now().Unix()))
	if err := export.WriteFile(path, a.Sel.Frame(canvas), canvas, a.Base.Background); err != nil {
		a.Status = "export failed: " + err.Error()
		return
	}
	a.Status = "exported " + path
}

// frame returns the active fractal for the window, recording the build
// time whenever the generator had to regenerate.
func (a *App) frame(canvas geom.Canvas) []fractal.Primitive {
	gen := a.Sel.Generator()
	before := gen.Recomputations()
	start := time.Now()
	prims := a.Sel.Frame(canvas)
	if gen.Recomputations() != before {
		if len(a.Telemetry) == maxTelemetry {
			a.Telemetry = a.Telemetry[1:]
		}
		a.Telemetry = append(a.Telemetry, float64(time.Since(start).Microseconds())/1000)
	}
	return prims
}

func (a *App) Draw() {
	canvas := a.canvas()
	prims := a.frame(canvas)

	rl.BeginDrawing()
	rl.ClearBackground(toRL(a.Base.Background))
	a.Stats = render.Draw(Window{}, prims, canvas)
	if a.ShowHUD {
		a.DrawHUD(canvas, len(prims))
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD(canvas geom.Canvas, total int) {
	rl.DrawRectangle(20, 20, 300, int32(140+28*len(a.Sel.Params())), ColPanel)
	drawText("fractalab", 30, 30, 24, ColSelect)
	drawText(fmt.Sprintf(":: %s", a.Sel.Active()), 160, 34, 16, ColText)

	y := 80
	for i, k := range dispatch.Kinds() {
		col := ColTextDim
		if k == a.Sel.Active() {
			col = ColSelect
		}
		drawText(fmt.Sprintf("%d %s", i+1, k), 30+i*70, y, 14, col)
	}

	y = 120
	for i, p := range a.Sel.Params() {
		if i == a.ParamSel {
			drawText(fmt.Sprintf("> %-16s %s", p.Label, p.Format()), 30, y, 18, ColSelect)
		} else {
			drawText(fmt.Sprintf("  %-16s %s", p.Label, p.Format()), 30, y, 18, ColText)
		}
		y += 28
	}
	drawText(fmt.Sprintf("%d primitives  %d drawn  %d culled", total, a.Stats.Drawn(), a.Stats.Culled), 30, y+10, 14, ColAccent)

	h := int(canvas.Height)
	a.DrawTelemetry(30, h-120)
	if err := a.Sel.Err(); err != nil {
		drawText(err.Error(), 30, h-50, 16, rl.Red)
	} else if a.Status != "" {
		drawText(a.Status, 30, h-50, 16, ColText)
	}
	drawText("[TAB] FRACTAL  [J/K] PARAM  [H/L] ADJUST  [R] RESET  [P] PNG  [V] HUD  [Q] QUIT", 30, h-26, 14, ColTextDim)
	drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int(canvas.Width)-90, 30, 14, ColTextDim)
}

func drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}

// DrawTelemetry plots recent build times as a line strip.
func (a *App) DrawTelemetry(rectX, rectY int) {
	if len(a.Telemetry) < 2 {
		return
	}
	width, height := 400, 50

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal, maxVal = min(minVal, v), max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	drawText(fmt.Sprintf("build %.2fms", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
