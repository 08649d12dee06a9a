package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/fractalab/internal/config"
	"github.com/san-kum/fractalab/internal/dispatch"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
)

func TestRunMatchesSerial(t *testing.T) {
	jobs := Presets(dispatch.Carpet, dispatch.Tree)
	if len(jobs) == 0 {
		t.Fatal("no preset jobs")
	}

	results, err := New(3).Run(context.Background(), jobs)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("got %d results for %d jobs", len(results), len(jobs))
	}

	for i, res := range results {
		if res.Job.Name != jobs[i].Name {
			t.Errorf("result %d is %s, want %s", i, res.Job.Name, jobs[i].Name)
		}
		if res.Err != nil {
			t.Errorf("%s: %v", res.Job.Name, res.Err)
		}
		sel := dispatch.New()
		if err := jobs[i].Config.Apply(sel); err != nil {
			t.Fatal(err)
		}
		want := sel.Frame(jobs[i].Config.Canvas)
		if diff := cmp.Diff(want, res.Primitives); diff != "" {
			t.Errorf("%s differs from a serial render (-want +got):\n%s", res.Job.Name, diff)
		}
	}
}

func TestRunReportsJobErrors(t *testing.T) {
	bad := config.DefaultConfig()
	bad.Fractal = "tree"
	bad.Tree.Scaling = 1

	unknown := config.DefaultConfig()
	unknown.Fractal = "julia"

	results, err := New(0).Run(context.Background(), []Job{
		{Name: "ok", Config: config.DefaultConfig()},
		{Name: "bad", Config: bad},
		{Name: "unknown", Config: unknown},
	})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err != nil || len(results[0].Primitives) == 0 {
		t.Errorf("ok job: %v, %d primitives", results[0].Err, len(results[0].Primitives))
	}
	if !errors.Is(results[1].Err, fractal.ErrConfiguration) || len(results[1].Primitives) != 0 {
		t.Errorf("bad job: %v, %d primitives", results[1].Err, len(results[1].Primitives))
	}
	if !errors.Is(results[2].Err, fractal.ErrUnknownKind) {
		t.Errorf("unknown job: %v", results[2].Err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.DefaultConfig()
	cfg.Canvas = geom.Canvas{Width: 10, Height: 10}
	_, err := New(1).Run(ctx, []Job{{Name: "a", Config: cfg}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestScenarioJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	script := `name: tour
steps:
  - fractal: sierpinski
    params:
      depth: 3
      shaded: 1
    save_as: carpet3
  - fractal: tree
    preset: htree
  - fractal: word
    params:
      length: 99
`
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	base := config.DefaultConfig()
	base.Canvas = geom.Canvas{Width: 400, Height: 300}
	jobs, err := s.Jobs(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 3 {
		t.Fatalf("got %d jobs", len(jobs))
	}

	names := []string{jobs[0].Name, jobs[1].Name, jobs[2].Name}
	if diff := cmp.Diff([]string{"carpet3", "02_tree", "03_word"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if c := jobs[0].Config; c.Fractal != "carpet" || c.Carpet.Depth != 3 || !c.Carpet.Shaded {
		t.Errorf("step 1 config: %s %+v", c.Fractal, c.Carpet)
	}
	if c := jobs[1].Config; c.Tree.Variant != fractal.VariantHTree || c.Canvas != base.Canvas {
		t.Errorf("step 2 config: %+v on %+v", c.Tree, c.Canvas)
	}
	if got := jobs[2].Config.Word.Length; got != fractal.MaxWordLength {
		t.Errorf("length = %d, want clamped to %d", got, fractal.MaxWordLength)
	}
}

func TestScenarioErrors(t *testing.T) {
	base := config.DefaultConfig()
	tests := []Scenario{
		{Steps: []Step{{Fractal: "julia"}}},
		{Steps: []Step{{Fractal: "carpet", Preset: "nope"}}},
		{Steps: []Step{{Fractal: "carpet", Params: map[string]float64{"length": 3}}}},
	}
	for i, s := range tests {
		if _, err := s.Jobs(base); err == nil {
			t.Errorf("scenario %d accepted", i)
		}
	}
}

func TestSweepJobs(t *testing.T) {
	jobs, err := Sweep{Fractal: "escape", Param: "max_iterations", Min: 25, Max: 125, Steps: 3}.Jobs(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	var got []int
	for _, j := range jobs {
		got = append(got, j.Config.Escape.MaxIterations)
	}
	if diff := cmp.Diff([]int{25, 75, 125}, got); diff != "" {
		t.Errorf("iterations (-want +got):\n%s", diff)
	}
	if jobs[1].Name != "escape_max_iterations_75" {
		t.Errorf("name = %s", jobs[1].Name)
	}

	if _, err := (Sweep{Fractal: "tree", Param: "bogus", Steps: 2}).Jobs(config.DefaultConfig()); err == nil {
		t.Error("unknown sweep parameter accepted")
	}
}
