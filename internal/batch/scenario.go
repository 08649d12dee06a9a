package batch

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fractalab/internal/config"
	"github.com/san-kum/fractalab/internal/dispatch"
)

// Scenario is a scripted list of renders.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one render of a scenario. Params are keyed like the interactive
// sliders and are clamped the same way.
type Step struct {
	Fractal string             `yaml:"fractal"`
	Preset  string             `yaml:"preset"`
	Params  map[string]float64 `yaml:"params"`
	SaveAs  string             `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &scenario, nil
}

// Jobs resolves every step against base.
func (s *Scenario) Jobs(base *config.Config) ([]Job, error) {
	jobs := make([]Job, 0, len(s.Steps))
	for i, step := range s.Steps {
		k, err := dispatch.ParseKind(step.Fractal)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		cfg := base.Clone()
		if step.Preset != "" {
			p := config.GetPreset(string(k), step.Preset)
			if p == nil {
				return nil, fmt.Errorf("step %d: unknown preset %s", i+1, step.Preset)
			}
			cfg = p
			cfg.Canvas, cfg.Background = base.Canvas, base.Background
		}
		cfg.Fractal = string(k)
		if err := setParams(cfg, k, step.Params); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		name := step.SaveAs
		if name == "" {
			name = fmt.Sprintf("%02d_%s", i+1, k)
		}
		jobs = append(jobs, Job{Name: name, Config: cfg})
	}
	return jobs, nil
}

// setParams writes slider values into cfg through a scratch selector.
func setParams(cfg *config.Config, k dispatch.Kind, params map[string]float64) error {
	if len(params) == 0 {
		return nil
	}
	sel := dispatch.New()
	if err := cfg.Apply(sel); err != nil {
		return err
	}
	for key, v := range params {
		p, ok := sel.Param(k, key)
		if !ok {
			return fmt.Errorf("unknown %s parameter %q", k, key)
		}
		p.Set(v)
	}
	cfg.Capture(sel)
	return nil
}

// Sweep renders one fractal across evenly spaced values of a parameter.
type Sweep struct {
	Fractal string
	Param   string
	Min     float64
	Max     float64
	Steps   int
}

// Jobs returns one job per sweep value, named fractal_param_value.
func (s Sweep) Jobs(base *config.Config) ([]Job, error) {
	k, err := dispatch.ParseKind(s.Fractal)
	if err != nil {
		return nil, err
	}
	steps := max(s.Steps, 1)
	step := 0.0
	if steps > 1 {
		step = (s.Max - s.Min) / float64(steps-1)
	}

	jobs := make([]Job, 0, steps)
	for i := 0; i < steps; i++ {
		v := s.Min + float64(i)*step
		cfg := base.Clone()
		cfg.Fractal = string(k)
		if err := setParams(cfg, k, map[string]float64{s.Param: v}); err != nil {
			return nil, err
		}
		name := fmt.Sprintf("%s_%s_%s", k, s.Param, strconv.FormatFloat(v, 'g', 4, 64))
		jobs = append(jobs, Job{Name: name, Config: cfg})
	}
	return jobs, nil
}
