// Package batch renders many configurations side by side. Each job gets
// its own selector, so generators are never shared between goroutines.
package batch

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/fractalab/internal/config"
	"github.com/san-kum/fractalab/internal/dispatch"
	"github.com/san-kum/fractalab/internal/fractal"
)

type Job struct {
	Name   string
	Config *config.Config
}

type Result struct {
	Job        Job
	Primitives []fractal.Primitive
	Elapsed    time.Duration
	Err        error
}

type Batch struct {
	workers int
}

// New returns a batch running at most workers jobs at once. A non-positive
// count uses one worker per CPU.
func New(workers int) *Batch {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Batch{workers: workers}
}

// Run renders every job and returns the results in job order. A job whose
// configuration is rejected reports it in its Result; only cancellation of
// ctx fails the whole batch.
func (b *Batch) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	var g errgroup.Group
	g.SetLimit(b.workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = render(job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func render(job Job) Result {
	res := Result{Job: job}
	sel := dispatch.New()
	if err := job.Config.Apply(sel); err != nil {
		res.Err = err
		return res
	}
	start := time.Now()
	res.Primitives = sel.Frame(job.Config.Canvas)
	res.Elapsed = time.Since(start)
	res.Err = sel.Err()
	return res
}

// Presets returns one job per preset of every kind, named kind_preset.
func Presets(kinds ...dispatch.Kind) []Job {
	var jobs []Job
	for _, k := range kinds {
		for _, name := range config.ListPresets(string(k)) {
			jobs = append(jobs, Job{Name: string(k) + "_" + name, Config: config.GetPreset(string(k), name)})
		}
	}
	return jobs
}
