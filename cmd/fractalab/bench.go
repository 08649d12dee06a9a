package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/fractalab/internal/dispatch"
)

// benchSweeps lists the parameter that dominates generation cost for each
// fractal and the values to time it at.
var benchSweeps = map[dispatch.Kind]struct {
	key    string
	values []float64
}{
	dispatch.Carpet: {"depth", []float64{1, 2, 3, 4, 5, 6}},
	dispatch.Word:   {"length", []float64{8, 12, 16, 20, 24}},
	dispatch.Tree:   {"detail", []float64{1, 2, 3}},
	dispatch.Escape: {"resolution", []float64{100, 250, 400, 550, 750}},
}

func benchFractal(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	kind := dispatch.Kind(cfg.Fractal)
	sweep := benchSweeps[kind]

	fmt.Printf("benchmarking %s\n\n", kind)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPRIMITIVES\tCOLD\tCACHED\tPRIMS/SEC\n", sweep.key)

	for _, v := range sweep.values {
		sel := dispatch.New()
		if err := cfg.Apply(sel); err != nil {
			return err
		}
		p, ok := sel.Param(kind, sweep.key)
		if !ok {
			return fmt.Errorf("bench: %s has no %s parameter", kind, sweep.key)
		}
		p.Set(v)

		start := time.Now()
		prims := sel.Frame(cfg.Canvas)
		cold := time.Since(start)
		if err := sel.Err(); err != nil {
			return fmt.Errorf("bench %s=%g: %w", sweep.key, v, err)
		}

		start = time.Now()
		sel.Frame(cfg.Canvas)
		cached := time.Since(start)

		fmt.Fprintf(w, "%s\t%d\t%v\t%v\t%.0f\n",
			p.Format(), len(prims), cold, cached, float64(len(prims))/cold.Seconds())
	}
	return w.Flush()
}
