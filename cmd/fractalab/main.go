package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/fractalab/internal/batch"
	"github.com/san-kum/fractalab/internal/config"
	"github.com/san-kum/fractalab/internal/dispatch"
	"github.com/san-kum/fractalab/internal/export"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/gui"
	"github.com/san-kum/fractalab/internal/metrics"
	"github.com/san-kum/fractalab/internal/storage"
	"github.com/san-kum/fractalab/internal/viz"
)

var (
	dataDir string
	verbose bool
	outPath string
	save    bool
	outDir  string
	format  string
	workers int
	sweep   batch.Sweep
)

// main registers the commands and runs the terminal explorer when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "fractalab",
		Short: "interactive fractal generator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fractalab", "render store directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log generation to stderr")
	registerConfigFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal explorer",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui [fractal]",
		Short: "open the fractal in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}

	renderCmd := &cobra.Command{
		Use:   "render [fractal]",
		Short: "render a fractal to svg or png",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFractal,
	}
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (.svg or .png), default <fractal>.svg")
	renderCmd.Flags().BoolVar(&save, "save", false, "also save the render to the store")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved renders",
		Args:  cobra.NoArgs,
		RunE:  listRenders,
	}

	showCmd := &cobra.Command{
		Use:   "show [render_id]",
		Short: "show a saved render",
		Args:  cobra.ExactArgs(1),
		RunE:  showRender,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [render_id]",
		Short: "export a saved render to svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, default stdout")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [render_id]",
		Short: "export a saved render to json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [render_id]",
		Short: "delete a saved render",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRender,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [fractal]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [fractal]",
		Short: "plot primitive growth per level",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotStats,
	}

	presetRenderCmd := &cobra.Command{
		Use:   "render-presets [fractal]",
		Short: "render every preset in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderPresets,
	}
	batchFlags(presetRenderCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "render a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	batchFlags(scenarioCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [fractal]",
		Short: "render a fractal across a parameter range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	batchFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweep.Param, "param", "zoom", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweep.Min, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweep.Max, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweep.Steps, "steps", 5, "number of renders")

	benchCmd := &cobra.Command{
		Use:   "bench [fractal]",
		Short: "benchmark cold and cached frames",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchFractal,
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, renderCmd, listCmd, showCmd, exportSVGCmd, exportJSONCmd, deleteCmd, presetsCmd, presetRenderCmd, scenarioCmd, sweepCmd, statsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func batchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outDir, "dir", "renders", "output directory")
	cmd.Flags().StringVar(&format, "format", "svg", "output format (svg or png)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel renders, 0 for one per cpu")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(viz.Options{Config: cfg, Store: storage.New(dataDir), ExportDir: "."})
}

func renderFractal(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sel := dispatch.New()
	if err := cfg.Apply(sel); err != nil {
		return err
	}

	start := time.Now()
	prims := sel.Frame(cfg.Canvas)
	elapsed := time.Since(start)
	if err := sel.Err(); err != nil {
		return fmt.Errorf("render %s: %w", cfg.Fractal, err)
	}

	path := outPath
	if path == "" {
		path = cfg.Fractal + ".svg"
	}
	if err := export.WriteFile(path, prims, cfg.Canvas, cfg.Background); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	values := metrics.Collect(prims, metrics.Standard(cfg.Canvas)...)
	fmt.Printf("rendered %s in %v\n", cfg.Fractal, elapsed)
	fmt.Printf("output: %s\n", path)

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(cfg, prims, values)
		if err != nil {
			return fmt.Errorf("save render: %w", err)
		}
		fmt.Printf("render id: %s\n", id)
	}

	fmt.Println("\nmetrics:")
	printMetrics(values)
	return nil
}

func renderPresets(cmd *cobra.Command, args []string) error {
	kinds := dispatch.Kinds()
	if len(args) > 0 {
		k, err := dispatch.ParseKind(args[0])
		if err != nil {
			return err
		}
		kinds = []dispatch.Kind{k}
	}
	return runBatch(cmd, batch.Presets(kinds...))
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := batch.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	base, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	jobs, err := scenario.Jobs(base)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	if scenario.Name != "" {
		fmt.Printf("scenario: %s\n", scenario.Name)
	}
	return runBatch(cmd, jobs)
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sweep.Fractal = base.Fractal
	jobs, err := sweep.Jobs(base)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	return runBatch(cmd, jobs)
}

// runBatch renders jobs in parallel and writes each frame under outDir.
func runBatch(cmd *cobra.Command, jobs []batch.Job) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	results, err := batch.New(workers).Run(cmd.Context(), jobs)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPRIMITIVES\tTIME\tOUTPUT")
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t%v\n", res.Job.Name, res.Err)
			continue
		}
		path := filepath.Join(outDir, res.Job.Name+"."+format)
		cfg := res.Job.Config
		if err := export.WriteFile(path, res.Primitives, cfg.Canvas, cfg.Background); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%s\n", res.Job.Name, len(res.Primitives), res.Elapsed, path)
	}
	return w.Flush()
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %g\n", name, values[name])
	}
}

func listRenders(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	renders, err := st.List()
	if err != nil {
		return err
	}

	if len(renders) == 0 {
		fmt.Println("no renders found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFRACTAL\tTIME\tPRIMITIVES\tCANVAS")
	for _, r := range renders {
		canvas := "-"
		if r.Config != nil {
			canvas = fmt.Sprintf("%gx%g", r.Config.Canvas.Width, r.Config.Canvas.Height)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			r.ID,
			r.Fractal,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Primitives,
			canvas,
		)
	}
	return w.Flush()
}

func showRender(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	prims, err := st.LoadPrimitives(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("render: %s\n", meta.ID)
	fmt.Printf("fractal: %s\n", meta.Fractal)
	fmt.Printf("primitives: %d\n\n", len(prims))
	printMetrics(meta.Metrics)

	if meta.Config != nil && len(prims) > 0 {
		fmt.Println()
		fmt.Println(metrics.Plot(metrics.Profile(prims, meta.Config.Canvas, 60), "primitives per row band, top to bottom", 10, 60))
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if meta.Config == nil {
		return fmt.Errorf("render %s has no configuration", meta.ID)
	}
	prims, err := st.LoadPrimitives(args[0])
	if err != nil {
		return err
	}

	if outPath != "" {
		if filepath.Ext(outPath) != ".svg" {
			return fmt.Errorf("%w: %q", export.ErrFormat, filepath.Ext(outPath))
		}
		return export.WriteFile(outPath, prims, meta.Config.Canvas, meta.Config.Background)
	}
	_, err = fmt.Print(export.FrameToSVG(prims, meta.Config.Canvas, meta.Config.Background))
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	prims, err := st.LoadPrimitives(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, prims)
}

func deleteRender(cmd *cobra.Command, args []string) error {
	if err := storage.New(dataDir).Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := dispatch.Kinds()
	if len(args) > 0 {
		k, err := dispatch.ParseKind(args[0])
		if err != nil {
			return err
		}
		kinds = []dispatch.Kind{k}
	}
	for _, k := range kinds {
		fmt.Printf("presets for %s:\n", k)
		for _, p := range config.ListPresets(string(k)) {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func plotStats(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	var data []float64
	var caption string
	switch dispatch.Kind(cfg.Fractal) {
	case dispatch.Carpet:
		data, caption = metrics.CarpetGrowth(fractal.MaxCarpetDepth), "carpet squares per depth"
	case dispatch.Word:
		data, caption = metrics.WordGrowth(fractal.MaxWordLength), "word segments per length"
	case dispatch.Tree:
		data, caption = metrics.TreeGrowth(cfg.Tree), "tree segments per detail"
	case dispatch.Escape:
		data, caption = metrics.EscapeHistogram(cfg.Escape, 64), "escape count histogram"
	}

	fmt.Println(metrics.Plot(data, caption, 12, 70))
	return nil
}
