package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/steinlab/internal/config"
	"github.com/san-kum/steinlab/internal/experiment"
	"github.com/san-kum/steinlab/internal/kernels"
	"github.com/san-kum/steinlab/internal/metrics"
	"github.com/san-kum/steinlab/internal/stein"
	"github.com/san-kum/steinlab/internal/storage"
	"github.com/san-kum/steinlab/internal/sweep"
	"github.com/san-kum/steinlab/internal/tui"
	"github.com/san-kum/steinlab/internal/viz"
)

var (
	dataDir     string
	particles   int
	dim         int
	iterations  int
	stepSize    float64
	decayRate   float64
	lengthscale float64
	kernelName  string
	schedName   string
	seed        uint64
	initMean    float64
	initStd     float64
	noAttract   bool
	noRepel     bool
	fieldScale  string
	configFile  string
	preset      string
	snapshots   int
	noSave      bool
	chains      int
	// field command
	gridSide  int
	gridSpan  float64
	warmSteps int
	// plot command
	histAxis int
	// sweep command
	sweepMetric string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "steinlab",
		Short: "Stein variational particle transport lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".steinlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [target]",
		Short: "run a transport experiment",
		Args:  cobra.ExactArgs(1),
		RunE:  runExperiment,
	}
	addEngineFlags(runCmd)
	runCmd.Flags().IntVar(&snapshots, "snapshot-every", 0, "record positions every k steps")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")
	runCmd.Flags().IntVar(&chains, "chains", 1, "independent chains with offset seeds")

	liveCmd := &cobra.Command{
		Use:   "live [target]",
		Short: "interactive live session",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addEngineFlags(liveCmd)

	fieldCmd := &cobra.Command{
		Use:   "field [target]",
		Short: "sample the induced vector field on a grid",
		Args:  cobra.ExactArgs(1),
		RunE:  sampleField,
	}
	addEngineFlags(fieldCmd)
	fieldCmd.Flags().IntVar(&gridSide, "grid", 16, "grid points per side")
	fieldCmd.Flags().Float64Var(&gridSpan, "span", 4.0, "half-width of the sampled square")
	fieldCmd.Flags().IntVar(&warmSteps, "warm", 0, "steps to run before sampling")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&histAxis, "axis", 0, "axis for the marginal histogram")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [target]",
		Short: "grid-search lengthscale and step size",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addEngineFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "drift", "metric to minimize")

	benchCmd := &cobra.Command{
		Use:   "bench [target]",
		Short: "benchmark step throughput",
		Args:  cobra.ExactArgs(1),
		RunE:  runBench,
	}
	addEngineFlags(benchCmd)

	rootCmd.AddCommand(runCmd, liveCmd, fieldCmd, listCmd, plotCmd, exportCmd, sweepCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "number of particles")
	cmd.Flags().IntVar(&dim, "dim", config.DefaultDim, "dimension")
	cmd.Flags().IntVar(&iterations, "steps", config.DefaultIterations, "number of steps")
	cmd.Flags().Float64Var(&stepSize, "eps", config.DefaultStepSize, "step size")
	cmd.Flags().Float64Var(&decayRate, "decay", 0, "schedule decay parameter")
	cmd.Flags().Float64Var(&lengthscale, "lengthscale", 0, "kernel lengthscale (0 = median heuristic)")
	cmd.Flags().StringVar(&kernelName, "kernel", "rbf", "kernel (rbf, imq, gibbs)")
	cmd.Flags().StringVar(&schedName, "schedule", "constant", "step-size schedule")
	cmd.Flags().Uint64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().Float64Var(&initMean, "init-mean", 0, "initial distribution mean")
	cmd.Flags().Float64Var(&initStd, "init-std", 2, "initial distribution std")
	cmd.Flags().BoolVar(&noAttract, "no-attraction", false, "disable the attraction term")
	cmd.Flags().BoolVar(&noRepel, "no-repulsion", false, "disable the repulsion term")
	cmd.Flags().StringVar(&fieldScale, "field-scale", "velocity", "field scaling (velocity, displacement)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges config file, preset, and flags (flags win only
// through the defaults they set; file and preset take the same shape).
func resolveConfig(target string) (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	if preset != "" {
		cfg := config.GetPreset(target, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q for target %q (have: %s)",
				preset, target, strings.Join(config.ListPresets(target), ", "))
		}
		return cfg, nil
	}

	cfg := config.DefaultConfig()
	cfg.Target = target
	cfg.Kernel = kernelName
	cfg.Schedule = schedName
	cfg.Particles = particles
	cfg.Dim = dim
	cfg.StepSize = stepSize
	cfg.DecayRate = decayRate
	cfg.Iterations = iterations
	cfg.Seed = seed
	cfg.Attraction = !noAttract
	cfg.Repulsion = !noRepel
	cfg.FieldScale = fieldScale
	cfg.Lengthscale = lengthscale
	cfg.Init = config.InitConfig{Mean: initMean, Std: initStd}
	return cfg, nil
}

// buildParts resolves the target and kernel from a config. A zero
// lengthscale selects the median-distance heuristic computed on the
// initial draw.
func buildParts(cfg *config.Config) (stein.ScoreFunc, stein.Kernel, error) {
	reg := experiment.NewRegistry()

	score, err := reg.Target(cfg.Target, cfg.Dim)
	if err != nil {
		return nil, nil, err
	}

	ls := cfg.Lengthscale
	if ls == 0 {
		draw := cfg.EngineInit().Draw(cfg.Particles, score.Dim())
		ls = kernels.MedianBandwidth(draw.Positions())
	}

	kern, err := reg.Kernel(cfg.Kernel, ls)
	if err != nil {
		return nil, nil, err
	}
	return score, kern, nil
}

func buildEngine(cfg *config.Config) (*stein.Engine, error) {
	score, kern, err := buildParts(cfg)
	if err != nil {
		return nil, err
	}
	return stein.NewEngine(score, kern, cfg.EngineInit(), cfg.Particles, cfg.EngineConfig())
}

func buildExperiment(cfg *config.Config) (*experiment.Experiment, error) {
	eng, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}

	reg := experiment.NewRegistry()
	sched, err := reg.Schedule(cfg.Schedule, cfg.StepSize, cfg.DecayRate)
	if err != nil {
		return nil, err
	}

	exp := experiment.New(eng, sched, cfg.Iterations)
	exp.AddMetric(metrics.NewSpread())
	exp.AddMetric(metrics.NewDrift())
	exp.AddMetric(metrics.NewMaxMove())
	return exp, nil
}

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args[0])
	if err != nil {
		return err
	}

	if chains > 1 {
		return runChains(cfg)
	}

	exp, err := buildExperiment(cfg)
	if err != nil {
		return err
	}
	if snapshots > 0 {
		exp.SnapshotEvery(snapshots)
	}

	start := time.Now()
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "target\t%s\n", cfg.Target)
	fmt.Fprintf(w, "kernel\t%s\n", cfg.Kernel)
	fmt.Fprintf(w, "particles\t%d × %dd\n", cfg.Particles, cfg.Dim)
	fmt.Fprintf(w, "steps\t%d\n", result.StepsTaken)
	fmt.Fprintf(w, "elapsed\t%s\n", elapsed.Round(time.Millisecond))
	for name, val := range result.Metrics {
		fmt.Fprintf(w, "%s\t%.6f\n", name, val)
	}
	w.Flush()

	if !noSave {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(storage.RunMetadata{
			Target:      cfg.Target,
			Kernel:      cfg.Kernel,
			Seed:        cfg.Seed,
			Particles:   cfg.Particles,
			Dim:         cfg.Dim,
			StepSize:    cfg.StepSize,
			Iterations:  cfg.Iterations,
			Lengthscale: cfg.Lengthscale,
		}, result)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s\n", runID)
	}
	return nil
}

// runChains runs independent seed-offset chains concurrently and
// reports the final spread of each cloud.
func runChains(cfg *config.Config) error {
	score, kern, err := buildParts(cfg)
	if err != nil {
		return err
	}
	ens := stein.NewEnsemble(score, kern, cfg.EngineInit(), cfg.EngineConfig(), cfg.Particles, chains)

	start := time.Now()
	results, err := ens.Run(context.Background(), cfg.Iterations)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "target\t%s\n", cfg.Target)
	fmt.Fprintf(w, "chains\t%d × %d steps\n", chains, cfg.Iterations)
	fmt.Fprintf(w, "elapsed\t%s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintln(w, "CHAIN\tSPREAD")
	for i, positions := range results {
		sp := metrics.NewSpread()
		sp.Observe(positions, cfg.Iterations)
		fmt.Fprintf(w, "%d\t%.6f\n", i, sp.Value())
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args[0])
	if err != nil {
		return err
	}
	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	return tui.Run(eng)
}

func sampleField(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args[0])
	if err != nil {
		return err
	}
	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	if eng.Dim() != 2 {
		return fmt.Errorf("field sampling requires a 2d target, got %dd", eng.Dim())
	}

	for s := 0; s < warmSteps; s++ {
		if err := eng.Step(); err != nil {
			return err
		}
	}

	grid := stein.Grid(-gridSpan, gridSpan, -gridSpan, gridSpan, gridSide, gridSide)
	field, err := stein.NewFieldSampler(eng).Field(grid)
	if err != nil {
		return err
	}

	canvas := viz.NewCanvas(64, 20)
	bounds := viz.Bounds{X0: -gridSpan, X1: gridSpan, Y0: -gridSpan, Y1: gridSpan}
	canvas.Quiver(grid, field, bounds)
	canvas.Scatter(eng.Positions(), bounds)
	fmt.Println(canvas.String())

	for i := range grid {
		fmt.Printf("%.4f,%.4f,%.6f,%.6f\n", grid[i][0], grid[i][1], field[i][0], field[i][1])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTARGET\tKERNEL\tPARTICLES\tSTEPS\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Target, r.Kernel, r.Particles, r.Iterations,
			r.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	positions, err := store.LoadPositions(args[0])
	if err != nil {
		return err
	}

	canvas := viz.NewCanvas(64, 20)
	bounds := viz.FitBounds(positions, 0.1)
	canvas.Scatter(positions, bounds)
	fmt.Println(canvas.String())

	if hist := viz.Histogram(positions, histAxis, 40, 8); hist != "" {
		fmt.Println(hist)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	positions, err := store.LoadPositions(args[0])
	if err != nil {
		return err
	}

	canvas := viz.NewCanvas(80, 25)
	canvas.Scatter(positions, viz.FitBounds(positions, 0.1))

	path := args[0] + ".svg"
	if err := os.WriteFile(path, []byte(viz.CanvasToSVG(canvas, 4)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(args[0])
	if err != nil {
		return err
	}

	grid := sweep.NewGrid(
		[]string{"lengthscale", "step_size"},
		[][]float64{
			{0.1, 0.25, 0.5, 1.0, 2.0},
			{0.01, 0.05, 0.1, 0.25},
		},
	)

	best, val, err := grid.Search(context.Background(), func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := *base
		cfg.Lengthscale = params["lengthscale"]
		cfg.StepSize = params["step_size"]
		return buildExperiment(&cfg)
	}, sweepMetric)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("sweep produced no successful runs")
	}

	fmt.Printf("best %s = %.6f at lengthscale %.3f, step size %.3f\n",
		sweepMetric, val, best["lengthscale"], best["step_size"])
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tSTEPS/S")
	for _, n := range []int{50, 100, 200, 400} {
		benchCfg := *cfg
		benchCfg.Particles = n
		eng, err := buildEngine(&benchCfg)
		if err != nil {
			return err
		}

		const benchSteps = 50
		start := time.Now()
		for s := 0; s < benchSteps; s++ {
			if err := eng.Step(); err != nil {
				return err
			}
		}
		rate := benchSteps / time.Since(start).Seconds()
		fmt.Fprintf(w, "%d\t%.1f\n", n, rate)
	}
	return w.Flush()
}
