package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gazesim/internal/automation"
	"github.com/san-kum/gazesim/internal/config"
	"github.com/san-kum/gazesim/internal/heatmap"
	"github.com/san-kum/gazesim/internal/logging"
	"github.com/san-kum/gazesim/internal/metrics"
	"github.com/san-kum/gazesim/internal/saccade"
	"github.com/san-kum/gazesim/internal/sim"
	"github.com/san-kum/gazesim/internal/storage"
	"github.com/san-kum/gazesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	logLevel  string
	logFormat string
	// Engine
	points        int
	policy        string
	seed          int64
	ticks         int
	fps           int
	intervalMs    int
	searchSamples int
	searchRadius  int
	// Field
	fieldKind string
	rows      int
	cols      int
	blobs     int
	drift     float64
	fieldPath string
	// Config file
	configFile string
	// Preset name
	preset string
	// Plot / export
	maxPlots int
	svgScale float64
	theme    string
	save     bool
	// Sweep
	sweepParam  string
	sweepValues []int
	// Ensemble
	numRuns int
)

// main registers the gazesim commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "gazesim",
		Short:         "simulated saccades over saliency fields",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gazesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addEngineFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", true, "save the run to the data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addEngineFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot tracked points over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&maxPlots, "max", 4, "maximum number of points to plot")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export point tracks as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 8, "pixels per field cell")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPOLICY\tPOINTS\tTICKS\tFIELD")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s %dx%d\n", name, p.Policy, p.Points, p.Ticks, p.Field.Kind, p.Field.Rows, p.Field.Cols)
			}
			return w.Flush()
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&save, "save", true, "save each step to the data directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one simulation per parameter value and compare metrics",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addEngineFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "search_radius", "parameter to sweep (points, search_samples, search_radius, random_interval_ms)")
	sweepCmd.Flags().IntSliceVar(&sweepValues, "values", []int{5, 10, 20, 30, 40}, "parameter values")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run the same configuration under consecutive seeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addEngineFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of runs")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark engine updates per policy",
		Args:  cobra.NoArgs,
		RunE:  benchEngine,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, presetsCmd, scenarioCmd, sweepCmd, ensembleCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addEngineFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	cmd.Flags().IntVar(&points, "points", d.Points, "number of tracked points")
	cmd.Flags().StringVar(&policy, "policy", d.Policy, "goal policy ("+strings.Join(saccade.PolicyNames(), ", ")+")")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&ticks, "ticks", d.Ticks, "number of frames")
	cmd.Flags().IntVar(&fps, "fps", d.FPS, "frame rate")
	cmd.Flags().IntVar(&intervalMs, "interval", d.RandomIntervalMs, "random policy refresh interval (ms)")
	cmd.Flags().IntVar(&searchSamples, "samples", d.SearchSamples, "local search samples per tick")
	cmd.Flags().IntVar(&searchRadius, "radius", d.SearchRadius, "local search radius per axis")
	cmd.Flags().StringVar(&fieldKind, "field", d.Field.Kind, "field source (blobs, uniform, csv)")
	cmd.Flags().IntVar(&rows, "rows", d.Field.Rows, "field rows")
	cmd.Flags().IntVar(&cols, "cols", d.Field.Cols, "field columns")
	cmd.Flags().IntVar(&blobs, "blobs", d.Field.Blobs, "number of salient blobs")
	cmd.Flags().Float64Var(&drift, "drift", d.Field.Drift, "blob drift per frame (cells)")
	cmd.Flags().StringVar(&fieldPath, "field-path", "", "csv heatmap file (with --field csv)")
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("points") {
		cfg.Points = points
	}
	if flags.Changed("policy") {
		cfg.Policy = policy
	}
	if flags.Changed("seed") || (cfg.Seed == 0 && flags.Lookup("seed") != nil) {
		cfg.Seed = seed
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("interval") {
		cfg.RandomIntervalMs = intervalMs
	}
	if flags.Changed("samples") {
		cfg.SearchSamples = searchSamples
	}
	if flags.Changed("radius") {
		cfg.SearchRadius = searchRadius
	}
	if flags.Changed("field") {
		cfg.Field.Kind = fieldKind
	}
	if flags.Changed("rows") {
		cfg.Field.Rows = rows
	}
	if flags.Changed("cols") {
		cfg.Field.Cols = cols
	}
	if flags.Changed("blobs") {
		cfg.Field.Blobs = blobs
	}
	if flags.Changed("drift") {
		cfg.Field.Drift = drift
	}
	if flags.Changed("field-path") {
		cfg.Field.Path = fieldPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, format := logLevel, logFormat
	if cfg != nil {
		level, format = cfg.Log.Level, cfg.Log.Format
	}
	return logging.New(logging.Options{Level: level, Format: format})
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	result, err := simulate(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("policy: %s  points: %d  field: %dx%d\n", cfg.Policy, cfg.Points, result.Rows, result.Cols)
	fmt.Printf("ticks: %d (%.2fs at %d fps)\n", result.TicksTaken, float64(result.TicksTaken)/float64(cfg.FPS), cfg.FPS)

	if save {
		runID, err := saveRun(cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	printMetrics(result.Metrics)
	return nil
}

func simulate(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sim.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	runCfg, err := cfg.RunConfig()
	if err != nil {
		return nil, err
	}
	provider, err := cfg.NewProvider(cfg.Seed)
	if err != nil {
		return nil, err
	}

	r := sim.New(provider, logger)
	for _, m := range metrics.Defaults() {
		r.AddMetric(m)
	}

	start := time.Now()
	result, err := r.Run(ctx, runCfg)
	if err != nil {
		return nil, err
	}
	logger.Info("simulation complete", "ticks", result.TicksTaken, "elapsed", time.Since(start))
	return result, nil
}

func saveRun(cfg *config.Config, result *sim.Result) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(storage.RunMetadata{
		Policy: cfg.Policy,
		Points: cfg.Points,
		Seed:   cfg.Seed,
		Ticks:  cfg.Ticks,
		FPS:    cfg.FPS,
		Field:  cfg.Field.Kind,
	}, result)
}

func printMetrics(m map[string]float64) {
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range []string{"goal_distance", "travel", "salience", "settled"} {
		if v, ok := m[name]; ok {
			fmt.Fprintf(w, "  %s\t%.4f\n", name, v)
		}
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		return err
	}
	provider, err := cfg.NewProvider(cfg.Seed)
	if err != nil {
		return err
	}

	clock := &saccade.ManualClock{}
	engine, err := saccade.New(engineCfg,
		saccade.WithRand(rand.New(rand.NewSource(cfg.Seed))),
		saccade.WithClock(clock),
	)
	if err != nil {
		return err
	}

	viz.SetTheme(theme)
	m := viz.NewModel(engine, provider, clock, cfg.FPS, fmt.Sprintf("%s x%d", cfg.Policy, cfg.Points))

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPOLICY\tTIME\tPOINTS\tTICKS\tFIELD\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s %dx%d\t%d\n",
			run.ID,
			run.Policy,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			run.Ticks,
			run.Field,
			run.Rows,
			run.Cols,
			run.Seed,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, [][]saccade.Point, []float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: %s", storage.ErrNoFrames, runID)
	}
	return meta, frames, times, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("policy: %s\n", meta.Policy)
	fmt.Printf("samples: %d\n\n", len(frames))

	for _, graph := range viz.PlotTracks(frames, maxPlots, 80, 10) {
		fmt.Println(graph)
		fmt.Println()
	}

	last := viz.Frame{Points: frames[len(frames)-1], Width: 64, Height: 20}
	if meta.Rows > 0 && meta.Cols > 0 {
		last.Field = heatmap.New(meta.Rows, meta.Cols)
		fmt.Println("final positions:")
		fmt.Print(last.Plain())
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, times, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, frames, times)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, frames, times, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, frames, times)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, frames, _, err := loadRun(args[0])
	if err != nil {
		return err
	}
	svg := viz.TracksToSVG(frames, meta.Rows, meta.Cols, svgScale)
	if svg == "" {
		return fmt.Errorf("not enough frames to draw: %s", meta.ID)
	}
	fmt.Println(svg)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(nil)
	if err != nil {
		return err
	}

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	results, err := automation.RunScenario(cmd.Context(), sc, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tLABEL\tPOLICY\tPOINTS\tSALIENCE\tSETTLED\tRUN")
	for i, r := range results {
		runID := "-"
		if save {
			if runID, err = saveRun(r.Config, r.Result); err != nil {
				return err
			}
		}
		label := r.Step.SaveAs
		if label == "" {
			label = fmt.Sprintf("%s-%d", sc.Name, i+1)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.4f\t%.4f\t%s\n",
			i+1, label, r.Config.Policy, r.Config.Points, r.Result.Metrics["salience"], r.Result.Metrics["settled"], runID)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		Values:    sweepValues,
	}, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tGOAL_DIST\tTRAVEL\tSALIENCE\tSETTLED\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.4f\t%.4f\n", r.ParamValue,
			r.Metrics["goal_distance"], r.Metrics["travel"], r.Metrics["salience"], r.Metrics["settled"])
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", numRuns)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	runCfg, err := cfg.RunConfig()
	if err != nil {
		return err
	}
	e := sim.NewEnsemble(cfg.NewProvider, metrics.Defaults, numRuns, cfg.Seed, logger)

	start := time.Now()
	results, err := e.Run(cmd.Context(), runCfg)
	if err != nil {
		return err
	}
	logger.Info("ensemble complete", "runs", len(results), "elapsed", time.Since(start))

	names := []string{"goal_distance", "travel", "salience", "settled"}
	mean := make(map[string]float64, len(names))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tGOAL_DIST\tTRAVEL\tSALIENCE\tSETTLED")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.4f\t%.4f\n", cfg.Seed+int64(i),
			r.Metrics["goal_distance"], r.Metrics["travel"], r.Metrics["salience"], r.Metrics["settled"])
		for _, name := range names {
			mean[name] += r.Metrics[name] / float64(len(results))
		}
	}
	fmt.Fprintf(w, "mean\t%.3f\t%.3f\t%.4f\t%.4f\n",
		mean["goal_distance"], mean["travel"], mean["salience"], mean["settled"])
	return w.Flush()
}

func benchEngine(cmd *cobra.Command, args []string) error {
	sizes := []struct{ rows, cols int }{{48, 64}, {240, 320}, {480, 640}}
	pointCounts := []int{1, 8, 32}
	const frames = 500

	fmt.Printf("benchmarking engine updates (%d frames each)\n\n", frames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POLICY\tFIELD\tPOINTS\tTIME\tUPDATES/SEC")

	for _, name := range saccade.PolicyNames() {
		kind, _ := saccade.ParsePolicyKind(name)
		for _, size := range sizes {
			field := heatmap.NewBlobs(size.rows, size.cols, 3, 0, 1).Next(0)
			for _, n := range pointCounts {
				clock := &saccade.ManualClock{}
				engine, err := saccade.New(saccade.Config{PointCount: n, Policy: kind},
					saccade.WithRand(rand.New(rand.NewSource(42))),
					saccade.WithClock(clock),
				)
				if err != nil {
					return err
				}

				start := time.Now()
				for i := 0; i < frames; i++ {
					if _, err := engine.Update(field); err != nil {
						return err
					}
					clock.Advance(time.Second / 30)
				}
				elapsed := time.Since(start)

				fmt.Fprintf(w, "%s\t%dx%d\t%d\t%v\t%.0f\n",
					name, size.rows, size.cols, n, elapsed, float64(frames)/elapsed.Seconds())
			}
		}
	}

	return w.Flush()
}
