package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yevsky/NiDUC/sim"
	"github.com/yevsky/NiDUC/sim/export"
	"github.com/yevsky/NiDUC/sim/sla"
	"github.com/yevsky/NiDUC/sim/trace"
)

var (
	// CLI flags shared by run and compare
	duration      float64 // Length of one trial (in hours)
	trials        int     // Number of independent trials
	seed          int64   // Master seed for trial random streams
	workers       int     // Parallel trial workers (0 or 1 = sequential)
	logLevel      string  // Log verbosity level
	outputPath    string  // JSON results file
	metricsOut    string  // Prometheus textfile
	histogramBins int     // Availability histogram bins (0 = no histogram)
	traceLevel    string  // Trace level for the first trial

	// CLI flags for run only
	configPath string // System file (YAML or JSON)
	presetName string // Built-in system name
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "niduc",
	Short: "Monte Carlo availability simulator for redundant server systems",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// mergeRunConfig applies the simulation section of a system file under the
// CLI flags: a file value wins only when its flag was not set explicitly.
func mergeRunConfig(spec SimulationSpec, flags sim.RunConfig, changed func(string) bool) sim.RunConfig {
	cfg := flags
	if spec.Duration != 0 && !changed("duration") {
		cfg.Duration = spec.Duration
	}
	if spec.Trials != 0 && !changed("trials") {
		cfg.Trials = spec.Trials
	}
	if spec.Seed != nil && !changed("seed") {
		cfg.Seed = *spec.Seed
	}
	return cfg
}

func flagRunConfig() sim.RunConfig {
	return sim.RunConfig{
		Duration:   duration,
		Trials:     trials,
		Seed:       seed,
		Workers:    workers,
		TraceLevel: trace.TraceLevel(traceLevel),
	}
}

// simulate builds and runs one configured system, checking its SLA if it has one.
func simulate(ctx context.Context, sc *SystemConfig, cfg sim.RunConfig) (SystemRun, error) {
	system, err := sc.Build()
	if err != nil {
		return SystemRun{}, fmt.Errorf("system %q: %w", sc.Name, err)
	}
	out, err := sim.RunSimulation(ctx, system, cfg)
	if err != nil {
		return SystemRun{}, fmt.Errorf("system %q: %w", sc.Name, err)
	}
	run := SystemRun{Name: sc.Name, Config: cfg, Output: out, Average: out.Results.Averages()}
	if sc.SLA != nil {
		report := sc.SLA.Check(run.Average)
		run.Report = &report
	}
	return run, nil
}

// writeOutputs saves the optional JSON results and Prometheus textfile.
func writeOutputs(runs []SystemRun) {
	if outputPath != "" {
		if err := SaveResults(outputPath, runs); err != nil {
			logrus.Fatalf("unable to save results; %v", err)
		}
	}
	if metricsOut != "" {
		collector := export.NewCollector()
		for _, r := range runs {
			collector.Observe(r.Name, r.Output.Results, r.Report)
		}
		if err := collector.WriteTextfile(metricsOut); err != nil {
			logrus.Fatalf("unable to write metrics textfile; %v", err)
		}
		logrus.Infof("Metrics written to %s", metricsOut)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runCmd simulates a single system from a file or a preset
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Estimate availability of one system",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			sc  *SystemConfig
			err error
		)
		switch {
		case configPath != "" && presetName != "":
			logrus.Fatalf("--config and --preset are mutually exclusive")
		case configPath != "":
			sc, err = LoadSystemConfig(configPath)
		case presetName != "":
			sc, err = GetPreset(presetName)
		default:
			logrus.Fatalf("No system provided. Use --config <file> or --preset <%v>.", PresetNames())
		}
		if err != nil {
			logrus.Fatalf("unable to load system; %v", err)
		}

		cfg := mergeRunConfig(sc.Simulation, flagRunConfig(), cmd.Flags().Changed)
		ctx, stop := signalContext()
		defer stop()

		run, err := simulate(ctx, sc, cfg)
		if err != nil {
			logrus.Fatalf("simulation failed; %v", err)
		}
		PrintReport(os.Stdout, run, histogramBins)
		writeOutputs([]SystemRun{run})
		logrus.Info("Simulation complete.")
	},
}

// compareCmd simulates several systems with the same run parameters
var compareCmd = &cobra.Command{
	Use:   "compare [system-file...]",
	Short: "Compare systems side by side (all presets when no files are given)",
	Run: func(cmd *cobra.Command, args []string) {
		var configs []*SystemConfig
		if len(args) == 0 {
			for _, name := range PresetNames() {
				sc, err := GetPreset(name)
				if err != nil {
					logrus.Fatalf("unable to load preset; %v", err)
				}
				configs = append(configs, sc)
			}
		}
		for _, path := range args {
			sc, err := LoadSystemConfig(path)
			if err != nil {
				logrus.Fatalf("unable to load system; %v", err)
			}
			configs = append(configs, sc)
		}

		ctx, stop := signalContext()
		defer stop()

		runs := make([]SystemRun, 0, len(configs))
		for _, sc := range configs {
			cfg := mergeRunConfig(sc.Simulation, flagRunConfig(), cmd.Flags().Changed)
			run, err := simulate(ctx, sc, cfg)
			if err != nil {
				logrus.Fatalf("simulation failed; %v", err)
			}
			runs = append(runs, run)
		}
		PrintComparison(os.Stdout, runs)
		writeOutputs(runs)
		logrus.Info("Comparison complete.")
	},
}

// presetsCmd lists the built-in systems
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in systems and their SLA tiers",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range PresetNames() {
			sc, _ := GetPreset(name)
			fmt.Fprintf(os.Stdout, "%-10s %s (SLA %s)\n", name, sc.Description, slaName(sc.SLA))
		}
	},
}

func slaName(t *sla.Thresholds) string {
	if t == nil || t.Name == "" {
		return "none"
	}
	return t.Name
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	for _, c := range []*cobra.Command{runCmd, compareCmd} {
		c.Flags().Float64Var(&duration, "duration", 2000, "Length of one trial (in hours)")
		c.Flags().IntVar(&trials, "trials", 1000, "Number of independent trials")
		c.Flags().Int64Var(&seed, "seed", 42, "Master seed for trial random streams")
		c.Flags().IntVar(&workers, "workers", 1, "Number of parallel trial workers")
		c.Flags().StringVar(&outputPath, "output", "", "Write JSON results to this file")
		c.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus textfile metrics to this file")
		c.Flags().StringVar(&traceLevel, "trace-level", "none", "Trace the first trial (none, intervals, events)")
	}
	runCmd.Flags().StringVar(&configPath, "config", "", "System file (YAML or JSON)")
	runCmd.Flags().StringVar(&presetName, "preset", "", "Built-in system (budget, standard, premium)")
	runCmd.Flags().IntVar(&histogramBins, "histogram-bins", 10, "Availability histogram bins (0 disables)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(presetsCmd)
}
