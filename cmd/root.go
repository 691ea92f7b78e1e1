package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inventory-sim/inventory-sim/sim/network"
	"github.com/inventory-sim/inventory-sim/sim/sweep"
	"github.com/inventory-sim/inventory-sim/sim/trace"
)

var (
	// CLI flags shared by run and count
	inputPath string // Network input YAML
	logLevel  string // Log verbosity level

	// CLI flags for run
	configPath   string // Optional run config YAML
	replications int    // Replications per scenario
	horizonDays  int    // Simulated days per replication
	seed         int64  // Master seed; unset means time-derived
	workers      int    // Parallel replications
	withLogs     bool   // Keep order/snapshot/production logs
	outputPath   string // JSON report destination
	topN         int    // Ranking rows printed to stdout
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "inventory-sim",
	Short: "Stochastic simulator for multi-echelon inventory networks",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// countCmd prints the number of scenarios without simulating
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of scenarios the input factors expand to",
	Run: func(cmd *cobra.Command, args []string) {
		in, err := network.LoadInput(inputPath)
		if err != nil {
			logrus.Fatalf("Failed to load input: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), sweep.Count(in))
	},
}

// runCmd executes the sweep using parameters from the run config and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every scenario and rank them by mean cost",
	Run: func(cmd *cobra.Command, args []string) {
		in, err := network.LoadInput(inputPath)
		if err != nil {
			logrus.Fatalf("Failed to load input: %v", err)
		}

		opts := sweep.Options{}
		if configPath != "" {
			opts, err = LoadRunConfig(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load run config: %v", err)
			}
		}
		applyRunFlags(cmd, &opts)
		if !trace.IsValidLogLevel(string(opts.Logging)) {
			logrus.Fatalf("Invalid logging mode %q (want none or full)", opts.Logging)
		}
		if err := validateOptions(newValidator(), opts); err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting sweep over %d scenarios", sweep.Count(in))
		var report *sweep.Report
		if opts.Logging == trace.LogLevelFull {
			report, err = sweep.RunWithLogs(context.Background(), in, opts, logProgress)
		} else {
			report, err = sweep.Run(context.Background(), in, opts)
		}
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}

		printRanking(cmd.OutOrStdout(), report, topN)
		if outputPath != "" {
			if err := writeReport(outputPath, report); err != nil {
				logrus.Fatalf("Failed to write report: %v", err)
			}
			logrus.Infof("Report written to %s", outputPath)
		}
		logrus.Info("Sweep complete.")
	},
}

// applyRunFlags overrides config values with flags the user actually set.
func applyRunFlags(cmd *cobra.Command, opts *sweep.Options) {
	flags := cmd.Flags()
	if flags.Changed("replications") {
		opts.Replications = replications
	}
	if flags.Changed("horizon") {
		opts.HorizonDays = horizonDays
	}
	if flags.Changed("seed") {
		s := seed
		opts.Seed = &s
	}
	if flags.Changed("workers") {
		opts.Workers = workers
	}
	if flags.Changed("logs") {
		opts.Logging = trace.LogLevelNone
		if withLogs {
			opts.Logging = trace.LogLevelFull
		}
	}
}

func logProgress(p sweep.Progress) {
	logrus.Infof("Scenario %d/%d done: %s (mean cost %.2f)",
		p.Completed, p.Total, p.Scenario.Scenario.Description, p.Scenario.Cost.Mean)
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

	countCmd.Flags().StringVar(&inputPath, "input", "", "Path to the network input YAML")
	_ = countCmd.MarkFlagRequired("input")

	runCmd.Flags().StringVar(&inputPath, "input", "", "Path to the network input YAML")
	_ = runCmd.MarkFlagRequired("input")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a run config YAML (horizon, replications, seed, workers, logging)")
	runCmd.Flags().IntVar(&replications, "replications", network.DefaultReplications, "Replications per scenario")
	runCmd.Flags().IntVar(&horizonDays, "horizon", network.DefaultHorizonDays, "Simulated days per replication")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Master seed for reproducible runs (default: time-derived)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Parallel replications (default: number of CPUs)")
	runCmd.Flags().BoolVar(&withLogs, "logs", false, "Keep order, inventory and production logs in the report")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write the full JSON report to this path")
	runCmd.Flags().IntVar(&topN, "top", 10, "Ranking rows to print (0 prints all)")

	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(runCmd)
}
