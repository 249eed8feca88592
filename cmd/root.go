package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/o2c-sim/o2c-sim/sim"
	"github.com/o2c-sim/o2c-sim/sim/experiment"
	"github.com/o2c-sim/o2c-sim/sim/results"
	"github.com/o2c-sim/o2c-sim/sim/trace"
)

var (
	// CLI flags for the simulation configuration
	horizon          float64 // Simulated-time cutoff per episode
	seed             int64   // Master seed for all derived RNG streams
	episodes         int     // Episodes averaged per architecture
	meanInterArrival float64 // Mean gap between order arrivals
	logLevel         string  // Log verbosity level

	monolithicCapacity int     // Workers in the serialized pipeline pool
	stageCapacity      int     // Per-stage capacity for RPA and MAS
	riskThreshold      float64 // RPA rejection rule / bad-order definition
	masOptimism        float64 // MAS admission mapping optimism
	masSharpness       float64 // MAS admission mapping sharpness

	valueMin         float64 // Order value distribution lower bound
	valueMax         float64 // Order value distribution upper bound
	profitMargin     float64 // Realized margin on completed orders
	manualFixCost    float64 // Penalty per downstream fulfillment error
	rejectionPenalty float64 // Penalty per gate/threshold rejection

	scenarioPath string // Optional YAML scenario overriding the flags
	outputPath   string // Comparison CSV destination
	resultsDB    string // Optional SQLite episode store
	showTrace    bool   // Print gate-decision trace summaries
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "o2c-sim",
	Short: "Discrete-event comparison of Order-to-Cash control architectures",
}

// buildConfig assembles the simulation configuration from flags and the
// optional scenario file, then validates it. Any problem is fatal before a
// single event is dispatched.
func buildConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Horizon = horizon
	cfg.Seed = seed
	cfg.Episodes = episodes
	cfg.MeanInterArrival = meanInterArrival
	cfg.MonolithicCapacity = monolithicCapacity
	cfg.StageCapacity = stageCapacity
	cfg.RiskThreshold = riskThreshold
	cfg.MASOptimism = masOptimism
	cfg.MASSharpness = masSharpness
	cfg.ValueMin = valueMin
	cfg.ValueMax = valueMax
	cfg.ProfitMargin = profitMargin
	cfg.ManualFixCost = manualFixCost
	cfg.RejectionPenalty = rejectionPenalty

	if scenarioPath != "" {
		sc, err := sim.LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("unable to load scenario: %v", err)
		}
		sc.Apply(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	return cfg
}

// setupLogging applies the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// compareCmd runs the full three-architecture comparison.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run the three-architecture O2C comparison",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := buildConfig()

		driver, err := experiment.NewDriver(cfg)
		if err != nil {
			logrus.Fatalf("invalid configuration: %v", err)
		}
		driver.Tracing = showTrace

		rows := driver.Run()
		printComparison(rows)
		printImprovements(rows)

		if err := results.WriteComparison(outputPath, rows); err != nil {
			logrus.Fatalf("unable to write results: %v", err)
		}
		fmt.Printf("\nResults saved to %q\n", outputPath)

		if resultsDB != "" {
			saveEpisodes(driver)
		}
		if showTrace {
			printTraces(driver)
		}
	},
}

// saveEpisodes persists per-episode rows into the optional SQLite store.
func saveEpisodes(driver *experiment.Driver) {
	store, err := results.Open(resultsDB)
	if err != nil {
		logrus.Fatalf("unable to open results db: %v", err)
	}
	defer store.Close()
	if err := store.SaveEpisodes(driver.RunID, driver.Episodes); err != nil {
		logrus.Fatalf("unable to save episodes: %v", err)
	}
	fmt.Printf("Episode rows saved to %q (run %s)\n", resultsDB, driver.RunID)
}

// printComparison renders the comparison table.
func printComparison(rows []experiment.Row) {
	fmt.Println("=== O2C Architecture Comparison ===")
	fmt.Printf("%-12s %12s %16s %14s %20s\n",
		"System", "Throughput", "Avg Cycle Time", "Error Rate %", "Net Economic Value")
	for _, r := range rows {
		cells := results.FormatRow(r)
		fmt.Printf("%-12s %12s %16s %14s %20s\n", cells[0], cells[1], cells[2], cells[3], cells[4])
	}
}

// printImprovements renders the relative throughput gains between systems.
func printImprovements(rows []experiment.Row) {
	byName := make(map[string]experiment.Row, len(rows))
	for _, r := range rows {
		byName[r.System] = r
	}
	mono, rpa, mas := byName[sim.ArchMonolithic], byName[sim.ArchRPA], byName[sim.ArchMAS]

	fmt.Println("\n--- Key Improvements ---")
	fmt.Printf("MAS vs Monolithic Throughput: %+.1f%%\n", pctChange(mono.Throughput, mas.Throughput))
	fmt.Printf("RPA vs Monolithic Throughput: %+.1f%%\n", pctChange(mono.Throughput, rpa.Throughput))
	fmt.Printf("MAS vs RPA Throughput: %+.1f%%\n", pctChange(rpa.Throughput, mas.Throughput))
}

// pctChange returns the relative change from base to v in percent.
// Zero base yields zero rather than a division blowup.
func pctChange(base, v float64) float64 {
	if base == 0 {
		return 0
	}
	return (v - base) / base * 100
}

// printTraces renders per-architecture gate-decision summaries.
func printTraces(driver *experiment.Driver) {
	fmt.Println("\n=== Gate Decision Traces ===")
	for _, arch := range sim.Architectures() {
		s := trace.Summarize(driver.Traces[arch])
		if s.TotalDecisions == 0 {
			continue
		}
		fmt.Printf("%-12s decisions=%d admitted=%d rejected=%d mean_risk=%.3f mean_risk_admitted=%.3f max_queue=%d\n",
			arch, s.TotalDecisions, s.AdmittedCount, s.RejectedCount,
			s.MeanRisk, s.MeanRiskAdmitted, s.MaxQueueDepth)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addConfigFlags registers the shared simulation flags on a command.
func addConfigFlags(cmd *cobra.Command) {
	defaults := sim.DefaultConfig()

	cmd.Flags().Float64Var(&horizon, "horizon", defaults.Horizon, "Simulated-time horizon per episode")
	cmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Master seed for deterministic replay")
	cmd.Flags().IntVar(&episodes, "episodes", defaults.Episodes, "Episodes averaged per architecture")
	cmd.Flags().Float64Var(&meanInterArrival, "mean-inter-arrival", defaults.MeanInterArrival, "Mean gap between order arrivals")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	cmd.Flags().IntVar(&monolithicCapacity, "monolithic-capacity", defaults.MonolithicCapacity, "Workers in the serialized monolithic pipeline")
	cmd.Flags().IntVar(&stageCapacity, "stage-capacity", defaults.StageCapacity, "Per-stage capacity for RPA and MAS")
	cmd.Flags().Float64Var(&riskThreshold, "risk-threshold", defaults.RiskThreshold, "Risk score above which RPA rejects and MAS flags")
	cmd.Flags().Float64Var(&masOptimism, "mas-optimism", defaults.MASOptimism, "MAS admission mapping optimism in [0,1]")
	cmd.Flags().Float64Var(&masSharpness, "mas-sharpness", defaults.MASSharpness, "MAS admission mapping sharpness (>0)")

	cmd.Flags().Float64Var(&valueMin, "value-min", defaults.ValueMin, "Order value distribution lower bound")
	cmd.Flags().Float64Var(&valueMax, "value-max", defaults.ValueMax, "Order value distribution upper bound")
	cmd.Flags().Float64Var(&profitMargin, "profit-margin", defaults.ProfitMargin, "Realized margin on completed orders")
	cmd.Flags().Float64Var(&manualFixCost, "manual-fix-cost", defaults.ManualFixCost, "Penalty per downstream fulfillment error")
	cmd.Flags().Float64Var(&rejectionPenalty, "rejection-penalty", defaults.RejectionPenalty, "Penalty per gate/threshold rejection")

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file overriding flag values")
}

// init sets up CLI flags and subcommands
func init() {
	addConfigFlags(compareCmd)
	compareCmd.Flags().StringVar(&outputPath, "output", "output/simulation_results.csv", "Comparison CSV destination")
	compareCmd.Flags().StringVar(&resultsDB, "results-db", "", "Optional SQLite file for per-episode results")
	compareCmd.Flags().BoolVar(&showTrace, "trace", false, "Print gate-decision trace summaries")

	rootCmd.AddCommand(compareCmd)
}
