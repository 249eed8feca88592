package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/o2c-sim/o2c-sim/sim/experiment"
	"github.com/o2c-sim/o2c-sim/sim/results"
)

var (
	stressIATs   []float64 // Mean inter-arrival times to sweep
	stressOutput string    // Stress CSV destination
)

// stressCmd sweeps arrival-rate levels and writes the scalability table.
var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Sweep arrival load levels across all three architectures",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := buildConfig()

		rows, err := experiment.RunStress(cfg, stressIATs)
		if err != nil {
			logrus.Fatalf("stress sweep failed: %v", err)
		}

		fmt.Println("=== Scalability Stress Test ===")
		fmt.Printf("%-14s %-12s %12s %16s %14s %20s\n",
			"Load", "System", "Throughput", "Avg Cycle Time", "Error Rate %", "Net Economic Value")
		for _, r := range rows {
			cells := results.FormatRow(r.Row)
			fmt.Printf("%-14s %-12s %12s %16s %14s %20s\n",
				r.Load, cells[0], cells[1], cells[2], cells[3], cells[4])
		}

		if err := results.WriteStress(stressOutput, rows); err != nil {
			logrus.Fatalf("unable to write stress results: %v", err)
		}
		fmt.Printf("\nStress test results saved to %q\n", stressOutput)
	},
}

func init() {
	addConfigFlags(stressCmd)
	stressCmd.Flags().Float64SliceVar(&stressIATs, "mean-inter-arrivals", []float64{5, 8}, "Comma-separated mean inter-arrival times to sweep")
	stressCmd.Flags().StringVar(&stressOutput, "output", "output/stress_test_results.csv", "Stress CSV destination")

	rootCmd.AddCommand(stressCmd)
}
