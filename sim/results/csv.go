// Package results persists experiment output: the comparison CSV consumed
// by the downstream visualization, and an optional SQLite episode store.
package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/o2c-sim/o2c-sim/sim/experiment"
)

// ComparisonHeader is the stable column schema the downstream chart
// renderer depends on. Do not reorder.
var ComparisonHeader = []string{"System", "Throughput", "Avg Cycle Time", "Error Rate %", "Net Economic Value"}

// StressHeader prepends the load-intensity column to the comparison schema.
var StressHeader = []string{"Load Intensity", "System", "Throughput", "Avg Cycle Time", "Error Rate %", "Net Economic Value"}

// FormatRow renders a comparison row with the result table's rounding:
// integer throughput and economic value, two-decimal cycle time and rate.
func FormatRow(r experiment.Row) []string {
	return []string{
		r.System,
		strconv.Itoa(int(r.Throughput)),
		strconv.FormatFloat(r.AvgCycleTime, 'f', 2, 64),
		strconv.FormatFloat(r.ErrorRatePct, 'f', 2, 64),
		strconv.Itoa(int(r.NetValue)),
	}
}

// WriteComparison writes one row per architecture to path, overwriting any
// prior results. Parent directories are created as needed.
func WriteComparison(path string, rows []experiment.Row) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, ComparisonHeader)
	for _, r := range rows {
		records = append(records, FormatRow(r))
	}
	return writeCSV(path, records)
}

// WriteStress writes the load-sweep table, one row per (load, architecture).
func WriteStress(path string, rows []experiment.StressRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, StressHeader)
	for _, r := range rows {
		records = append(records, append([]string{r.Load}, FormatRow(r.Row)...))
	}
	return writeCSV(path, records)
}

func writeCSV(path string, records [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
