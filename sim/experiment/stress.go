package experiment

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/o2c-sim/o2c-sim/sim"
)

// StressRow is one (load level, architecture) aggregated result.
type StressRow struct {
	Load string // load-intensity label, e.g. "mean_iat=5"
	Row
}

// RunStress sweeps mean inter-arrival times, running the full
// three-architecture comparison at each load level. Shorter mean gaps mean
// heavier load. Every level reuses the same seed, so levels differ only in
// the arrival process parameter.
func RunStress(cfg sim.Config, meanIATs []float64) ([]StressRow, error) {
	if len(meanIATs) == 0 {
		return nil, fmt.Errorf("stress sweep needs at least one mean inter-arrival time")
	}
	var out []StressRow
	for _, iat := range meanIATs {
		c := cfg
		c.MeanInterArrival = iat
		d, err := NewDriver(c)
		if err != nil {
			return nil, err
		}
		logrus.Infof("stress level mean_iat=%g", iat)
		for _, row := range d.Run() {
			out = append(out, StressRow{Load: fmt.Sprintf("mean_iat=%g", iat), Row: row})
		}
	}
	return out, nil
}
