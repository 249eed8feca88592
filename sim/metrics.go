// Accumulates per-order completion records and reduces them into the
// summary statistics the comparison table is built from.

package sim

import (
	"fmt"
	"math"
)

// Outcome is the success/failure flag of a terminal order.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
)

// Record is one terminal order's measurement. Exactly one Record exists per
// order that reaches a terminal stage; orders still in flight at the horizon
// produce none.
type Record struct {
	OrderID        string
	Architecture   string
	ArrivalTime    float64
	CompletionTime float64
	CycleTime      float64
	Outcome        Outcome
	FailReason     FailReason
	Value          float64
	Contribution   float64 // signed economic outcome
}

// Collector accumulates records for a single run. Each run gets its own
// collector; nothing is shared across architectures or episodes.
type Collector struct {
	architecture     string
	margin           float64
	manualFixCost    float64
	rejectionPenalty float64
	records          []Record
}

// NewCollector creates a collector for one architecture's run.
func NewCollector(arch string, cfg Config) *Collector {
	return &Collector{
		architecture:     arch,
		margin:           cfg.ProfitMargin,
		manualFixCost:    cfg.ManualFixCost,
		rejectionPenalty: cfg.RejectionPenalty,
	}
}

// Record appends the terminal record for o. Completed orders realize their
// value at the configured margin; downstream fulfillment errors cost the
// manual-fix penalty; gate and threshold rejections cost the rejection
// penalty. Recording a non-terminal order is a modeling bug and panics.
func (c *Collector) Record(o *Order, now float64) {
	if !o.Terminal() {
		panic(fmt.Sprintf("metrics: record of non-terminal order %s in stage %s", o.ID, o.Stage))
	}
	r := Record{
		OrderID:        o.ID,
		Architecture:   c.architecture,
		ArrivalTime:    o.ArrivalTime,
		CompletionTime: now,
		CycleTime:      now - o.ArrivalTime,
		Value:          o.Value,
	}
	switch {
	case o.Stage == StageCompleted:
		r.Outcome = OutcomeCompleted
		r.Contribution = o.Value * c.margin
	case o.FailReason == FailFulfillmentError:
		r.Outcome = OutcomeFailed
		r.FailReason = o.FailReason
		r.Contribution = -c.manualFixCost
	default:
		r.Outcome = OutcomeFailed
		r.FailReason = o.FailReason
		r.Contribution = -c.rejectionPenalty
	}
	c.records = append(c.records, r)
}

// Records returns the accumulated records.
func (c *Collector) Records() []Record {
	return c.records
}

// Summary holds one run's reduced statistics.
type Summary struct {
	Architecture string
	Completed    int // throughput
	Rejected     int // gate/threshold halts (safe failures)
	Errors       int // erroneous fulfillments (downstream errors)

	// AvgCycleTime is the mean cycle time across all terminal orders.
	AvgCycleTime float64
	// ErrorRate is errors / (errors + completed): the fraction of processed
	// orders that were fulfilled erroneously. Rejected orders never reached
	// fulfillment, so they appear in neither numerator nor denominator.
	// NaN when no order was processed, never a division-by-zero crash.
	ErrorRate float64
	// NetValue is the sum of signed economic contributions.
	NetValue float64
}

// Failed returns the total failed count (rejections plus errors).
func (s Summary) Failed() int {
	return s.Rejected + s.Errors
}

// Summarize reduces the accumulated records. Pure counting and summation:
// the result is independent of the order records were appended in.
func (c *Collector) Summarize() Summary {
	s := Summary{Architecture: c.architecture}
	var cycleSum float64
	for _, r := range c.records {
		cycleSum += r.CycleTime
		s.NetValue += r.Contribution
		switch {
		case r.Outcome == OutcomeCompleted:
			s.Completed++
		case r.FailReason == FailFulfillmentError:
			s.Errors++
		default:
			s.Rejected++
		}
	}
	terminal := len(c.records)
	if terminal > 0 {
		s.AvgCycleTime = cycleSum / float64(terminal)
	}
	if processed := s.Completed + s.Errors; processed > 0 {
		s.ErrorRate = float64(s.Errors) / float64(processed)
	} else {
		s.ErrorRate = math.NaN()
	}
	return s
}
