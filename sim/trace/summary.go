package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions   int
	AdmittedCount    int
	RejectedCount    int
	MeanRisk         float64
	MeanRiskAdmitted float64
	MaxQueueDepth    int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if t == nil || len(t.Decisions) == 0 {
		return summary
	}

	summary.TotalDecisions = len(t.Decisions)
	riskSum := 0.0
	admittedRiskSum := 0.0
	for _, d := range t.Decisions {
		riskSum += d.RiskScore
		if d.Admitted {
			summary.AdmittedCount++
			admittedRiskSum += d.RiskScore
		} else {
			summary.RejectedCount++
		}
		if d.QueueDepth > summary.MaxQueueDepth {
			summary.MaxQueueDepth = d.QueueDepth
		}
	}
	summary.MeanRisk = riskSum / float64(summary.TotalDecisions)
	if summary.AdmittedCount > 0 {
		summary.MeanRiskAdmitted = admittedRiskSum / float64(summary.AdmittedCount)
	}
	return summary
}
