// Package trace records the gate decisions an architecture makes during a
// run, for post-hoc inspection of admission behavior.
package trace

// SimulationTrace accumulates gate decisions for one architecture across a
// run's episodes.
type SimulationTrace struct {
	RunID        string
	Architecture string
	Decisions    []GateDecision
}

// New creates an empty trace for one architecture of a run.
func New(runID, architecture string) *SimulationTrace {
	return &SimulationTrace{RunID: runID, Architecture: architecture}
}

// Append adds one gate decision. Safe on a nil trace (no-op), so call sites
// do not need to guard for disabled tracing themselves.
func (t *SimulationTrace) Append(d GateDecision) {
	if t == nil {
		return
	}
	t.Decisions = append(t.Decisions, d)
}
