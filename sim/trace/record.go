package trace

// GateDecision records one risk-gate evaluation: the RPA threshold rule or
// a MAS agent's probabilistic admission draw.
type GateDecision struct {
	Clock            float64
	Architecture     string
	OrderID          string
	RiskScore        float64
	AdmitProbability float64 // 1 or 0 for the deterministic RPA rule
	Admitted         bool
	QueueDepth       int // waiters observed at the downstream stage when deciding
	Reason           string
}
