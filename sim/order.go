// Defines the Order entity that traverses the O2C pipeline.
// Tracks arrival time, risk score, monetary value, and the current stage.

package sim

import (
	"fmt"
)

// Stage represents the lifecycle stage of an order.
type Stage string

const (
	StageArrived     Stage = "arrived"
	StageCreditCheck Stage = "credit_check"
	StageInventory   Stage = "inventory_allocation"
	StageFulfillment Stage = "fulfillment"
	StageCompleted   Stage = "completed"
	StageFailed      Stage = "failed"
)

// Terminal reports whether the stage is absorbing.
func (s Stage) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

// FailReason classifies why an order terminated as Failed.
// These are modeled outcomes, not errors in the Go sense.
type FailReason string

const (
	FailNone             FailReason = ""
	FailThresholdReject  FailReason = "threshold_reject"  // RPA rule gate halt
	FailGateReject       FailReason = "gate_reject"       // MAS probabilistic rejection
	FailFulfillmentError FailReason = "fulfillment_error" // MAS downstream error
)

// Order models a single order's traversal through the pipeline.
// An order is created by the workload generator, mutated only by the active
// architecture policy, and becomes inert once it reaches a terminal stage.
type Order struct {
	ID          string
	ArrivalTime float64 // simulated time of arrival
	RiskScore   float64 // in [0,1], drawn at generation time
	Value       float64 // currency amount

	Stage          Stage
	CompletionTime float64 // set once, when the order turns terminal
	FailReason     FailReason

	// Flagged marks a MAS order that was admitted past the gate despite a
	// risk score above the threshold; it will surface as a downstream
	// fulfillment error rather than a rejection.
	Flagged bool
}

// Terminal reports whether the order has reached an absorbing stage.
func (o *Order) Terminal() bool {
	return o.Stage.Terminal()
}

// advance moves the order to the next stage. Terminal stages are absorbing:
// any transition attempt past them is a modeling bug.
func (o *Order) advance(s Stage) {
	if o.Terminal() {
		panic(fmt.Sprintf("order %s: stage transition %s -> %s after terminal", o.ID, o.Stage, s))
	}
	o.Stage = s
}

func (o *Order) String() string {
	return fmt.Sprintf("Order{ID: %s, Arrival: %.2f, Risk: %.3f, Value: %.2f, Stage: %s}",
		o.ID, o.ArrivalTime, o.RiskScore, o.Value, o.Stage)
}
