package sim

import (
	"fmt"
	"math/rand"
)

// Policy is one control architecture over the shared stage graph
// (credit check → inventory allocation → fulfillment).
//
// Start begins an order's traversal at its arrival; StageComplete is invoked
// when the order's service time at a stage elapses. A policy must drive
// every order to a terminal stage unless the horizon truncates the run
// first. Policies own their resource pools; pools are never shared across
// runs or architectures.
type Policy interface {
	Name() string
	Start(eng *Engine, o *Order)
	StageComplete(eng *Engine, o *Order, s Stage)
}

// Architecture names, in comparison order.
const (
	ArchMonolithic = "Monolithic"
	ArchRPA        = "RPA"
	ArchMAS        = "MAS"
)

// ValidArchitectures is the set of recognized architecture names.
var ValidArchitectures = map[string]bool{
	ArchMonolithic: true,
	ArchRPA:        true,
	ArchMAS:        true,
}

// Architectures lists the three architectures in the order they appear in
// the comparison table.
func Architectures() []string {
	return []string{ArchMonolithic, ArchRPA, ArchMAS}
}

// NewPolicy creates an architecture policy by name with fresh pools.
// rng is the architecture's private stream (service times, MAS gate draws).
// Panics on unrecognized names; names are validated at the configuration
// boundary.
func NewPolicy(name string, cfg Config, rng *rand.Rand) Policy {
	if !ValidArchitectures[name] {
		panic(fmt.Sprintf("unknown architecture %q", name))
	}
	switch name {
	case ArchMonolithic:
		return NewMonolithicPolicy(cfg, rng)
	case ArchRPA:
		return NewRPAPolicy(cfg, rng)
	case ArchMAS:
		return NewMASPolicy(cfg, rng)
	default:
		panic(fmt.Sprintf("unhandled architecture %q", name))
	}
}

// sampleService draws a service time uniformly from [st.Min, st.Max).
func sampleService(rng *rand.Rand, st StageTime) float64 {
	return st.Min + rng.Float64()*(st.Max-st.Min)
}
