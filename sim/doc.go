// Package sim provides the core discrete-event simulation engine for the
// Order-to-Cash architecture comparison.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - order.go: Order lifecycle (arrived → stages → completed/failed)
//   - event.go: Event types that drive the simulation (Arrival, StageComplete, Grant)
//   - engine.go: The event loop, clock, and scheduling invariants
//
// # Architecture
//
// Three control architectures route orders through the same stage graph
// (credit check → inventory allocation → fulfillment) but differ in how
// contention and risk are handled:
//   - MonolithicPolicy: one pipeline-wide pool held as a single critical section
//   - RPAPolicy: per-stage pools plus a deterministic risk-threshold gate
//   - MASPolicy: per-stage priority pools plus probabilistic per-order admission
//
// Sub-packages:
//   - sim/workload: seeded order stream generation (arrivals, risk, value)
//   - sim/trace: gate-decision trace recording
//   - sim/experiment: episode loop, identical-stream replay, aggregation
//   - sim/results: CSV output and the optional SQLite episode store
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - Policy: start an order and react to stage completions
//   - workload.ArrivalSampler / ValueSampler / RiskSampler: stream distributions
package sim
