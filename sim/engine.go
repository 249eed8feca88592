// sim/engine.go
package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/o2c-sim/o2c-sim/sim/trace"
)

// queuedEvent pairs an Event with its scheduling sequence number so that
// events at equal timestamps dispatch in scheduling order.
type queuedEvent struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by timestamp,
// breaking ties by insertion order. Stable tie-breaking is what makes two
// runs with the same seed produce identical traces.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []queuedEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	if eq[i].ev.Timestamp() != eq[j].ev.Timestamp() {
		return eq[i].ev.Timestamp() < eq[j].ev.Timestamp()
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(queuedEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Engine holds simulated time, the event timeline, and the per-run state of
// one architecture's simulation: the active policy, the metrics collector,
// and an optional gate-decision trace. Pools live inside the policy; no two
// runs share an Engine or its pools.
type Engine struct {
	Clock   float64
	Horizon float64
	Policy  Policy
	Metrics *Collector
	Trace   *trace.SimulationTrace // nil unless tracing is enabled

	// Arrivals counts dispatched ArrivalEvents; terminal records can never
	// exceed it.
	Arrivals int

	events  EventQueue
	nextSeq uint64
}

// NewEngine creates an engine for a single run. Configuration is validated
// upstream; the engine itself only enforces scheduling invariants.
func NewEngine(horizon float64, p Policy, m *Collector) *Engine {
	return &Engine{
		Horizon: horizon,
		Policy:  p,
		Metrics: m,
		events:  make(EventQueue, 0),
	}
}

// Schedule inserts a future event into the timeline. Scheduling into the
// simulated past indicates a broken model, not a data condition, so it
// panics rather than silently reordering the timeline.
func (eng *Engine) Schedule(ev Event) {
	if ev.Timestamp() < eng.Clock {
		panic(fmt.Sprintf("schedule into the past: event %T at %.4f, clock %.4f", ev, ev.Timestamp(), eng.Clock))
	}
	heap.Push(&eng.events, queuedEvent{ev: ev, seq: eng.nextSeq})
	eng.nextSeq++
}

// InjectOrders schedules an ArrivalEvent for every generated order.
func (eng *Engine) InjectOrders(orders []*Order) {
	for _, o := range orders {
		eng.Schedule(NewArrivalEvent(o))
	}
}

// Run dispatches events in timestamp order until the horizon is reached or
// no events remain. Events past the horizon are left undispatched: the
// orders they belong to stay in flight and produce no metrics record.
func (eng *Engine) Run() {
	for eng.events.Len() > 0 {
		if eng.events[0].ev.Timestamp() > eng.Horizon {
			break
		}
		next := heap.Pop(&eng.events).(queuedEvent)
		eng.Clock = next.ev.Timestamp()
		logrus.Debugf("[t=%010.2f] dispatching %T", eng.Clock, next.ev)
		next.ev.Execute(eng)
	}
	logrus.Debugf("[t=%010.2f] simulation ended (%d arrivals)", eng.Clock, eng.Arrivals)
}

// Finish drives an order to a terminal stage, stamps its completion time,
// and hands it to the metrics collector. The order is inert afterwards.
func (eng *Engine) Finish(o *Order, s Stage, reason FailReason) {
	o.advance(s)
	o.CompletionTime = eng.Clock
	o.FailReason = reason
	eng.Metrics.Record(o, eng.Clock)
}

// RecordGate appends a gate decision when tracing is enabled.
func (eng *Engine) RecordGate(d trace.GateDecision) {
	if eng.Trace != nil {
		eng.Trace.Append(d)
	}
}
