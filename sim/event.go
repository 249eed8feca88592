package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (in simulated time units) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Engine)
}

// ArrivalEvent represents the arrival of a new order into the system.
type ArrivalEvent struct {
	time  float64
	Order *Order
}

// NewArrivalEvent creates an arrival at the order's generated arrival time.
func NewArrivalEvent(o *Order) *ArrivalEvent {
	return &ArrivalEvent{time: o.ArrivalTime, Order: o}
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute hands the arriving order to the active architecture policy.
func (e *ArrivalEvent) Execute(eng *Engine) {
	logrus.Debugf("<< Arrival: %s at %.2f", e.Order.ID, e.time)
	eng.Arrivals++
	eng.Policy.Start(eng, e.Order)
}

// StageCompleteEvent fires when an order's service time at a stage elapses.
// The active policy decides what happens next: release capacity, evaluate a
// risk gate, enter the next stage, or terminate the order.
type StageCompleteEvent struct {
	time  float64
	Order *Order
	Stage Stage
}

// Timestamp returns the scheduled time of the StageCompleteEvent.
func (e *StageCompleteEvent) Timestamp() float64 {
	return e.time
}

// Execute the StageCompleteEvent.
func (e *StageCompleteEvent) Execute(eng *Engine) {
	logrus.Debugf("<< StageComplete: %s leaves %s at %.2f", e.Order.ID, e.Stage, e.time)
	eng.Policy.StageComplete(eng, e.Order, e.Stage)
}

// GrantEvent resumes a parked acquisition after a pool release handed its
// capacity unit to the waiter. Flowing the resumption through the event
// queue keeps same-timestamp ordering deterministic.
type GrantEvent struct {
	time   float64
	Pool   *Pool
	waiter *waiter
}

// Timestamp returns the scheduled time of the GrantEvent.
func (e *GrantEvent) Timestamp() float64 {
	return e.time
}

// Execute resumes the waiter's flow. The capacity unit was already
// transferred at release time, so held counts stay within capacity.
func (e *GrantEvent) Execute(eng *Engine) {
	logrus.Debugf("<< Grant: pool %s resumes %s at %.2f", e.Pool.name, e.waiter.order.ID, e.time)
	e.waiter.resume(eng)
}
