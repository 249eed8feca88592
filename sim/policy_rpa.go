package sim

import (
	"math/rand"

	"github.com/o2c-sim/o2c-sim/sim/trace"
)

// RPAPolicy runs each stage on its own finite-capacity FIFO pool, giving
// coarse parallelism across orders, and applies a fixed rule gate after
// credit validation: an order whose risk score exceeds the configured
// threshold is halted immediately instead of risking an erroneous
// fulfillment. The gate is deterministic (no randomness beyond the order's
// own risk score), so orders below the threshold are never rejected and no
// order is ever fulfilled erroneously.
type RPAPolicy struct {
	credit      *Pool
	inventory   *Pool
	fulfillment *Pool
	service     ServiceTimes
	threshold   float64
	rng         *rand.Rand
}

// NewRPAPolicy builds the policy with fresh per-stage pools.
func NewRPAPolicy(cfg Config, rng *rand.Rand) *RPAPolicy {
	return &RPAPolicy{
		credit:      NewPool("credit", cfg.StageCapacity, DisciplineFIFO),
		inventory:   NewPool("inventory", cfg.StageCapacity, DisciplineFIFO),
		fulfillment: NewPool("fulfillment", cfg.StageCapacity, DisciplineFIFO),
		service:     cfg.RPA,
		threshold:   cfg.RiskThreshold,
		rng:         rng,
	}
}

func (p *RPAPolicy) Name() string { return ArchRPA }

// Start queues the order for credit validation.
func (p *RPAPolicy) Start(eng *Engine, o *Order) {
	p.credit.Acquire(eng, o, 0, func(eng *Engine) {
		o.advance(StageCreditCheck)
		eng.Schedule(&StageCompleteEvent{
			time:  eng.Clock + sampleService(p.rng, p.service.CreditCheck),
			Order: o,
			Stage: StageCreditCheck,
		})
	})
}

// StageComplete releases the finished stage, evaluates the rule gate after
// credit, and moves the order into the next pool.
func (p *RPAPolicy) StageComplete(eng *Engine, o *Order, s Stage) {
	switch s {
	case StageCreditCheck:
		p.credit.Release(eng)
		admitted := o.RiskScore <= p.threshold
		eng.RecordGate(trace.GateDecision{
			Clock:            eng.Clock,
			Architecture:     ArchRPA,
			OrderID:          o.ID,
			RiskScore:        o.RiskScore,
			AdmitProbability: boolToProb(admitted),
			Admitted:         admitted,
			QueueDepth:       p.inventory.Waiting(),
			Reason:           "threshold rule",
		})
		if !admitted {
			eng.Finish(o, StageFailed, FailThresholdReject)
			return
		}
		p.inventory.Acquire(eng, o, 0, func(eng *Engine) {
			o.advance(StageInventory)
			eng.Schedule(&StageCompleteEvent{
				time:  eng.Clock + sampleService(p.rng, p.service.Inventory),
				Order: o,
				Stage: StageInventory,
			})
		})
	case StageInventory:
		p.inventory.Release(eng)
		p.fulfillment.Acquire(eng, o, 0, func(eng *Engine) {
			o.advance(StageFulfillment)
			eng.Schedule(&StageCompleteEvent{
				time:  eng.Clock + sampleService(p.rng, p.service.Fulfillment),
				Order: o,
				Stage: StageFulfillment,
			})
		})
	case StageFulfillment:
		p.fulfillment.Release(eng)
		eng.Finish(o, StageCompleted, FailNone)
	}
}

// boolToProb renders the deterministic rule gate as a degenerate probability
// for the shared trace schema.
func boolToProb(admitted bool) float64 {
	if admitted {
		return 1
	}
	return 0
}
