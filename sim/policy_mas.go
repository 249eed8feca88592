package sim

import (
	"math"
	"math/rand"

	"github.com/o2c-sim/o2c-sim/sim/trace"
)

// AdmitProbability maps a risk score to the probability that a MAS agent
// proceeds past the credit gate:
//
//	p(risk) = 1 - (1-optimism) * risk^sharpness
//
// clamped to [0,1]. The mapping is monotonically non-increasing in risk and
// non-decreasing in optimism; sharpness controls how long low-risk orders
// stay near certain admission before the curve bends down. optimism=1
// admits everything; optimism=0 is the most conservative agent. Parameters
// are tuned once in configuration and applied independently per order.
func AdmitProbability(risk, optimism, sharpness float64) float64 {
	p := 1 - (1-optimism)*math.Pow(risk, sharpness)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// MASPolicy runs each stage on its own finite-capacity pool like RPA, but
// replaces the hard threshold with optimistic probabilistic admission: each
// order's gate decision samples once against AdmitProbability of its own
// risk score. Admitted orders whose risk exceeds the threshold are flagged
// and surface as downstream fulfillment errors after consuming inventory and
// fulfillment capacity. That is the throughput-for-correctness trade.
//
// Decisions are agent-local: they depend only on the order's own risk score
// and the locally observed queue state, with no cross-order synchronization
// barrier. Waiting queues are priority-ordered by each agent's self-assessed
// admissibility (1 - risk), so safer orders overtake riskier ones.
type MASPolicy struct {
	credit      *Pool
	inventory   *Pool
	fulfillment *Pool
	service     ServiceTimes
	threshold   float64
	optimism    float64
	sharpness   float64
	rng         *rand.Rand
}

// NewMASPolicy builds the policy with fresh priority-disciplined pools.
func NewMASPolicy(cfg Config, rng *rand.Rand) *MASPolicy {
	return &MASPolicy{
		credit:      NewPool("credit", cfg.StageCapacity, DisciplinePriority),
		inventory:   NewPool("inventory", cfg.StageCapacity, DisciplinePriority),
		fulfillment: NewPool("fulfillment", cfg.StageCapacity, DisciplinePriority),
		service:     cfg.MAS,
		threshold:   cfg.RiskThreshold,
		optimism:    cfg.MASOptimism,
		sharpness:   cfg.MASSharpness,
		rng:         rng,
	}
}

func (p *MASPolicy) Name() string { return ArchMAS }

// priority is the agent's queue priority: its self-assessed admissibility.
func (p *MASPolicy) priority(o *Order) float64 {
	return 1 - o.RiskScore
}

// Start queues the order for credit validation at its own priority.
func (p *MASPolicy) Start(eng *Engine, o *Order) {
	p.credit.Acquire(eng, o, p.priority(o), func(eng *Engine) {
		o.advance(StageCreditCheck)
		eng.Schedule(&StageCompleteEvent{
			time:  eng.Clock + sampleService(p.rng, p.service.CreditCheck),
			Order: o,
			Stage: StageCreditCheck,
		})
	})
}

// StageComplete releases the finished stage, samples the probabilistic gate
// after credit, and moves admitted orders through the remaining pools.
func (p *MASPolicy) StageComplete(eng *Engine, o *Order, s Stage) {
	switch s {
	case StageCreditCheck:
		p.credit.Release(eng)
		pAdmit := AdmitProbability(o.RiskScore, p.optimism, p.sharpness)
		admitted := p.rng.Float64() < pAdmit
		eng.RecordGate(trace.GateDecision{
			Clock:            eng.Clock,
			Architecture:     ArchMAS,
			OrderID:          o.ID,
			RiskScore:        o.RiskScore,
			AdmitProbability: pAdmit,
			Admitted:         admitted,
			QueueDepth:       p.inventory.Waiting(),
			Reason:           "optimistic admission",
		})
		if !admitted {
			eng.Finish(o, StageFailed, FailGateReject)
			return
		}
		if o.RiskScore > p.threshold {
			o.Flagged = true
		}
		p.inventory.Acquire(eng, o, p.priority(o), func(eng *Engine) {
			o.advance(StageInventory)
			eng.Schedule(&StageCompleteEvent{
				time:  eng.Clock + sampleService(p.rng, p.service.Inventory),
				Order: o,
				Stage: StageInventory,
			})
		})
	case StageInventory:
		p.inventory.Release(eng)
		p.fulfillment.Acquire(eng, o, p.priority(o), func(eng *Engine) {
			o.advance(StageFulfillment)
			eng.Schedule(&StageCompleteEvent{
				time:  eng.Clock + sampleService(p.rng, p.service.Fulfillment),
				Order: o,
				Stage: StageFulfillment,
			})
		})
	case StageFulfillment:
		p.fulfillment.Release(eng)
		if o.Flagged {
			eng.Finish(o, StageFailed, FailFulfillmentError)
			return
		}
		eng.Finish(o, StageCompleted, FailNone)
	}
}
