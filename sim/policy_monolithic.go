package sim

import "math/rand"

// MonolithicPolicy serializes the whole pipeline: a single pool is acquired
// at credit-check entry and held until fulfillment exit, so the next order
// cannot begin credit validation until a slot frees across all three stages.
// With capacity 1 this is a global pipeline lock; larger capacities model a
// fixed worker pool over the serialized flow. Risk is never evaluated, so
// every admitted order completes and the error rate is zero by construction.
type MonolithicPolicy struct {
	pipeline *Pool
	service  ServiceTimes
	rng      *rand.Rand
}

// NewMonolithicPolicy builds the policy with its pipeline-wide pool.
func NewMonolithicPolicy(cfg Config, rng *rand.Rand) *MonolithicPolicy {
	return &MonolithicPolicy{
		pipeline: NewPool("pipeline", cfg.MonolithicCapacity, DisciplineFIFO),
		service:  cfg.Monolithic,
		rng:      rng,
	}
}

func (p *MonolithicPolicy) Name() string { return ArchMonolithic }

// Start queues the order for the pipeline critical section.
func (p *MonolithicPolicy) Start(eng *Engine, o *Order) {
	p.pipeline.Acquire(eng, o, 0, func(eng *Engine) {
		o.advance(StageCreditCheck)
		eng.Schedule(&StageCompleteEvent{
			time:  eng.Clock + sampleService(p.rng, p.service.CreditCheck),
			Order: o,
			Stage: StageCreditCheck,
		})
	})
}

// StageComplete chains the three stages under the single held slot and
// releases it only when fulfillment finishes.
func (p *MonolithicPolicy) StageComplete(eng *Engine, o *Order, s Stage) {
	switch s {
	case StageCreditCheck:
		o.advance(StageInventory)
		eng.Schedule(&StageCompleteEvent{
			time:  eng.Clock + sampleService(p.rng, p.service.Inventory),
			Order: o,
			Stage: StageInventory,
		})
	case StageInventory:
		o.advance(StageFulfillment)
		eng.Schedule(&StageCompleteEvent{
			time:  eng.Clock + sampleService(p.rng, p.service.Fulfillment),
			Order: o,
			Stage: StageFulfillment,
		})
	case StageFulfillment:
		p.pipeline.Release(eng)
		eng.Finish(o, StageCompleted, FailNone)
	}
}
