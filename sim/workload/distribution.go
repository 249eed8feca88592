package workload

import "math/rand"

// ValueSampler generates order monetary values.
type ValueSampler interface {
	Sample(rng *rand.Rand) float64
}

// RiskSampler generates order risk scores in [0,1).
type RiskSampler interface {
	Sample(rng *rand.Rand) float64
}

// UniformValueSampler draws values uniformly from [Min, Max).
type UniformValueSampler struct {
	Min, Max float64
}

func (s *UniformValueSampler) Sample(rng *rand.Rand) float64 {
	return s.Min + rng.Float64()*(s.Max-s.Min)
}

// UniformRiskSampler draws risk scores uniformly from [0,1).
type UniformRiskSampler struct{}

func (UniformRiskSampler) Sample(rng *rand.Rand) float64 {
	return rng.Float64()
}
