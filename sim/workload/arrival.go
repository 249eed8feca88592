package workload

import "math/rand"

// ArrivalSampler generates inter-arrival gaps for the order stream.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival gap in simulated time units.
	// Always positive.
	SampleIAT(rng *rand.Rand) float64
}

// PoissonSampler generates exponentially-distributed gaps (a Poisson
// arrival process) with the given mean inter-arrival time.
type PoissonSampler struct {
	mean float64
}

// NewPoissonSampler creates a sampler with the given mean gap.
func NewPoissonSampler(meanInterArrival float64) *PoissonSampler {
	return &PoissonSampler{mean: meanInterArrival}
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.mean
}
