package workload

import (
	"math"
	"testing"

	"github.com/o2c-sim/o2c-sim/sim"
)

func testSpec() Spec {
	return Spec{MeanInterArrival: 5, ValueMin: 100, ValueMax: 5000}
}

func TestGenerate_Determinism(t *testing.T) {
	// GIVEN two independent RNGs derived from the same key and subsystem
	rngA := sim.NewPartitionedRNG(sim.NewSimulationKey(42)).ForSubsystem(sim.SubsystemWorkload(0))
	rngB := sim.NewPartitionedRNG(sim.NewSimulationKey(42)).ForSubsystem(sim.SubsystemWorkload(0))

	// WHEN two streams are generated
	a := Generate(testSpec(), 1000, rngA)
	b := Generate(testSpec(), 1000, rngB)

	// THEN the streams are identical in every field
	if len(a) != len(b) {
		t.Fatalf("stream lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID ||
			a[i].ArrivalTime != b[i].ArrivalTime ||
			a[i].RiskScore != b[i].RiskScore ||
			a[i].Value != b[i].Value {
			t.Fatalf("order %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestGenerate_DifferentEpisodesDifferentStreams(t *testing.T) {
	p := sim.NewPartitionedRNG(sim.NewSimulationKey(42))
	a := Generate(testSpec(), 1000, p.ForSubsystem(sim.SubsystemWorkload(0)))
	b := Generate(testSpec(), 1000, p.ForSubsystem(sim.SubsystemWorkload(1)))

	if len(a) == len(b) {
		same := true
		for i := range a {
			if a[i].ArrivalTime != b[i].ArrivalTime {
				same = false
				break
			}
		}
		if same {
			t.Fatal("episodes 0 and 1 produced identical arrival streams")
		}
	}
}

func TestGenerate_OrderFieldsWithinBounds(t *testing.T) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(7)).ForSubsystem(sim.SubsystemWorkload(0))
	spec := testSpec()
	orders := Generate(spec, 2000, rng)

	if len(orders) == 0 {
		t.Fatal("expected a non-empty stream")
	}
	prev := 0.0
	for _, o := range orders {
		if o.ArrivalTime <= prev {
			t.Errorf("%s: arrival %.4f not after previous %.4f", o.ID, o.ArrivalTime, prev)
		}
		prev = o.ArrivalTime
		if o.ArrivalTime >= 2000 {
			t.Errorf("%s: arrival %.4f past horizon", o.ID, o.ArrivalTime)
		}
		if o.RiskScore < 0 || o.RiskScore >= 1 {
			t.Errorf("%s: risk %.4f outside [0,1)", o.ID, o.RiskScore)
		}
		if o.Value < spec.ValueMin || o.Value >= spec.ValueMax {
			t.Errorf("%s: value %.2f outside [%.0f,%.0f)", o.ID, o.Value, spec.ValueMin, spec.ValueMax)
		}
		if o.Stage != sim.StageArrived {
			t.Errorf("%s: generated in stage %s", o.ID, o.Stage)
		}
	}
}

func TestGenerate_ArrivalRateMatchesMean(t *testing.T) {
	// GIVEN a long horizon and mean inter-arrival gap of 5
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(42)).ForSubsystem(sim.SubsystemWorkload(0))
	horizon := 50000.0

	// WHEN the stream is generated
	orders := Generate(testSpec(), horizon, rng)

	// THEN roughly horizon/mean orders arrive (Poisson noise is ~sqrt(n))
	expected := horizon / 5
	tolerance := 4 * math.Sqrt(expected)
	if n := float64(len(orders)); math.Abs(n-expected) > tolerance {
		t.Errorf("generated %d orders, expected %.0f +- %.0f", len(orders), expected, tolerance)
	}
}

func TestPoissonSampler_MeanGap(t *testing.T) {
	// GIVEN a Poisson sampler with mean gap 5
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(1)).ForSubsystem("arrival_test")
	s := NewPoissonSampler(5)

	// WHEN many gaps are sampled
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		gap := s.SampleIAT(rng)
		if gap <= 0 {
			t.Fatalf("non-positive gap %.6f", gap)
		}
		sum += gap
	}

	// THEN the empirical mean is close to 5 (exponential sd equals the mean)
	mean := sum / float64(n)
	if math.Abs(mean-5) > 4*5/math.Sqrt(float64(n)) {
		t.Errorf("empirical mean gap %.4f, expected close to 5", mean)
	}
}
