package experiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o2c-sim/o2c-sim/sim"
)

func smallConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Horizon = 300
	cfg.Episodes = 3
	return cfg
}

func TestNewDriver_RejectsInvalidConfig(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Episodes = 0
	_, err := NewDriver(cfg)
	assert.Error(t, err)
}

func TestDriverRun_ProducesOneRowPerArchitecture(t *testing.T) {
	d, err := NewDriver(smallConfig())
	require.NoError(t, err)

	rows := d.Run()
	require.Len(t, rows, 3)
	assert.Equal(t, sim.ArchMonolithic, rows[0].System)
	assert.Equal(t, sim.ArchRPA, rows[1].System)
	assert.Equal(t, sim.ArchMAS, rows[2].System)
	assert.Len(t, d.Episodes, 9)
}

func TestDriverRun_TerminalOrdersNeverExceedArrivals(t *testing.T) {
	d, err := NewDriver(smallConfig())
	require.NoError(t, err)
	d.Run()

	for _, ep := range d.Episodes {
		terminal := ep.Summary.Completed + ep.Summary.Failed()
		assert.LessOrEqual(t, terminal, ep.Arrivals,
			"%s episode %d", ep.Architecture, ep.Episode)
	}
}

func TestDriverRun_SameSeedSameResults(t *testing.T) {
	cfg := smallConfig()

	a, err := NewDriver(cfg)
	require.NoError(t, err)
	b, err := NewDriver(cfg)
	require.NoError(t, err)

	// Run IDs differ; results must not.
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Run(), b.Run())
	assert.Equal(t, a.Episodes, b.Episodes)
}

func TestDriverRun_DifferentSeedsDifferentResults(t *testing.T) {
	cfgA := smallConfig()
	cfgB := smallConfig()
	cfgB.Seed = 43

	a, err := NewDriver(cfgA)
	require.NoError(t, err)
	b, err := NewDriver(cfgB)
	require.NoError(t, err)

	assert.NotEqual(t, a.Run(), b.Run())
}

func TestDriverRun_SerializedMonolithIsTheBottleneck(t *testing.T) {
	// GIVEN a monolith reduced to a single pipeline slot
	cfg := smallConfig()
	cfg.Horizon = 200
	cfg.MonolithicCapacity = 1

	d, err := NewDriver(cfg)
	require.NoError(t, err)

	// WHEN the comparison runs
	rows := d.Run()

	// THEN the decoupled architectures clearly out-produce the monolith
	mono, rpa, mas := rows[0], rows[1], rows[2]
	assert.Less(t, mono.Throughput, rpa.Throughput)
	assert.Less(t, mono.Throughput, mas.Throughput)
}

func TestDriverRun_ArchitectureErrorProfiles(t *testing.T) {
	d, err := NewDriver(smallConfig())
	require.NoError(t, err)
	rows := d.Run()

	mono, rpa, mas := rows[0], rows[1], rows[2]
	// The monolith and the rule gate never fulfill erroneously; only the
	// optimistic MAS gate trades errors for throughput.
	assert.Equal(t, 0.0, mono.ErrorRatePct)
	assert.Equal(t, 0.0, rpa.ErrorRatePct)
	assert.Greater(t, mas.ErrorRatePct, 0.0)
}

func TestDriverRun_OptimismTradesErrorsForThroughput(t *testing.T) {
	// GIVEN two MAS gate calibrations, fully conservative and fully optimistic
	conservative := smallConfig()
	conservative.Horizon = 1000
	conservative.MASOptimism = 0

	optimistic := conservative
	optimistic.MASOptimism = 1

	runMAS := func(cfg sim.Config) (throughput float64, errors int) {
		d, err := NewDriver(cfg)
		require.NoError(t, err)
		rows := d.Run()
		for _, ep := range d.Episodes {
			if ep.Architecture == sim.ArchMAS {
				errors += ep.Summary.Errors
			}
		}
		return rows[2].Throughput, errors
	}

	// WHEN both calibrations run on the same seed
	consThroughput, consErrors := runMAS(conservative)
	optThroughput, optErrors := runMAS(optimistic)

	// THEN admitting more yields more completions and more downstream errors
	assert.GreaterOrEqual(t, optThroughput, consThroughput)
	assert.Greater(t, optErrors, consErrors)
}

func TestDriverRun_TracingCollectsGateDecisions(t *testing.T) {
	d, err := NewDriver(smallConfig())
	require.NoError(t, err)
	d.Tracing = true
	d.Run()

	// The monolith has no gate; both gated architectures must have decided
	// on every order that cleared credit validation.
	require.NotNil(t, d.Traces[sim.ArchMonolithic])
	assert.Empty(t, d.Traces[sim.ArchMonolithic].Decisions)
	require.NotNil(t, d.Traces[sim.ArchRPA])
	require.NotNil(t, d.Traces[sim.ArchMAS])
	assert.NotEmpty(t, d.Traces[sim.ArchRPA].Decisions)
	assert.NotEmpty(t, d.Traces[sim.ArchMAS].Decisions)
	for _, dec := range d.Traces[sim.ArchRPA].Decisions {
		assert.Equal(t, sim.ArchRPA, dec.Architecture)
	}
}

func TestRunStress_SweepsLoadLevels(t *testing.T) {
	cfg := smallConfig()
	rows, err := RunStress(cfg, []float64{5, 8})
	require.NoError(t, err)

	require.Len(t, rows, 6)
	assert.Equal(t, "mean_iat=5", rows[0].Load)
	assert.Equal(t, sim.ArchMonolithic, rows[0].System)
	assert.Equal(t, "mean_iat=8", rows[3].Load)

	// Lighter load (longer gaps) admits fewer orders per episode, so heavy
	// load throughput is at least as high for the uncongested architectures.
	assert.GreaterOrEqual(t, rows[1].Throughput, rows[4].Throughput)
}

func TestRunStress_EmptySweepErrors(t *testing.T) {
	_, err := RunStress(smallConfig(), nil)
	assert.Error(t, err)
}
