package results

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o2c-sim/o2c-sim/sim"
	"github.com/o2c-sim/o2c-sim/sim/experiment"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndCountEpisodes(t *testing.T) {
	s := openTestStore(t)

	episodes := []experiment.EpisodeResult{
		{
			Architecture: sim.ArchRPA, Episode: 0, Arrivals: 42,
			Summary: sim.Summary{
				Architecture: sim.ArchRPA, Completed: 38, Rejected: 4,
				AvgCycleTime: 14.2, ErrorRate: 0, NetValue: 19000,
			},
		},
		{
			Architecture: sim.ArchMAS, Episode: 0, Arrivals: 42,
			Summary: sim.Summary{
				Architecture: sim.ArchMAS, Completed: 36, Rejected: 2, Errors: 4,
				AvgCycleTime: 12.8, ErrorRate: 0.1, NetValue: 17500,
			},
		},
	}
	require.NoError(t, s.SaveEpisodes("run-1", episodes))

	n, err := s.EpisodeCount("run-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.EpisodeCount("run-2")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStore_SaveIsIdempotentPerKey(t *testing.T) {
	s := openTestStore(t)

	ep := experiment.EpisodeResult{
		Architecture: sim.ArchMonolithic, Episode: 3, Arrivals: 10,
		Summary: sim.Summary{Architecture: sim.ArchMonolithic, Completed: 10, AvgCycleTime: 25, NetValue: 5000},
	}
	require.NoError(t, s.SaveEpisodes("run-1", []experiment.EpisodeResult{ep}))
	require.NoError(t, s.SaveEpisodes("run-1", []experiment.EpisodeResult{ep}))

	n, err := s.EpisodeCount("run-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_NaNErrorRateStoredAsNull(t *testing.T) {
	s := openTestStore(t)

	ep := experiment.EpisodeResult{
		Architecture: sim.ArchRPA, Episode: 0, Arrivals: 0,
		Summary: sim.Summary{Architecture: sim.ArchRPA, ErrorRate: math.NaN()},
	}
	require.NoError(t, s.SaveEpisodes("run-1", []experiment.EpisodeResult{ep}))

	var nulls int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM episodes WHERE error_rate IS NULL`).Scan(&nulls)
	require.NoError(t, err)
	assert.Equal(t, 1, nulls)
}
