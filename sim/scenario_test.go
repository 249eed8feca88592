package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_OverridesOnlySetFields(t *testing.T) {
	path := writeScenarioFile(t, `
horizon: 200
episodes: 5
mas_optimism: 0.8
mas_service:
  credit_check: {min: 1, max: 2}
  inventory: {min: 1, max: 2}
  fulfillment: {min: 1, max: 2}
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	sc.Apply(&cfg)

	assert.Equal(t, 200.0, cfg.Horizon)
	assert.Equal(t, 5, cfg.Episodes)
	assert.Equal(t, 0.8, cfg.MASOptimism)
	assert.Equal(t, StageTime{Min: 1, Max: 2}, cfg.MAS.CreditCheck)
	// Untouched fields keep their defaults.
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 0.90, cfg.RiskThreshold)
	assert.Equal(t, DefaultConfig().RPA, cfg.RPA)
	require.NoError(t, cfg.Validate())
}

func TestLoadScenario_EmptyFileChangesNothing(t *testing.T) {
	path := writeScenarioFile(t, "")

	sc, err := LoadScenario(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	sc.Apply(&cfg)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadScenario_MissingFileErrors(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_MalformedYAMLErrors(t *testing.T) {
	path := writeScenarioFile(t, "horizon: [not a number")
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestScenarioApply_OverrideCanFailValidation(t *testing.T) {
	path := writeScenarioFile(t, "stage_capacity: 0\n")

	sc, err := LoadScenario(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	sc.Apply(&cfg)
	assert.Error(t, cfg.Validate())
}
