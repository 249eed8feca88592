package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a YAML-loadable override set for the comparison configuration.
// Nil pointer fields mean "not set in YAML" and leave the corresponding
// Config value alone.
type Scenario struct {
	Horizon            *float64      `yaml:"horizon"`
	Seed               *int64        `yaml:"seed"`
	Episodes           *int          `yaml:"episodes"`
	MeanInterArrival   *float64      `yaml:"mean_inter_arrival"`
	MonolithicCapacity *int          `yaml:"monolithic_capacity"`
	StageCapacity      *int          `yaml:"stage_capacity"`
	RiskThreshold      *float64      `yaml:"risk_threshold"`
	MASOptimism        *float64      `yaml:"mas_optimism"`
	MASSharpness       *float64      `yaml:"mas_sharpness"`
	ValueMin           *float64      `yaml:"value_min"`
	ValueMax           *float64      `yaml:"value_max"`
	ProfitMargin       *float64      `yaml:"profit_margin"`
	ManualFixCost      *float64      `yaml:"manual_fix_cost"`
	RejectionPenalty   *float64      `yaml:"rejection_penalty"`
	Monolithic         *ServiceTimes `yaml:"monolithic_service"`
	RPA                *ServiceTimes `yaml:"rpa_service"`
	MAS                *ServiceTimes `yaml:"mas_service"`
}

// LoadScenario reads and parses a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	return &sc, nil
}

// Apply overlays the scenario's set fields onto cfg. The result still goes
// through Config.Validate before any simulation starts.
func (s *Scenario) Apply(cfg *Config) {
	if s.Horizon != nil {
		cfg.Horizon = *s.Horizon
	}
	if s.Seed != nil {
		cfg.Seed = *s.Seed
	}
	if s.Episodes != nil {
		cfg.Episodes = *s.Episodes
	}
	if s.MeanInterArrival != nil {
		cfg.MeanInterArrival = *s.MeanInterArrival
	}
	if s.MonolithicCapacity != nil {
		cfg.MonolithicCapacity = *s.MonolithicCapacity
	}
	if s.StageCapacity != nil {
		cfg.StageCapacity = *s.StageCapacity
	}
	if s.RiskThreshold != nil {
		cfg.RiskThreshold = *s.RiskThreshold
	}
	if s.MASOptimism != nil {
		cfg.MASOptimism = *s.MASOptimism
	}
	if s.MASSharpness != nil {
		cfg.MASSharpness = *s.MASSharpness
	}
	if s.ValueMin != nil {
		cfg.ValueMin = *s.ValueMin
	}
	if s.ValueMax != nil {
		cfg.ValueMax = *s.ValueMax
	}
	if s.ProfitMargin != nil {
		cfg.ProfitMargin = *s.ProfitMargin
	}
	if s.ManualFixCost != nil {
		cfg.ManualFixCost = *s.ManualFixCost
	}
	if s.RejectionPenalty != nil {
		cfg.RejectionPenalty = *s.RejectionPenalty
	}
	if s.Monolithic != nil {
		cfg.Monolithic = *s.Monolithic
	}
	if s.RPA != nil {
		cfg.RPA = *s.RPA
	}
	if s.MAS != nil {
		cfg.MAS = *s.MAS
	}
}
