package sim

import "fmt"

// StageTime is a uniform service-time range for one stage, in simulated
// time units. Min == Max gives a deterministic service time.
type StageTime struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (st StageTime) validate(label string) error {
	if st.Min < 0 || st.Max < st.Min {
		return fmt.Errorf("%s: invalid service range [%g, %g]", label, st.Min, st.Max)
	}
	return nil
}

// ServiceTimes groups the per-stage uniform ranges for one architecture.
type ServiceTimes struct {
	CreditCheck StageTime `yaml:"credit_check"`
	Inventory   StageTime `yaml:"inventory"`
	Fulfillment StageTime `yaml:"fulfillment"`
}

func (s ServiceTimes) validate(arch string) error {
	if err := s.CreditCheck.validate(arch + " credit_check"); err != nil {
		return err
	}
	if err := s.Inventory.validate(arch + " inventory"); err != nil {
		return err
	}
	return s.Fulfillment.validate(arch + " fulfillment")
}

// Config holds every knob of the three-architecture comparison. All values
// are fixed before a run starts; there is no mid-run reconfiguration.
type Config struct {
	Horizon  float64 `yaml:"horizon"`  // simulated-time cutoff per episode
	Seed     int64   `yaml:"seed"`     // master seed for all derived RNG streams
	Episodes int     `yaml:"episodes"` // runs averaged per architecture

	// MeanInterArrival is the mean gap between order arrivals (exponential
	// inter-arrival times, i.e. a Poisson arrival process).
	MeanInterArrival float64 `yaml:"mean_inter_arrival"`

	// MonolithicCapacity bounds how many orders may occupy the serialized
	// pipeline at once (the whole pipeline is one critical section).
	MonolithicCapacity int `yaml:"monolithic_capacity"`
	// StageCapacity is the per-stage capacity for the RPA and MAS pools.
	StageCapacity int `yaml:"stage_capacity"`

	// RiskThreshold is the RPA rejection rule and the MAS definition of a
	// "bad" order: risk strictly above it fails if fulfilled.
	RiskThreshold float64 `yaml:"risk_threshold"`
	// MASOptimism and MASSharpness parameterize the risk-to-probability
	// admission mapping; see AdmitProbability.
	MASOptimism  float64 `yaml:"mas_optimism"`
	MASSharpness float64 `yaml:"mas_sharpness"`

	// Order value distribution and economics.
	ValueMin         float64 `yaml:"value_min"`
	ValueMax         float64 `yaml:"value_max"`
	ProfitMargin     float64 `yaml:"profit_margin"`     // completed orders realize Value * ProfitMargin
	ManualFixCost    float64 `yaml:"manual_fix_cost"`   // penalty per downstream fulfillment error
	RejectionPenalty float64 `yaml:"rejection_penalty"` // penalty per gate/threshold rejection

	Monolithic ServiceTimes `yaml:"monolithic_service"`
	RPA        ServiceTimes `yaml:"rpa_service"`
	MAS        ServiceTimes `yaml:"mas_service"`
}

// DefaultConfig returns the baseline comparison configuration.
// Service ranges and economics follow the calibration the comparison was
// originally published with; the monolithic fulfillment range folds the
// billing step into fulfillment.
func DefaultConfig() Config {
	return Config{
		Horizon:            1000,
		Seed:               42,
		Episodes:           50,
		MeanInterArrival:   5,
		MonolithicCapacity: 10,
		StageCapacity:      3,
		RiskThreshold:      0.90,
		MASOptimism:        0.60,
		MASSharpness:       8,
		ValueMin:           100,
		ValueMax:           5000,
		ProfitMargin:       0.20,
		ManualFixCost:      50,
		RejectionPenalty:   0,
		Monolithic: ServiceTimes{
			CreditCheck: StageTime{Min: 5, Max: 15},
			Inventory:   StageTime{Min: 3, Max: 8},
			Fulfillment: StageTime{Min: 7, Max: 17},
		},
		RPA: ServiceTimes{
			CreditCheck: StageTime{Min: 4, Max: 10},
			Inventory:   StageTime{Min: 2, Max: 6},
			Fulfillment: StageTime{Min: 5, Max: 14},
		},
		MAS: ServiceTimes{
			CreditCheck: StageTime{Min: 6, Max: 12},
			Inventory:   StageTime{Min: 2, Max: 5},
			Fulfillment: StageTime{Min: 3, Max: 5},
		},
	}
}

// Validate checks the configuration before any simulation starts. A non-nil
// error is fatal: no partial run is attempted.
func (c Config) Validate() error {
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %g", c.Horizon)
	}
	if c.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive, got %d", c.Episodes)
	}
	if c.MeanInterArrival <= 0 {
		return fmt.Errorf("mean inter-arrival must be positive, got %g", c.MeanInterArrival)
	}
	if c.MonolithicCapacity <= 0 {
		return fmt.Errorf("monolithic capacity must be positive, got %d", c.MonolithicCapacity)
	}
	if c.StageCapacity <= 0 {
		return fmt.Errorf("stage capacity must be positive, got %d", c.StageCapacity)
	}
	if c.RiskThreshold < 0 || c.RiskThreshold > 1 {
		return fmt.Errorf("risk threshold must be in [0,1], got %g", c.RiskThreshold)
	}
	if c.MASOptimism < 0 || c.MASOptimism > 1 {
		return fmt.Errorf("mas optimism must be in [0,1], got %g", c.MASOptimism)
	}
	if c.MASSharpness <= 0 {
		return fmt.Errorf("mas sharpness must be positive, got %g", c.MASSharpness)
	}
	if c.ValueMin < 0 || c.ValueMax < c.ValueMin {
		return fmt.Errorf("invalid order value range [%g, %g]", c.ValueMin, c.ValueMax)
	}
	if c.ProfitMargin < 0 {
		return fmt.Errorf("profit margin must be non-negative, got %g", c.ProfitMargin)
	}
	if err := c.Monolithic.validate("monolithic"); err != nil {
		return err
	}
	if err := c.RPA.validate("rpa"); err != nil {
		return err
	}
	return c.MAS.validate("mas")
}
