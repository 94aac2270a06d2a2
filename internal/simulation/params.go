package simulation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Params collects every tunable constant of the signal models. Defaults
// reproduce the reference behavior; a YAML tuning file can override any
// subset of them for experiments or tests.
type Params struct {
	// Weather
	SeasonalMeanC     float64 `yaml:"seasonalMeanC"`
	SeasonalSwingC    float64 `yaml:"seasonalSwingC"`
	DiurnalAmplitudeC float64 `yaml:"diurnalAmplitudeC"`
	WalkStepC         float64 `yaml:"walkStepC"`
	WalkClampC        float64 `yaml:"walkClampC"`
	MeanReversion     float64 `yaml:"meanReversion"`
	WeatherNoiseC     float64 `yaml:"weatherNoiseC"`
	CloudyBelowC      float64 `yaml:"cloudyBelowC"`
	CloudyProb        float64 `yaml:"cloudyProb"`

	// Price, per MWh
	NightPrice  float64 `yaml:"nightPrice"`
	DayPrice    float64 `yaml:"dayPrice"`
	PeakPrice   float64 `yaml:"peakPrice"`
	NightJitter float64 `yaml:"nightJitter"`
	DayJitter   float64 `yaml:"dayJitter"`
	PeakJitter  float64 `yaml:"peakJitter"`

	// Generation
	SolarEffMin    float64 `yaml:"solarEffMin"`
	SolarEffMax    float64 `yaml:"solarEffMax"`
	CloudyDerate   float64 `yaml:"cloudyDerate"`
	WindMin        float64 `yaml:"windMin"`
	WindMax        float64 `yaml:"windMax"`
	ThermalMin     float64 `yaml:"thermalMin"`
	ThermalMax     float64 `yaml:"thermalMax"`
	NuclearLevel   float64 `yaml:"nuclearLevel"`
	NuclearJitter  float64 `yaml:"nuclearJitter"`
	FallbackFactor float64 `yaml:"fallbackFactor"`

	// Load
	BaseLoadFraction    float64 `yaml:"baseLoadFraction"`
	ProfileLoadFraction float64 `yaml:"profileLoadFraction"`
	ComfortLowC         float64 `yaml:"comfortLowC"`
	ComfortHighC        float64 `yaml:"comfortHighC"`
	HeatingCoeff        float64 `yaml:"heatingCoeff"`
	CoolingCoeff        float64 `yaml:"coolingCoeff"`
	LoadNoiseFraction   float64 `yaml:"loadNoiseFraction"`
	MinUtilization      float64 `yaml:"minUtilization"`
	MaxUtilization      float64 `yaml:"maxUtilization"`
	WeekendResidential  float64 `yaml:"weekendResidential"`
	WeekendIndustrial   float64 `yaml:"weekendIndustrial"`
	WeekendCommercial   float64 `yaml:"weekendCommercial"`

	// Anomaly policy
	AnomalyBaseProb    float64 `yaml:"anomalyBaseProb"`
	AnomalyNearCapProb float64 `yaml:"anomalyNearCapProb"`
	NearCapThreshold   float64 `yaml:"nearCapThreshold"`
	OverloadMin        float64 `yaml:"overloadMin"`
	OverloadMax        float64 `yaml:"overloadMax"`

	// Lines
	LineBaseFraction      float64 `yaml:"lineBaseFraction"`
	LineVariationFraction float64 `yaml:"lineVariationFraction"`
}

// DefaultParams returns the reference constants.
func DefaultParams() Params {
	return Params{
		SeasonalMeanC:     10,
		SeasonalSwingC:    5,
		DiurnalAmplitudeC: 3,
		WalkStepC:         0.4,
		WalkClampC:        0.8,
		MeanReversion:     0.02,
		WeatherNoiseC:     0.5,
		CloudyBelowC:      8,
		CloudyProb:        0.3,

		NightPrice:  2000,
		DayPrice:    3500,
		PeakPrice:   5000,
		NightJitter: 100,
		DayJitter:   300,
		PeakJitter:  500,

		SolarEffMin:    0.8,
		SolarEffMax:    1.0,
		CloudyDerate:   0.25,
		WindMin:        0.2,
		WindMax:        1.0,
		ThermalMin:     0.7,
		ThermalMax:     0.9,
		NuclearLevel:   0.95,
		NuclearJitter:  0.01,
		FallbackFactor: 0.5,

		BaseLoadFraction:    0.30,
		ProfileLoadFraction: 0.40,
		ComfortLowC:         15,
		ComfortHighC:        22,
		HeatingCoeff:        0.02,
		CoolingCoeff:        0.015,
		LoadNoiseFraction:   0.03,
		MinUtilization:      0.10,
		MaxUtilization:      1.00,
		WeekendResidential:  1.05,
		WeekendIndustrial:   0.60,
		WeekendCommercial:   0.80,

		AnomalyBaseProb:    0.004,
		AnomalyNearCapProb: 0.15,
		NearCapThreshold:   0.95,
		OverloadMin:        1.05,
		OverloadMax:        1.20,

		LineBaseFraction:      0.30,
		LineVariationFraction: 0.20,
	}
}

// LoadParams returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults unchanged.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	if path == "" {
		return p, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("read params file: %w", err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Params{}, fmt.Errorf("parse params file %s: %w", path, err)
	}
	if err := p.validate(); err != nil {
		return Params{}, fmt.Errorf("params file %s: %w", path, err)
	}
	return p, nil
}

func (p Params) validate() error {
	switch {
	case p.AnomalyBaseProb < 0 || p.AnomalyBaseProb > 1:
		return fmt.Errorf("anomalyBaseProb %v outside [0,1]", p.AnomalyBaseProb)
	case p.AnomalyNearCapProb < 0 || p.AnomalyNearCapProb > 1:
		return fmt.Errorf("anomalyNearCapProb %v outside [0,1]", p.AnomalyNearCapProb)
	case p.OverloadMin <= 1 || p.OverloadMax < p.OverloadMin:
		return fmt.Errorf("overload band [%v,%v] must sit above 1", p.OverloadMin, p.OverloadMax)
	case p.MinUtilization < 0 || p.MaxUtilization > 1 || p.MaxUtilization < p.MinUtilization:
		return fmt.Errorf("utilization band [%v,%v] must sit inside [0,1]", p.MinUtilization, p.MaxUtilization)
	}
	return nil
}
