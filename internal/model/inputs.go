package model

import (
	"errors"
	"math"
)

// EstimateInputs represents a canonical "inputs to the system" object:
// everything an estimate needs besides the weather observation.
//
// Units:
// - RatedPowerKw: kW DC at reference conditions (clear sky, 25°C)
// - MonthlyUsageKwh: kWh per billing month
// - TariffPerKwh: currency units per kWh
type EstimateInputs struct {
	RatedPowerKw    float64
	MonthlyUsageKwh float64
	TariffPerKwh    float64
}

// Validate rejects inputs before any network call or computation.
func (in EstimateInputs) Validate() error {
	if !finite(in.RatedPowerKw) || !finite(in.MonthlyUsageKwh) || !finite(in.TariffPerKwh) {
		return errors.New("inputs must be finite numbers")
	}
	if in.RatedPowerKw <= 0 {
		return errors.New("RatedPowerKw must be > 0")
	}
	if in.MonthlyUsageKwh < 0 {
		return errors.New("MonthlyUsageKwh must be >= 0")
	}
	if in.TariffPerKwh < 0 {
		return errors.New("TariffPerKwh must be >= 0")
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// SystemParams defines the nameplate parameters of a PV installation.
// This is the unit stored in system preset files (e.g. examples/systems/*.yaml).
type SystemParams struct {
	Name         string
	RatedPowerKw float64
}

func (p SystemParams) Validate() error {
	if p.RatedPowerKw <= 0 {
		return errors.New("RatedPowerKw must be > 0")
	}
	return nil
}

// WithSystem overlays the system's rated power onto in wherever in does not
// already carry one. Explicit request values win over preset values.
func (in EstimateInputs) WithSystem(p SystemParams) EstimateInputs {
	out := in
	if out.RatedPowerKw == 0 {
		out.RatedPowerKw = p.RatedPowerKw
	}
	return out
}
