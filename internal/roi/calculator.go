package roi

import (
	"fmt"
	"math"

	"solar-roi/internal/model"
)

const (
	// CloudLossCeiling is the fraction of output lost at 100% cloud cover.
	// Diffuse light keeps the remaining 20% flowing.
	CloudLossCeiling = 0.8

	// TempLossPerDegC is the output fraction lost per °C above RatedTempC.
	TempLossPerDegC = 0.005

	// RatedTempC is the cell temperature at which panels deliver nameplate
	// output. No thermal derating applies at or below it.
	RatedTempC = 25.0

	// PeakSunHoursPerDay is the equivalent full-power hours per day.
	PeakSunHoursPerDay = 5.0

	// DaysPerMonth is the billing-month length used for projections.
	DaysPerMonth = 30.0
)

type Calculator struct{}

func New() *Calculator { return &Calculator{} }

// Compute derives a monthly production and bill estimate from a single
// weather observation. It performs no I/O, mutates nothing, and is safe to
// call concurrently.
func (c *Calculator) Compute(in model.EstimateInputs, snap model.WeatherSnapshot) (*Estimate, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid inputs: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weather snapshot: %w", err)
	}

	cloudEff := 1 - (snap.CloudCoverPct/100)*CloudLossCeiling
	heatLoss := math.Max(0, (snap.TemperatureC-RatedTempC)*TempLossPerDegC)
	tempEff := clamp01(1 - heatLoss)

	actualKw := in.RatedPowerKw * cloudEff * tempEff
	dailyKwh := actualKw * PeakSunHoursPerDay
	monthlyKwh := dailyKwh * DaysPerMonth

	// Excess production floors the net usage at zero; there is no export
	// income in this billing model.
	netUsageKwh := math.Max(0, in.MonthlyUsageKwh-monthlyKwh)
	oldBill := in.MonthlyUsageKwh * in.TariffPerKwh
	newBill := netUsageKwh * in.TariffPerKwh

	return &Estimate{
		CloudEfficiency:      cloudEff,
		TempEfficiency:       tempEff,
		HeatLoss:             heatLoss,
		ActualPowerKw:        actualKw,
		DailyProductionKwh:   dailyKwh,
		MonthlyProductionKwh: monthlyKwh,
		NetUsageKwh:          netUsageKwh,
		OldBill:              oldBill,
		NewBill:              newBill,
		Savings:              oldBill - newBill,
		CoveragePct:          coveragePct(monthlyKwh, in.MonthlyUsageKwh),
	}, nil
}

func coveragePct(productionKwh, usageKwh float64) float64 {
	if usageKwh <= 0 {
		return 0
	}
	return math.Min(100, productionKwh/usageKwh*100)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
