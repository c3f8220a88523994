package analysis

import (
	"fmt"

	"solar-roi/internal/model"
	"solar-roi/internal/roi"
)

// SizingOutcome is a per-size summary used for ranking candidate systems
// against one observation. It reuses the estimate math; nothing here
// introduces new physics.
type SizingOutcome struct {
	RatedPowerKw         float64
	ActualPowerKw        float64
	MonthlyProductionKwh float64
	NetUsageKwh          float64
	CoveragePct          float64
	NewBill              float64
	Savings              float64
}

// Sweep computes one outcome per candidate size, holding usage, tariff, and
// the observation fixed.
func Sweep(calc *roi.Calculator, in model.EstimateInputs, snap model.WeatherSnapshot, sizesKw []float64) ([]SizingOutcome, error) {
	if calc == nil {
		return nil, fmt.Errorf("calculator is nil")
	}
	if len(sizesKw) == 0 {
		return nil, fmt.Errorf("no sizes")
	}

	out := make([]SizingOutcome, 0, len(sizesKw))
	for _, size := range sizesKw {
		candidate := in
		candidate.RatedPowerKw = size
		est, err := calc.Compute(candidate, snap)
		if err != nil {
			return nil, fmt.Errorf("size %.2f kW: %w", size, err)
		}
		out = append(out, SizingOutcome{
			RatedPowerKw:         size,
			ActualPowerKw:        est.ActualPowerKw,
			MonthlyProductionKwh: est.MonthlyProductionKwh,
			NetUsageKwh:          est.NetUsageKwh,
			CoveragePct:          est.CoveragePct,
			NewBill:              est.NewBill,
			Savings:              est.Savings,
		})
	}
	return out, nil
}

// FullCoverageSizeKw returns the smallest rated power whose monthly
// production covers the entire usage under the given conditions. The bool
// is false when derating leaves no output at all, in which case no finite
// size can cover the usage.
func FullCoverageSizeKw(in model.EstimateInputs, snap model.WeatherSnapshot) (float64, bool) {
	if in.MonthlyUsageKwh <= 0 {
		return 0, true
	}

	// Production scales linearly with rated power, so a 1 kW reference
	// estimate gives the per-kW yield.
	ref := in
	ref.RatedPowerKw = 1
	est, err := roi.New().Compute(ref, snap)
	if err != nil {
		return 0, false
	}
	if est.MonthlyProductionKwh <= 0 {
		return 0, false
	}
	return in.MonthlyUsageKwh / est.MonthlyProductionKwh, true
}
