package roi

// Estimate is the derived output of one computation.
// This is the primary artifact for "what the panels would do" under one
// weather observation. Values are unrounded; rounding belongs to the
// presentation layer.
type Estimate struct {
	// Derating factors, fractions 0..1.
	CloudEfficiency float64
	TempEfficiency  float64
	HeatLoss        float64

	ActualPowerKw        float64
	DailyProductionKwh   float64
	MonthlyProductionKwh float64

	// Billing for one projected month.
	NetUsageKwh float64
	OldBill     float64
	NewBill     float64
	Savings     float64

	// CoveragePct is how much of the monthly usage the production covers,
	// capped at 100.
	CoveragePct float64
}
