package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"solar-roi/internal/config"
	"solar-roi/internal/model"
	"solar-roi/internal/roi"
)

// Demo:
// - Build a handful of canned weather observations (no network calls)
// - Run the estimate calculator for one system across all of them
// - Show how derating and billing respond to clouds and heat
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	systemKw := flag.Float64("system-kw", 5.0, "Rated system power in kW")
	usageKwh := flag.Float64("usage", 350, "Monthly usage in kWh")
	tariff := flag.Float64("tariff", 8.0, "Tariff per kWh")
	outCSV := flag.String("out", "", "Optional path to write the reference scenario report CSV (e.g. results/report.csv)")
	flag.Parse()

	// Defaults (can be overridden via --config).
	in := model.EstimateInputs{
		RatedPowerKw:    *systemKw,
		MonthlyUsageKwh: *usageKwh,
		TariffPerKwh:    *tariff,
	}

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		in = cfg.ToInputs()
	}
	if err := in.Validate(); err != nil {
		panic(err)
	}

	observed := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)
	scenarios := []model.WeatherSnapshot{
		{City: "Reference (clear, 25°C)", CloudCoverPct: 0, TemperatureC: 25, ObservedAt: observed},
		{City: "Partly cloudy", CloudCoverPct: 40, TemperatureC: 22, ObservedAt: observed},
		{City: "Overcast", CloudCoverPct: 100, TemperatureC: 18, ObservedAt: observed},
		{City: "Hot summer noon", CloudCoverPct: 5, TemperatureC: 41, ObservedAt: observed},
		{City: "Hot and hazy", CloudCoverPct: 55, TemperatureC: 38, ObservedAt: observed},
		{City: "Cool and bright", CloudCoverPct: 10, TemperatureC: 12, ObservedAt: observed},
	}

	calc := roi.New()

	fmt.Printf("System: %.2f kW rated, usage=%.0f kWh/month, tariff=%.2f/kWh\n\n",
		in.RatedPowerKw, in.MonthlyUsageKwh, in.TariffPerKwh)

	for _, snap := range scenarios {
		est, err := calc.Compute(in, snap)
		if err != nil {
			panic(err)
		}
		fmt.Printf(
			"%-24s clouds=%3.0f%%  temp=%5.1f°C  actual=%5.2f kW  monthly=%7.1f kWh  coverage=%3.0f%%  savings=%7.0f\n",
			snap.City,
			snap.CloudCoverPct,
			snap.TemperatureC,
			est.ActualPowerKw,
			est.MonthlyProductionKwh,
			est.CoveragePct,
			est.Savings,
		)
	}

	if *outCSV != "" {
		ref := scenarios[0]
		est, err := calc.Compute(in, ref)
		if err != nil {
			panic(err)
		}
		if err := os.MkdirAll(filepath.Dir(*outCSV), 0o755); err != nil {
			panic(err)
		}
		if err := roi.WriteReportCSV(*outCSV, roi.NewReport(ref, in, est)); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Println("\nDone.")
}
