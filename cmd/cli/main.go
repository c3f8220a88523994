package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"solar-roi/internal/analysis"
	"solar-roi/internal/config"
	"solar-roi/internal/model"
	"solar-roi/internal/roi"
	"solar-roi/internal/weather"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "estimate":
		cmdEstimate(os.Args[2:])
	case "sweep":
		cmdSweep(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli estimate --city Austin --system-kw 5 --usage 350 --tariff 8 [--out results/report.csv]")
	fmt.Println("  cli estimate --config examples/config.yaml")
	fmt.Println("  cli sweep --city Austin --usage 750 --tariff 8 --sizes 2,5,10")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - estimate prints environmental, system and financial sections for one city")
	fmt.Println("  - sweep ranks candidate system sizes by monthly savings")
	fmt.Println("  - both commands read OPENWEATHER_KEY from the environment (.env is loaded if present)")
}

func cmdEstimate(args []string) {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	city := fs.String("city", "", "City to query (e.g. Austin or Berlin,DE)")
	systemKw := fs.Float64("system-kw", 5.0, "Rated system power in kW")
	usageKwh := fs.Float64("usage", 350, "Monthly usage in kWh")
	tariff := fs.Float64("tariff", 8.0, "Tariff per kWh")
	outPath := fs.String("out", "", "Optional CSV report path")
	jsonPath := fs.String("json", "", "Optional JSON report path")
	_ = fs.Parse(args)

	cfg := &config.Config{}
	if *cfgPath != "" {
		loaded, err := config.LoadUnchecked(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
		// Explicit flags override config file values.
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "system-kw":
				cfg.System.RatedPowerKw = *systemKw
			case "usage":
				cfg.Usage.MonthlyUsageKwh = *usageKwh
			case "tariff":
				cfg.Usage.TariffPerKwh = *tariff
			}
		})
	} else {
		cfg.System.RatedPowerKw = *systemKw
		cfg.Usage.MonthlyUsageKwh = *usageKwh
		cfg.Usage.TariffPerKwh = *tariff
	}
	if *city != "" {
		cfg.City = *city
	}

	// Validate before touching the network.
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	snap := fetchWeather(cfg.City)

	in := cfg.ToInputs()
	est, err := roi.New().Compute(in, *snap)
	if err != nil {
		panic(err)
	}

	printEstimate(cfg, *snap, in, est)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			panic(err)
		}
		if err := roi.WriteReportCSV(*outPath, roi.NewReport(*snap, in, est)); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV report: %s\n", *outPath)
	}
	if *jsonPath != "" {
		if err := os.MkdirAll(filepath.Dir(*jsonPath), 0o755); err != nil {
			panic(err)
		}
		if err := roi.WriteReportJSON(*jsonPath, roi.NewReport(*snap, in, est)); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote JSON report: %s\n", *jsonPath)
	}
}

func cmdSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	city := fs.String("city", "", "City to query")
	usageKwh := fs.Float64("usage", 750, "Monthly usage in kWh")
	tariff := fs.Float64("tariff", 8.0, "Tariff per kWh")
	sizesFlag := fs.String("sizes", "2,3,5,7,10,15", "Comma-separated candidate sizes in kW")
	_ = fs.Parse(args)

	if *city == "" {
		fmt.Println("--city is required")
		os.Exit(2)
	}

	sizes, err := splitSizes(*sizesFlag)
	if err != nil {
		fmt.Printf("invalid --sizes: %v\n", err)
		os.Exit(2)
	}

	in := model.EstimateInputs{
		RatedPowerKw:    1, // per-size values come from the sweep
		MonthlyUsageKwh: *usageKwh,
		TariffPerKwh:    *tariff,
	}
	if err := in.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	snap := fetchWeather(*city)

	outcomes, err := analysis.Sweep(roi.New(), in, *snap, sizes)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	ranked := analysis.RankBySavings(outcomes)

	sky := model.SkyFromCloudCover(snap.CloudCoverPct)
	fmt.Printf("Sweep for %s: clouds=%.0f%% (%s), temp=%.1f°C, usage=%.0f kWh, tariff=%.2f\n\n",
		snap.City, snap.CloudCoverPct, sky, snap.TemperatureC, in.MonthlyUsageKwh, in.TariffPerKwh)

	fmt.Printf("%-4s %-8s %-10s %-12s %-9s %-10s %-10s\n",
		"rank", "size_kw", "actual_kw", "monthly_kwh", "coverage", "new_bill", "savings")
	for i, r := range ranked {
		fmt.Printf("%-4d %-8.2f %-10.2f %-12.1f %-8.0f%% %-10.0f %-10.0f\n",
			i+1,
			r.RatedPowerKw,
			r.ActualPowerKw,
			r.MonthlyProductionKwh,
			r.CoveragePct,
			r.NewBill,
			r.Savings,
		)
	}

	if size, ok := analysis.FullCoverageSizeKw(in, *snap); ok && size > 0 {
		fmt.Printf("\nFull coverage under current conditions at %.2f kW\n", size)
	}
}

// fetchWeather resolves the API key, queries the provider, and exits with a
// user-facing message on failure.
func fetchWeather(city string) *model.WeatherSnapshot {
	_ = godotenv.Load() // optional .env for local runs

	apiKey := os.Getenv("OPENWEATHER_KEY")
	if apiKey == "" {
		log.Fatal("OPENWEATHER_KEY environment variable is required")
	}

	client := weather.NewClient(apiKey, os.Getenv("OPENWEATHER_BASE_URL"))
	snap, err := client.FetchCurrent(context.Background(), city)
	if err != nil {
		if errors.Is(err, weather.ErrLocationNotFound) {
			fmt.Printf("City %q not found. Please check the spelling and try again.\n", city)
			os.Exit(1)
		}
		fmt.Printf("Connection error: %v\n", err)
		os.Exit(1)
	}
	return snap
}

func printEstimate(cfg *config.Config, snap model.WeatherSnapshot, in model.EstimateInputs, est *roi.Estimate) {
	sky := model.SkyFromCloudCover(snap.CloudCoverPct)

	fmt.Printf("1. Environmental Analysis for %s\n", snap.City)
	fmt.Printf("   Location:          %.2f, %.2f\n", snap.Latitude, snap.Longitude)
	fmt.Printf("   Cloud Cover:       %.0f%% (%s)\n", snap.CloudCoverPct, sky)
	fmt.Printf("   Temperature:       %.1f°C\n", snap.TemperatureC)
	fmt.Printf("   Real-Time Output:  %.2f kW (%+.2f kW vs rated)\n",
		est.ActualPowerKw, est.ActualPowerKw-in.RatedPowerKw)
	fmt.Println()

	fmt.Println("2. System Performance (Rated vs Actual)")
	if cfg.System.Name != "" {
		fmt.Printf("   System:            %s\n", cfg.System.Name)
	}
	fmt.Printf("   Rated Power:       %.2f kW (measured at 25°C)\n", in.RatedPowerKw)
	fmt.Printf("   Cloud Loss:        %.0f%% of the sky is covered\n", snap.CloudCoverPct)
	fmt.Printf("   Thermal Loss:      %.1f%%\n", est.HeatLoss*100)
	fmt.Printf("   Actual Output:     %.2f kW\n", est.ActualPowerKw)
	fmt.Printf("   Daily Production:  %.1f kWh\n", est.DailyProductionKwh)
	fmt.Printf("   Monthly Production: %.1f kWh\n", est.MonthlyProductionKwh)
	fmt.Println()

	fmt.Println("3. Financial Impact Analysis")
	fmt.Printf("   Current Monthly Bill: %.0f\n", est.OldBill)
	fmt.Printf("   New Bill:             %.0f (-%.0f)\n", est.NewBill, est.Savings)
	fmt.Printf("   Est. Monthly Savings: %.0f\n", est.Savings)
	if est.Savings > 0 {
		fmt.Printf("   This system covers %.0f%% of your energy needs.\n", est.CoveragePct)
	}
}

func splitSizes(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sizes provided")
	}
	return out, nil
}
