package roi

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"solar-roi/internal/model"
)

// Report flattens one observation, its inputs, and the derived estimate
// into an exportable record. Keep the field order stable; it is the CSV
// column order.
type Report struct {
	City          string  `json:"city"`
	ObservedAt    string  `json:"observed_at,omitempty"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	CloudCoverPct float64 `json:"cloud_cover_pct"`
	TemperatureC  float64 `json:"temperature_c"`
	Sky           string  `json:"sky"`

	RatedPowerKw    float64 `json:"rated_power_kw"`
	MonthlyUsageKwh float64 `json:"monthly_usage_kwh"`
	TariffPerKwh    float64 `json:"tariff_per_kwh"`

	CloudEfficiency      float64 `json:"cloud_efficiency"`
	TempEfficiency       float64 `json:"temp_efficiency"`
	HeatLoss             float64 `json:"heat_loss"`
	ActualPowerKw        float64 `json:"actual_power_kw"`
	DailyProductionKwh   float64 `json:"daily_production_kwh"`
	MonthlyProductionKwh float64 `json:"monthly_production_kwh"`
	NetUsageKwh          float64 `json:"net_usage_kwh"`
	OldBill              float64 `json:"old_bill"`
	NewBill              float64 `json:"new_bill"`
	Savings              float64 `json:"savings"`
	CoveragePct          float64 `json:"coverage_pct"`
}

func NewReport(snap model.WeatherSnapshot, in model.EstimateInputs, est *Estimate) Report {
	return Report{
		City:          snap.City,
		ObservedAt:    fmtTime(snap.ObservedAt),
		Latitude:      snap.Latitude,
		Longitude:     snap.Longitude,
		CloudCoverPct: snap.CloudCoverPct,
		TemperatureC:  snap.TemperatureC,
		Sky:           string(model.SkyFromCloudCover(snap.CloudCoverPct)),

		RatedPowerKw:    in.RatedPowerKw,
		MonthlyUsageKwh: in.MonthlyUsageKwh,
		TariffPerKwh:    in.TariffPerKwh,

		CloudEfficiency:      est.CloudEfficiency,
		TempEfficiency:       est.TempEfficiency,
		HeatLoss:             est.HeatLoss,
		ActualPowerKw:        est.ActualPowerKw,
		DailyProductionKwh:   est.DailyProductionKwh,
		MonthlyProductionKwh: est.MonthlyProductionKwh,
		NetUsageKwh:          est.NetUsageKwh,
		OldBill:              est.OldBill,
		NewBill:              est.NewBill,
		Savings:              est.Savings,
		CoveragePct:          est.CoveragePct,
	}
}

func WriteReportCSV(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"city",
		"observed_at",
		"latitude",
		"longitude",
		"cloud_cover_pct",
		"temperature_c",
		"sky",
		"rated_power_kw",
		"monthly_usage_kwh",
		"tariff_per_kwh",
		"cloud_efficiency",
		"temp_efficiency",
		"heat_loss",
		"actual_power_kw",
		"daily_production_kwh",
		"monthly_production_kwh",
		"net_usage_kwh",
		"old_bill",
		"new_bill",
		"savings",
		"coverage_pct",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := []string{
		r.City,
		r.ObservedAt,
		fmtFloat(r.Latitude),
		fmtFloat(r.Longitude),
		fmtFloat(r.CloudCoverPct),
		fmtFloat(r.TemperatureC),
		r.Sky,
		fmtFloat(r.RatedPowerKw),
		fmtFloat(r.MonthlyUsageKwh),
		fmtFloat(r.TariffPerKwh),
		fmtFloat(r.CloudEfficiency),
		fmtFloat(r.TempEfficiency),
		fmtFloat(r.HeatLoss),
		fmtFloat(r.ActualPowerKw),
		fmtFloat(r.DailyProductionKwh),
		fmtFloat(r.MonthlyProductionKwh),
		fmtFloat(r.NetUsageKwh),
		fmtFloat(r.OldBill),
		fmtFloat(r.NewBill),
		fmtFloat(r.Savings),
		fmtFloat(r.CoveragePct),
	}
	if err := w.Write(row); err != nil {
		return err
	}

	return w.Error()
}

func WriteReportJSON(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
