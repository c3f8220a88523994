package roi

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"solar-roi/internal/model"
)

func TestWriteReportCSV(t *testing.T) {
	snap := model.WeatherSnapshot{
		City:          "Austin",
		CloudCoverPct: 40,
		TemperatureC:  30,
		Latitude:      30.27,
		Longitude:     -97.74,
		ObservedAt:    time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC),
	}
	in := model.EstimateInputs{RatedPowerKw: 5, MonthlyUsageKwh: 350, TariffPerKwh: 8}
	est, err := New().Compute(in, snap)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.csv")
	if err := WriteReportCSV(path, NewReport(snap, in, est)); err != nil {
		t.Fatalf("WriteReportCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1 record", len(rows))
	}
	if len(rows[0]) != len(rows[1]) {
		t.Fatalf("header has %d columns, record has %d", len(rows[0]), len(rows[1]))
	}
	if rows[0][0] != "city" || rows[1][0] != "Austin" {
		t.Errorf("city column = %q/%q", rows[0][0], rows[1][0])
	}
	if rows[1][6] != "partly_cloudy" {
		t.Errorf("sky column = %q, want partly_cloudy", rows[1][6])
	}
	if rows[1][1] != "2024-06-12T10:00:00Z" {
		t.Errorf("observed_at column = %q", rows[1][1])
	}
}

func TestWriteReportJSON(t *testing.T) {
	snap := model.WeatherSnapshot{City: "Berlin", CloudCoverPct: 0, TemperatureC: 25}
	in := model.EstimateInputs{RatedPowerKw: 5, MonthlyUsageKwh: 750, TariffPerKwh: 8}
	est, err := New().Compute(in, snap)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteReportJSON(path, NewReport(snap, in, est)); err != nil {
		t.Fatalf("WriteReportJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["city"] != "Berlin" {
		t.Errorf("city = %v", got["city"])
	}
	if got["coverage_pct"] != 100.0 {
		t.Errorf("coverage_pct = %v, want 100", got["coverage_pct"])
	}
	// Zero observation time is omitted, not emitted as an empty string.
	if _, present := got["observed_at"]; present {
		t.Error("observed_at should be omitted for a zero time")
	}
}
