package models

import "time"

// EstimateResponse represents the response from a savings estimate
type EstimateResponse struct {
	ID      string          `json:"id,omitempty"`
	Status  string          `json:"status"`
	Weather WeatherReport   `json:"weather"`
	Summary EstimateSummary `json:"summary"`
}

// WeatherReport describes the observation an estimate was computed from
type WeatherReport struct {
	City          string    `json:"city"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	CloudCoverPct float64   `json:"cloud_cover_pct"`
	TemperatureC  float64   `json:"temperature_c"`
	Sky           string    `json:"sky"` // "clear", "partly_cloudy", "overcast"
	ObservedAt    time.Time `json:"observed_at"`
}

// EstimateSummary contains production and billing figures for one projected month
type EstimateSummary struct {
	SystemName           string  `json:"system_name,omitempty"`
	RatedPowerKw         float64 `json:"rated_power_kw"`
	CloudEfficiency      float64 `json:"cloud_efficiency"`
	TempEfficiency       float64 `json:"temp_efficiency"`
	HeatLoss             float64 `json:"heat_loss"`
	ActualPowerKw        float64 `json:"actual_power_kw"`
	DailyProductionKwh   float64 `json:"daily_production_kwh"`
	MonthlyProductionKwh float64 `json:"monthly_production_kwh"`
	MonthlyUsageKwh      float64 `json:"monthly_usage_kwh"`
	NetUsageKwh          float64 `json:"net_usage_kwh"`
	TariffPerKwh         float64 `json:"tariff_per_kwh"`
	OldBill              float64 `json:"old_bill"`
	NewBill              float64 `json:"new_bill"`
	Savings              float64 `json:"savings"`
	CoveragePct          float64 `json:"coverage_pct"`
}

// CompareEstimateResponse represents the response from a comparison
type CompareEstimateResponse struct {
	Weather    WeatherReport      `json:"weather"`
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name    string          `json:"name"`
	Summary EstimateSummary `json:"summary"`
}

// SweepResponse represents the response from a size sweep
type SweepResponse struct {
	Weather            WeatherReport `json:"weather"`
	Results            []SweepResult `json:"results"`
	FullCoverageSizeKw float64       `json:"full_coverage_size_kw,omitempty"`
}

// SweepResult contains the outcome for one candidate size
type SweepResult struct {
	Rank                 int     `json:"rank"`
	RatedPowerKw         float64 `json:"rated_power_kw"`
	ActualPowerKw        float64 `json:"actual_power_kw"`
	MonthlyProductionKwh float64 `json:"monthly_production_kwh"`
	NetUsageKwh          float64 `json:"net_usage_kwh"`
	CoveragePct          float64 `json:"coverage_pct"`
	NewBill              float64 `json:"new_bill"`
	Savings              float64 `json:"savings"`
}

// SystemInfo represents information about a system preset
type SystemInfo struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	File  string      `json:"file"`
	Specs SystemSpecs `json:"specs"`
}

// SystemSpecs contains system specifications
type SystemSpecs struct {
	RatedPowerKw float64 `json:"rated_power_kw"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
