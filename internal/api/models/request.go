package models

// EstimateRequest represents the request body for a savings estimate
type EstimateRequest struct {
	City   string         `json:"city" binding:"required"` // passed verbatim to the weather provider
	Config EstimateConfig `json:"config" binding:"required"`
}

// EstimateConfig contains system and usage configuration
type EstimateConfig struct {
	SystemFile string       `json:"system_file,omitempty"`
	System     SystemConfig `json:"system,omitempty"`
	Usage      UsageConfig  `json:"usage"`
}

// SystemConfig defines PV system parameters
type SystemConfig struct {
	Name         string  `json:"name,omitempty"`
	RatedPowerKw float64 `json:"rated_power_kw"`
}

// UsageConfig defines household consumption and billing
type UsageConfig struct {
	MonthlyUsageKwh float64 `json:"monthly_usage_kwh"`
	TariffPerKwh    float64 `json:"tariff_per_kwh"`
}

// CompareEstimateRequest represents a request to compare multiple system
// configurations against the same weather observation
type CompareEstimateRequest struct {
	City       string              `json:"city" binding:"required"`
	BaseConfig EstimateConfig      `json:"base_config" binding:"required"`
	Variations []EstimateVariation `json:"variations" binding:"required"`
}

// EstimateVariation defines a variation to test
type EstimateVariation struct {
	Name   string         `json:"name" binding:"required"`
	Config EstimateConfig `json:"config" binding:"required"`
}

// SweepRequest represents a request to sweep candidate system sizes
type SweepRequest struct {
	City            string  `form:"city" binding:"required"`
	MonthlyUsageKwh float64 `form:"monthly_usage_kwh"`
	TariffPerKwh    float64 `form:"tariff_per_kwh"`
	Sizes           string  `form:"sizes,omitempty"` // comma-separated kW values
}
