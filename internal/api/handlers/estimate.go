package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"solar-roi/internal/api/middleware"
	"solar-roi/internal/api/models"
	"solar-roi/internal/config"
	"solar-roi/internal/metrics"
	"solar-roi/internal/model"
	"solar-roi/internal/roi"
	"solar-roi/internal/weather"
)

// EstimateHandler handles estimate-related requests
type EstimateHandler struct {
	weather   *weather.Client
	calc      *roi.Calculator
	collector *metrics.Collector
}

// NewEstimateHandler creates a new estimate handler.
// The weather client carries the server-side provider key; requests never do.
func NewEstimateHandler(weatherClient *weather.Client, collector *metrics.Collector) *EstimateHandler {
	return &EstimateHandler{
		weather:   weatherClient,
		calc:      roi.New(),
		collector: collector,
	}
}

// RunEstimate handles POST /api/v1/estimate
func (h *EstimateHandler) RunEstimate(c *gin.Context) {
	var req models.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	// Resolve presets and validate before any network call
	cfg, err := h.buildConfig(req.Config)
	if err != nil {
		h.collector.RecordAPIError("INVALID_INPUT", c.FullPath())
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_INPUT",
				Message: err.Error(),
			},
		})
		return
	}
	in := cfg.ToInputs()
	if err := in.Validate(); err != nil {
		h.collector.RecordAPIError("INVALID_INPUT", c.FullPath())
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_INPUT",
				Message: err.Error(),
			},
		})
		return
	}

	// Fetch current weather
	snap, err := h.weather.FetchCurrent(c.Request.Context(), req.City)
	if err != nil {
		respondWeatherError(c, h.collector, req.City, err)
		return
	}
	h.collector.RecordWeatherFetch("ok")

	// Compute the estimate
	est, err := h.calc.Compute(in, *snap)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "ESTIMATE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	h.collector.RecordEstimate(est.Savings)

	c.JSON(http.StatusOK, models.EstimateResponse{
		ID:      c.GetString(middleware.RequestIDKey),
		Status:  "completed",
		Weather: buildWeatherReport(*snap),
		Summary: buildSummary(cfg.System.Name, in, est),
	})
}

// CompareEstimates handles POST /api/v1/estimate/compare
func (h *EstimateHandler) CompareEstimates(c *gin.Context) {
	var req models.CompareEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	// Fetch once; every variation is computed against the same observation
	snap, err := h.weather.FetchCurrent(c.Request.Context(), req.City)
	if err != nil {
		respondWeatherError(c, h.collector, req.City, err)
		return
	}
	h.collector.RecordWeatherFetch("ok")

	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, variation := range req.Variations {
		merged := mergeEstimateConfig(req.BaseConfig, variation.Config)

		cfg, err := h.buildConfig(merged)
		if err != nil {
			log.Printf("EstimateHandler: Skipping variation %q: %v", variation.Name, err)
			continue
		}
		in := cfg.ToInputs()
		if err := in.Validate(); err != nil {
			log.Printf("EstimateHandler: Skipping variation %q: %v", variation.Name, err)
			continue
		}

		est, err := h.calc.Compute(in, *snap)
		if err != nil {
			log.Printf("EstimateHandler: Skipping variation %q: %v", variation.Name, err)
			continue
		}
		h.collector.RecordEstimate(est.Savings)

		comparison = append(comparison, models.ComparisonResult{
			Name:    variation.Name,
			Summary: buildSummary(cfg.System.Name, in, est),
		})
	}

	c.JSON(http.StatusOK, models.CompareEstimateResponse{
		Weather:    buildWeatherReport(*snap),
		Comparison: comparison,
	})
}

// Helper methods

func (h *EstimateHandler) buildConfig(req models.EstimateConfig) (*config.Config, error) {
	cfg := &config.Config{
		SystemFile: req.SystemFile,
		System: config.SystemConfig{
			Name:         req.System.Name,
			RatedPowerKw: req.System.RatedPowerKw,
		},
		Usage: config.UsageConfig{
			MonthlyUsageKwh: req.Usage.MonthlyUsageKwh,
			TariffPerKwh:    req.Usage.TariffPerKwh,
		},
	}

	// If system_file is set, load the preset and merge request overrides onto it.
	// system_file is just the preset name (e.g. "rooftop_5kw"); files are always
	// looked up in the systems directory. Names carrying path separators never
	// reach the filesystem.
	if cfg.SystemFile != "" {
		if strings.ContainsAny(cfg.SystemFile, `/\`) || strings.Contains(cfg.SystemFile, "..") {
			return nil, fmt.Errorf("unknown system preset %q", cfg.SystemFile)
		}
		systemPath := filepath.Join(systemDir(), cfg.SystemFile+".yaml")
		loaded, err := config.LoadSystemFile(systemPath)
		if err != nil {
			log.Printf("EstimateHandler: Failed to load system file %s: %v", systemPath, err)
			return nil, fmt.Errorf("unknown system preset %q", cfg.SystemFile)
		}
		cfg.System = config.MergeSystem(loaded, cfg.System)
	}

	return cfg, nil
}

func mergeEstimateConfig(base, override models.EstimateConfig) models.EstimateConfig {
	merged := base
	if override.SystemFile != "" {
		merged.SystemFile = override.SystemFile
	}
	if override.System.Name != "" {
		merged.System.Name = override.System.Name
	}
	if override.System.RatedPowerKw != 0 {
		merged.System.RatedPowerKw = override.System.RatedPowerKw
	}
	if override.Usage.MonthlyUsageKwh != 0 {
		merged.Usage.MonthlyUsageKwh = override.Usage.MonthlyUsageKwh
	}
	if override.Usage.TariffPerKwh != 0 {
		merged.Usage.TariffPerKwh = override.Usage.TariffPerKwh
	}
	return merged
}

// systemDir resolves the directory holding system preset YAMLs.
// SYSTEM_DIR overrides the default examples/systems under the working directory.
func systemDir() string {
	dir := os.Getenv("SYSTEM_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "systems")
		} else {
			dir = "./examples/systems"
		}
	}
	return dir
}

// respondWeatherError translates a fetch failure into the API error contract.
// A 404 from the provider is an answer about the city, not a transport
// failure; credential, rate limit and upstream problems map to WEATHER_*
// codes on 401/429/502.
func respondWeatherError(c *gin.Context, collector *metrics.Collector, city string, err error) {
	endpoint := c.FullPath()

	if errors.Is(err, weather.ErrLocationNotFound) {
		collector.RecordWeatherFetch("not_found")
		collector.RecordAPIError("LOCATION_NOT_FOUND", endpoint)
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "LOCATION_NOT_FOUND",
				Message: fmt.Sprintf("City %q was not found. Check the spelling and try again.", city),
			},
		})
		return
	}

	var apiErr *weather.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadGateway
		code := "WEATHER_UPSTREAM_ERROR"
		outcome := "upstream_error"
		switch apiErr.Code {
		case "MISSING_API_KEY", "INVALID_API_KEY_FORMAT", "INVALID_API_KEY":
			status = http.StatusUnauthorized
			code = "WEATHER_AUTH_ERROR"
			outcome = "unauthorized"
		case "RATE_LIMIT_EXCEEDED":
			status = http.StatusTooManyRequests
			code = "WEATHER_RATE_LIMITED"
			outcome = "rate_limited"
		case "WEATHER_UNAVAILABLE":
			code = "WEATHER_UNAVAILABLE"
			outcome = "unavailable"
		}
		collector.RecordWeatherFetch(outcome)
		collector.RecordAPIError(code, endpoint)

		details := map[string]interface{}{
			"cause": apiErr.Code,
		}
		if apiErr.StatusCode != 0 {
			details["status_code"] = apiErr.StatusCode
		}
		if apiErr.RetryAfter != "" {
			details["retry_after"] = apiErr.RetryAfter
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: apiErr.Message,
				Details: details,
			},
		})
		return
	}

	// Network and decode failures
	collector.RecordWeatherFetch("upstream_error")
	collector.RecordAPIError("WEATHER_UPSTREAM_ERROR", endpoint)
	c.JSON(http.StatusBadGateway, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "WEATHER_UPSTREAM_ERROR",
			Message: err.Error(),
		},
	})
}

func buildWeatherReport(snap model.WeatherSnapshot) models.WeatherReport {
	return models.WeatherReport{
		City:          snap.City,
		Latitude:      snap.Latitude,
		Longitude:     snap.Longitude,
		CloudCoverPct: snap.CloudCoverPct,
		TemperatureC:  snap.TemperatureC,
		Sky:           string(model.SkyFromCloudCover(snap.CloudCoverPct)),
		ObservedAt:    snap.ObservedAt,
	}
}

func buildSummary(systemName string, in model.EstimateInputs, est *roi.Estimate) models.EstimateSummary {
	return models.EstimateSummary{
		SystemName:           systemName,
		RatedPowerKw:         in.RatedPowerKw,
		CloudEfficiency:      est.CloudEfficiency,
		TempEfficiency:       est.TempEfficiency,
		HeatLoss:             est.HeatLoss,
		ActualPowerKw:        est.ActualPowerKw,
		DailyProductionKwh:   est.DailyProductionKwh,
		MonthlyProductionKwh: est.MonthlyProductionKwh,
		MonthlyUsageKwh:      in.MonthlyUsageKwh,
		NetUsageKwh:          est.NetUsageKwh,
		TariffPerKwh:         in.TariffPerKwh,
		OldBill:              est.OldBill,
		NewBill:              est.NewBill,
		Savings:              est.Savings,
		CoveragePct:          est.CoveragePct,
	}
}
