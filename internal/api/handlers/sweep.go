package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"solar-roi/internal/analysis"
	"solar-roi/internal/api/models"
	"solar-roi/internal/metrics"
	"solar-roi/internal/model"
	"solar-roi/internal/roi"
	"solar-roi/internal/weather"
)

// defaultSweepSizesKw is used when the sizes query parameter is omitted.
var defaultSweepSizesKw = []float64{2, 3, 5, 7, 10, 15}

// SweepHandler handles system-size sweep requests
type SweepHandler struct {
	weather   *weather.Client
	calc      *roi.Calculator
	collector *metrics.Collector
}

// NewSweepHandler creates a new sweep handler
func NewSweepHandler(weatherClient *weather.Client, collector *metrics.Collector) *SweepHandler {
	return &SweepHandler{
		weather:   weatherClient,
		calc:      roi.New(),
		collector: collector,
	}
}

// SweepSizes handles GET /api/v1/sweep
func (h *SweepHandler) SweepSizes(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	// Parse candidate sizes if provided
	sizes := defaultSweepSizesKw
	if req.Sizes != "" {
		parsed, err := parseSizes(req.Sizes)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_SIZES",
					Message: "sizes must be comma-separated kW values (e.g. sizes=3,5,7.5)",
				},
			})
			return
		}
		sizes = parsed
	}

	// Usage and tariff must be valid before any network call. The rated
	// power is a placeholder here; the sweep substitutes each candidate.
	in := model.EstimateInputs{
		RatedPowerKw:    1,
		MonthlyUsageKwh: req.MonthlyUsageKwh,
		TariffPerKwh:    req.TariffPerKwh,
	}
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

	snap, err := h.weather.FetchCurrent(c.Request.Context(), req.City)
	if err != nil {
		respondWeatherError(c, h.collector, req.City, err)
		return
	}
	h.collector.RecordWeatherFetch("ok")

	outcomes, err := analysis.Sweep(h.calc, in, *snap, sizes)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_SIZES",
				Message: err.Error(),
			},
		})
		return
	}
	ranked := analysis.RankBySavings(outcomes)

	results := make([]models.SweepResult, len(ranked))
	for i, r := range ranked {
		results[i] = models.SweepResult{
			Rank:                 i + 1,
			RatedPowerKw:         r.RatedPowerKw,
			ActualPowerKw:        r.ActualPowerKw,
			MonthlyProductionKwh: r.MonthlyProductionKwh,
			NetUsageKwh:          r.NetUsageKwh,
			CoveragePct:          r.CoveragePct,
			NewBill:              r.NewBill,
			Savings:              r.Savings,
		}
	}

	resp := models.SweepResponse{
		Weather: buildWeatherReport(*snap),
		Results: results,
	}
	if size, ok := analysis.FullCoverageSizeKw(in, *snap); ok {
		resp.FullCoverageSizeKw = size
	}

	c.JSON(http.StatusOK, resp)
}

// parseSizes parses a comma-separated list of kW values
func parseSizes(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	sizes := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, v)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes provided")
	}
	return sizes, nil
}
