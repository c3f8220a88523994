package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solar-roi/internal/api/models"
	"solar-roi/internal/metrics"
	"solar-roi/internal/weather"
)

// WeatherHandler exposes the raw observation without running an estimate
type WeatherHandler struct {
	weather   *weather.Client
	collector *metrics.Collector
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weatherClient *weather.Client, collector *metrics.Collector) *WeatherHandler {
	return &WeatherHandler{weather: weatherClient, collector: collector}
}

// GetCurrent handles GET /api/v1/weather
func (h *WeatherHandler) GetCurrent(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "city query parameter is required",
			},
		})
		return
	}

	snap, err := h.weather.FetchCurrent(c.Request.Context(), city)
	if err != nil {
		respondWeatherError(c, h.collector, city, err)
		return
	}
	h.collector.RecordWeatherFetch("ok")

	c.JSON(http.StatusOK, gin.H{"weather": buildWeatherReport(*snap)})
}
