package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"solar-roi/internal/api/models"
	"solar-roi/internal/weather"
)

func TestSweepRanksBySavings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, owmBody("Austin", 0, 25))
	}))
	defer server.Close()

	router := newTestRouter(weather.NewClient(testAPIKey, server.URL))

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/sweep?city=Austin&monthly_usage_kwh=750&tariff_per_kwh=8&sizes=2,5,10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp models.SweepResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("len(Results) = %d, want 3", len(resp.Results))
	}

	// Under clear skies at 25°C both 5 kW and 10 kW cover the full 750 kWh,
	// so their savings tie and the smaller system ranks first.
	if resp.Results[0].RatedPowerKw != 5 || resp.Results[0].Rank != 1 {
		t.Errorf("Results[0] = %+v, want 5 kW at rank 1", resp.Results[0])
	}
	if resp.Results[1].RatedPowerKw != 10 {
		t.Errorf("Results[1].RatedPowerKw = %v, want 10", resp.Results[1].RatedPowerKw)
	}
	if resp.Results[2].RatedPowerKw != 2 {
		t.Errorf("Results[2].RatedPowerKw = %v, want 2", resp.Results[2].RatedPowerKw)
	}
	inDelta(t, "top savings", resp.Results[0].Savings, 6000, 1e-6)
	inDelta(t, "2 kW savings", resp.Results[2].Savings, 2400, 1e-6)
	inDelta(t, "FullCoverageSizeKw", resp.FullCoverageSizeKw, 5, 1e-6)
}

func TestSweepRejectsBadQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider should not be called")
	}))
	defer server.Close()

	router := newTestRouter(weather.NewClient(testAPIKey, server.URL))

	tests := []struct {
		name     string
		query    string
		wantCode string
	}{
		{"missing city", "/api/v1/sweep?monthly_usage_kwh=750&tariff_per_kwh=8", "INVALID_REQUEST"},
		{"garbage sizes", "/api/v1/sweep?city=Austin&monthly_usage_kwh=750&tariff_per_kwh=8&sizes=abc", "INVALID_SIZES"},
		{"negative usage", "/api/v1/sweep?city=Austin&monthly_usage_kwh=-5&tariff_per_kwh=8", "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp models.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestGetCurrentWeather(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, owmBody("Berlin", 60, 18))
	}))
	defer server.Close()

	router := newTestRouter(weather.NewClient(testAPIKey, server.URL))

	t.Run("missing city", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("snapshot only", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Berlin", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Weather models.WeatherReport `json:"weather"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Weather.City != "Berlin" {
			t.Errorf("City = %q, want Berlin", resp.Weather.City)
		}
		inDelta(t, "CloudCoverPct", resp.Weather.CloudCoverPct, 60, 1e-9)
		inDelta(t, "TemperatureC", resp.Weather.TemperatureC, 18, 1e-6)
		if resp.Weather.Sky != "partly_cloudy" {
			t.Errorf("Sky = %q, want partly_cloudy", resp.Weather.Sky)
		}
	})
}

func TestListSystems(t *testing.T) {
	dir := t.TempDir()
	presets := map[string]string{
		"rooftop_5kw.yaml":  "system:\n  name: Rooftop 5 kW\n  rated_power_kw: 5\n",
		"ground_10kw.yaml":  "system:\n  name: Ground Mount 10 kW\n  rated_power_kw: 10\n",
		"ignore_me.txt":     "not yaml\n",
		"unparseable.yaml":  "system: [broken\n",
	}
	for name, content := range presets {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	t.Setenv("SYSTEM_DIR", dir)

	router := newTestRouter(weather.NewClient(testAPIKey, "http://localhost:0"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/systems", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Systems []models.SystemInfo `json:"systems"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// Directory entries come back sorted; the broken YAML and the txt file
	// are skipped.
	if len(resp.Systems) != 2 {
		t.Fatalf("len(Systems) = %d, want 2", len(resp.Systems))
	}
	if resp.Systems[0].ID != "ground_10kw" || resp.Systems[0].Name != "Ground Mount 10 kW" {
		t.Errorf("Systems[0] = %+v", resp.Systems[0])
	}
	if resp.Systems[1].ID != "rooftop_5kw" || resp.Systems[1].Specs.RatedPowerKw != 5 {
		t.Errorf("Systems[1] = %+v", resp.Systems[1])
	}
}
