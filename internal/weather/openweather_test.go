package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testAPIKey = "0123456789abcdef0123456789abcdef"

func TestFetchCurrent(t *testing.T) {
	var gotQuery, gotAppID, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotAppID = r.URL.Query().Get("appid")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"coord": {"lon": 77.21, "lat": 28.61},
			"main": {"temp": 318.15},
			"clouds": {"all": 20},
			"dt": 1718100000,
			"name": "Delhi"
		}`))
	}))
	defer srv.Close()

	c := NewClient(testAPIKey, srv.URL)
	snap, err := c.FetchCurrent(context.Background(), "Delhi")
	if err != nil {
		t.Fatalf("FetchCurrent() error = %v", err)
	}

	if gotPath != "/data/2.5/weather" {
		t.Errorf("path = %q, want /data/2.5/weather", gotPath)
	}
	if gotQuery != "Delhi" {
		t.Errorf("q = %q, want Delhi", gotQuery)
	}
	if gotAppID != testAPIKey {
		t.Errorf("appid = %q, want the configured key", gotAppID)
	}

	if snap.City != "Delhi" {
		t.Errorf("City = %q, want Delhi", snap.City)
	}
	if snap.CloudCoverPct != 20 {
		t.Errorf("CloudCoverPct = %v, want 20", snap.CloudCoverPct)
	}
	// 318.15 K is exactly 45°C.
	if snap.TemperatureC != 45 {
		t.Errorf("TemperatureC = %v, want 45", snap.TemperatureC)
	}
	if snap.Latitude != 28.61 || snap.Longitude != 77.21 {
		t.Errorf("coords = (%v, %v), want (28.61, 77.21)", snap.Latitude, snap.Longitude)
	}
	if want := time.Unix(1718100000, 0).UTC(); !snap.ObservedAt.Equal(want) {
		t.Errorf("ObservedAt = %v, want %v", snap.ObservedAt, want)
	}
}

func TestFetchCurrentLocationNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
	}))
	defer srv.Close()

	c := NewClient(testAPIKey, srv.URL)
	snap, err := c.FetchCurrent(context.Background(), "Atlantis")
	if snap != nil {
		t.Errorf("snapshot = %+v, want nil on 404", snap)
	}
	if !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("error = %v, want ErrLocationNotFound", err)
	}
}

func TestFetchCurrentUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(testAPIKey, srv.URL)
	_, err := c.FetchCurrent(context.Background(), "Delhi")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Code != "INVALID_API_KEY" {
		t.Errorf("Code = %q, want INVALID_API_KEY", apiErr.Code)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
}

func TestFetchCurrentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testAPIKey, srv.URL)
	_, err := c.FetchCurrent(context.Background(), "Delhi")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Code != "UPSTREAM_ERROR" {
		t.Errorf("Code = %q, want UPSTREAM_ERROR", apiErr.Code)
	}
}

func TestFetchCurrentBreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(testAPIKey, srv.URL)

	// The breaker trips after more than five consecutive failures; every
	// call before that reports the upstream error itself.
	for i := 0; i < 6; i++ {
		_, err := c.FetchCurrent(context.Background(), "Delhi")
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Code != "UPSTREAM_ERROR" {
			t.Fatalf("call %d: error = %v, want UPSTREAM_ERROR", i+1, err)
		}
	}

	_, err := c.FetchCurrent(context.Background(), "Delhi")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError once open", err)
	}
	if apiErr.Code != "WEATHER_UNAVAILABLE" {
		t.Errorf("Code = %q, want WEATHER_UNAVAILABLE after breaker opens", apiErr.Code)
	}
}

func TestFetchCurrentRejectsBeforeNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	// Missing API key.
	c := NewClient("", srv.URL)
	_, err := c.FetchCurrent(context.Background(), "Delhi")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "MISSING_API_KEY" {
		t.Fatalf("error = %v, want MISSING_API_KEY", err)
	}

	// Obviously malformed key.
	c = NewClient("short", srv.URL)
	_, err = c.FetchCurrent(context.Background(), "Delhi")
	if !errors.As(err, &apiErr) || apiErr.Code != "INVALID_API_KEY_FORMAT" {
		t.Fatalf("error = %v, want INVALID_API_KEY_FORMAT", err)
	}

	// Blank city.
	c = NewClient(testAPIKey, srv.URL)
	if _, err := c.FetchCurrent(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank city")
	}

	if requests != 0 {
		t.Errorf("server saw %d requests, want 0 for pre-network rejections", requests)
	}
}

func TestFetchCurrentBadPayload(t *testing.T) {
	t.Run("malformed JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"clouds": {`))
		}))
		defer srv.Close()

		c := NewClient(testAPIKey, srv.URL)
		if _, err := c.FetchCurrent(context.Background(), "Delhi"); err == nil {
			t.Fatal("expected decode error")
		}
	})

	t.Run("cloud cover out of range", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"main": {"temp": 300}, "clouds": {"all": 150}, "name": "Delhi"}`))
		}))
		defer srv.Close()

		c := NewClient(testAPIKey, srv.URL)
		if _, err := c.FetchCurrent(context.Background(), "Delhi"); err == nil {
			t.Fatal("expected validation error for cloud cover above 100")
		}
	})
}
