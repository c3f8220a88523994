package model

import (
	"errors"
	"math"
	"time"
)

// CurrentWeatherResponse matches the JSON shape of the OpenWeatherMap
// current-weather endpoint (/data/2.5/weather).
//
// Example:
//
//	{
//	  "coord": {"lon": 77.21, "lat": 28.61},
//	  "main": {"temp": 303.15},
//	  "clouds": {"all": 40},
//	  "dt": 1718100000,
//	  "name": "Delhi"
//	}
//
// Temperatures arrive in Kelvin; only Snapshot converts them, so nothing
// downstream ever sees Kelvin.
type CurrentWeatherResponse struct {
	Coord struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"coord"`
	Main struct {
		TempK float64 `json:"temp"`
	} `json:"main"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Dt   int64  `json:"dt"`
	Name string `json:"name"`
}

const kelvinOffset = 273.15

func KelvinToCelsius(k float64) float64 {
	return k - kelvinOffset
}

// WeatherSnapshot is the single observation an estimate is computed from.
// Units:
// - CloudCoverPct: percent 0..100
// - TemperatureC: degrees Celsius (ambient)
// - Latitude/Longitude: decimal degrees, carried for display only
type WeatherSnapshot struct {
	City          string
	CloudCoverPct float64
	TemperatureC  float64
	Latitude      float64
	Longitude     float64
	ObservedAt    time.Time
}

// Snapshot converts the wire response into the domain record.
func (r CurrentWeatherResponse) Snapshot() WeatherSnapshot {
	var observed time.Time
	if r.Dt > 0 {
		observed = time.Unix(r.Dt, 0).UTC()
	}
	return WeatherSnapshot{
		City:          r.Name,
		CloudCoverPct: r.Clouds.All,
		TemperatureC:  KelvinToCelsius(r.Main.TempK),
		Latitude:      r.Coord.Lat,
		Longitude:     r.Coord.Lon,
		ObservedAt:    observed,
	}
}

// Validate rejects readings outside the provider's documented ranges.
// A cloud cover outside [0,100] is upstream data corruption, not something
// to clamp and carry forward.
func (s WeatherSnapshot) Validate() error {
	if !(s.CloudCoverPct >= 0 && s.CloudCoverPct <= 100) {
		return errors.New("CloudCoverPct must be in [0, 100]")
	}
	if math.IsNaN(s.TemperatureC) || math.IsInf(s.TemperatureC, 0) {
		return errors.New("TemperatureC must be a finite number")
	}
	return nil
}
