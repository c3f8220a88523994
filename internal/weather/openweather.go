package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"solar-roi/internal/model"
)

var validate = validator.New()

// ErrLocationNotFound is returned when the provider does not recognize the
// requested city. It is a terminal answer, not a transport failure; callers
// should tell the user to check the spelling rather than retry.
var ErrLocationNotFound = errors.New("location not found")

// APIError represents an error from the OpenWeatherMap API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *APIError) Error() string {
	return e.Message
}

// Client fetches current weather observations from OpenWeatherMap.
// The API key is injected here; nothing else in the program touches it.
type Client struct {
	APIKey  string
	BaseURL string
	Client  *http.Client

	breaker *gobreaker.CircuitBreaker
}

// NewClient creates an OpenWeatherMap client.
// If baseURL is empty, defaults to "https://api.openweathermap.org".
func NewClient(apiKey string, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org"
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openweather",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// FetchCurrent fetches the current weather observation for a city.
// Exactly one request is made per call; there is no retry loop. The circuit
// breaker only short-circuits calls while the upstream is repeatedly failing.
//
// Caching, if enabled (ENABLE_WEATHER_CACHE=true), is for LOCAL DEVELOPMENT
// only and is disabled when API_ENV=production.
func (c *Client) FetchCurrent(ctx context.Context, city string) (*model.WeatherSnapshot, error) {
	if err := c.validateAPIKey(); err != nil {
		return nil, err
	}
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("city is required")
	}

	if cache := GetCache(); cache != nil {
		if cached, found := cache.Get(CacheKey(city)); found {
			log.Printf("[OpenWeather] Cache hit: Using cached observation (city=%s, observed_at=%s)",
				city, cached.ObservedAt.Format(time.RFC3339))
			return cached, nil
		}
	}

	u, err := url.Parse(c.BaseURL + "/data/2.5/weather")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("appid", c.APIKey)
	u.RawQuery = q.Encode()

	// Log the path only; the query string carries the API key.
	log.Printf("[OpenWeather] Request: GET %s (city=%s)", u.Path, city)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.do(req)
	duration := time.Since(startTime)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.Printf("[OpenWeather] Circuit open: skipping request (city=%s)", city)
			return nil, &APIError{
				Code:    "WEATHER_UNAVAILABLE",
				Message: "weather service temporarily unavailable",
			}
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			log.Printf("[OpenWeather] Error: %d %s (city=%s, duration: %v)", apiErr.StatusCode, apiErr.Code, city, duration)
			return nil, apiErr
		}
		log.Printf("[OpenWeather] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[OpenWeather] Response: %d %s (duration: %v, city=%s)",
		resp.StatusCode, resp.Status, duration, city)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue
	case http.StatusNotFound:
		// 404: the city name is not known to the provider
		log.Printf("[OpenWeather] Error: 404 Not Found (city=%s)", city)
		return nil, fmt.Errorf("city %q: %w", city, ErrLocationNotFound)
	case http.StatusUnauthorized:
		log.Printf("[OpenWeather] Error: 401 Unauthorized - Invalid API key (city=%s)", city)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "Unauthorized: Invalid API key",
		}
	case http.StatusForbidden:
		log.Printf("[OpenWeather] Error: 403 Forbidden - Invalid API key or insufficient permissions (city=%s)", city)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "Invalid API key or insufficient permissions",
		}
	default:
		log.Printf("[OpenWeather] Error: %d %s (city=%s)", resp.StatusCode, resp.Status, city)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var result model.CurrentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("[OpenWeather] Error decoding response: %v (city=%s)", err, city)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	snap := result.Snapshot()
	if snap.City == "" {
		snap.City = city
	}
	if err := snap.Validate(); err != nil {
		log.Printf("[OpenWeather] Error: bad observation: %v (city=%s)", err, city)
		return nil, fmt.Errorf("bad observation from provider: %w", err)
	}

	log.Printf("[OpenWeather] Success: clouds=%.0f%%, temp=%.1f°C (city=%s)",
		snap.CloudCoverPct, snap.TemperatureC, snap.City)

	if cache := GetCache(); cache != nil {
		cache.Set(CacheKey(city), &snap)
		log.Printf("[OpenWeather] Cached observation (city=%s)", city)
	}

	return &snap, nil
}

// do executes the request through the circuit breaker. Network failures,
// rate limiting, and 5xx responses count against the breaker; other
// statuses are answers, not failures.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.Client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := resp.Header.Get("Retry-After")
			resp.Body.Close()
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Code:       "RATE_LIMIT_EXCEEDED",
				Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
				RetryAfter: retryAfter,
			}
		}
		if resp.StatusCode >= 500 {
			status := resp.Status
			code := resp.StatusCode
			resp.Body.Close()
			return nil, &APIError{
				StatusCode: code,
				Code:       "UPSTREAM_ERROR",
				Message:    fmt.Sprintf("API returned status %d: %s", code, status),
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*http.Response), nil
}

// validateAPIKey validates that the API key is present and not obviously invalid
func (c *Client) validateAPIKey() error {
	if c.APIKey == "" {
		return &APIError{
			Code:    "MISSING_API_KEY",
			Message: "API key is required",
		}
	}
	// OpenWeatherMap keys are 32-char hex strings.
	if err := validate.Var(c.APIKey, "hexadecimal,len=32"); err != nil {
		return &APIError{
			Code:    "INVALID_API_KEY_FORMAT",
			Message: "API key does not look like an OpenWeatherMap key",
		}
	}
	return nil
}
