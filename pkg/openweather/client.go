package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Config holds OpenWeatherMap connection details.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is a thin HTTP client for the OpenWeatherMap current-weather API.
// Responses are returned as raw JSON: the dashboard forwards provider
// payloads to the browser untouched.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ProviderError is returned when the provider answered the request but
// reported an application error (bad city, bad key) rather than weather data.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("openweather: %s (status %d)", e.Message, e.StatusCode)
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CurrentByCity fetches current weather for a city name, metric units.
func (c *Client) CurrentByCity(ctx context.Context, city string) ([]byte, error) {
	params := url.Values{}
	params.Set("q", city)
	return c.current(ctx, params)
}

// CurrentByCoords fetches current weather for a lat/lon pair, metric units.
// Coordinates are forwarded as received; the provider validates them.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon string) ([]byte, error) {
	params := url.Values{}
	params.Set("lat", lat)
	params.Set("lon", lon)
	return c.current(ctx, params)
}

func (c *Client) current(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("units", "metric")
	params.Set("appid", c.apiKey)

	reqURL := fmt.Sprintf("%s/weather?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call weather provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Message:    providerMessage(body),
		}
	}

	return body, nil
}

// providerMessage pulls the "message" field out of an error body, falling
// back to the raw body when it isn't the expected shape.
func providerMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}
