package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Config holds NewsAPI connection details.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is a thin HTTP client for the NewsAPI top-headlines endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ProviderError is returned when NewsAPI answered but flagged the request as
// failed. NewsAPI reports some failures as HTTP 200 with status "error" in
// the body, so the body is always inspected.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("newsapi: %s (status %d)", e.Message, e.StatusCode)
}

// NewClient creates a new NewsAPI client.
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

// TopHeadlines fetches top headlines for a country code and returns the raw
// JSON payload.
func (c *Client) TopHeadlines(ctx context.Context, country string) ([]byte, error) {
	params := url.Values{}
	params.Set("country", country)
	params.Set("apiKey", c.apiKey)

	reqURL := fmt.Sprintf("%s/top-headlines?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build news request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call news provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read news response: %w", err)
	}

	var status struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &status); err == nil && status.Status == "error" {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: status.Message}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	return body, nil
}
