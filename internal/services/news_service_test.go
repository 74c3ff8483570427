package services_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"dashboard/internal/services"
	"dashboard/pkg/newsapi"

	"github.com/stretchr/testify/assert"
)

const headlinesPayload = `{"status":"ok","totalResults":1,"articles":[{"title":"Example headline","source":{"name":"Example"}}]}`

func newNewsService(baseURL, apiKey, country string) *services.NewsService {
	client := newsapi.NewClient(newsapi.Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: 2 * time.Second,
	})
	return services.NewNewsService(client, apiKey, country)
}

func TestNewsService_NotConfigured(t *testing.T) {
	srv, hits := newUpstream(http.StatusOK, headlinesPayload)
	defer srv.Close()
	service := newNewsService(srv.URL, "", "us")

	_, err := service.TopHeadlines(context.Background())
	assert.ErrorIs(t, err, services.ErrNotConfigured)
	// The missing key is detected before any network call
	assert.Equal(t, int64(0), atomic.LoadInt64(hits))
}

func TestNewsService_Passthrough(t *testing.T) {
	srv, hits := newUpstream(http.StatusOK, headlinesPayload)
	defer srv.Close()
	service := newNewsService(srv.URL, "test_key", "us")

	body, err := service.TopHeadlines(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, headlinesPayload, string(body))
	assert.Equal(t, int64(1), atomic.LoadInt64(hits))
}

func TestNewsService_ProviderErrorStatusBody(t *testing.T) {
	// NewsAPI reports some failures as HTTP 200 with status "error"; that
	// must surface as a failure, not a 200 passthrough.
	srv, _ := newUpstream(http.StatusOK, `{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid"}`)
	defer srv.Close()
	service := newNewsService(srv.URL, "bad_key", "us")

	_, err := service.TopHeadlines(context.Background())
	assert.ErrorIs(t, err, services.ErrUpstream)
	assert.Contains(t, err.Error(), "Your API key is invalid")
}

func TestNewsService_ProviderUnreachable(t *testing.T) {
	srv, _ := newUpstream(http.StatusOK, headlinesPayload)
	srv.Close()

	service := newNewsService(srv.URL, "test_key", "us")

	_, err := service.TopHeadlines(context.Background())
	assert.ErrorIs(t, err, services.ErrUpstreamUnavailable)
}
