package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"dashboard/pkg/newsapi"
)

// NewsService proxies top-headlines lookups to the news provider for a
// country fixed by configuration.
type NewsService struct {
	client  *newsapi.Client
	apiKey  string
	country string
}

// NewNewsService creates a new NewsService.
func NewNewsService(client *newsapi.Client, apiKey, country string) *NewsService {
	return &NewsService{
		client:  client,
		apiKey:  apiKey,
		country: country,
	}
}

// TopHeadlines fetches the provider's top headlines and returns the raw JSON
// payload. A missing API key fails before any network call. A provider
// payload flagged status "error" is surfaced as an upstream error rather
// than forwarded as a success.
func (s *NewsService) TopHeadlines(ctx context.Context) ([]byte, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("news: %w", ErrNotConfigured)
	}

	body, err := s.client.TopHeadlines(ctx, s.country)
	if err != nil {
		var pe *newsapi.ProviderError
		if errors.As(err, &pe) {
			log.Printf("News provider error: %v", pe)
			return nil, fmt.Errorf("%w: %s", ErrUpstream, pe.Message)
		}
		log.Printf("News provider unreachable: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	return body, nil
}
