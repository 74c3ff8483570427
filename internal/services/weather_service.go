package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"dashboard/internal/models"
	"dashboard/internal/repositories"
	"dashboard/pkg/openweather"
	"dashboard/pkg/rabbitmq"
)

// WeatherService proxies current-weather lookups to the provider and logs
// each lookup to the search log. The provider payload is passed through
// byte-for-byte: no field reshaping, no unit conversion.
type WeatherService struct {
	searchRepo repositories.SearchRepository
	client     *openweather.Client
	mqClient   *rabbitmq.Client // optional, may be nil
}

// NewWeatherService creates a new WeatherService. mqClient may be nil, in
// which case search events are not published.
func NewWeatherService(searchRepo repositories.SearchRepository, client *openweather.Client, mqClient *rabbitmq.Client) *WeatherService {
	return &WeatherService{
		searchRepo: searchRepo,
		client:     client,
		mqClient:   mqClient,
	}
}

// Fetch resolves current weather for either a city name or a lat/lon pair.
// Exactly one addressing mode is required; with neither present it fails
// before any network call. The search log is written first and its failures
// are swallowed: logging is diagnostic, never a reason to fail a lookup.
func (s *WeatherService) Fetch(ctx context.Context, city, lat, lon string) ([]byte, error) {
	byCity := city != ""
	byCoords := lat != "" && lon != ""
	if !byCity && !byCoords {
		return nil, ErrMissingLocation
	}

	s.logSearch(city, lat, lon)

	var (
		body []byte
		err  error
	)
	if byCity {
		body, err = s.client.CurrentByCity(ctx, city)
	} else {
		body, err = s.client.CurrentByCoords(ctx, lat, lon)
	}
	if err != nil {
		var pe *openweather.ProviderError
		if errors.As(err, &pe) {
			log.Printf("Weather provider error: %v", pe)
			return nil, fmt.Errorf("%w: %s", ErrUpstream, pe.Message)
		}
		log.Printf("Weather provider unreachable: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	return body, nil
}

// logSearch appends one search record and, when a broker is configured,
// publishes a matching search.logged event. Both are best-effort.
func (s *WeatherService) logSearch(city, lat, lon string) {
	search := &models.Search{
		City: city,
		Lat:  parseCoord(lat),
		Lon:  parseCoord(lon),
	}
	if search.City == "" {
		search.City = "Geolocation Lookup"
	}

	if err := s.searchRepo.Create(search); err != nil {
		log.Printf("Warning: failed to log search for %s: %v", search.City, err)
		return
	}

	if s.mqClient != nil {
		event := map[string]interface{}{
			"city":        search.City,
			"lat":         search.Lat,
			"lon":         search.Lon,
			"searched_at": search.SearchedAt,
		}
		if err := s.mqClient.PublishSearchLogged(event); err != nil {
			log.Printf("Warning: failed to publish search event for %s: %v", search.City, err)
		}
	}
}

func parseCoord(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
