package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all process-wide settings. It is built once at startup and
// passed into the services that need it; nothing reads the environment after
// Load returns.
type Config struct {
	AppPort         string
	DatabaseDriver  string // "sqlite" or "postgres"
	DatabaseDSN     string
	JWTSecret       string
	WeatherAPIKey   string
	WeatherBaseURL  string
	NewsAPIKey      string
	NewsBaseURL     string
	NewsCountry     string
	CORSOrigin      string
	RabbitMQURL     string // optional; empty disables search event publishing
	UpstreamTimeout time.Duration
}

// Load reads configuration from environment variables via Viper.
// It fails if JWT_SECRET is missing: signing tokens with a compiled-in
// default would defeat the point of signing them.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "dashboard.db")
	v.SetDefault("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("NEWS_BASE_URL", "https://newsapi.org/v2")
	v.SetDefault("NEWS_COUNTRY", "us")
	v.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	v.SetDefault("UPSTREAM_TIMEOUT", "10s")
	v.AutomaticEnv()

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set; refusing to start")
	}

	driver := v.GetString("DATABASE_DRIVER")
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q (expected sqlite or postgres)", driver)
	}

	timeout := v.GetDuration("UPSTREAM_TIMEOUT")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Config{
		AppPort:         v.GetString("APP_PORT"),
		DatabaseDriver:  driver,
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		JWTSecret:       secret,
		WeatherAPIKey:   v.GetString("OPENWEATHER_API_KEY"),
		WeatherBaseURL:  v.GetString("WEATHER_BASE_URL"),
		NewsAPIKey:      v.GetString("NEWS_API_KEY"),
		NewsBaseURL:     v.GetString("NEWS_BASE_URL"),
		NewsCountry:     v.GetString("NEWS_COUNTRY"),
		CORSOrigin:      v.GetString("CORS_ORIGIN"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		UpstreamTimeout: timeout,
	}, nil
}
