package services

import "errors"

// Sentinel errors for the service layer. Handlers map these to HTTP statuses
// with errors.Is; anything else is treated as an internal failure.
var (
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")

	// ErrMissingLocation means the request named neither a city nor a
	// lat/lon pair. Detected before any upstream call.
	ErrMissingLocation = errors.New("city or coordinates (lat, lon) required")

	// ErrNotConfigured means a required provider API key is absent.
	ErrNotConfigured = errors.New("provider API key not configured")

	// ErrUpstreamUnavailable covers network failures and timeouts reaching a
	// provider; ErrUpstream covers a provider that answered but reported an
	// application error.
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
	ErrUpstream            = errors.New("upstream provider error")
)
