package handlers

import (
	"errors"
	"log"

	"dashboard/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WeatherHandler handles HTTP requests for weather lookups.
type WeatherHandler struct {
	service *services.WeatherService
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(service *services.WeatherService) *WeatherHandler {
	return &WeatherHandler{
		service: service,
	}
}

// RegisterRoutes registers the weather routes with the Fiber app.
func (h *WeatherHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/weather", h.HandleGetWeather)
}

// HandleGetWeather proxies a current-weather lookup. The provider body is
// forwarded as-is on success.
func (h *WeatherHandler) HandleGetWeather(c *fiber.Ctx) error {
	city := c.Query("city")
	lat := c.Query("lat")
	lon := c.Query("lon")

	body, err := h.service.Fetch(c.UserContext(), city, lat, lon)
	if err != nil {
		if errors.Is(err, services.ErrMissingLocation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "City or coordinates (lat, lon) required.",
			})
		}
		log.Printf("Weather proxy error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch weather data from external API.",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(body)
}
