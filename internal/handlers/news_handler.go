package handlers

import (
	"errors"
	"log"

	"dashboard/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NewsHandler handles HTTP requests for news headlines.
type NewsHandler struct {
	service *services.NewsService
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(service *services.NewsService) *NewsHandler {
	return &NewsHandler{
		service: service,
	}
}

// RegisterRoutes registers the news routes with the Fiber app.
func (h *NewsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/news", h.HandleGetNews)
}

// HandleGetNews proxies a top-headlines lookup for the configured country.
func (h *NewsHandler) HandleGetNews(c *fiber.Ctx) error {
	body, err := h.service.TopHeadlines(c.UserContext())
	if err != nil {
		log.Printf("News proxy error: %v", err)
		if errors.Is(err, services.ErrNotConfigured) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "News API Key not configured on server.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch news data from external API.",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(body)
}
