package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dashboard/internal/config"
	"dashboard/internal/handlers"
	"dashboard/internal/models"
	"dashboard/internal/repositories"
	"dashboard/internal/services"
	"dashboard/pkg/newsapi"
	"dashboard/pkg/openweather"
	"dashboard/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Search{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// Search events are diagnostics; a missing or unreachable broker must
	// not stop the dashboard from serving.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, search events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	searchRepo := repositories.NewGORMSearchRepository(db)

	// --- Upstream Clients ---
	weatherClient := openweather.NewClient(openweather.Config{
		BaseURL: cfg.WeatherBaseURL,
		APIKey:  cfg.WeatherAPIKey,
		Timeout: cfg.UpstreamTimeout,
	})
	newsClient := newsapi.NewClient(newsapi.Config{
		BaseURL: cfg.NewsBaseURL,
		APIKey:  cfg.NewsAPIKey,
		Timeout: cfg.UpstreamTimeout,
	})

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	weatherService := services.NewWeatherService(searchRepo, weatherClient, mqClient)
	newsService := services.NewNewsService(newsClient, cfg.NewsAPIKey, cfg.NewsCountry)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	weatherHandler := handlers.NewWeatherHandler(weatherService)
	newsHandler := handlers.NewNewsHandler(newsService)

	// --- Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowCredentials: true,
	}))

	// --- API Routes ---
	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	weatherHandler.RegisterRoutes(api)
	newsHandler.RegisterRoutes(api)

	// --- Root and Health Checks ---
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Dashboard API Server Running")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Search Event Consumer ---
	// Tails the queue so logged lookups show up in the server log even when
	// a separate diagnostics consumer isn't running.
	if mqClient != nil {
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Search event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeSearchEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start search event consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
