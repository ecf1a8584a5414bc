package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/catalog"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/config"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/database"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/handler"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/repository"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/service"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/tmdb"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
	}

	// Static lookup tables, loaded once and injected
	lookup := catalog.NewLookup()

	// TMDB client and catalog collaborator
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Timeout)
	contentSvc := service.NewContentService(tmdbClient, lookup, cfg.TMDB.ImageBaseURL, cfg.TMDB.Region)

	// Initialize layers
	interactionRepo := repository.NewInteractionRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	prefSvc := service.NewPreferenceService(interactionRepo, profileRepo, rdb)
	recSvc := service.NewRecommendationService(prefSvc, contentSvc, lookup, rdb)

	discoveryHandler := handler.NewDiscoveryHandler(contentSvc, lookup)
	userHandler := handler.NewUserHandler(prefSvc)
	recHandler := handler.NewRecommendationHandler(recSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "movie-recommender",
		ServerHeader: "movie-recommender",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// Routes
	app.Get("/health", discoveryHandler.Health)

	api := app.Group("/api/v1")
	api.Post("/discover", discoveryHandler.Discover)
	api.Post("/search", discoveryHandler.Search)
	api.Post("/user/interaction", userHandler.RecordInteraction)
	api.Post("/user/recommendations", recHandler.GetRecommendations)
	api.Get("/user/:id/profile", userHandler.GetProfile)
	api.Get("/user/:id/interactions", userHandler.GetInteractions)
	api.Get("/user/:id/liked", userHandler.GetLiked)
	api.Get("/user/:id/watchlist", userHandler.GetWatchlist)
	api.Delete("/user/:id/interaction/:contentID", userHandler.RemoveInteraction)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("movie-recommender starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down movie-recommender")
	_ = app.Shutdown()
}
