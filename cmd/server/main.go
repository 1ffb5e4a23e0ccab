package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/betasocial/beta-api/interactions"
	interactionHandlers "github.com/betasocial/beta-api/interactions/handlers"
	interactionRepository "github.com/betasocial/beta-api/interactions/repository"
	interactionServices "github.com/betasocial/beta-api/interactions/services"
	"github.com/betasocial/beta-api/internal/cache"
	"github.com/betasocial/beta-api/internal/database/postgres"
	"github.com/betasocial/beta-api/internal/middleware/identity"
	platformconfig "github.com/betasocial/beta-api/internal/platform/config"
	"github.com/betasocial/beta-api/notifications"
	"github.com/betasocial/beta-api/ratelimit"
	"github.com/betasocial/beta-api/views"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load platform config: %v", err)
	}

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		log.Fatalf("Failed to create postgres client: %v", err)
	}
	defer pgClient.Close()

	store, err := cache.NewCache(&cache.Config{
		Backend:         cache.BackendType(cfg.Cache.Backend),
		TTL:             cfg.Cache.TTL,
		CleanupInterval: cache.DefaultConfig().CleanupInterval,
		Redis: cache.RedisOptions{
			Address:      cfg.Cache.Redis.Address,
			Password:     cfg.Cache.Redis.Password,
			Database:     cfg.Cache.Redis.Database,
			PoolSize:     cfg.Cache.Redis.PoolSize,
			MinIdleConns: cfg.Cache.Redis.MinIdleConns,
		},
	})
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}
	defer store.Close()

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.WebDomain,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))

	// Interaction core: likes, comments, reactions
	interactionRepo := interactionRepository.NewPostgresInteractionRepository(pgClient)
	notifier := notifications.NewPostgresNotifier(pgClient)
	interactionService := interactionServices.NewInteractionService(interactionRepo, notifier)
	interactions.RegisterRoutes(app, &interactions.InteractionHandlers{
		InteractionHandler: interactionHandlers.NewInteractionHandler(interactionService),
	}, identity.New(identity.Config{}))

	// View tracking with per-visitor dedup
	viewRepo := views.NewPostgresViewRepository(pgClient)
	dedup := views.NewViewDeduplicator(store, cfg.Views.DedupTTL)
	views.RegisterRoutes(app, views.NewViewHandler(views.NewViewService(viewRepo, dedup)))

	// Password reset throttle, called by the auth service before it sends a
	// reset email. The middleware does the counting; a pass-through means go.
	limiter := ratelimit.NewPasswordResetLimiter(ratelimit.NewWindowCounter(store), cfg.RateLimits)
	throttle := ratelimit.New(ratelimit.Config{Limiter: limiter})
	app.Post("/internal/password-reset/check", throttle, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := pgClient.HealthCheck(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Fatal(app.Listen(addr))
}
