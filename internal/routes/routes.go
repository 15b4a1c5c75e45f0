package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/platon-pay/platon_pay/internal/checkout"
	"github.com/platon-pay/platon_pay/internal/config"
	"github.com/platon-pay/platon_pay/internal/middleware"
	"github.com/platon-pay/platon_pay/internal/platon"
	"github.com/platon-pay/platon_pay/internal/processor"
	"github.com/platon-pay/platon_pay/internal/provider"
	"github.com/platon-pay/platon_pay/internal/transaction"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares, builds the provider registry and wires all
// application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Storage and processing
	var txRepo transaction.Repository
	if d.DB != nil {
		txRepo = transaction.NewPostgresRepository(d.DB)
	} else {
		txRepo = transaction.NewMemoryRepository()
	}
	proc := processor.New(txRepo, d.Cache, d.Cfg.DedupTTL, d.Logger)

	// Providers: only adapters with sane configuration are offered.
	registry := provider.NewRegistry()
	platonProvider := platon.New(
		provider.ConfigMap{
			"merchant": d.Cfg.PlatonMerchant,
			"password": d.Cfg.PlatonPassword,
		},
		transaction.NewStore(txRepo, platon.Name),
		proc,
		d.Logger,
	)
	if platonProvider.IsValid() {
		registry.Register(platonProvider)
	} else {
		d.Logger.Warn("platon provider misconfigured, not registered",
			"merchant_set", d.Cfg.PlatonMerchant != "")
	}

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"providers":  registry.Names(),
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterCallbackRoutes(api, registry)

	checkoutRouter := api
	if d.Cfg.APIKeyHash != "" {
		checkoutRouter = api.Group("", middleware.APIKeyAuth(d.Cfg.APIKeyHash))
	}
	RegisterCheckoutRoutes(checkoutRouter, checkout.NewHandler(registry))

	return nil
}
