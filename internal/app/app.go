// Package app wires repositories, services and handlers into a Fiber app.
package app

import (
	"context"
	"time"

	"crm/internal/config"
	"crm/internal/database"
	"crm/internal/handlers"
	"crm/internal/middleware"
	"crm/internal/repositories"
	"crm/internal/services"
	"crm/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

const healthPingTimeout = 2 * time.Second

// New builds the HTTP application. publisher may be nil when no broker is
// configured.
func New(cfg *config.Config, db *gorm.DB, publisher services.OrderEventPublisher) *fiber.App {
	validate := validation.New()

	// --- Repositories ---
	customerRepo := repositories.NewGORMCustomerRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Services ---
	customerService := services.NewCustomerService(customerRepo, validate)
	productService := services.NewProductService(productRepo, validate)
	orderService := services.NewOrderService(orderRepo, validate, publisher)
	authService := services.NewAuthService(cfg.AuthClientID, cfg.AuthClientSecretHash, cfg.JWTSecret, cfg.TokenTTL)

	// --- Handlers ---
	customerHandler := handlers.NewCustomerHandler(customerService)
	productHandler := handlers.NewProductHandler(productService, cfg.LowStockThreshold, cfg.RestockIncrement)
	orderHandler := handlers.NewOrderHandler(orderService)
	exportHandler := handlers.NewExportHandler(customerService, productService, orderService)
	authHandler := handlers.NewAuthHandler(authService, validate)
	systemHandler := handlers.NewSystemHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db, healthPingTimeout)
	})

	app := fiber.New(fiber.Config{AppName: "crm"})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", systemHandler.HandleHealth)

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	// The token route is registered before the auth middleware so it stays public.
	authHandler.RegisterRoutes(apiV1)
	if cfg.AuthEnabled {
		apiV1.Use(middleware.AuthRequired(authService))
	}

	apiV1.Get("/hello", systemHandler.HandleHello)
	customerHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1)
	exportHandler.RegisterRoutes(apiV1)

	return app
}
