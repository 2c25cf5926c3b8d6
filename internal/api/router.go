package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luxpos/cashier-admin/internal/api/handler"
	"github.com/luxpos/cashier-admin/internal/api/middleware"
	"github.com/luxpos/cashier-admin/internal/core/domain"
	"github.com/luxpos/cashier-admin/internal/core/ports"
	"github.com/luxpos/cashier-admin/internal/core/service"
	"github.com/luxpos/cashier-admin/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router needs. All stores are injected
// as interfaces so tests can substitute doubles; Mongo, Redis, and
// IdentityHealth are only used by the readiness probe and may be nil.
type Dependencies struct {
	Identities     ports.IdentityStore
	Profiles       ports.ProfileRepository
	SessionCache   middleware.SessionCache
	IdentityHealth handlers.HealthChecker
	Mongo          *mongo.Database
	Redis          *redis.Client
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	// Permissive CORS; the allowed headers mirror what the storefront clients
	// send alongside the bearer token. Preflight OPTIONS is answered here,
	// before any auth middleware runs.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, "x-client-info", "apikey", echo.HeaderContentType},
	}))
	e.Use(echoprometheus.NewMiddleware("cashieradmin"))

	// --- Dependencies ---
	cashierService := service.NewCashierService(deps.Identities, deps.Profiles, deps.Logger)
	cashierHandler := handler.NewCashierHandler(cashierService)
	authMiddleware := middleware.Auth(deps.Identities, deps.SessionCache)
	adminOnly := middleware.Authorize(domain.PermProvisionCashiers)

	// --- Cashier provisioning routes (admin only) ---
	v1 := e.Group("/v1")
	v1.POST("/cashiers", cashierHandler.Create, authMiddleware, adminOnly)
	v1.POST("/cashiers/delete", cashierHandler.Delete, authMiddleware, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis, deps.IdentityHealth)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
