package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/workdesk/request-system/docs"
	"github.com/workdesk/request-system/internal/api/handler"
	"github.com/workdesk/request-system/internal/api/middleware"
	"github.com/workdesk/request-system/internal/auth"
	"github.com/workdesk/request-system/internal/core/service"
	mongodb "github.com/workdesk/request-system/internal/infrastructure/db/mongo"
	redisdb "github.com/workdesk/request-system/internal/infrastructure/db/redis"
	healthhandlers "github.com/workdesk/request-system/internal/infrastructure/http/handlers"
	"github.com/workdesk/request-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("requestdesk"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	requestRepo := mongodb.NewRequestRepository(db)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, log)
	requestService := service.NewRequestService(requestRepo, userRepo, log)
	directoryService := service.NewDirectoryService(userRepo)

	authHandler := handler.NewAuthHandler(authService)
	requestHandler := handler.NewRequestHandler(requestService)
	userHandler := handler.NewUserHandler(directoryService)

	guard := middleware.Auth(tokens)
	loginLimiter := redisdb.NewLoginLimiter(rdb, cfg.LoginRateLimit)

	// --- Auth routes (no guard) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login, middleware.RateLimit(loginLimiter, log))

	// --- Request lifecycle ---
	// Approve/reject authorization lives in the service, after the request is
	// loaded, so an absent request answers 404 rather than 403.
	requests := e.Group("/requests", guard)
	requests.GET("", requestHandler.List)
	requests.POST("", requestHandler.Create)
	requests.PUT("/:id/approve", requestHandler.Approve)
	requests.PUT("/:id/reject", requestHandler.Reject)
	requests.PUT("/:id/close", requestHandler.Close)

	// --- Directory ---
	users := e.Group("/users", guard)
	users.GET("/managers", userHandler.Managers)
	users.GET("/employees", userHandler.Employees)

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
