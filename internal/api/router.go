package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/healthhabits/habit-tracker/internal/api/handler"
	"github.com/healthhabits/habit-tracker/internal/api/middleware"
	"github.com/healthhabits/habit-tracker/internal/core/ports"

	_ "github.com/healthhabits/habit-tracker/docs"
)

// bodyLimit caps request payloads; the largest legitimate body is a tips prompt.
const bodyLimit = "64K"

const metricsSubsystem = "habits"

// Deps carries everything the HTTP layer needs. Services are injected so the
// router can be exercised with in-memory fakes.
type Deps struct {
	AuthService       ports.AuthService
	HabitService      ports.HabitService
	TipService        ports.TipService
	Tokens            middleware.TokenParser
	ReadinessChecks   []handler.DependencyCheck
	TipsRatePerMinute float64
	Logger            zerolog.Logger
	// Registry receives the per-request HTTP metrics. Nil means the default
	// Prometheus registry, which also holds the domain metrics.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	// Metrics sit outside Recover so that panics are counted as 500s.
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	habitHandler := handler.NewHabitHandler(deps.HabitService)
	tipsHandler := handler.NewTipsHandler(deps.TipService)
	authMiddleware := middleware.Auth(deps.Tokens)

	// --- Auth routes ---
	e.POST("/auth", authHandler.Dispatch)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Habit routes (authenticated) ---
	habits := e.Group("/habits", authMiddleware)
	habits.POST("", habitHandler.Create)
	habits.GET("", habitHandler.List)
	habits.GET("/trends", habitHandler.Trends)
	habits.PUT("/:id", habitHandler.Update)

	// --- Tip routes (authenticated, rate limited per user) ---
	tips := e.Group("/healthTips", authMiddleware, middleware.RateLimitPerUser(deps.TipsRatePerMinute))
	tips.POST("", tipsHandler.Tips)
	tips.GET("", tipsHandler.Suggestions)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.ReadinessChecks...)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
