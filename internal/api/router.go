package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/codeblaze/portal/internal/api/handler"
	"github.com/codeblaze/portal/internal/api/middleware"
	"github.com/codeblaze/portal/internal/core/domain"
	"github.com/codeblaze/portal/internal/core/ports"

	_ "github.com/codeblaze/portal/docs"
)

// Dependencies is everything the router needs to wire its handlers.
type Dependencies struct {
	Jobs             ports.JobService
	Auth             ports.AuthService
	JWTSecret        string
	AdminAuthEnabled bool
	Pingers          []handler.Pinger
	Logger           zerolog.Logger

	// Registerer and Gatherer back the HTTP metrics and /metrics. Nil means
	// the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	reg := deps.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: reg,
	}))

	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Ops ---
	healthHandler := handler.NewHealthHandler(deps.Pingers...)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Account routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/verify-otp", authHandler.VerifyOTP)
	auth.POST("/resend-otp", authHandler.ResendOTP)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.GET("/profile", authHandler.Profile, authMiddleware)

	// --- Job board ---
	jobHandler := handler.NewJobHandler(deps.Jobs)

	admin := e.Group("/api/admin/jobs")
	if deps.AdminAuthEnabled {
		admin.Use(authMiddleware, middleware.RequireRole(domain.RoleAdmin))
	}
	admin.GET("", jobHandler.List)
	admin.POST("", jobHandler.Create)
	admin.GET("/:id", jobHandler.Get)
	admin.PUT("/:id", jobHandler.Update)
	admin.DELETE("/:id", jobHandler.Delete)

	public := e.Group("/api/jobs")
	public.GET("", jobHandler.PublicList)
	public.GET("/:id", jobHandler.PublicGet)

	return e
}
