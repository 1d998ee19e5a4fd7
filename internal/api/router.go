package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/mercadito/commerce-api/internal/api/handler"
	"github.com/mercadito/commerce-api/internal/api/middleware"
	"github.com/mercadito/commerce-api/internal/core/service"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(authService *service.AuthService, productService *service.ProductService, readiness *handler.ReadinessHandler, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("commerce"))

	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	authRequired := middleware.Auth(authService)

	// --- Account routes ---
	users := e.Group("/api/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/profile", authHandler.Profile, authRequired)
	users.POST("/logout", authHandler.Logout, authRequired)

	// --- Catalog routes (reads are public, mutations need a session) ---
	products := e.Group("/api/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, authRequired)
	products.PUT("/:id", productHandler.Update, authRequired)
	products.DELETE("/:id", productHandler.Delete, authRequired)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
