package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/docushop/storefront/docs"
	"github.com/docushop/storefront/internal/api/handler"
	"github.com/docushop/storefront/internal/api/middleware"
	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/ports"
)

// Services bundles the use cases exposed over HTTP.
type Services struct {
	Catalog   ports.CatalogService
	Shipping  ports.ShippingService
	Orders    ports.OrderService
	Accounts  ports.AccountService
	Settings  ports.SettingsService
	Dashboard ports.DashboardService
}

// RouterConfig carries everything NewRouter needs besides the services.
type RouterConfig struct {
	JWTSecret string
	Logger    zerolog.Logger
	// Readiness lists the dependency checks behind GET /health/ready.
	Readiness map[string]handler.DependencyCheck
	// Registry receives the HTTP request metrics. Nil uses the default
	// Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(cfg.Logger))
	promMiddleware, promHandler := prometheusHooks(cfg.Registry)
	e.Use(promMiddleware)

	auth := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	products := handler.NewProductHandler(svc.Catalog)
	shipping := handler.NewShippingHandler(svc.Shipping)
	orders := handler.NewOrderHandler(svc.Orders)
	accounts := handler.NewAccountHandler(svc.Accounts)
	admin := handler.NewAdminHandler(svc.Dashboard, svc.Settings)

	// --- Catalog ---
	e.GET("/products", products.List)
	e.GET("/products/:id", products.Get)
	e.POST("/products", products.Create, auth, adminOnly)
	e.PUT("/products/:id", products.Update, auth, adminOnly)
	e.DELETE("/products/:id", products.Delete, auth, adminOnly)

	// --- Shipping ---
	e.GET("/shipping", shipping.Get)
	e.POST("/shipping", shipping.Set, auth, adminOnly)

	// --- Orders ---
	e.POST("/orders", orders.Place, middleware.OptionalAuth(cfg.JWTSecret))
	e.GET("/orders/:id", orders.Get)
	e.POST("/orders/:id/cancel", orders.Cancel, auth, adminOnly)
	e.POST("/orders/:id/complete", orders.Complete, auth, adminOnly)

	// --- Accounts ---
	e.POST("/accounts/register", accounts.Register)
	e.POST("/accounts/login", accounts.Login)
	e.PUT("/accounts/:id/billing", accounts.UpdateBilling, auth)

	// --- Settings ---
	e.GET("/settings", admin.GetSettings)

	// --- Admin ---
	g := e.Group("/admin", auth, adminOnly)
	g.GET("/stats", admin.Stats)
	g.GET("/orders", orders.List)
	g.GET("/accounts", accounts.List)
	g.PUT("/accounts/:id/status", accounts.SetStatus)
	g.PUT("/credentials", accounts.UpdateCredentials)
	g.PUT("/settings", admin.UpdateSettings)

	// --- Health checks (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(cfg.Readiness, cfg.Logger).Readiness)

	// --- Operations ---
	e.GET("/metrics", promHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func prometheusHooks(reg *prometheus.Registry) (echo.MiddlewareFunc, echo.HandlerFunc) {
	if reg == nil {
		return echoprometheus.NewMiddleware("docushop"), echoprometheus.NewHandler()
	}
	mw := echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "docushop",
		Registerer: reg,
	})
	h := echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
	return mw, h
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
