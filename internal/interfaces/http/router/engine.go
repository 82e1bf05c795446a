package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monaco/tienda/internal/application/auth"
	"github.com/monaco/tienda/internal/domain/shared"
	"github.com/monaco/tienda/internal/infrastructure/config"
	"github.com/monaco/tienda/internal/infrastructure/logger"
	"github.com/monaco/tienda/internal/interfaces/http/dto"
	"github.com/monaco/tienda/internal/interfaces/http/handler"
	"github.com/monaco/tienda/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Order   *handler.OrderHandler
	Metrics *handler.MetricsHandler
	Cart    *handler.CartHandler
	Health  *handler.HealthHandler
}

// NewEngine builds the gin engine with the middleware chain and every
// route. The returned stop function releases the rate limiters.
func NewEngine(cfg *config.Config, gate middleware.SessionChecker, h Handlers, log *zap.Logger) (*gin.Engine, func()) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	var stops []func()

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	})...)
	engine.Use(middleware.Secure(securityConfig(cfg)))
	engine.Use(middleware.CORS(corsConfig(cfg)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		stops = append(stops, limiter.Stop)
		engine.Use(middleware.RateLimit(limiter))
	}
	engine.Use(middleware.AdminGate(gate, auth.CookieName))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			shared.CodeNotFound, "route not found", middleware.GetRequestID(c)))
	})

	loginLimiter := middleware.NewRateLimiter(cfg.HTTP.LoginRateLimitRequests, cfg.HTTP.LoginRateLimitWindow)
	stops = append(stops, loginLimiter.Stop)

	var guard []gin.HandlerFunc
	if cfg.Admin.ProtectAPI {
		guard = append(guard, middleware.RequireAdmin(gate, auth.CookieName))
	}
	guarded := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, guard...), fn)
	}

	admin := NewDomainGroup("admin", "/admin").
		GET("", h.Metrics.Dashboard).
		GET("/resumen", h.Metrics.Dashboard).
		GET("/login", h.Auth.LoginPage).
		POST("/login", middleware.RateLimit(loginLimiter), h.Auth.Login).
		POST("/logout", h.Auth.Logout)

	products := NewDomainGroup("productos", "/productos").
		GET("", h.Product.List).
		GET("/:id", h.Product.GetByID).
		POST("", guarded(h.Product.Create)...).
		PUT("/:id", guarded(h.Product.Update)...).
		DELETE("/:id", guarded(h.Product.Delete)...)

	orders := NewDomainGroup("ordenes", "/ordenes").
		GET("", guarded(h.Order.List)...).
		GET("/export.csv", guarded(h.Order.Export)...).
		POST("", h.Order.Create).
		PUT("/:id", guarded(h.Order.UpdateStatus)...).
		DELETE("/:id", guarded(h.Order.Delete)...)

	metrics := NewDomainGroup("metricas", "/metricas").
		GET("", guarded(h.Metrics.Projections)...)

	carts := NewDomainGroup("carrito", "/carrito").
		GET("", h.Cart.Get).
		DELETE("", h.Cart.Clear).
		POST("/items", h.Cart.AddItem).
		PUT("/items/:id", h.Cart.SetQuantity).
		DELETE("/items/:id", h.Cart.RemoveItem).
		POST("/checkout", h.Cart.Checkout)

	system := NewDomainGroup("system", "").
		GET("/health", h.Health.Check)

	NewRouter(engine).
		Register(system).
		Register(admin).
		Register(products).
		Register(orders).
		Register(metrics).
		Register(carts).
		Setup()

	return engine, func() {
		for _, stop := range stops {
			stop()
		}
	}
}

func securityConfig(cfg *config.Config) middleware.SecurityConfig {
	sc := middleware.DefaultSecurityConfig()
	sc.HSTSEnabled = cfg.App.IsProduction() && cfg.Cookie.Secure
	return sc
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	cc := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		cc.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cc.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cc.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return cc
}
