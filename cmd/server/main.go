package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/monaco/tienda/internal/application/auth"
	cartapp "github.com/monaco/tienda/internal/application/cart"
	catalogapp "github.com/monaco/tienda/internal/application/catalog"
	tradeapp "github.com/monaco/tienda/internal/application/trade"
	"github.com/monaco/tienda/internal/infrastructure/cache"
	"github.com/monaco/tienda/internal/infrastructure/config"
	"github.com/monaco/tienda/internal/infrastructure/logger"
	"github.com/monaco/tienda/internal/infrastructure/persistence"
	"github.com/monaco/tienda/internal/infrastructure/scheduler"
	"github.com/monaco/tienda/internal/infrastructure/telemetry"
	"github.com/monaco/tienda/internal/interfaces/http/handler"
	"github.com/monaco/tienda/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic("Failed to read .env: " + err.Error())
	}

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting tienda",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)
	if cfg.Admin.Password == "" {
		log.Warn("Admin password not set; the back-office cannot be unlocked")
	}

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:     cfg.Database.DBName,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	cartStorage, err := cache.NewCartStorageFactory(cfg.Redis, cfg.Cart.TTL,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).Create(ctx)
	if err != nil {
		log.Fatal("Failed to initialize cart storage", zap.Error(err))
	}
	defer func() { _ = cartStorage.Close() }()

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Services
	gate := auth.NewGateService(cfg.Admin.Password)
	productService := catalogapp.NewProductService(productRepo)
	orderService := tradeapp.NewOrderService(orderRepo, tradeapp.HandoffConfig{
		WhatsAppNumber:       cfg.Checkout.WhatsAppNumber,
		CashOnDeliveryNotice: cfg.Checkout.CashOnDeliveryNotice,
	}, log)
	cartService := cartapp.NewCartService(cartStorage, productRepo, orderService, log)

	if cfg.Sweep.Enabled {
		sweepCfg := scheduler.DefaultOrphanSweeperConfig()
		sweepCfg.Schedule = cfg.Sweep.Schedule
		sweepCfg.OlderThan = cfg.Sweep.OlderThan
		sweepCfg.Location = cfg.Store.Location()

		sweeper, err := scheduler.NewOrphanSweeper(orderRepo, sweepCfg, log)
		if err != nil {
			log.Fatal("Failed to create orphan sweeper", zap.Error(err))
		}
		if err := sweeper.Start(); err != nil {
			log.Fatal("Failed to start orphan sweeper", zap.Error(err))
		}
		defer sweeper.Stop()
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := cfg.Store.Location()
	engine, stopLimiters := router.NewEngine(cfg, gate, router.Handlers{
		Auth:    handler.NewAuthHandler(gate, cfg.Cookie, cfg.Admin.SessionMaxAge, log),
		Product: handler.NewProductHandler(productService),
		Order:   handler.NewOrderHandler(orderService, loc, log),
		Metrics: handler.NewMetricsHandler(orderService, loc),
		Cart:    handler.NewCartHandler(cartService, cfg.Cart.CookieName, cfg.Cookie),
		Health:  handler.NewHealthHandler(db),
	}, log)
	defer stopLimiters()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
