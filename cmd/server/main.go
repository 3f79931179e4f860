package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	profileapp "github.com/pos/backend/internal/application/profile"
	shiftapp "github.com/pos/backend/internal/application/shift"
	"github.com/pos/backend/internal/infrastructure/cache"
	"github.com/pos/backend/internal/infrastructure/config"
	"github.com/pos/backend/internal/infrastructure/event"
	"github.com/pos/backend/internal/infrastructure/logger"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/internal/interfaces/http/handler"
	"github.com/pos/backend/internal/interfaces/http/middleware"
	"github.com/pos/backend/internal/interfaces/http/router"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	openingRepo := persistence.NewGormOpeningShiftRepository(db.DB)
	closingRepo := persistence.NewGormClosingShiftRepository(db.DB)
	reader := persistence.NewGormTransactionReader(db.DB)

	// Live-totals cache, redis when configured, in-process otherwise
	var totalsCache shiftapp.LiveTotalsCache
	if cfg.Redis.Host != "" {
		redisCache, err := cache.NewRedisLiveTotalsCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		}, cfg.Cache.LiveTotalsTTL, log)
		if err != nil {
			log.Warn("Redis unreachable, falling back to in-memory live-totals cache", zap.Error(err))
			totalsCache = cache.NewInMemoryLiveTotalsCache(cfg.Cache.LiveTotalsTTL)
		} else {
			defer func() {
				_ = redisCache.Close()
			}()
			totalsCache = redisCache
			log.Info("Redis live-totals cache connected", zap.String("addr", cfg.Redis.Addr()))
		}
	} else {
		totalsCache = cache.NewInMemoryLiveTotalsCache(cfg.Cache.LiveTotalsTTL)
	}

	// Application services
	profileService := profileapp.NewProfileService(profileRepo)
	openingService := shiftapp.NewOpeningShiftService(openingRepo, closingRepo, profileRepo)
	closingService := shiftapp.NewClosingShiftService(openingRepo, closingRepo, profileRepo, reader, log)
	closingService.SetTotalsCache(totalsCache)

	// Event bus with the shift audit trail subscribed
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewShiftAuditHandler(log))
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	openingService.SetEventPublisher(eventBus)
	closingService.SetEventPublisher(eventBus)

	// HTTP engine
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	routerCfg := router.DefaultConfig()
	routerCfg.MaxBodySize = cfg.HTTP.MaxBodySize
	routerCfg.CORS = middleware.DefaultCORSConfig()
	router.Setup(engine, routerCfg, router.Handlers{
		Shift:   handler.NewShiftHandler(openingService, closingService),
		Profile: handler.NewProfileHandler(profileService),
		System:  handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Version),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
