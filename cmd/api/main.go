package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bhujal/registry/internal/api"
	"github.com/bhujal/registry/internal/api/middleware"
	"github.com/bhujal/registry/internal/auth"
	"github.com/bhujal/registry/internal/cache"
	"github.com/bhujal/registry/internal/queue/tasks"
	"github.com/bhujal/registry/internal/repository"
	"github.com/bhujal/registry/internal/services"
	"github.com/bhujal/registry/pkg/config"
	"github.com/bhujal/registry/pkg/database"
	"github.com/bhujal/registry/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting borewell registry",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	// Connect to database
	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	borewellRepo := repository.NewBorewellRepository(db)

	hasher, err := auth.NewHasher(auth.DefaultCost)
	if err != nil {
		log.Fatal("Failed to initialize credential store", zap.Error(err))
	}
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.JWTTTL,
		Issuer: cfg.JWTIssuer,
	})
	if err != nil {
		log.Fatal("Failed to initialize token service", zap.Error(err))
	}

	// Map cache and refresh queue are optional
	var (
		mapCache  cache.MapCache = cache.NoopMapCache{}
		refresher services.MapRefresher
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, map cache will miss until it recovers", zap.Error(err))
		}
		mapCache = cache.NewRedisMapCache(rdb, cfg.MapCacheTTL)

		client := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer client.Close()
		refresher = tasks.NewPublisher(client)
	} else {
		log.Info("REDIS_ADDR not set, map cache and refresh queue disabled")
	}

	authSvc := services.NewAuthService(customerRepo, hasher, tokens)
	borewellSvc := services.NewBorewellService(borewellRepo, mapCache, refresher)

	// Create router with dependencies
	router := api.NewRouter(api.Dependencies{
		AuthService:     authSvc,
		BorewellService: borewellSvc,
		Tokens:          tokens,
		Ready: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		Metrics:        middleware.NewMetrics(),
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
	closeDB(db)
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.L().Warn("database close failed", zap.Error(err))
	}
}
