package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mercadito/commerce-api/internal/api"
	"github.com/mercadito/commerce-api/internal/api/handler"
	"github.com/mercadito/commerce-api/internal/core/service"
	"github.com/mercadito/commerce-api/internal/infrastructure/config"
	mongodb "github.com/mercadito/commerce-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mercadito/commerce-api/internal/infrastructure/db/redis"
	"github.com/mercadito/commerce-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "commerce-api",
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("starting commerce API")

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create product indexes")
	}

	// The revocation store is optional: without Redis, sessions stay valid
	// until natural expiry.
	var revocations service.RevocationStore
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		c, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer c.Close()
		rdb = c
		revocations = redisdb.NewRevocationStore(c)
	}

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL, revocations)
	authService := service.NewAuthService(userRepo, tokens, cfg.MinPasswordLen, log)
	productService := service.NewProductService(productRepo, log)
	readiness := handler.NewReadinessHandler(db, rdb)

	e := api.NewRouter(authService, productService, readiness, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	gracefulShutdown(e.Shutdown, log)
}

// gracefulShutdown blocks until SIGINT/SIGTERM, then drains in-flight
// requests with a bounded timeout.
func gracefulShutdown(shutdown func(context.Context) error, log zerolog.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("shutting down gracefully")

	drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := shutdown(drainCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}
