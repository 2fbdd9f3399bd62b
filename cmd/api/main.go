// @title                       DocuShop Storefront API
// @version                     1.0
// @description                 Catalog, pricing, orders and accounts for the DocuShop storefront.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/docushop/storefront/internal/api"
	"github.com/docushop/storefront/internal/api/handler"
	"github.com/docushop/storefront/internal/core/ports"
	"github.com/docushop/storefront/internal/core/service"
	"github.com/docushop/storefront/internal/infrastructure/db/mongo"
	"github.com/docushop/storefront/internal/infrastructure/db/redis"
	"github.com/docushop/storefront/internal/pkg/config"
	"github.com/docushop/storefront/pkg/logger"
	"github.com/docushop/storefront/pkg/sigctx"
)

const shutdownTimeout = 10 * time.Second

func main() {
	sigCtx, stop := sigctx.NotifyContext()
	defer stop()

	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "docushop-api",
	})

	client, db, err := mongo.Connect(sigCtx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	if err := mongo.EnsureIndexes(sigCtx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	readiness := map[string]handler.DependencyCheck{
		"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}

	var idempotency ports.IdempotencyStore
	rdb, err := redis.Connect(sigCtx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, idempotency keys will be ignored")
	} else {
		defer closeRedis(rdb, log)
		idempotency = redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL, cfg.Redis.PendingTTL)
		readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	products := mongo.NewProductRepository(db)
	orders := mongo.NewOrderRepository(db)
	accounts := mongo.NewAccountRepository(db)

	shipping := service.NewShippingService(mongo.NewShippingRepository(db), log)
	settings := service.NewSettingsService(mongo.NewSettingsRepository(db), log)
	pricing := service.NewPricing(products, shipping)

	svc := api.Services{
		Catalog:  service.NewCatalogService(products, log),
		Shipping: shipping,
		Orders:   service.NewOrderService(orders, pricing, settings, idempotency, log),
		Accounts: service.NewAccountService(accounts, service.AccountOptions{
			JWTSecret:  cfg.Auth.JWTSecret,
			TokenTTL:   cfg.Auth.TokenTTL,
			BcryptCost: cfg.Auth.BcryptCost,
		}, log),
		Settings:  settings,
		Dashboard: service.NewDashboardService(accounts, products, orders),
	}

	e := api.NewRouter(svc, api.RouterConfig{
		JWTSecret: cfg.Auth.JWTSecret,
		Logger:    log,
		Readiness: readiness,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-sigCtx.Done()
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown http server gracefully")
	}
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close redis client")
	}
}
