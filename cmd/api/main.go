package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luxpos/cashier-admin/internal/api"
	"github.com/luxpos/cashier-admin/internal/infrastructure/config"
	mongodb "github.com/luxpos/cashier-admin/internal/infrastructure/db/mongo"
	redisdb "github.com/luxpos/cashier-admin/internal/infrastructure/db/redis"
	"github.com/luxpos/cashier-admin/internal/infrastructure/identity"
	"github.com/luxpos/cashier-admin/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Warn().Err(err).Msg("disconnect mongodb")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("close redis")
		}
	}()

	identityClient := identity.NewClient(identity.Config{
		BaseURL:    cfg.Identity.URL,
		ServiceKey: cfg.Identity.ServiceKey,
		Timeout:    cfg.Identity.Timeout,
	}, log)

	e := api.NewRouter(api.Dependencies{
		Identities:     identityClient,
		Profiles:       mongodb.NewProfileRepository(db),
		SessionCache:   redisdb.NewSessionCache(rdb, cfg.Redis.SessionTTL),
		IdentityHealth: identityClient,
		Mongo:          db,
		Redis:          rdb,
		Logger:         log,
	})

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- e.Start(":" + cfg.Port)
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("cashier-admin api started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-srvErrCh:
		if err != nil {
			log.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
