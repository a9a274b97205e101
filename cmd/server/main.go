package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/storerating/internal/bootstrap"
	"anoa.com/storerating/internal/config"
	"anoa.com/storerating/internal/entity"
	"anoa.com/storerating/internal/server"
	"anoa.com/storerating/pkg/database"
	"anoa.com/storerating/pkg/logger"
	"anoa.com/storerating/pkg/validator"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg.AppEnv)

	if err := validator.Register(entity.RoleNames()...); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	db, err := database.Connect(database.Options{
		DSN:             cfg.DSN(),
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		Debug:           !cfg.IsProduction(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db, cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin user")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if redisClient == nil {
		log.Warn().Msg("REDIS_URL not set, auth rate limiting disabled")
	}

	srv := server.NewServer(cfg, db, redisClient)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited with error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
