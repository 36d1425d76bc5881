package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/carson-networks/expense-tracker/api"
	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/config"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/metrics"
	"github.com/carson-networks/expense-tracker/internal/origins"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/migrations"
)

const migrationRetryInterval = 5 * time.Second

func main() {
	logger := logging.SetupLogging()
	logger.Info("expense-tracker starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Warn("logging.SetLevel")
	}
	if envConfig.IsDevelopment() {
		logger.Debug("config: " + spew.Sdump(envConfig.Redacted()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbStorage, err := storage.NewStorage(ctx, envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := dbStorage.Close(closeCtx); err != nil {
			logger.WithError(err).Error("storage.Close")
		}
	}()

	pingCtx, cancelPing := context.WithTimeout(ctx, envConfig.Mongo.ServerSelectionTimeout)
	err = dbStorage.Ping(pingCtx)
	cancelPing()
	switch {
	case err != nil && !envConfig.IsDevelopment():
		logger.WithError(err).Fatal("storage.Ping")
		return
	case err != nil && envConfig.Mongo.MigrateOnStart:
		logger.WithError(err).Warn("storage.Ping: store unreachable, migrations will run once it is up")
		go func() {
			err := migrations.UpWhenReachable(ctx, dbStorage, envConfig.Mongo.URI, migrationRetryInterval, logger)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.WithError(err).Error("migrations.UpWhenReachable")
			}
		}()
	case err != nil:
		logger.WithError(err).Warn("storage.Ping: store unreachable, requests will fail until it is up")
	case envConfig.Mongo.MigrateOnStart:
		if err := migrations.UpWhenReachable(ctx, dbStorage, envConfig.Mongo.URI, migrationRetryInterval, logger); err != nil {
			logger.WithError(err).Fatal("migrations.UpWhenReachable")
			return
		}
	}

	tokens := auth.NewIssuer(envConfig.Auth.JWTSecret, envConfig.Auth.Issuer, envConfig.Auth.TokenTTL)

	policy, err := origins.NewPolicy(envConfig.CORS.AllowedOrigins, envConfig.CORS.AllowedOriginPatterns)
	if err != nil {
		logger.WithError(err).Fatal("origins.NewPolicy")
		return
	}

	httpRest := api.Rest{
		Logger:  logger,
		Config:  envConfig,
		Service: service.NewService(dbStorage, tokens),
		Storage: dbStorage,
		Policy:  policy,
		Tokens:  tokens,
		Metrics: metrics.New(),
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("api.Rest.Serve")
	}
	logger.Info("expense-tracker stopped")
}
