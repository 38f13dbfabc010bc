package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/GunarsK-portfolio/profile-api/docs"
	"github.com/GunarsK-portfolio/profile-api/internal/app"
	"github.com/GunarsK-portfolio/profile-api/internal/config"
	"github.com/GunarsK-portfolio/profile-api/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 15 * time.Second

// @title Profile API
// @version 1.0
// @description User preferences and profile image service - presigns S3/MinIO URLs scoped to the caller
// @host localhost:8085
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	appLog := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.Env)
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, appLog, prometheus.DefaultRegisterer)
	if err != nil {
		appLog.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer func() {
		if err := application.Close(); err != nil {
			appLog.Error().Err(err).Msg("Failed to close application")
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      application.Router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLog.Info().Str("port", cfg.Port).Msg("Starting profile API")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			appLog.Error().Err(err).Msg("Server failed")
			stop()
			return
		}
	case <-ctx.Done():
	}

	appLog.Info().Msg("Shutting down profile API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error().Err(err).Msg("Graceful shutdown failed")
		os.Exit(1)
	}
}
