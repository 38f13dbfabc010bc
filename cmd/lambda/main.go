package main

import (
	"context"

	"github.com/GunarsK-portfolio/profile-api/internal/app"
	"github.com/GunarsK-portfolio/profile-api/internal/config"
	"github.com/GunarsK-portfolio/profile-api/internal/lambdaproxy"
	"github.com/GunarsK-portfolio/profile-api/internal/logger"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	// The subject comes from the authorizer claims only; a client-supplied
	// header must never be trusted here.
	cfg.SubjectHeader = ""
	// Swagger is served by the HTTP deployment only.
	cfg.SwaggerHost = ""

	appLog := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.Env)
	gin.SetMode(gin.ReleaseMode)

	application, err := app.New(context.Background(), cfg, appLog, prometheus.DefaultRegisterer)
	if err != nil {
		appLog.Fatal().Err(err).Msg("Failed to initialize application")
	}

	lambda.Start(lambdaproxy.New(application.Router, appLog).Handle)
}
