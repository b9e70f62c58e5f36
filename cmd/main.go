package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodflow/cmd/config"
	migration "foodflow/cmd/database/migrate"
	"foodflow/internal/utils"
	"foodflow/pkg/logger"
	"foodflow/pkg/tracing"
)

const serviceName = "foodflow"

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before serving")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	utils.LoadConfig()
	isDevelopment := utils.GetConfig("APP_ENV") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(utils.GetConfig("LOG_LEVEL"))

	logger.Logger.Info().
		Str("environment", utils.GetConfig("APP_ENV")).
		Msg("Starting foodflow service")

	ctx := context.Background()
	if utils.GetConfigBool("TRACING_ENABLED") {
		shutdown, err := tracing.InitTracer(ctx, serviceName, utils.GetConfig("JAEGER_ENDPOINT"))
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
			}
		}()
	}

	db, err := config.ConnectDB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if *migrate || *migrateOnly {
		if err := migration.Migrate(db); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
		if *migrateOnly {
			return
		}
	}

	flagDB, err := config.OpenFlagStore()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open flag store")
	}
	defer flagDB.Close()

	app, err := config.NewApp(db, flagDB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize app")
	}

	go func() {
		port := utils.GetConfig("APP_PORT")
		logger.Logger.Info().Str("port", port).Msg("HTTP server started")
		if err := app.Listen(":" + port); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}
