package config

import (
	"os"
	"time"

	"foodflow/internal/api/handlers"
	"foodflow/internal/api/routes"
	"foodflow/internal/middleware"
	"foodflow/internal/utils"
	"foodflow/internal/utils/mailing"
	"foodflow/internal/utils/storage"
	"foodflow/pkg/flag"
	"foodflow/pkg/inventory"
	"foodflow/pkg/jwt"
	"foodflow/pkg/meal"
	"foodflow/pkg/metrics"
	"foodflow/pkg/user"

	"github.com/dgraph-io/badger/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB, flagDB *badger.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: utils.GetConfig("APP_ENV") == "development",
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Repository
	userRepository := user.NewUserRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	flagRepository := flag.NewFlagRepository(flagDB)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	userService := user.NewUserService(userRepository, jwtService, mailer, utils.GetConfig("APP_URL"))
	inventoryService := inventory.NewInventoryService(
		inventoryRepository,
		s3,
		collector,
		inventory.WithBulkConcurrency(utils.GetConfigInt("BULK_CONCURRENCY", 4)),
	)
	flagService := flag.NewFlagService(flagRepository)
	mealService := meal.NewMealService(inventoryRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	flagHandler := handlers.NewFlagHandler(flagService, validator)
	mealHandler := handlers.NewMealHandler(mealService)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		InventoryHandler: inventoryHandler,
		FlagHandler:      flagHandler,
		MealHandler:      mealHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
		MetricsHandler:   metrics.Handler(registry),
	}
	routesConfig.Setup()
	return app, nil
}
