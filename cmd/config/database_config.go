package config

import (
	"context"
	"fmt"

	"foodflow/internal/utils"
	"foodflow/pkg/flag"
	"foodflow/pkg/logger"

	"github.com/dgraph-io/badger/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Error(context.Background()).Err(err).Msg("database connection failed")
		return nil, err
	}
	return db, nil
}

func OpenFlagStore() (*badger.DB, error) {
	path := utils.GetConfig("FLAG_STORE_PATH")
	db, err := flag.OpenStore(path)
	if err != nil {
		logger.Error(context.Background()).Err(err).Str("path", path).Msg("flag store open failed")
		return nil, err
	}
	return db, nil
}
