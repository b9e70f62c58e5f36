package migration

import (
	"context"

	"foodflow/entities"
	"foodflow/pkg/logger"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	ctx := context.Background()

	// uuid_generate_v4 backs the primary key defaults
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		logger.Error(ctx).Err(err).Msg("error creating uuid-ossp extension")
		return err
	}

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		logger.Error(ctx).Err(err).Msg("error migrating user database")
		return err
	}
	if err := db.AutoMigrate(&entities.InventoryItem{}); err != nil {
		logger.Error(ctx).Err(err).Msg("error migrating inventory item database")
		return err
	}

	logger.Info(ctx).Msg("database migration complete")
	return nil
}
