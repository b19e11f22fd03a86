package initializers

import (
	"github.com/rs/zerolog/log"
	"github.com/sokoni/sokoni-api/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to sync database")
	}
	log.Info().Msg("database synced successfully")
}
