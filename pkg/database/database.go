package database

import (
	"errors"

	"authws-backend/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresConnection opens a GORM connection to the configured database.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey instead of driver-specific errors.
func NewPostgresConnection(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not configured")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}
