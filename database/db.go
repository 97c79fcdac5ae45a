package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shortlink/models"
)

const (
	maxRetries = 5
	retryDelay = 3 * time.Second
)

// Connect opens the postgres handle and runs migrations. The database may
// still be coming up when the process starts, so dialing retries a few
// times before giving up. TranslateError makes unique-constraint
// violations visible as gorm.ErrDuplicatedKey across drivers.
func Connect(dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Int("max", maxRetries).Msg("failed to connect to database")
		time.Sleep(retryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database after %d attempts: %w", maxRetries, err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	log.Info().Msg("connected to database")
	return db, nil
}

// Migrate creates or updates the users, links and clicks tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Link{}, &models.Click{})
}

// Close tears down the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
