package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment at startup.
type Config struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string
	// CORSOrigin restricts cross-origin requests to a single origin when
	// set. Empty means any origin with an explicit method/header allow-list.
	CORSOrigin string
}

// Load reads configuration from a .env file (if present) and the
// environment. The JWT secret has no usable default: signing keys must
// come from the environment, so a missing one is a startup error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigin:  os.Getenv("CORS_ORIGIN"),
	}

	if cfg.DatabaseDSN == "" {
		host := getEnv("DB_HOST", "127.0.0.1")
		user := getEnv("DB_USER", "shortlink")
		password := getEnv("DB_PASSWORD", "")
		dbname := getEnv("DB_NAME", "shortlink")
		port := getEnv("DB_PORT", "5432")

		cfg.DatabaseDSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			host, user, password, dbname, port)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
