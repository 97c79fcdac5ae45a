package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"shortlink/auth"
	"shortlink/config"
	"shortlink/database"
	"shortlink/handlers"
	"shortlink/services"
)

func main() {
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("closing database")
		}
	}()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	linkService := services.NewLinkService(db)
	userService := services.NewUserService(db, tokens)

	router := handlers.NewRouter(linkService, userService, cfg.CORSOrigin)

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
