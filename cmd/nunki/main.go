package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"nunki/internal/logging"
	"nunki/internal/objstore"
	"nunki/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logging.SetGlobal(logger)

	db, err := openDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer db.Close()

	dataStore := store.New(db, cfg.BaseURL)

	objects, err := objstore.New(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect object storage")
	}

	handler := newHTTPHandler(cfg, dataStore, objects, logger)

	logger.Info().Str("addr", cfg.Addr).Msg("api listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
