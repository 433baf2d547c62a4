package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"nunki/internal/objstore"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	DatabaseURL    string
	Addr           string
	BaseURL        string
	AllowedOrigins []string

	Storage     objstore.Config
	SongBucket  string
	ImageBucket string

	LogLevel  string
	LogFormat string
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return Config{}, errors.New("DATABASE_URL env var is required")
	}

	port := envOrDefault("PORT", "8080")

	cfg := Config{
		DatabaseURL:    dsn,
		Addr:           fmt.Sprintf(":%s", port),
		BaseURL:        envOrDefault("BASE_URL", "http://localhost:"+port),
		AllowedOrigins: parseAllowedOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		Storage: objstore.Config{
			Endpoint:   os.Getenv("STORAGE_ENDPOINT"),
			Region:     envOrDefault("STORAGE_REGION", "us-east-1"),
			AccessKey:  os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey:  os.Getenv("STORAGE_SECRET_KEY"),
			PublicHost: envOrDefault("STORAGE_PUBLIC_HOST", "storage.googleapis.com"),
		},
		SongBucket:  envOrDefault("SONG_BUCKET", "song-files-nunki-music"),
		ImageBucket: envOrDefault("IMAGE_BUCKET", "album-images-nunki-music"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		LogFormat:   envOrDefault("LOG_FORMAT", "json"),
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseAllowedOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	var origins []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
