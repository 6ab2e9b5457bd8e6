package config

import (
	"os"
	"time"

	"cloudstore/internal/pkg/logger"
)

const (
	defaultListenAddr  = ":8080"
	defaultDatabaseURL = "cloudstore.db"
	defaultJWTTTL      = "24h"
	defaultBlobDir     = "./blobs"
)

type Config struct {
	AppEnv       string
	ListenAddr   string
	DatabaseURL  string
	JWTSecret    string
	JWTAccessTTL time.Duration
	BlobDir      string
}

func Load() Config {
	cfg := Config{
		AppEnv:      getenv("APP_ENV", "development"),
		ListenAddr:  getenv("LISTEN_ADDR", defaultListenAddr),
		DatabaseURL: getenv("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		BlobDir:     getenv("BLOB_DIR", defaultBlobDir),
	}

	ttlStr := getenv("JWT_ACCESS_TTL", defaultJWTTTL)
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		logger.Log.Warn().Str("value", ttlStr).Msg("invalid JWT_ACCESS_TTL, falling back to default")
		ttl, _ = time.ParseDuration(defaultJWTTTL)
	}
	cfg.JWTAccessTTL = ttl

	return cfg
}

func (c Config) IsDevelopment() bool { return c.AppEnv != "production" }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
