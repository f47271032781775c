// File: cmd/server/providers.go
package main

import (
	"time"

	"poi_backend/internal/auth"
	"poi_backend/internal/config"
	"poi_backend/internal/image"
	"poi_backend/internal/platform/database"
	"poi_backend/internal/platform/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	appLogger, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		// Sync on stdout/stderr fails on some platforms; nothing to do about it.
		_ = appLogger.Sync()
	}
	return appLogger, cleanup, nil
}

func provideDatabase(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		database.CloseGORMDB(db)
	}
	return db, cleanup, nil
}

func provideImageStore(cfg *config.Config, appLogger *zap.Logger) (*image.Store, error) {
	return image.NewStore(cfg.ImageStoragePath, cfg.ImagePublicBaseURL, appLogger)
}

// provideBlocklistConfig sizes the blocklist cache from the session TTL:
// entries need to outlive the longest-lived token they revoke.
func provideBlocklistConfig(cfg *config.Config) auth.InMemoryBlocklistConfig {
	return auth.InMemoryBlocklistConfig{
		DefaultExpiration: cfg.JWTExpiry,
		CleanupInterval:   10 * time.Minute,
	}
}
