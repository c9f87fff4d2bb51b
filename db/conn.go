// Package db opens the configured storage backend
package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"bitwise74/reelhub-api/config"
	"bitwise74/reelhub-api/internal/store"
	"bitwise74/reelhub-api/internal/store/gormstore"
	"bitwise74/reelhub-api/internal/store/mongostore"
	"bitwise74/reelhub-api/pkg/util"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectTimeout = 10 * time.Second

// New opens the backend selected by storage.type. The returned store is
// created once at startup and handed to every handler.
func New(cfg *config.Config) (*store.Store, error) {
	switch cfg.Storage.Type {
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		s, err := mongostore.Connect(ctx, cfg.Storage.MongoURI, cfg.Storage.MongoDatabase)
		if err != nil {
			return nil, err
		}

		zap.L().Info("Connected to MongoDB", zap.String("database", cfg.Storage.MongoDatabase))
		return s, nil
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.Storage.PostgresDSN), gormConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres database, %w", err)
		}

		zap.L().Info("Connected to Postgres")
		return gormstore.New(db)
	case "sqlite":
		// If running in a docker container don't allow the sqlite file to be created.
		// The host should instead mount it using volumes
		if util.IsRunningInDocker() {
			if _, err := os.Stat(cfg.Storage.SQLitePath); errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("SQLite database file not mounted, please use docker volumes to mount it to %s", cfg.Storage.SQLitePath)
			}
		}

		db, err := gorm.Open(sqlite.Open(cfg.Storage.SQLitePath), gormConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
		}

		zap.L().Info("Opened SQLite database", zap.String("path", cfg.Storage.SQLitePath))
		return gormstore.New(db)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}
}

func gormConfig(cfg *config.Config) *gorm.Config {
	lvl := logger.Warn
	if cfg.App.LogLevel == "debug" {
		lvl = logger.Info
	}

	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(lvl),
	}
}
