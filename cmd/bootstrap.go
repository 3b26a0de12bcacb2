package cmd

import (
	"fmt"

	"github.com/southpawriter02/rune-rust-sub041/core/config"
	"github.com/southpawriter02/rune-rust-sub041/core/database"
	"github.com/southpawriter02/rune-rust-sub041/core/logger"
	"github.com/southpawriter02/rune-rust-sub041/core/source"
	"github.com/southpawriter02/rune-rust-sub041/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// env is what every command needs after loading configuration.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  storage.Client
	db     *gorm.DB
	source source.Source
}

// bootstrap loads configuration, builds the logger and opens the catalog
// source. The database is only required when it is the catalog source.
func bootstrap() (*env, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		if cfg.Catalog.Source == source.KindDatabase {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
		logg.Info("Connected to rules database", zap.String("driver", cfg.Database.Driver))
	}

	src, err := source.New(cfg.Catalog, source.Deps{Storage: store, Bucket: cfg.Storage.Bucket, DB: db})
	if err != nil {
		return nil, err
	}
	logg = logg.With(zap.String("source", src.Describe()))

	return &env{cfg: cfg, logger: logg, store: store, db: db, source: src}, nil
}
