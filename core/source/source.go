package source

import (
	"fmt"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/core/storage"

	"gorm.io/gorm"
)

// Source is a catalog.Source that can name itself in status output.
type Source interface {
	catalog.Source
	Describe() string
}

// Deps are the optional connections the storage and database sources need.
type Deps struct {
	Storage storage.Client
	Bucket  string
	DB      *gorm.DB
}

// New builds the source selected by cfg.
func New(cfg Config, deps Deps) (Source, error) {
	switch cfg.Source {
	case KindEmbedded, "":
		return NewEmbedded(), nil
	case KindFile:
		return NewDir(cfg.Dir), nil
	case KindStorage:
		if deps.Storage == nil {
			return nil, fmt.Errorf("catalog source %q needs a storage client", cfg.Source)
		}
		return NewStorage(deps.Storage, deps.Bucket, cfg.Prefix), nil
	case KindDatabase:
		if deps.DB == nil {
			return nil, fmt.Errorf("catalog source %q needs a database connection", cfg.Source)
		}
		return NewDatabase(deps.DB), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q (valid: %s, %s, %s, %s)", cfg.Source, KindEmbedded, KindFile, KindStorage, KindDatabase)
	}
}
