package repository

import (
	"fmt"

	"github.com/repertorio/core/internal/infrastructure/config"
	"github.com/repertorio/core/internal/infrastructure/database"
	"github.com/repertorio/core/internal/ports"
)

// New builds the song repository selected by cfg.Storage.Driver.
// db is only used by the SQL drivers and may be nil for the file driver.
func New(cfg config.StorageConfig, db *database.DB) (ports.SongRepository, error) {
	switch cfg.Driver {
	case config.DriverFile:
		repo := NewFileSongRepository(cfg.Path)
		if cfg.CreateIfMissing {
			if err := repo.EnsureFile(); err != nil {
				return nil, fmt.Errorf("prepare song file: %w", err)
			}
		}
		return repo, nil
	case config.DriverPostgres, config.DriverSQLite:
		if db == nil {
			return nil, fmt.Errorf("storage driver %q needs a database connection", cfg.Driver)
		}
		if db.Driver() != cfg.Driver {
			return nil, fmt.Errorf("database driver %q does not match storage driver %q", db.Driver(), cfg.Driver)
		}
		return NewSQLSongRepository(db.DB), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
