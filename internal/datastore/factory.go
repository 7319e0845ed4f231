package datastore

import (
	"strings"

	"github.com/aleister1102/companywatch/internal/common/errorwrapper"
	"github.com/aleister1102/companywatch/internal/config"
	"github.com/aleister1102/companywatch/internal/models"
	"github.com/rs/zerolog"
)

// NewSnapshotStore builds the backend selected by cfg.Backend
func NewSnapshotStore(cfg config.StorageConfig, logger zerolog.Logger) (models.SnapshotStore, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", config.StorageBackendFile:
		return NewFileSnapshotStore(cfg.SnapshotDir, logger), nil
	case config.StorageBackendSQLite:
		return NewSQLiteSnapshotStore(cfg.SQLiteDBPath, logger)
	default:
		return nil, errorwrapper.NewValidationError("storage_config.backend", cfg.Backend, "unknown snapshot backend")
	}
}
