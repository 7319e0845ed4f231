package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/companywatch/internal/models"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	entity_id  TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);`

var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
}

// SQLiteSnapshotStore keeps the latest snapshot per entity in a single SQLite table.
// Each save overwrites the previous row; no history is kept.
type SQLiteSnapshotStore struct {
	db     *sql.DB
	path   string
	logger zerolog.Logger
}

// NewSQLiteSnapshotStore opens (creating if needed) the database at dbPath and ensures the schema
func NewSQLiteSnapshotStore(dbPath string, logger zerolog.Logger) (*SQLiteSnapshotStore, error) {
	moduleLogger := logger.With().Str("component", "SQLiteSnapshotStore").Logger()
	moduleLogger.Info().Str("db_path", dbPath).Msg("Initializing snapshot database")

	if dbPath != ":memory:" {
		dbDir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create snapshot database directory %s: %w", dbDir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dbPath, err)
	}
	// One writer keeps WAL simple and makes :memory: behave as a single database.
	db.SetMaxOpenConns(1)

	store := &SQLiteSnapshotStore{db: db, path: dbPath, logger: moduleLogger}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteSnapshotStore) initSchema() error {
	for _, pragma := range sqlitePragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create snapshots table")
		return err
	}
	return nil
}

// Load returns the stored snapshot, or an empty one when the entity has no row yet
func (s *SQLiteSnapshotStore) Load(ctx context.Context, entityID string) (models.Snapshot, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE entity_id = ?`, entityID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug().Str("entity_id", entityID).Msg("No snapshot row yet, starting from empty")
		return models.NewSnapshot(), nil
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &models.StorageReadError{EntityID: entityID, Path: s.path, Err: err}
	}

	snapshot, err := decodeSnapshot([]byte(payload))
	if err != nil {
		return nil, &models.StorageReadError{EntityID: entityID, Path: s.path, Err: err}
	}
	return snapshot, nil
}

// Save upserts the snapshot row inside a transaction
func (s *SQLiteSnapshotStore) Save(ctx context.Context, entityID string, snapshot models.Snapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return &models.StorageWriteError{EntityID: entityID, Path: s.path, Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &models.StorageWriteError{EntityID: entityID, Path: s.path, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (entity_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(entity_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		entityID, string(data), time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Str("entity_id", entityID).Msg("Failed to upsert snapshot")
		return &models.StorageWriteError{EntityID: entityID, Path: s.path, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &models.StorageWriteError{EntityID: entityID, Path: s.path, Err: err}
	}

	s.logger.Debug().Str("entity_id", entityID).Int("bytes", len(data)).Msg("Snapshot saved")
	return nil
}

// Close closes the database connection
func (s *SQLiteSnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
