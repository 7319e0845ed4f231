package datastore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aleister1102/companywatch/internal/models"
	"github.com/rs/zerolog"
)

// FileSnapshotStore keeps one pretty-printed JSON document per entity on disk
type FileSnapshotStore struct {
	paths   *SnapshotPathGenerator
	mutexes *EntityMutexManager
	logger  zerolog.Logger
}

// NewFileSnapshotStore creates a store rooted at dir. The directory is created on first save.
func NewFileSnapshotStore(dir string, logger zerolog.Logger) *FileSnapshotStore {
	moduleLogger := logger.With().Str("component", "FileSnapshotStore").Logger()
	return &FileSnapshotStore{
		paths:   NewSnapshotPathGenerator(dir, moduleLogger),
		mutexes: NewEntityMutexManager(moduleLogger),
		logger:  moduleLogger,
	}
}

// Load returns the stored snapshot. A missing file is a first run and yields
// an empty snapshot. An unreadable or unparseable file is left untouched.
func (s *FileSnapshotStore) Load(ctx context.Context, entityID string) (models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.paths.SnapshotPath(entityID)
	if err != nil {
		return nil, &models.StorageReadError{EntityID: entityID, Err: err}
	}

	mu := s.mutexes.GetMutex(entityID)
	mu.Lock()
	defer mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug().Str("entity_id", entityID).Str("path", path).Msg("No snapshot yet, starting from empty")
			return models.NewSnapshot(), nil
		}
		return nil, &models.StorageReadError{EntityID: entityID, Path: path, Err: err}
	}

	snapshot, err := decodeSnapshot(data)
	if err != nil {
		return nil, &models.StorageReadError{EntityID: entityID, Path: path, Err: err}
	}
	return snapshot, nil
}

// Save replaces the snapshot file. The document is written to a temp file in
// the same directory, synced, then renamed over the old one, so readers see
// either the previous or the new snapshot.
func (s *FileSnapshotStore) Save(ctx context.Context, entityID string, snapshot models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.paths.SnapshotPath(entityID)
	if err != nil {
		return &models.StorageWriteError{EntityID: entityID, Err: err}
	}

	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return &models.StorageWriteError{EntityID: entityID, Path: path, Err: err}
	}

	mu := s.mutexes.GetMutex(entityID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.paths.EnsureBaseDir(); err != nil {
		return &models.StorageWriteError{EntityID: entityID, Path: path, Err: err}
	}
	if err := writeFileAtomic(path, data); err != nil {
		return &models.StorageWriteError{EntityID: entityID, Path: path, Err: err}
	}

	s.logger.Debug().Str("entity_id", entityID).Str("path", path).Int("bytes", len(data)).Msg("Snapshot saved")
	return nil
}

// Close is a no-op for the file backend
func (s *FileSnapshotStore) Close() error {
	return nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
