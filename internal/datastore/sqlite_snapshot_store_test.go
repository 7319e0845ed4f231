package datastore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aleister1102/companywatch/internal/config"
	"github.com/aleister1102/companywatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteSnapshotStore {
	t.Helper()
	store, err := NewSQLiteSnapshotStore(filepath.Join(t.TempDir(), "db", "snapshots.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteSnapshotStore_EmptyThenRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	snapshot, err := store.Load(ctx, "01234567")
	require.NoError(t, err)
	assert.True(t, snapshot.IsEmpty())

	require.NoError(t, store.Save(ctx, "01234567", sampleSnapshot()))
	loaded, err := store.Load(ctx, "01234567")
	require.NoError(t, err)
	assert.Equal(t, "Alice", loaded.Field(models.FieldOfficers)[0].String("name"))
}

func TestSQLiteSnapshotStore_KeepsLatestOnly(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "01234567", sampleSnapshot()))
	require.NoError(t, store.Save(ctx, "01234567", models.Snapshot{models.FieldOfficers: {}}))

	var rows int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&rows))
	assert.Equal(t, 1, rows)

	loaded, err := store.Load(ctx, "01234567")
	require.NoError(t, err)
	assert.Empty(t, loaded.Field(models.FieldOfficers))
	assert.Nil(t, loaded.Field(models.FieldFilingHistory))
}

func TestSQLiteSnapshotStore_CorruptPayload(t *testing.T) {
	store := newTestSQLiteStore(t)
	_, err := store.db.Exec(`INSERT INTO snapshots (entity_id, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`, "01234567", "{broken")
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "01234567")
	var readErr *models.StorageReadError
	assert.ErrorAs(t, err, &readErr)
}

func TestNewSnapshotStore(t *testing.T) {
	dir := t.TempDir()

	fileStore, err := NewSnapshotStore(config.StorageConfig{Backend: "file", SnapshotDir: dir}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &FileSnapshotStore{}, fileStore)

	sqliteStore, err := NewSnapshotStore(config.StorageConfig{Backend: "SQLite", SQLiteDBPath: filepath.Join(dir, "s.db")}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteSnapshotStore{}, sqliteStore)
	require.NoError(t, sqliteStore.Close())

	_, err = NewSnapshotStore(config.StorageConfig{Backend: "parquet"}, zerolog.Nop())
	assert.Error(t, err)
}
