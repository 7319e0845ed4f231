package config

// StorageConfig defines where snapshots are persisted
type StorageConfig struct {
	Backend      string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"storagebackend"`
	SnapshotDir  string `json:"snapshot_dir,omitempty" yaml:"snapshot_dir,omitempty"`
	SQLiteDBPath string `json:"sqlite_db_path,omitempty" yaml:"sqlite_db_path,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:      DefaultStorageBackend,
		SnapshotDir:  DefaultStorageSnapshotDir,
		SQLiteDBPath: DefaultStorageSQLiteDBPath,
	}
}
