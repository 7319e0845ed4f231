package models

import "context"

// SnapshotStore persists the latest snapshot per tracked entity.
type SnapshotStore interface {
	// Load returns the stored snapshot, or an empty one when none exists.
	// A snapshot that exists but cannot be parsed yields *StorageReadError.
	Load(ctx context.Context, entityID string) (Snapshot, error)

	// Save replaces the stored snapshot atomically. Failures yield *StorageWriteError.
	Save(ctx context.Context, entityID string, snapshot Snapshot) error

	// Close releases any underlying resources.
	Close() error
}

// Presenter is the presentation boundary that receives rendered output.
type Presenter interface {
	// PresentChange emits one titled block of added and removed lines.
	PresentChange(ctx context.Context, change RenderedChange) error

	// PresentHeartbeat emits the throttled "no changes" notice.
	PresentHeartbeat(ctx context.Context, heartbeat Heartbeat) error
}
