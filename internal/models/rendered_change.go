package models

import "time"

// RenderedChange is a field diff formatted for display.
type RenderedChange struct {
	EntityID string
	Field    string
	Title    string
	Added    []string
	Removed  []string
}

// Heartbeat is the notice emitted when nothing changed for a while.
type Heartbeat struct {
	EntityID  string
	Timestamp time.Time
	// Quiet is how long it has been since the last change or heartbeat.
	Quiet time.Duration
}
