package monitor

import (
	"sync"
	"time"
)

// Stats counts what the loop has done since it started
type Stats struct {
	Cycles        int
	ChangedCycles int
	FailedCycles  int
	Heartbeats    int
	LastCycleID   string
	LastCycleAt   time.Time
}

// CycleTracker records cycle outcomes and decides when a "no changes"
// heartbeat is due. A heartbeat is due when a cycle saw no changes and at
// least quietInterval has passed since the last heartbeat or change.
type CycleTracker struct {
	mutex            sync.RWMutex
	quietInterval    time.Duration
	lastNoChangeEmit time.Time
	stats            Stats
}

// NewCycleTracker starts the quiet window at start
func NewCycleTracker(quietInterval time.Duration, start time.Time) *CycleTracker {
	return &CycleTracker{
		quietInterval:    quietInterval,
		lastNoChangeEmit: start,
	}
}

// RecordCycle registers a finished cycle. A failed cycle counts as no change.
// It returns whether a heartbeat should be emitted now and how long it has
// been quiet.
func (ct *CycleTracker) RecordCycle(now time.Time, cycleID string, changed bool, failed bool) (emitHeartbeat bool, quiet time.Duration) {
	ct.mutex.Lock()
	defer ct.mutex.Unlock()

	ct.stats.Cycles++
	ct.stats.LastCycleID = cycleID
	ct.stats.LastCycleAt = now
	if failed {
		ct.stats.FailedCycles++
		changed = false
	}

	if changed {
		ct.stats.ChangedCycles++
		ct.lastNoChangeEmit = now
		return false, 0
	}

	quiet = now.Sub(ct.lastNoChangeEmit)
	if quiet < ct.quietInterval {
		return false, quiet
	}
	ct.lastNoChangeEmit = now
	ct.stats.Heartbeats++
	return true, quiet
}

// LastNoChangeEmit returns when the quiet window last restarted
func (ct *CycleTracker) LastNoChangeEmit() time.Time {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	return ct.lastNoChangeEmit
}

// Stats returns a copy of the counters
func (ct *CycleTracker) Stats() Stats {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	return ct.stats
}
