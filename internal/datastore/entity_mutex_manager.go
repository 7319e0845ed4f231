package datastore

import (
	"sync"

	"github.com/rs/zerolog"
)

// EntityMutexManager hands out one mutex per tracked entity so concurrent
// Load/Save calls for the same entity are serialized.
type EntityMutexManager struct {
	mutexes map[string]*sync.Mutex
	mapLock sync.RWMutex
	logger  zerolog.Logger
}

// NewEntityMutexManager creates a new entity mutex manager
func NewEntityMutexManager(logger zerolog.Logger) *EntityMutexManager {
	return &EntityMutexManager{
		mutexes: make(map[string]*sync.Mutex),
		logger:  logger.With().Str("component", "EntityMutexManager").Logger(),
	}
}

// GetMutex returns the mutex guarding entityID
func (emm *EntityMutexManager) GetMutex(entityID string) *sync.Mutex {
	emm.mapLock.RLock()
	mutex, exists := emm.mutexes[entityID]
	emm.mapLock.RUnlock()
	if exists {
		return mutex
	}

	emm.mapLock.Lock()
	defer emm.mapLock.Unlock()

	// Double-check after acquiring write lock
	if mutex, exists := emm.mutexes[entityID]; exists {
		return mutex
	}

	mutex = &sync.Mutex{}
	emm.mutexes[entityID] = mutex
	emm.logger.Debug().Str("entity_id", entityID).Msg("Created entity mutex")
	return mutex
}
