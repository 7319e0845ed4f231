package datastore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/companywatch/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

const snapshotFileSuffix = "_cache.json"

// SnapshotPathGenerator maps entity IDs to snapshot file paths under one base directory
type SnapshotPathGenerator struct {
	basePath string
	logger   zerolog.Logger
}

// NewSnapshotPathGenerator creates a new path generator rooted at basePath
func NewSnapshotPathGenerator(basePath string, logger zerolog.Logger) *SnapshotPathGenerator {
	return &SnapshotPathGenerator{
		basePath: basePath,
		logger:   logger.With().Str("component", "SnapshotPathGenerator").Logger(),
	}
}

// SnapshotPath returns <base>/<entity>_cache.json
func (g *SnapshotPathGenerator) SnapshotPath(entityID string) (string, error) {
	if strings.TrimSpace(entityID) == "" {
		return "", errorwrapper.NewValidationError("entity_id", entityID, "entity ID must not be empty")
	}
	return filepath.Join(g.basePath, sanitizeEntityID(entityID)+snapshotFileSuffix), nil
}

// EnsureBaseDir creates the base directory if needed
func (g *SnapshotPathGenerator) EnsureBaseDir() error {
	if err := os.MkdirAll(g.basePath, 0755); err != nil {
		g.logger.Error().Err(err).Str("directory", g.basePath).Msg("Failed to create snapshot directory")
		return errorwrapper.WrapError(err, "failed to create directory: "+g.basePath)
	}
	return nil
}

// sanitizeEntityID keeps letters, digits, '-' and '_' so an ID can never escape the base directory
func sanitizeEntityID(entityID string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, entityID)
}
