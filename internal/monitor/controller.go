package monitor

import (
	"context"
	"errors"

	"github.com/aleister1102/companywatch/internal/differ"
	"github.com/aleister1102/companywatch/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ChangeReporter renders a cycle's report and says whether anything changed
type ChangeReporter interface {
	Report(ctx context.Context, report *models.ChangeReport) bool
}

// CycleResult is the outcome of one poll cycle
type CycleResult struct {
	CycleID    string
	AnyChanges bool
	Report     *models.ChangeReport
}

// Controller runs one poll cycle for a single entity:
// load snapshot, fetch every field, diff, report, persist.
type Controller struct {
	entityID          string
	specs             []FieldSpec
	store             models.SnapshotStore
	reporter          ChangeReporter
	concurrentFetches bool
	newCycleID        func() string
	logger            zerolog.Logger
}

// ControllerOption customises a Controller
type ControllerOption func(*Controller)

// WithConcurrentFetches fetches all fields in parallel, failing fast on the first error
func WithConcurrentFetches(enabled bool) ControllerOption {
	return func(c *Controller) { c.concurrentFetches = enabled }
}

// WithCycleIDGenerator overrides how cycle IDs are minted
func WithCycleIDGenerator(gen func() string) ControllerOption {
	return func(c *Controller) { c.newCycleID = gen }
}

// NewController creates a controller for entityID
func NewController(entityID string, specs []FieldSpec, store models.SnapshotStore, rep ChangeReporter, logger zerolog.Logger, opts ...ControllerOption) *Controller {
	c := &Controller{
		entityID:   entityID,
		specs:      specs,
		store:      store,
		reporter:   rep,
		newCycleID: func() string { return uuid.NewString() },
		logger:     logger.With().Str("component", "CycleController").Str("entity_id", entityID).Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EntityID returns the tracked entity
func (c *Controller) EntityID() string {
	return c.entityID
}

// RunCycle executes one cycle. A load or fetch failure aborts the cycle before
// anything is reported or persisted. When every fetch succeeds the report is
// emitted and the new snapshot saved, whether or not anything changed. A save
// failure is returned after the report has been emitted.
func (c *Controller) RunCycle(ctx context.Context) (CycleResult, error) {
	result := CycleResult{CycleID: c.newCycleID()}
	logger := c.logger.With().Str("cycle_id", result.CycleID).Logger()
	logger.Debug().Msg("Cycle started")

	previous, err := c.store.Load(ctx, c.entityID)
	if err != nil {
		return result, err
	}

	current, err := c.fetchAll(ctx)
	if err != nil {
		return result, err
	}

	report := &models.ChangeReport{EntityID: c.entityID, CycleID: result.CycleID}
	for _, spec := range c.specs {
		diff := differ.Diff(previous.Field(spec.Name), current.Field(spec.Name), spec.Key)
		if diff.KeyCollisions > 0 {
			logger.Warn().
				Str("field", spec.Name).
				Int("collisions", diff.KeyCollisions).
				Msg("Duplicate record keys, last occurrence kept")
		}
		report.Add(spec.Name, diff)
	}
	result.Report = report
	result.AnyChanges = c.reporter.Report(ctx, report)

	if err := c.store.Save(ctx, c.entityID, current); err != nil {
		return result, err
	}

	logger.Debug().Bool("changed", result.AnyChanges).Msg("Cycle completed")
	return result, nil
}

// fetchAll returns a snapshot holding every field, or the first fetch error
func (c *Controller) fetchAll(ctx context.Context) (models.Snapshot, error) {
	results := make([][]models.Record, len(c.specs))

	if c.concurrentFetches {
		g, gctx := errgroup.WithContext(ctx)
		for i, spec := range c.specs {
			i, spec := i, spec
			g.Go(func() error {
				records, err := c.fetchField(gctx, spec)
				if err != nil {
					return err
				}
				results[i] = records
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, spec := range c.specs {
			records, err := c.fetchField(ctx, spec)
			if err != nil {
				return nil, err
			}
			results[i] = records
		}
	}

	snapshot := models.NewSnapshot()
	for i, spec := range c.specs {
		records := results[i]
		if records == nil {
			records = []models.Record{}
		}
		snapshot[spec.Name] = records
	}
	return snapshot, nil
}

// fetchField calls spec.Fetch and makes sure failures carry the field name
func (c *Controller) fetchField(ctx context.Context, spec FieldSpec) ([]models.Record, error) {
	records, err := spec.Fetch(ctx)
	if err == nil {
		return records, nil
	}
	var fetchErr *models.FetchError
	if errors.As(err, &fetchErr) {
		return nil, err
	}
	return nil, &models.FetchError{Field: spec.Name, Err: err}
}
