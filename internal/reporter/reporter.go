package reporter

import (
	"context"
	"fmt"

	"github.com/aleister1102/companywatch/internal/models"
	"github.com/rs/zerolog"
)

// FieldView says how one tracked field is titled and rendered
type FieldView struct {
	Field  string
	Title  string
	Format Formatter
}

// Summarize renders a field diff. It returns nil when nothing was added or removed.
// Entries keep the order of the diff.
func Summarize(entityID string, view FieldView, diff models.DiffResult) *models.RenderedChange {
	if diff.IsEmpty() {
		return nil
	}
	format := view.Format
	if format == nil {
		format = func(r models.Record) string { return fmt.Sprint(map[string]any(r)) }
	}

	change := &models.RenderedChange{
		EntityID: entityID,
		Field:    view.Field,
		Title:    view.Title,
		Added:    make([]string, 0, len(diff.Added)),
		Removed:  make([]string, 0, len(diff.Removed)),
	}
	for _, r := range diff.Added {
		change.Added = append(change.Added, format(r))
	}
	for _, r := range diff.Removed {
		change.Removed = append(change.Removed, format(r))
	}
	return change
}

// Reporter pushes rendered change blocks to a presenter. It keeps no state between reports.
type Reporter struct {
	presenter models.Presenter
	views     map[string]FieldView
	logger    zerolog.Logger
}

// NewReporter creates a reporter for the given field views
func NewReporter(presenter models.Presenter, logger zerolog.Logger, views ...FieldView) *Reporter {
	byField := make(map[string]FieldView, len(views))
	for _, v := range views {
		byField[v.Field] = v
	}
	return &Reporter{
		presenter: presenter,
		views:     byField,
		logger:    logger.With().Str("component", "Reporter").Logger(),
	}
}

// Summarize renders the diff of field using its registered view.
// Unregistered fields are titled with their name.
func (r *Reporter) Summarize(entityID, field string, diff models.DiffResult) *models.RenderedChange {
	view, ok := r.views[field]
	if !ok {
		view = FieldView{Field: field, Title: field}
	}
	return Summarize(entityID, view, diff)
}

// Report summarizes every field of report in order, emits the non-empty ones
// and returns whether any field changed. Presenter failures are logged only.
func (r *Reporter) Report(ctx context.Context, report *models.ChangeReport) bool {
	anyChanges := false
	for _, fd := range report.Fields {
		change := r.Summarize(report.EntityID, fd.Field, fd.Diff)
		if change == nil {
			continue
		}
		anyChanges = true

		r.logger.Info().
			Str("entity_id", report.EntityID).
			Str("cycle_id", report.CycleID).
			Str("field", fd.Field).
			Int("added", len(change.Added)).
			Int("removed", len(change.Removed)).
			Msg(change.Title)

		if err := r.presenter.PresentChange(ctx, *change); err != nil {
			r.logger.Error().Err(err).Str("entity_id", report.EntityID).Str("field", fd.Field).Msg("Failed to present change")
		}
	}
	return anyChanges
}

// Heartbeat emits the "no changes" notice. Presenter failures are logged only.
func (r *Reporter) Heartbeat(ctx context.Context, hb models.Heartbeat) {
	r.logger.Info().Str("entity_id", hb.EntityID).Dur("quiet_for", hb.Quiet).Msg("No changes detected")
	if err := r.presenter.PresentHeartbeat(ctx, hb); err != nil {
		r.logger.Error().Err(err).Str("entity_id", hb.EntityID).Msg("Failed to present heartbeat")
	}
}
