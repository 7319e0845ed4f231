package monitor

import (
	"context"

	"github.com/aleister1102/companywatch/internal/differ"
	"github.com/aleister1102/companywatch/internal/models"
	"github.com/aleister1102/companywatch/internal/reporter"
)

// FetchFunc returns the current records of one tracked field
type FetchFunc func(ctx context.Context) ([]models.Record, error)

// FieldSpec describes one tracked field: how to fetch it, identify its records and render them
type FieldSpec struct {
	Name   string
	Title  string
	Fetch  FetchFunc
	Key    models.KeyFunc
	Format reporter.Formatter
}

// View returns the presentation part of the spec
func (fs FieldSpec) View() reporter.FieldView {
	return reporter.FieldView{Field: fs.Name, Title: fs.Title, Format: fs.Format}
}

// RegistryFetcher is the part of the registry client the monitor needs
type RegistryFetcher interface {
	FetchOfficers(ctx context.Context, companyNumber string) ([]models.Record, error)
	FetchFilingHistory(ctx context.Context, companyNumber string) ([]models.Record, error)
}

// CompanyFieldSpecs returns the officer and filing history specs for one company, in report order
func CompanyFieldSpecs(fetcher RegistryFetcher, companyNumber string) []FieldSpec {
	return []FieldSpec{
		{
			Name:  models.FieldOfficers,
			Title: reporter.OfficerTitle(companyNumber),
			Fetch: func(ctx context.Context) ([]models.Record, error) {
				return fetcher.FetchOfficers(ctx, companyNumber)
			},
			Key:    differ.OfficerKey,
			Format: reporter.OfficerFormatter,
		},
		{
			Name:  models.FieldFilingHistory,
			Title: reporter.FilingHistoryTitle(companyNumber),
			Fetch: func(ctx context.Context) ([]models.Record, error) {
				return fetcher.FetchFilingHistory(ctx, companyNumber)
			},
			Key:    differ.FilingKey,
			Format: reporter.FilingFormatter,
		},
	}
}

// fieldViews collects the presentation views of specs
func fieldViews(specs []FieldSpec) []reporter.FieldView {
	views := make([]reporter.FieldView, 0, len(specs))
	for _, s := range specs {
		views = append(views, s.View())
	}
	return views
}
