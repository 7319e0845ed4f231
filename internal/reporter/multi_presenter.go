package reporter

import (
	"context"
	"errors"

	"github.com/aleister1102/companywatch/internal/models"
)

// MultiPresenter fans every call out to all of its presenters.
// All presenters are called even when one fails.
type MultiPresenter struct {
	presenters []models.Presenter
}

// NewMultiPresenter skips nil presenters
func NewMultiPresenter(presenters ...models.Presenter) *MultiPresenter {
	mp := &MultiPresenter{}
	for _, p := range presenters {
		if p != nil {
			mp.presenters = append(mp.presenters, p)
		}
	}
	return mp
}

// Len returns the number of wrapped presenters
func (mp *MultiPresenter) Len() int {
	return len(mp.presenters)
}

func (mp *MultiPresenter) PresentChange(ctx context.Context, change models.RenderedChange) error {
	var errs []error
	for _, p := range mp.presenters {
		if err := p.PresentChange(ctx, change); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (mp *MultiPresenter) PresentHeartbeat(ctx context.Context, hb models.Heartbeat) error {
	var errs []error
	for _, p := range mp.presenters {
		if err := p.PresentHeartbeat(ctx, hb); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
