package production

import (
	"context"
	"errors"

	"github.com/comalice/reactorx"
)

// MultiPublisher fans each mutation out to several publishers in order.
type MultiPublisher[M any] struct {
	pubs []reactorx.Publisher[M]
}

// NewMultiPublisher combines pubs into one Publisher.
func NewMultiPublisher[M any](pubs ...reactorx.Publisher[M]) *MultiPublisher[M] {
	return &MultiPublisher[M]{pubs: pubs}
}

// Publish notifies every publisher, even after one fails.
func (p *MultiPublisher[M]) Publish(ctx context.Context, mutation M, md reactorx.Metadata) error {
	var errs []error
	for _, pub := range p.pubs {
		if err := pub.Publish(ctx, mutation, md); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *MultiPublisher[M]) Close() error {
	var errs []error
	for _, pub := range p.pubs {
		if err := pub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
