package production

import (
	"context"
	"log"

	"github.com/comalice/reactorx"
)

// LogPublisher writes one line per applied mutation.
type LogPublisher[M any] struct {
	logger *log.Logger
}

// NewLogPublisher creates a LogPublisher. A nil logger means log.Default().
func NewLogPublisher[M any](logger *log.Logger) *LogPublisher[M] {
	if logger == nil {
		logger = log.Default()
	}
	return &LogPublisher[M]{logger: logger}
}

func (p *LogPublisher[M]) Publish(_ context.Context, mutation M, md reactorx.Metadata) error {
	p.logger.Printf("reactor %s #%d: %+v", md.ReactorID, md.Sequence, mutation)
	return nil
}

func (p *LogPublisher[M]) Close() error {
	return nil
}
