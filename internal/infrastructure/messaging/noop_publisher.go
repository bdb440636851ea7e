package messaging

import (
	"context"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/infrastructure/logger"
	"ritual_desk/internal/usecase/interfaces"
)

// NoopPublisher logs events instead of sending them. Used when no broker is
// configured.
type NoopPublisher struct {
	log *logger.Logger
}

var _ interfaces.IEventPublisher = (*NoopPublisher)(nil)

func NewNoopPublisher(log *logger.Logger) *NoopPublisher {
	if log == nil {
		log = logger.NewNop()
	}
	return &NoopPublisher{log: log}
}

func (p *NoopPublisher) Publish(_ context.Context, e entities.Event) error {
	p.log.Debug("[events][noop] dropped", "type", e.Type, "aggregate_id", e.AggregateID)
	return nil
}
