package interfaces

import (
	"context"

	"ritual_desk/internal/domain/entities"
)

// IEventPublisher hands lifecycle events to the notification side. Callers
// treat publishing as best effort.
type IEventPublisher interface {
	Publish(ctx context.Context, e entities.Event) error
}
