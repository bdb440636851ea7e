package usecase

import (
	"context"
	"fmt"
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/infrastructure/logger"
	"ritual_desk/internal/usecase/interfaces"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs the struct tags of a usecase input.
func validateInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", entities.ErrValidation, err.Error())
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", entities.ErrValidation, fmt.Sprintf(format, args...))
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, entities.ErrStorage, err)
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func publish(ctx context.Context, pub interfaces.IEventPublisher, log *logger.Logger, e entities.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, e); err != nil {
		log.Warn("[events][usecase] publish failed", "type", e.Type, "aggregate_id", e.AggregateID, "err", err)
	}
}

func orNop(log *logger.Logger) *logger.Logger {
	if log == nil {
		return logger.NewNop()
	}
	return log
}
