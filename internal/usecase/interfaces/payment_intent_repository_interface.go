package interfaces

import (
	"context"

	"ritual_desk/internal/domain/entities"
)

// IPaymentIntentRepository abstracts persistence for PaymentIntent.
type IPaymentIntentRepository interface {
	Create(ctx context.Context, p entities.PaymentIntent) (entities.PaymentIntent, error)
	GetByID(ctx context.Context, id string) (entities.PaymentIntent, error)
	ListByRequestID(ctx context.Context, requestID string) ([]entities.PaymentIntent, error)
}
