package interfaces

import (
	"context"
	"time"

	"ritual_desk/internal/domain/entities"
)

// IPriceQuoteRepository abstracts persistence for PriceQuote.
//
// Read methods return a zero-value quote (empty ID) when nothing matches.
// Conditional writes return ErrPreconditionFailed when the stored quote no
// longer satisfies the write's precondition.
type IPriceQuoteRepository interface {
	Create(ctx context.Context, q entities.PriceQuote) (entities.PriceQuote, error)
	GetByID(ctx context.Context, id string) (entities.PriceQuote, error)
	ListByUser(ctx context.Context, userID string) ([]entities.PriceQuote, error)
	ListAll(ctx context.Context) ([]entities.PriceQuote, error)
	// MarkAccepted requires the quote not to be rejected.
	MarkAccepted(ctx context.Context, id string, at time.Time) (entities.PriceQuote, error)
	// MarkRejected requires the quote not to be accepted.
	MarkRejected(ctx context.Context, id, reason string, at time.Time) (entities.PriceQuote, error)
	// Update requires the quote to be unresolved.
	Update(ctx context.Context, id string, u QuoteUpdate) (entities.PriceQuote, error)
	// DeleteExpired removes q only if it is still unresolved and carries the
	// same expiry; it reports whether a delete happened.
	DeleteExpired(ctx context.Context, q entities.PriceQuote) (bool, error)
}

// QuoteUpdate carries the admin renegotiation fields; nil fields are kept.
type QuoteUpdate struct {
	QuotedPrice *int64
	Notes       *string
	ValidUntil  *time.Time
	UpdatedAt   time.Time
}
