package response

import (
	"time"

	"ritual_desk/internal/domain/entities"
)

// QuoteResponse carries the quote plus its derived state at read time.
type QuoteResponse struct {
	QuoteID         string     `json:"quote_id"`
	UserID          string     `json:"user_id"`
	ServiceID       string     `json:"service_id"`
	ServiceName     string     `json:"service_name"`
	QuotedPrice     int64      `json:"quoted_price"`
	Currency        string     `json:"currency"`
	Notes           string     `json:"notes,omitempty"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
	Accepted        bool       `json:"accepted"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	Active          bool       `json:"active"`
	Expired         bool       `json:"expired"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func FromQuote(q entities.PriceQuote, now time.Time) QuoteResponse {
	return QuoteResponse{
		QuoteID:         q.ID,
		UserID:          q.UserID,
		ServiceID:       string(q.ServiceID),
		ServiceName:     q.ServiceName,
		QuotedPrice:     q.QuotedPrice,
		Currency:        q.Currency,
		Notes:           q.Notes,
		ValidUntil:      q.ValidUntil,
		Accepted:        q.Accepted,
		AcceptedAt:      q.AcceptedAt,
		RejectedAt:      q.RejectedAt,
		RejectionReason: q.RejectionReason,
		Active:          q.Active(now),
		Expired:         q.Expired(now),
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func FromQuotes(qs []entities.PriceQuote, now time.Time) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, FromQuote(q, now))
	}
	return out
}

type SweepResponse struct {
	Deleted int `json:"deleted"`
}
