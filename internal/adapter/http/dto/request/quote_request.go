package request

import (
	"strings"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase"
)

// CreateQuoteRequest is the admin payload issuing a quote. Prices are in
// minor currency units.
type CreateQuoteRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	ServiceID   string `json:"service_id" binding:"required"`
	ServiceName string `json:"service_name"`
	QuotedPrice int64  `json:"quoted_price" binding:"required,gt=0"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
	Notes       string `json:"notes" binding:"max=2000"`
	ValidDays   int    `json:"valid_days" binding:"gte=0,lte=365"`
}

func (r CreateQuoteRequest) ToInput() usecase.CreateQuoteInput {
	return usecase.CreateQuoteInput{
		UserID:      strings.TrimSpace(r.UserID),
		ServiceID:   entities.ServiceID(strings.TrimSpace(r.ServiceID)),
		ServiceName: r.ServiceName,
		QuotedPrice: r.QuotedPrice,
		Currency:    r.Currency,
		Notes:       r.Notes,
		ValidDays:   r.ValidDays,
	}
}

// UpdateQuoteRequest renegotiates an unresolved quote; at least one field
// must be present.
type UpdateQuoteRequest struct {
	NewPrice           *int64  `json:"new_price" binding:"omitempty,gt=0"`
	NewNotes           *string `json:"new_notes"`
	ExtendValidityDays *int    `json:"extend_validity_days" binding:"omitempty,gt=0,lte=365"`
}

func (r UpdateQuoteRequest) ToInput() usecase.UpdateQuoteInput {
	return usecase.UpdateQuoteInput{
		NewPrice:           r.NewPrice,
		NewNotes:           r.NewNotes,
		ExtendValidityDays: r.ExtendValidityDays,
	}
}

type RejectQuoteRequest struct {
	Reason string `json:"reason" binding:"max=2000"`
}
