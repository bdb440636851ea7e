package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

var ErrPaymentNotFound = fmt.Errorf("payment %w", ErrNotFound)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// PaymentIntent links an accepted quote to the provider payment created for
// the request it opened.
//
// Storage model (DynamoDB):
//   - PK: id (provider payment id)
//   - GSI (request_id-index): request_id
//
// ProviderPayloadRaw keeps the provider response for traceability.
type PaymentIntent struct {
	ID                 string          `json:"id"`
	QuoteID            string          `json:"quote_id"`
	RequestID          string          `json:"request_id"`
	Amount             int64           `json:"amount"`
	Currency           string          `json:"currency"`
	Status             PaymentStatus   `json:"status"`
	ProviderStatus     string          `json:"provider_status"`
	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// PaymentStatusFromProvider maps provider statuses onto ours.
func PaymentStatusFromProvider(providerStatus string) PaymentStatus {
	switch providerStatus {
	case "approved", "authorized":
		return PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentStatusDenied
	}
	return PaymentStatusPending
}
