package response

import (
	"encoding/json"
	"time"

	"ritual_desk/internal/domain/entities"
)

type PaymentResponse struct {
	PaymentID      string    `json:"payment_id"`
	QuoteID        string    `json:"quote_id"`
	RequestID      string    `json:"request_id"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	ProviderStatus string    `json:"provider_status"`
	CreatedAt      time.Time `json:"created_at"`

	ProviderPayloadRaw string         `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]any `json:"provider_payload,omitempty"`
}

// FromPaymentIntent decodes the provider response when it is a JSON object;
// the raw text is always kept.
func FromPaymentIntent(p entities.PaymentIntent) PaymentResponse {
	res := PaymentResponse{
		PaymentID:          p.ID,
		QuoteID:            p.QuoteID,
		RequestID:          p.RequestID,
		Amount:             p.Amount,
		Currency:           p.Currency,
		Status:             string(p.Status),
		ProviderStatus:     p.ProviderStatus,
		CreatedAt:          p.CreatedAt,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
	if len(p.ProviderPayloadRaw) > 0 {
		var m map[string]any
		if err := json.Unmarshal(p.ProviderPayloadRaw, &m); err == nil {
			res.ProviderPayload = m
		}
	}
	return res
}

func FromPaymentIntents(ps []entities.PaymentIntent) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPaymentIntent(p))
	}
	return out
}
