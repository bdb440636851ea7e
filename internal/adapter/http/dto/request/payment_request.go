package request

import (
	"encoding/json"
	"errors"
	"strings"
)

// PaymentCreateRequest is the body of the "create payment for a request"
// route. `mp_payload` is forwarded as raw JSON to support varying Mercado
// Pago schemas; a bare provider payload is accepted too.
type PaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload" swaggertype:"object"`
}

var (
	ErrPayloadNotJSON      = errors.New("request body is not valid json")
	ErrEmptyWrappedPayload = errors.New("mp_payload cannot be empty")
)

// ResolveProviderPayload unwraps `mp_payload` when present. An empty body
// resolves to an empty object.
func ResolveProviderPayload(raw []byte) (json.RawMessage, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, ErrPayloadNotJSON
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			w := strings.TrimSpace(string(wrapped))
			if w == "" || w == "null" {
				return nil, ErrEmptyWrappedPayload
			}
			return wrapped, nil
		}
	}
	return json.RawMessage(raw), nil
}
