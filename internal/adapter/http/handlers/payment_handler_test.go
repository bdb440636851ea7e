package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"ritual_desk/internal/adapter/http/handlers/mocks"
	"ritual_desk/internal/adapter/http/middleware"
	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase"

	"go.uber.org/mock/gomock"
)

func approvedPayment() entities.PaymentIntent {
	return entities.PaymentIntent{
		ID: "123", QuoteID: "q-1", RequestID: "r-1", Amount: 4500, Currency: "USD",
		Status: entities.PaymentStatusApproved, ProviderStatus: "approved",
		ProviderPayloadRaw: json.RawMessage(`{"id":123,"status":"approved"}`),
		CreatedAt:          time.Now().UTC(),
	}
}

func newPaymentHandler(t *testing.T, mockMode bool) (*PaymentHandler, *mocks.MockIPaymentUseCase, *mocks.MockIServiceRequestUseCase) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	requests := mocks.NewMockIServiceRequestUseCase(ctrl)
	return NewPaymentHandler(uc, requests, mockMode, nil), uc, requests
}

func TestPaymentHandler_CreatePayment(t *testing.T) {
	t.Run("invalid payload", func(t *testing.T) {
		h, _, _ := newPaymentHandler(t, false)
		r := newRouter("a-1", middleware.RoleAdmin)
		r.POST("/v1/requests/:id/payments", h.CreatePayment)

		w := serve(r, http.MethodPost, "/v1/requests/r-1/payments", "{not json")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("empty wrapped payload", func(t *testing.T) {
		h, _, _ := newPaymentHandler(t, false)
		r := newRouter("a-1", middleware.RoleAdmin)
		r.POST("/v1/requests/:id/payments", h.CreatePayment)

		w := serve(r, http.MethodPost, "/v1/requests/r-1/payments", `{"mp_payload":null}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("mock mode falls back to empty payload", func(t *testing.T) {
		h, uc, _ := newPaymentHandler(t, true)
		r := newRouter("a-1", middleware.RoleAdmin)
		r.POST("/v1/requests/:id/payments", h.CreatePayment)

		uc.EXPECT().CreateForRequest(gomock.Any(), "r-1", json.RawMessage("{}")).Return(approvedPayment(), nil)

		w := serve(r, http.MethodPost, "/v1/requests/r-1/payments", "{not json")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
	})

	t.Run("wrapped payload is unwrapped", func(t *testing.T) {
		h, uc, requests := newPaymentHandler(t, false)
		r := newRouter("u-1", middleware.RoleClient)
		r.POST("/v1/requests/:id/payments", h.CreatePayment)

		requests.EXPECT().Get(gomock.Any(), "r-1").Return(entities.ServiceRequest{ID: "r-1", UserID: "u-1"}, nil)
		uc.EXPECT().CreateForRequest(gomock.Any(), "r-1", json.RawMessage(`{"token":"tok"}`)).Return(approvedPayment(), nil)

		w := serve(r, http.MethodPost, "/v1/requests/r-1/payments", `{"mp_payload":{"token":"tok"}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["status"] != "approved" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("someone else's request", func(t *testing.T) {
		h, _, requests := newPaymentHandler(t, false)
		r := newRouter("u-1", middleware.RoleClient)
		r.POST("/v1/requests/:id/payments", h.CreatePayment)

		requests.EXPECT().Get(gomock.Any(), "r-1").Return(entities.ServiceRequest{ID: "r-1", UserID: "u-2"}, nil)

		w := serve(r, http.MethodPost, "/v1/requests/r-1/payments", `{"token":"tok"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{name: "bad request", err: usecase.ErrPaymentGatewayBadRequest, code: http.StatusBadRequest},
		{name: "invalid payload", err: usecase.ErrInvalidProviderPayload, code: http.StatusBadRequest},
		{name: "customer not found", err: usecase.ErrPaymentGatewayCustomerNotFound, code: http.StatusBadRequest},
		{name: "invalid users", err: usecase.ErrPaymentGatewayInvalidUsers, code: http.StatusBadRequest},
		{name: "unauthorized", err: usecase.ErrPaymentGatewayUnauthorized, code: http.StatusUnauthorized},
		{name: "not configured", err: usecase.ErrPaymentGatewayNotConfigured, code: http.StatusServiceUnavailable},
		{name: "quote not accepted", err: entities.ErrQuoteNotAccepted, code: http.StatusConflict},
		{name: "request missing", err: entities.ErrServiceRequestNotFound, code: http.StatusNotFound},
		{name: "unknown", err: errors.New("boom"), code: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, uc, _ := newPaymentHandler(t, false)
			r := newRouter("a-1", middleware.RoleAdmin)
			r.POST("/v1/requests/:id/payments", h.CreatePayment)

			uc.EXPECT().CreateForRequest(gomock.Any(), "r-1", gomock.Any()).Return(entities.PaymentIntent{}, tc.err)

			w := serve(r, http.MethodPost, "/v1/requests/r-1/payments", `{"token":"tok"}`)
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, w.Code)
			}
		})
	}
}

func TestPaymentHandler_ListPayments(t *testing.T) {
	h, uc, requests := newPaymentHandler(t, false)
	r := newRouter("u-1", middleware.RoleClient)
	r.GET("/v1/requests/:id/payments", h.ListPayments)

	requests.EXPECT().Get(gomock.Any(), "r-1").Return(entities.ServiceRequest{ID: "r-1", UserID: "u-1"}, nil)
	uc.EXPECT().ListForRequest(gomock.Any(), "r-1").Return([]entities.PaymentIntent{approvedPayment()}, nil)

	w := serve(r, http.MethodGet, "/v1/requests/r-1/payments", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body) != 1 {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
