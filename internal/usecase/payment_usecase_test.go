package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ritual_desk/internal/adapter/persistence/repository/memory"
	"ritual_desk/internal/domain/entities"
	mock_interfaces "ritual_desk/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

const validPayload = `{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`

func acceptedQuote() entities.PriceQuote {
	at := baseTime
	vu := baseTime.Add(72 * time.Hour)
	return entities.PriceQuote{
		ID: "q-1", UserID: "u-1", ServiceID: entities.ServiceCurseRemoval, ServiceName: "Curse Removal",
		QuotedPrice: 7720, Currency: "BRL", Accepted: true, AcceptedAt: &at,
		ValidUntil: &vu, CreatedAt: baseTime,
	}
}

func quotedRequest() entities.ServiceRequest {
	r := entities.NewServiceRequest("req-1", "u-1", entities.ServiceCurseRemoval, "Curse Removal", "x", "", baseTime)
	r.QuoteID = "q-1"
	return r
}

type paymentMocks struct {
	repo     *mock_interfaces.MockIPaymentIntentRepository
	requests *mock_interfaces.MockIServiceRequestRepository
	quotes   *mock_interfaces.MockIPriceQuoteRepository
	gateway  *mock_interfaces.MockIPaymentGateway
}

func newPaymentMocks(ctrl *gomock.Controller) paymentMocks {
	return paymentMocks{
		repo:     mock_interfaces.NewMockIPaymentIntentRepository(ctrl),
		requests: mock_interfaces.NewMockIServiceRequestRepository(ctrl),
		quotes:   mock_interfaces.NewMockIPriceQuoteRepository(ctrl),
		gateway:  mock_interfaces.NewMockIPaymentGateway(ctrl),
	}
}

func TestPaymentUseCase_CreateForRequest_Validations(t *testing.T) {
	t.Run("empty request id", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil, PaymentUseCaseOptions{}, nil)
		_, err := uc.CreateForRequest(context.Background(), " ", json.RawMessage(`{}`))
		if !errors.Is(err, ErrInvalidRequestID) {
			t.Fatalf("expected ErrInvalidRequestID, got %v", err)
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil, PaymentUseCaseOptions{}, nil)
		_, err := uc.CreateForRequest(context.Background(), "req-1", nil)
		if !errors.Is(err, ErrInvalidProviderPayload) {
			t.Fatalf("expected ErrInvalidProviderPayload, got %v", err)
		}
	})

	t.Run("invalid json payload", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil, PaymentUseCaseOptions{}, nil)
		_, err := uc.CreateForRequest(context.Background(), "req-1", json.RawMessage(`{`))
		if !errors.Is(err, ErrInvalidProviderPayload) {
			t.Fatalf("expected ErrInvalidProviderPayload, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil, PaymentUseCaseOptions{}, nil)
		_, err := uc.CreateForRequest(context.Background(), "req-1", json.RawMessage(validPayload))
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})
}

func TestPaymentUseCase_CreateForRequest_QuoteChecks(t *testing.T) {
	cases := []struct {
		name    string
		request entities.ServiceRequest
		quote   *entities.PriceQuote
		want    error
	}{
		{name: "request not found", request: entities.ServiceRequest{}, want: entities.ErrServiceRequestNotFound},
		{name: "request without quote", request: entities.NewServiceRequest("req-1", "u-1", entities.ServiceLuckSpell, "Luck Spell", "x", "", baseTime), want: entities.ErrQuoteNotAccepted},
		{name: "quote missing", request: quotedRequest(), quote: &entities.PriceQuote{}, want: entities.ErrQuoteNotFound},
		{name: "quote pending", request: quotedRequest(), quote: &entities.PriceQuote{ID: "q-1"}, want: entities.ErrQuoteNotAccepted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			m := newPaymentMocks(ctrl)
			uc := NewPaymentUseCase(m.repo, m.requests, m.quotes, nil, m.gateway, PaymentUseCaseOptions{}, nil)

			m.requests.EXPECT().GetByID(gomock.Any(), "req-1").Return(tc.request, nil)
			if tc.quote != nil {
				m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(*tc.quote, nil)
			}

			_, err := uc.CreateForRequest(context.Background(), "req-1", json.RawMessage(validPayload))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("request repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newPaymentMocks(ctrl)
		uc := NewPaymentUseCase(m.repo, m.requests, m.quotes, nil, m.gateway, PaymentUseCaseOptions{}, nil)
		m.requests.EXPECT().GetByID(gomock.Any(), "req-1").Return(entities.ServiceRequest{}, errors.New("db"))

		_, err := uc.CreateForRequest(context.Background(), "req-1", json.RawMessage(validPayload))
		if !errors.Is(err, entities.ErrStorage) {
			t.Fatalf("expected ErrStorage, got %v", err)
		}
	})
}

func TestPaymentUseCase_CreateForRequest_PayloadValidation(t *testing.T) {
	cases := map[string]string{
		"missing payment_method_id": `{"payer":{"email":"x@test.com"}}`,
		"missing payer":             `{"payment_method_id":"pix"}`,
		"not an object":             `[1,2]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			m := newPaymentMocks(ctrl)
			uc := NewPaymentUseCase(m.repo, m.requests, m.quotes, nil, m.gateway, PaymentUseCaseOptions{AccessToken: "APP_USR-1"}, nil)

			m.requests.EXPECT().GetByID(gomock.Any(), "req-1").Return(quotedRequest(), nil)
			m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(acceptedQuote(), nil)

			_, err := uc.CreateForRequest(context.Background(), "req-1", json.RawMessage(payload))
			if !errors.Is(err, ErrInvalidProviderPayload) {
				t.Fatalf("expected ErrInvalidProviderPayload, got %v", err)
			}
		})
	}
}

func TestPaymentUseCase_CreateForRequest_GatewayErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "customer not found", err: errors.New(`{"code":2002}`), want: ErrPaymentGatewayCustomerNotFound},
		{name: "invalid users", err: errors.New(`invalid users involved`), want: ErrPaymentGatewayInvalidUsers},
		{name: "unauthorized", err: errors.New(`{"error":"unauthorized"}`), want: ErrPaymentGatewayUnauthorized},
		{name: "bad request", err: errors.New(`{"status":400}`), want: ErrPaymentGatewayBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			m := newPaymentMocks(ctrl)
			uc := NewPaymentUseCase(m.repo, m.requests, m.quotes, nil, m.gateway, PaymentUseCaseOptions{}, nil)

			m.requests.EXPECT().GetByID(gomock.Any(), "req-1").Return(quotedRequest(), nil)
			m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(acceptedQuote(), nil)
			m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, tc.err)

			_, err := uc.CreateForRequest(context.Background(), "req-1", json.RawMessage(validPayload))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("unknown gateway error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newPaymentMocks(ctrl)
		uc := NewPaymentUseCase(m.repo, m.requests, m.quotes, nil, m.gateway, PaymentUseCaseOptions{}, nil)

		m.requests.EXPECT().GetByID(gomock.Any(), "req-1").Return(quotedRequest(), nil)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(acceptedQuote(), nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New("boom"))

		_, err := uc.CreateForRequest(context.Background(), "req-1", json.RawMessage(validPayload))
		if err == nil || err.Error() != "boom" {
			t.Fatalf("expected boom, got %v", err)
		}
	})
}

func TestPaymentUseCase_CreateForRequest_SuccessAndStatuses(t *testing.T) {
	cases := []struct {
		name           string
		providerStatus string
		want           entities.PaymentStatus
		linked         bool
	}{
		{name: "approved", providerStatus: "approved", want: entities.PaymentStatusApproved, linked: true},
		{name: "rejected", providerStatus: "rejected", want: entities.PaymentStatusDenied},
		{name: "pending default", providerStatus: "in_process", want: entities.PaymentStatusPending},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			m := newPaymentMocks(ctrl)
			opts := PaymentUseCaseOptions{AccessToken: "TEST-token", SandboxPayerUserID: "123", SandboxPayerEmail: "sandbox@test.com"}
			uc := NewPaymentUseCase(m.repo, m.requests, m.quotes, m.requestsLinker(ctrl, tc.linked), m.gateway, opts, nil)
			uc.now = newClock().now

			m.requests.EXPECT().GetByID(gomock.Any(), "req-1").Return(quotedRequest(), nil)
			m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(acceptedQuote(), nil)
			m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
					var body map[string]any
					if err := json.Unmarshal(payload, &body); err != nil {
						t.Fatalf("payload should be valid json: %v", err)
					}
					if body["external_reference"] != "req-1" {
						t.Fatalf("external_reference not set")
					}
					if body["description"] != "Curse Removal (request req-1)" {
						t.Fatalf("description not set: %v", body["description"])
					}
					if body["transaction_amount"] != float64(77.2) {
						t.Fatalf("transaction_amount should come from the quote, got %v", body["transaction_amount"])
					}
					payer := body["payer"].(map[string]any)
					if payer["email"] != "sandbox@test.com" || payer["id"] != nil {
						t.Fatalf("expected sandbox payer id mapped to email, got %+v", payer)
					}
					return "pay-1", tc.providerStatus, json.RawMessage(`{"id":1}`), nil
				},
			)
			m.repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.PaymentIntent{})).DoAndReturn(
				func(_ context.Context, p entities.PaymentIntent) (entities.PaymentIntent, error) {
					if p.ID != "pay-1" || p.RequestID != "req-1" || p.QuoteID != "q-1" || p.Amount != 7720 || p.Status != tc.want {
						t.Fatalf("unexpected payment: %+v", p)
					}
					if !p.CreatedAt.Equal(baseTime) {
						t.Fatalf("created_at must come from the clock")
					}
					return p, nil
				},
			)

			res, err := uc.CreateForRequest(context.Background(), "req-1", json.RawMessage(`{"payment_method_id":"pix","payer":{"id":"123"}}`))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != tc.want {
				t.Fatalf("expected status %s, got %s", tc.want, res.Status)
			}
		})
	}

	t.Run("repository create error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newPaymentMocks(ctrl)
		uc := NewPaymentUseCase(m.repo, m.requests, m.quotes, nil, m.gateway, PaymentUseCaseOptions{}, nil)

		m.requests.EXPECT().GetByID(gomock.Any(), "req-1").Return(quotedRequest(), nil)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(acceptedQuote(), nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("pay-1", "approved", json.RawMessage(`{"id":1}`), nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentIntent{}, errors.New("db-create"))

		_, err := uc.CreateForRequest(context.Background(), "req-1", json.RawMessage(validPayload))
		if !errors.Is(err, entities.ErrStorage) {
			t.Fatalf("expected ErrStorage, got %v", err)
		}
	})
}

// requestsLinker returns a linker that must (or must not) be called.
func (m paymentMocks) requestsLinker(ctrl *gomock.Controller, expectCall bool) paymentLinker {
	repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
	if expectCall {
		repo.EXPECT().UpdateFields(gomock.Any(), "req-1", gomock.Any()).
			Return(entities.ServiceRequest{ID: "req-1", PaymentIntentID: "pay-1", AmountPaid: 7720}, nil)
	}
	return NewServiceRequestUseCase(repo, nil, nil, nil)
}

func TestPaymentUseCase_MockModeLinksRequest(t *testing.T) {
	ctx := context.Background()
	quotes := memory.NewPriceQuoteRepository()
	requests := memory.NewServiceRequestRepository()
	payments := memory.NewPaymentIntentRepository()
	c := newClock()

	quoteUC := NewQuoteUseCase(quotes, nil, nil, QuoteUseCaseOptions{})
	quoteUC.now = c.now
	requestUC := NewServiceRequestUseCase(requests, quotes, nil, nil)
	requestUC.now = c.now
	uc := NewPaymentUseCase(payments, requests, quotes, requestUC, nil, PaymentUseCaseOptions{Mock: true}, nil)
	uc.now = c.now

	q, err := quoteUC.CreateQuote(ctx, CreateQuoteInput{UserID: "u-1", ServiceID: entities.ServiceMoneySpell, QuotedPrice: 15000})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	if _, err := quoteUC.AcceptQuote(ctx, q.ID); err != nil {
		t.Fatalf("accept quote: %v", err)
	}
	r, err := requestUC.OpenFromQuote(ctx, q.ID, OpenFromQuoteInput{Description: "more money"})
	if err != nil {
		t.Fatalf("open request: %v", err)
	}

	p, err := uc.CreateForRequest(ctx, r.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != entities.PaymentStatusApproved || p.Amount != 15000 || p.RequestID != r.ID {
		t.Fatalf("unexpected payment: %+v", p)
	}

	linked, err := requestUC.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if linked.PaymentIntentID != p.ID || linked.AmountPaid != 15000 {
		t.Fatalf("payment not linked: %+v", linked)
	}

	list, err := uc.ListForRequest(ctx, r.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected list err=%v list=%+v", err, list)
	}
	got, err := uc.GetByID(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("unexpected get err=%v p=%+v", err, got)
	}
}

func TestPaymentUseCase_Getters(t *testing.T) {
	t.Run("GetByID invalid", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil, PaymentUseCaseOptions{}, nil)
		_, err := uc.GetByID(context.Background(), "")
		if !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
	})

	t.Run("GetByID not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentIntentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil, nil, nil, PaymentUseCaseOptions{}, nil)
		repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.PaymentIntent{}, nil)

		_, err := uc.GetByID(context.Background(), " id-1 ")
		if !errors.Is(err, entities.ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("ListForRequest invalid", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil, PaymentUseCaseOptions{}, nil)
		_, err := uc.ListForRequest(context.Background(), " ")
		if !errors.Is(err, ErrInvalidRequestID) {
			t.Fatalf("expected ErrInvalidRequestID, got %v", err)
		}
	})

	t.Run("ListForRequest repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentIntentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil, nil, nil, PaymentUseCaseOptions{}, nil)
		repo.EXPECT().ListByRequestID(gomock.Any(), "req-1").Return(nil, errors.New("db"))

		_, err := uc.ListForRequest(context.Background(), "req-1")
		if !errors.Is(err, entities.ErrStorage) {
			t.Fatalf("expected ErrStorage, got %v", err)
		}
	})
}

func TestPaymentUseCase_HelperFunctions(t *testing.T) {
	t.Run("hasNonEmptyString", func(t *testing.T) {
		if hasNonEmptyString(map[string]any{"x": 1}, "x") {
			t.Fatalf("expected false for non-string")
		}
		if hasNonEmptyString(map[string]any{"x": "   "}, "x") {
			t.Fatalf("expected false for blank string")
		}
		if !hasNonEmptyString(map[string]any{"x": "ok"}, "x") {
			t.Fatalf("expected true")
		}
	})

	t.Run("hasPayer and hasPayerID", func(t *testing.T) {
		if hasPayer(map[string]any{"payer": "x"}) {
			t.Fatalf("expected false")
		}
		if !hasPayer(map[string]any{"payer": map[string]any{"id": 10}}) {
			t.Fatalf("expected true with id")
		}
		if hasPayerID(map[string]any{"id": nil}) || hasPayerID(map[string]any{"id": " "}) {
			t.Fatalf("expected false for nil or blank id")
		}
	})

	t.Run("ensurePayerDefaults uses sandbox email", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil, PaymentUseCaseOptions{AccessToken: "TEST-x"}, nil)
		m := map[string]any{}
		uc.ensurePayerDefaults(m)
		payer := m["payer"].(map[string]any)
		if payer["email"] != "test_user_br@testuser.com" || payer["type"] != "customer" {
			t.Fatalf("unexpected payer: %+v", payer)
		}
	})
}
