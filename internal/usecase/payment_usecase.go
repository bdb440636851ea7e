package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/infrastructure/logger"
	"ritual_desk/internal/usecase/interfaces"
)

var (
	ErrInvalidPaymentID               = invalid("invalid payment id")
	ErrInvalidProviderPayload         = invalid("invalid mercado pago payload")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IPaymentUseCase charges the accepted quote behind a service request.
type IPaymentUseCase interface {
	CreateForRequest(ctx context.Context, requestID string, providerPayload json.RawMessage) (entities.PaymentIntent, error)
	GetByID(ctx context.Context, id string) (entities.PaymentIntent, error)
	ListForRequest(ctx context.Context, requestID string) ([]entities.PaymentIntent, error)
}

// paymentLinker stores an approved payment on its request.
type paymentLinker interface {
	AttachPayment(ctx context.Context, id, paymentIntentID string, amountPaid int64) (entities.ServiceRequest, error)
}

type PaymentUseCaseOptions struct {
	// Mock skips the provider and approves every payment.
	Mock               bool
	AccessToken        string
	SandboxPayerEmail  string
	SandboxPayerUserID string
}

type PaymentUseCase struct {
	repo        interfaces.IPaymentIntentRepository
	requestRepo interfaces.IServiceRequestRepository
	quoteRepo   interfaces.IPriceQuoteRepository
	linker      paymentLinker
	gateway     interfaces.IPaymentGateway
	opts        PaymentUseCaseOptions
	log         *logger.Logger
	now         func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	repo interfaces.IPaymentIntentRepository,
	requestRepo interfaces.IServiceRequestRepository,
	quoteRepo interfaces.IPriceQuoteRepository,
	linker paymentLinker,
	gateway interfaces.IPaymentGateway,
	opts PaymentUseCaseOptions,
	log *logger.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		repo:        repo,
		requestRepo: requestRepo,
		quoteRepo:   quoteRepo,
		linker:      linker,
		gateway:     gateway,
		opts:        opts,
		log:         orNop(log),
		now:         utcNow,
	}
}

// CreateForRequest creates the provider payment for the quote the request
// was opened from. The quote price is the amount charged whatever the
// payload says. Approved payments are linked to the request afterwards, in a
// separate write.
func (u *PaymentUseCase) CreateForRequest(ctx context.Context, requestID string, providerPayload json.RawMessage) (entities.PaymentIntent, error) {
	requestID = strings.TrimSpace(requestID)
	u.log.Info("[payment][usecase] create start", "request_id", requestID, "payload_len", len(providerPayload), "mock", u.opts.Mock)
	if requestID == "" {
		return entities.PaymentIntent{}, ErrInvalidRequestID
	}
	if len(providerPayload) == 0 || !json.Valid(providerPayload) {
		if !u.opts.Mock {
			return entities.PaymentIntent{}, ErrInvalidProviderPayload
		}
		providerPayload = json.RawMessage("{}")
	}
	if u.gateway == nil && !u.opts.Mock {
		return entities.PaymentIntent{}, ErrPaymentGatewayNotConfigured
	}

	r, err := u.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return entities.PaymentIntent{}, storageError("get request", err)
	}
	if r.ID == "" {
		return entities.PaymentIntent{}, entities.ErrServiceRequestNotFound
	}
	if r.QuoteID == "" {
		u.log.Info("[payment][usecase] request has no quote", "request_id", requestID)
		return entities.PaymentIntent{}, entities.ErrQuoteNotAccepted
	}
	q, err := u.quoteRepo.GetByID(ctx, r.QuoteID)
	if err != nil {
		return entities.PaymentIntent{}, storageError("get quote", err)
	}
	if q.ID == "" {
		return entities.PaymentIntent{}, entities.ErrQuoteNotFound
	}
	if !q.Accepted {
		return entities.PaymentIntent{}, entities.ErrQuoteNotAccepted
	}

	payload, err := u.enrichPayload(providerPayload, r, q)
	if err != nil {
		return entities.PaymentIntent{}, err
	}

	var (
		providerPaymentID string
		providerStatus    string
		providerResp      json.RawMessage
	)
	if u.opts.Mock {
		providerPaymentID, providerStatus, providerResp, err = u.mockPayment(payload)
		if err != nil {
			return entities.PaymentIntent{}, err
		}
	} else {
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, payload)
		if err != nil {
			u.log.Error("[payment][usecase] gateway failed", "request_id", requestID, "err", err)
			return entities.PaymentIntent{}, mapGatewayError(err)
		}
	}
	u.log.Info("[payment][usecase] gateway success", "request_id", requestID, "provider_payment_id", providerPaymentID, "provider_status", providerStatus)

	p := entities.PaymentIntent{
		ID:                 providerPaymentID,
		QuoteID:            q.ID,
		RequestID:          r.ID,
		Amount:             q.QuotedPrice,
		Currency:           q.Currency,
		Status:             entities.PaymentStatusFromProvider(providerStatus),
		ProviderStatus:     providerStatus,
		ProviderPayloadRaw: providerResp,
		CreatedAt:          u.now(),
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		u.log.Error("[payment][usecase] persist failed", "request_id", requestID, "payment_id", p.ID, "err", err)
		return entities.PaymentIntent{}, storageError("create payment", err)
	}

	if created.Status == entities.PaymentStatusApproved && u.linker != nil {
		if _, err := u.linker.AttachPayment(ctx, r.ID, created.ID, created.Amount); err != nil {
			u.log.Error("[payment][usecase] link to request failed", "request_id", r.ID, "payment_id", created.ID, "err", err)
		}
	}
	return created, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.PaymentIntent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PaymentIntent{}, ErrInvalidPaymentID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.PaymentIntent{}, storageError("get payment", err)
	}
	if p.ID == "" {
		return entities.PaymentIntent{}, entities.ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListForRequest(ctx context.Context, requestID string) ([]entities.PaymentIntent, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}
	ps, err := u.repo.ListByRequestID(ctx, requestID)
	if err != nil {
		return nil, storageError("list payments", err)
	}
	return ps, nil
}

// enrichPayload links the provider payload to the request and forces the
// quoted amount. Mercado Pago uses external_reference for reconciliation.
func (u *PaymentUseCase) enrichPayload(raw json.RawMessage, r entities.ServiceRequest, q entities.PriceQuote) (json.RawMessage, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		if !u.opts.Mock {
			return nil, ErrInvalidProviderPayload
		}
		m = map[string]any{}
	}
	if !u.opts.Mock {
		if !hasNonEmptyString(m, "payment_method_id") {
			u.log.Info("[payment][usecase] missing payment_method_id", "request_id", r.ID)
			return nil, ErrInvalidProviderPayload
		}
		u.normalizeSandboxPayer(m)
		u.ensurePayerDefaults(m)
		if !hasPayer(m) {
			u.log.Info("[payment][usecase] missing payer", "request_id", r.ID)
			return nil, ErrInvalidProviderPayload
		}
	}
	if _, ok := m["external_reference"]; !ok {
		m["external_reference"] = r.ID
	}
	if _, ok := m["description"]; !ok {
		m["description"] = fmt.Sprintf("%s (request %s)", q.ServiceName, r.ID)
	}
	m["transaction_amount"] = float64(q.QuotedPrice) / 100

	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode payment payload: %w", err)
	}
	return b, nil
}

func (u *PaymentUseCase) mockPayment(payload json.RawMessage) (string, string, json.RawMessage, error) {
	now := u.now()
	id := strconv.FormatInt(now.UnixNano(), 10)
	resp := map[string]any{}
	_ = json.Unmarshal(payload, &resp)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = now.Format(time.RFC3339Nano)
	resp["date_approved"] = now.Format(time.RFC3339Nano)
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	u.log.Info("[payment][usecase] mock mode, provider skipped", "provider_payment_id", id)
	return id, "approved", b, nil
}

func (u *PaymentUseCase) sandbox() bool {
	return strings.HasPrefix(strings.TrimSpace(u.opts.AccessToken), "TEST-")
}

func (u *PaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if email := strings.TrimSpace(u.opts.SandboxPayerEmail); email != "" {
		payer["email"] = email
	} else if u.sandbox() {
		payer["email"] = "test_user_br@testuser.com"
	}
}

// normalizeSandboxPayer swaps the configured sandbox user id for its email,
// which is what the sandbox accepts.
func (u *PaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok || !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if !u.sandbox() || u.opts.SandboxPayerUserID == "" || u.opts.SandboxPayerEmail == "" {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != strings.TrimSpace(u.opts.SandboxPayerUserID) {
		return
	}
	payer["email"] = strings.TrimSpace(u.opts.SandboxPayerEmail)
	delete(payer, "id")
	u.log.Debug("[payment][usecase] mapped sandbox payer id to email")
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func mapGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, `"code":2002`):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, `"code":2034`):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, `"error":"unauthorized"`) || strings.Contains(msg, `"status":401`):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, `"error":"bad_request"`) || strings.Contains(msg, `"status":400`):
		return ErrPaymentGatewayBadRequest
	}
	return err
}
