package handlers

import (
	"errors"
	"net/http"

	"ritual_desk/internal/adapter/http/dto/request"
	"ritual_desk/internal/adapter/http/dto/response"
	"ritual_desk/internal/adapter/http/middleware"
	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/infrastructure/logger"
	"ritual_desk/internal/usecase"
	"ritual_desk/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payments for service requests.
type PaymentHandler struct {
	usecase  usecase.IPaymentUseCase
	requests usecase.IServiceRequestUseCase
	mockMode bool
	log      *logger.Logger
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, requests usecase.IServiceRequestUseCase, mockMode bool, log *logger.Logger) *PaymentHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &PaymentHandler{usecase: uc, requests: requests, mockMode: mockMode, log: log}
}

// CreatePayment godoc
// @Summary      Pay the accepted quote behind a request
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true  "Request ID"
// @Param        body  body      request.PaymentCreateRequest  true  "Mercado Pago payload"
// @Success      200   {object}  response.PaymentResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /requests/{id}/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	requestID := c.Param("id")
	h.log.Info("[payment][handler] create start", "request_id", requestID)

	raw, err := c.GetRawData()
	if err != nil {
		h.log.Warn("[payment][handler] read body failed", "request_id", requestID, "err", err)
		invalidRequest(c, nil)
		return
	}
	payload, err := request.ResolveProviderPayload(raw)
	if err != nil {
		if !h.mockMode {
			h.log.Info("[payment][handler] invalid payload", "request_id", requestID, "err", err)
			invalidRequest(c, nil)
			return
		}
		h.log.Info("[payment][handler] payload invalid in mock mode, using empty payload", "request_id", requestID, "err", err)
		payload = []byte("{}")
	}

	if !h.ownsRequest(c, requestID) {
		return
	}

	created, err := h.usecase.CreateForRequest(c.Request.Context(), requestID, payload)
	if err != nil {
		h.log.Warn("[payment][handler] create failed", "request_id", requestID, "err", err)
		writeError(c, mapPaymentError(err))
		return
	}
	h.log.Info("[payment][handler] create success", "request_id", requestID, "payment_id", created.ID, "status", created.Status)
	c.JSON(http.StatusOK, response.FromPaymentIntent(created))
}

// ListPayments godoc
// @Summary      Payments of a request, newest first
// @Tags         payments
// @Produce      json
// @Param        id   path     string  true  "Request ID"
// @Success      200  {array}  response.PaymentResponse
// @Security     Bearer
// @Router       /requests/{id}/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	requestID := c.Param("id")
	if !h.ownsRequest(c, requestID) {
		return
	}
	payments, err := h.usecase.ListForRequest(c.Request.Context(), requestID)
	if err != nil {
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentIntents(payments))
}

func (h *PaymentHandler) ownsRequest(c *gin.Context, requestID string) bool {
	if middleware.IsAdmin(c) {
		return true
	}
	r, err := h.requests.Get(c.Request.Context(), requestID)
	if err != nil {
		writeError(c, mapServiceRequestError(err))
		return false
	}
	if r.UserID != middleware.ActorID(c) {
		writeError(c, errNotOwner)
		return false
	}
	return true
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProviderPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, entities.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return mapServiceRequestError(err)
	}
}
