package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ritual_desk/internal/adapter/http/dto/request"
	"ritual_desk/internal/adapter/http/dto/response"
	"ritual_desk/internal/adapter/http/middleware"
	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase"
	"ritual_desk/pkg"

	"github.com/gin-gonic/gin"
)

// QuoteHandler serves the quote ledger to clients and admins.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
	now     func() time.Time
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc, now: func() time.Time { return time.Now().UTC() }}
}

// CreateQuote godoc
// @Summary      Issue a price quote
// @Tags         admin-quotes
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateQuoteRequest  true  "Quote"
// @Success      201   {object}  response.QuoteResponse
// @Failure      400   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /admin/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, err)
		return
	}

	q, err := h.usecase.CreateQuote(c.Request.Context(), payload.ToInput())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q, h.now()))
}

// GetQuote godoc
// @Summary      Get a quote
// @Tags         admin-quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.QuoteResponse
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /admin/quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, h.now()))
}

// GetActiveQuote godoc
// @Summary      Latest active quote of a user for a service
// @Tags         quotes
// @Produce      json
// @Param        service_id  query     string  true   "Service ID"
// @Param        user_id     query     string  false  "User ID (admins only)"
// @Success      200         {object}  response.QuoteResponse
// @Failure      404         {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /quotes/active [get]
func (h *QuoteHandler) GetActiveQuote(c *gin.Context) {
	userID := middleware.ActorID(c)
	if other := strings.TrimSpace(c.Query("user_id")); other != "" && middleware.IsAdmin(c) {
		userID = other
	}
	serviceID := entities.ServiceID(strings.TrimSpace(c.Query("service_id")))

	q, err := h.usecase.GetActiveQuote(c.Request.Context(), userID, serviceID)
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, h.now()))
}

// ListMyQuotes godoc
// @Summary      Quotes of the caller, newest first
// @Tags         quotes
// @Produce      json
// @Success      200  {array}  response.QuoteResponse
// @Security     Bearer
// @Router       /quotes/mine [get]
func (h *QuoteHandler) ListMyQuotes(c *gin.Context) {
	qs, err := h.usecase.ListQuotesForUser(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(qs, h.now()))
}

// AcceptQuote godoc
// @Summary      Accept a quote
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.QuoteResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /quotes/{id}/accept [post]
func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	id := c.Param("id")
	if !h.ownsQuote(c, id) {
		return
	}
	q, err := h.usecase.AcceptQuote(c.Request.Context(), id)
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, h.now()))
}

// RejectQuote godoc
// @Summary      Reject a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true   "Quote ID"
// @Param        body  body      request.RejectQuoteRequest  false  "Reason"
// @Success      200   {object}  response.QuoteResponse
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /quotes/{id}/reject [post]
func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	var payload request.RejectQuoteRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			invalidRequest(c, err)
			return
		}
	}
	id := c.Param("id")
	if !h.ownsQuote(c, id) {
		return
	}
	q, err := h.usecase.RejectQuote(c.Request.Context(), id, payload.Reason)
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, h.now()))
}

// UpdateQuote godoc
// @Summary      Renegotiate an unresolved quote
// @Tags         admin-quotes
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "Quote ID"
// @Param        body  body      request.UpdateQuoteRequest  true  "Changes"
// @Success      200   {object}  response.QuoteResponse
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /admin/quotes/{id} [patch]
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	var payload request.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, err)
		return
	}
	q, err := h.usecase.UpdateQuote(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, h.now()))
}

// SweepExpired godoc
// @Summary      Delete expired unanswered quotes
// @Tags         admin-quotes
// @Produce      json
// @Success      200  {object}  response.SweepResponse
// @Security     Bearer
// @Router       /admin/quotes/sweep [post]
func (h *QuoteHandler) SweepExpired(c *gin.Context) {
	n, err := h.usecase.ExpireSweep(c.Request.Context())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.SweepResponse{Deleted: n})
}

// GetQuoteStats godoc
// @Summary      Quote counts by resolution
// @Tags         admin-quotes
// @Produce      json
// @Success      200  {object}  entities.QuoteStats
// @Security     Bearer
// @Router       /admin/quotes/stats [get]
func (h *QuoteHandler) GetQuoteStats(c *gin.Context) {
	s, err := h.usecase.GetQuoteStats(c.Request.Context())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, s)
}

// ownsQuote writes a 404 unless the caller owns the quote or is an admin.
func (h *QuoteHandler) ownsQuote(c *gin.Context, id string) bool {
	if middleware.IsAdmin(c) {
		return true
	}
	q, err := h.usecase.GetQuote(c.Request.Context(), id)
	if err != nil {
		writeError(c, mapQuoteError(err))
		return false
	}
	if q.UserID != middleware.ActorID(c) {
		writeError(c, errNotOwner)
		return false
	}
	return true
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, entities.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrNoActiveQuote):
		return pkg.NewDomainErrorSimple("NO_ACTIVE_QUOTE", "No active quote for this service", http.StatusNotFound)
	case errors.Is(err, entities.ErrQuoteExpired):
		return pkg.NewDomainErrorSimple("QUOTE_EXPIRED", "Quote has expired", http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrQuoteRejected):
		return pkg.NewDomainErrorSimple("QUOTE_REJECTED", "Quote was already rejected", http.StatusConflict)
	case errors.Is(err, entities.ErrQuoteAccepted):
		return pkg.NewDomainErrorSimple("QUOTE_ACCEPTED", "Quote was already accepted", http.StatusConflict)
	case errors.Is(err, entities.ErrQuoteNotAccepted):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_ACCEPTED", "Quote has not been accepted", http.StatusConflict)
	case errors.Is(err, entities.ErrQuoteResolved):
		return pkg.NewDomainErrorSimple("QUOTE_RESOLVED", "Quote was already accepted or rejected", http.StatusConflict)
	default:
		return mapKindError(err)
	}
}
