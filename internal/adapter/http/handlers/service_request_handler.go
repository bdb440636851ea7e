package handlers

import (
	"errors"
	"net/http"
	"strings"

	"ritual_desk/internal/adapter/http/dto/request"
	"ritual_desk/internal/adapter/http/dto/response"
	"ritual_desk/internal/adapter/http/middleware"
	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase"
	"ritual_desk/pkg"

	"github.com/gin-gonic/gin"
)

// ServiceRequestHandler serves request creation, the client views and the
// admin lifecycle and queue routes.
type ServiceRequestHandler struct {
	usecase usecase.IServiceRequestUseCase
	quotes  usecase.IQuoteUseCase
}

func NewServiceRequestHandler(uc usecase.IServiceRequestUseCase, quotes usecase.IQuoteUseCase) *ServiceRequestHandler {
	return &ServiceRequestHandler{usecase: uc, quotes: quotes}
}

// CreateRequest godoc
// @Summary      Open a service request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateServiceRequestRequest  true  "Request"
// @Success      201   {object}  response.ClientServiceRequestResponse
// @Failure      400   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /requests [post]
func (h *ServiceRequestHandler) CreateRequest(c *gin.Context) {
	var payload request.CreateServiceRequestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, err)
		return
	}
	r, err := h.usecase.Create(c.Request.Context(), payload.ToInput(middleware.ActorID(c)))
	if err != nil {
		writeError(c, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromServiceRequestForClient(r))
}

// OpenFromQuote godoc
// @Summary      Open the service request of an accepted quote
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true  "Quote ID"
// @Param        body  body      request.OpenFromQuoteRequest  true  "Request"
// @Success      201   {object}  response.ClientServiceRequestResponse
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /quotes/{id}/requests [post]
func (h *ServiceRequestHandler) OpenFromQuote(c *gin.Context) {
	var payload request.OpenFromQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, err)
		return
	}
	quoteID := c.Param("id")
	if !middleware.IsAdmin(c) {
		q, err := h.quotes.GetQuote(c.Request.Context(), quoteID)
		if err != nil {
			writeError(c, mapQuoteError(err))
			return
		}
		if q.UserID != middleware.ActorID(c) {
			writeError(c, errNotOwner)
			return
		}
	}

	r, err := h.usecase.OpenFromQuote(c.Request.Context(), quoteID, payload.ToInput())
	if err != nil {
		writeError(c, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromServiceRequestForClient(r))
}

// GetRequest godoc
// @Summary      Get a service request (owner or admin)
// @Tags         requests
// @Produce      json
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.ServiceRequestResponse
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /requests/{id} [get]
func (h *ServiceRequestHandler) GetRequest(c *gin.Context) {
	r, err := h.usecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapServiceRequestError(err))
		return
	}
	if middleware.IsAdmin(c) {
		c.JSON(http.StatusOK, response.FromServiceRequest(r))
		return
	}
	if r.UserID != middleware.ActorID(c) {
		writeError(c, errNotOwner)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceRequestForClient(r))
}

// ListMyRequests godoc
// @Summary      Requests of the caller, newest first
// @Tags         requests
// @Produce      json
// @Param        limit  query     int  false  "Page size (default 20, max 100)"
// @Param        skip   query     int  false  "Offset"
// @Success      200    {object}  response.ClientServiceRequestPageResponse
// @Security     Bearer
// @Router       /requests/mine [get]
func (h *ServiceRequestHandler) ListMyRequests(c *gin.Context) {
	var q request.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidRequest(c, err)
		return
	}
	page, err := h.usecase.ListForUser(c.Request.Context(), middleware.ActorID(c), q.Limit, q.Skip)
	if err != nil {
		writeError(c, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromRequestPageForClient(page))
}

// ListForAdmin godoc
// @Summary      Admin triage queue
// @Tags         admin-requests
// @Produce      json
// @Param        status        query     string  false  "Status"
// @Param        service_type  query     string  false  "Service ID"
// @Param        assigned_to   query     string  false  "Admin ID"
// @Param        priority      query     string  false  "Priority"
// @Param        search        query     string  false  "Text search"
// @Param        limit         query     int     false  "Page size (default 20, max 100)"
// @Param        skip          query     int     false  "Offset"
// @Success      200           {object}  response.ServiceRequestPageResponse
// @Security     Bearer
// @Router       /admin/requests [get]
func (h *ServiceRequestHandler) ListForAdmin(c *gin.Context) {
	var q request.AdminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidRequest(c, err)
		return
	}
	page, err := h.usecase.ListForAdmin(c.Request.Context(), q.Filter(), q.Limit, q.Skip)
	if err != nil {
		writeError(c, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromRequestPage(page))
}

// PendingCounts godoc
// @Summary      Pending requests by priority
// @Tags         admin-requests
// @Produce      json
// @Success      200  {object}  entities.PendingCounts
// @Security     Bearer
// @Router       /admin/requests/pending-counts [get]
func (h *ServiceRequestHandler) PendingCounts(c *gin.Context) {
	counts, err := h.usecase.CountPendingByPriority(c.Request.Context())
	if err != nil {
		writeError(c, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusOK, counts)
}

// TransitionStatus godoc
// @Summary      Move a request to another status
// @Tags         admin-requests
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true  "Request ID"
// @Param        body  body      request.StatusChangeRequest  true  "Status"
// @Success      200   {object}  response.ServiceRequestResponse
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /admin/requests/{id}/status [patch]
func (h *ServiceRequestHandler) TransitionStatus(c *gin.Context) {
	var payload request.StatusChangeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, err)
		return
	}
	status := entities.RequestStatus(strings.TrimSpace(payload.Status))
	r, err := h.usecase.TransitionStatus(c.Request.Context(), c.Param("id"), status, middleware.ActorID(c), payload.Notes)
	h.respond(c, r, err)
}

// Assign godoc
// @Summary      Assign a request to an admin (the caller by default)
// @Tags         admin-requests
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true   "Request ID"
// @Param        body  body      request.AssignRequest  false  "Assignee"
// @Success      200   {object}  response.ServiceRequestResponse
// @Security     Bearer
// @Router       /admin/requests/{id}/assign [patch]
func (h *ServiceRequestHandler) Assign(c *gin.Context) {
	var payload request.AssignRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			invalidRequest(c, err)
			return
		}
	}
	adminID := strings.TrimSpace(payload.AdminID)
	if adminID == "" {
		adminID = middleware.ActorID(c)
	}
	r, err := h.usecase.Assign(c.Request.Context(), c.Param("id"), adminID)
	h.respond(c, r, err)
}

// SetPriority godoc
// @Summary      Change the priority of a request
// @Tags         admin-requests
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Request ID"
// @Param        body  body      request.PriorityRequest  true  "Priority"
// @Success      200   {object}  response.ServiceRequestResponse
// @Security     Bearer
// @Router       /admin/requests/{id}/priority [patch]
func (h *ServiceRequestHandler) SetPriority(c *gin.Context) {
	var payload request.PriorityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, err)
		return
	}
	r, err := h.usecase.SetPriority(c.Request.Context(), c.Param("id"), entities.Priority(payload.Priority))
	h.respond(c, r, err)
}

// SetAdminNotes godoc
// @Summary      Overwrite the admin notes
// @Tags         admin-requests
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Request ID"
// @Param        body  body      request.AdminNotesRequest  true  "Notes"
// @Success      200   {object}  response.ServiceRequestResponse
// @Security     Bearer
// @Router       /admin/requests/{id}/notes [patch]
func (h *ServiceRequestHandler) SetAdminNotes(c *gin.Context) {
	var payload request.AdminNotesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, err)
		return
	}
	r, err := h.usecase.SetAdminNotes(c.Request.Context(), c.Param("id"), payload.AdminNotes)
	h.respond(c, r, err)
}

// SetSchedule godoc
// @Summary      Set the estimated completion date
// @Tags         admin-requests
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Request ID"
// @Param        body  body      request.ScheduleRequest  true  "Date"
// @Success      200   {object}  response.ServiceRequestResponse
// @Security     Bearer
// @Router       /admin/requests/{id}/schedule [patch]
func (h *ServiceRequestHandler) SetSchedule(c *gin.Context) {
	var payload request.ScheduleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, err)
		return
	}
	r, err := h.usecase.SetEstimatedCompletion(c.Request.Context(), c.Param("id"), payload.EstimatedCompletionDate)
	h.respond(c, r, err)
}

// SetTags godoc
// @Summary      Replace the tags of a request
// @Tags         admin-requests
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Request ID"
// @Param        body  body      request.TagsRequest  true  "Tags"
// @Success      200   {object}  response.ServiceRequestResponse
// @Security     Bearer
// @Router       /admin/requests/{id}/tags [patch]
func (h *ServiceRequestHandler) SetTags(c *gin.Context) {
	var payload request.TagsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, err)
		return
	}
	r, err := h.usecase.SetTags(c.Request.Context(), c.Param("id"), payload.Tags)
	h.respond(c, r, err)
}

// AttachPayment godoc
// @Summary      Record a payment on a request
// @Tags         admin-requests
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "Request ID"
// @Param        body  body      request.PaymentLinkRequest  true  "Payment"
// @Success      200   {object}  response.ServiceRequestResponse
// @Security     Bearer
// @Router       /admin/requests/{id}/payment [patch]
func (h *ServiceRequestHandler) AttachPayment(c *gin.Context) {
	var payload request.PaymentLinkRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, err)
		return
	}
	r, err := h.usecase.AttachPayment(c.Request.Context(), c.Param("id"), payload.PaymentIntentID, payload.AmountPaid)
	h.respond(c, r, err)
}

// AddStep godoc
// @Summary      Append a ritual step
// @Tags         admin-ritual
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Request ID"
// @Param        body  body      request.AddStepRequest  true  "Step"
// @Success      201   {object}  response.ServiceRequestResponse
// @Security     Bearer
// @Router       /admin/requests/{id}/steps [post]
func (h *ServiceRequestHandler) AddStep(c *gin.Context) {
	var payload request.AddStepRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, err)
		return
	}
	r, err := h.usecase.AddStep(c.Request.Context(), c.Param("id"), payload.StepName, payload.Notes)
	if err != nil {
		writeError(c, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromServiceRequest(r))
}

// ToggleStep godoc
// @Summary      Flip the completion of a ritual step
// @Tags         admin-ritual
// @Produce      json
// @Param        id    path      string  true  "Request ID"
// @Param        step  path      int     true  "Step number"
// @Success      200   {object}  response.ServiceRequestResponse
// @Failure      404   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /admin/requests/{id}/steps/{step}/toggle [patch]
func (h *ServiceRequestHandler) ToggleStep(c *gin.Context) {
	step, ok := intParam(c, "step")
	if !ok {
		invalidRequest(c, nil)
		return
	}
	r, err := h.usecase.ToggleStep(c.Request.Context(), c.Param("id"), step)
	h.respond(c, r, err)
}

// AttachEvidence godoc
// @Summary      Append evidence photos to a ritual step
// @Tags         admin-ritual
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Request ID"
// @Param        step  path      int                      true  "Step number"
// @Param        body  body      request.EvidenceRequest  true  "Photo URLs"
// @Success      200   {object}  response.ServiceRequestResponse
// @Security     Bearer
// @Router       /admin/requests/{id}/steps/{step}/evidence [post]
func (h *ServiceRequestHandler) AttachEvidence(c *gin.Context) {
	step, ok := intParam(c, "step")
	if !ok {
		invalidRequest(c, nil)
		return
	}
	var payload request.EvidenceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, err)
		return
	}
	r, err := h.usecase.AttachEvidence(c.Request.Context(), c.Param("id"), step, payload.PhotoURLs)
	h.respond(c, r, err)
}

func (h *ServiceRequestHandler) respond(c *gin.Context, r entities.ServiceRequest, err error) {
	if err != nil {
		writeError(c, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceRequest(r))
}

func mapServiceRequestError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, entities.ErrServiceRequestNotFound):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_FOUND", "Service request not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrStepNotFound):
		return pkg.NewDomainErrorSimple("STEP_NOT_FOUND", "Ritual step not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrTerminalStatus):
		return pkg.NewDomainErrorSimple("REQUEST_CLOSED", "Request is completed or cancelled", http.StatusConflict)
	case errors.Is(err, entities.ErrTransitionNotAllowed):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Status change not allowed", http.StatusConflict)
	case errors.Is(err, entities.ErrConcurrentUpdate):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Request changed concurrently, reload and retry", http.StatusConflict)
	case errors.Is(err, entities.ErrQuoteNotFound), errors.Is(err, entities.ErrQuoteNotAccepted):
		return mapQuoteError(err)
	default:
		return mapKindError(err)
	}
}
