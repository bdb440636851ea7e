package response

import (
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase"
)

type StatusUpdateResponse struct {
	Status    string    `json:"status"`
	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
	Notes     string    `json:"notes,omitempty"`
}

type RitualStepResponse struct {
	StepNumber  int        `json:"step_number"`
	StepName    string     `json:"step_name"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	PhotoURLs   []string   `json:"photo_urls"`
}

type ServiceRequestResponse struct {
	RequestID               string                 `json:"request_id"`
	UserID                  string                 `json:"user_id"`
	QuoteID                 string                 `json:"quote_id,omitempty"`
	ServiceName             string                 `json:"service_name"`
	ServiceType             string                 `json:"service_type"`
	Description             string                 `json:"description"`
	ClientNotes             string                 `json:"client_notes,omitempty"`
	Status                  string                 `json:"status"`
	Priority                string                 `json:"priority"`
	StatusHistory           []StatusUpdateResponse `json:"status_history"`
	AssignedTo              string                 `json:"assigned_to,omitempty"`
	AssignedAt              *time.Time             `json:"assigned_at,omitempty"`
	RitualSteps             []RitualStepResponse   `json:"ritual_steps"`
	CompletionPercentage    int                    `json:"completion_percentage"`
	RitualNotes             string                 `json:"ritual_notes,omitempty"`
	PaymentIntentID         string                 `json:"payment_intent_id,omitempty"`
	AmountPaid              int64                  `json:"amount_paid"`
	RequestedAt             time.Time              `json:"requested_at"`
	StartedAt               *time.Time             `json:"started_at,omitempty"`
	CompletedAt             *time.Time             `json:"completed_at,omitempty"`
	EstimatedCompletionDate *time.Time             `json:"estimated_completion_date,omitempty"`
	AdminNotes              string                 `json:"admin_notes,omitempty"`
	Tags                    []string               `json:"tags"`
	CreatedAt               time.Time              `json:"created_at"`
	UpdatedAt               time.Time              `json:"updated_at"`
}

// ClientServiceRequestResponse hides admin-only fields from the request
// owner.
type ClientServiceRequestResponse struct {
	RequestID               string               `json:"request_id"`
	QuoteID                 string               `json:"quote_id,omitempty"`
	ServiceName             string               `json:"service_name"`
	ServiceType             string               `json:"service_type"`
	Description             string               `json:"description"`
	ClientNotes             string               `json:"client_notes,omitempty"`
	Status                  string               `json:"status"`
	RitualSteps             []RitualStepResponse `json:"ritual_steps"`
	CompletionPercentage    int                  `json:"completion_percentage"`
	AmountPaid              int64                `json:"amount_paid"`
	RequestedAt             time.Time            `json:"requested_at"`
	StartedAt               *time.Time           `json:"started_at,omitempty"`
	CompletedAt             *time.Time           `json:"completed_at,omitempty"`
	EstimatedCompletionDate *time.Time           `json:"estimated_completion_date,omitempty"`
	UpdatedAt               time.Time            `json:"updated_at"`
}

func FromServiceRequest(r entities.ServiceRequest) ServiceRequestResponse {
	history := make([]StatusUpdateResponse, 0, len(r.StatusHistory))
	for _, h := range r.StatusHistory {
		history = append(history, StatusUpdateResponse{
			Status:    string(h.Status),
			UpdatedBy: h.UpdatedBy,
			UpdatedAt: h.UpdatedAt,
			Notes:     h.Notes,
		})
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return ServiceRequestResponse{
		RequestID:               r.ID,
		UserID:                  r.UserID,
		QuoteID:                 r.QuoteID,
		ServiceName:             r.ServiceName,
		ServiceType:             string(r.ServiceType),
		Description:             r.Description,
		ClientNotes:             r.ClientNotes,
		Status:                  string(r.Status),
		Priority:                string(r.Priority),
		StatusHistory:           history,
		AssignedTo:              r.AssignedTo,
		AssignedAt:              r.AssignedAt,
		RitualSteps:             fromSteps(r.RitualSteps),
		CompletionPercentage:    r.CompletionPercentage(),
		RitualNotes:             r.RitualNotes,
		PaymentIntentID:         r.PaymentIntentID,
		AmountPaid:              r.AmountPaid,
		RequestedAt:             r.RequestedAt,
		StartedAt:               r.StartedAt,
		CompletedAt:             r.CompletedAt,
		EstimatedCompletionDate: r.EstimatedCompletionDate,
		AdminNotes:              r.AdminNotes,
		Tags:                    tags,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
}

func FromServiceRequestForClient(r entities.ServiceRequest) ClientServiceRequestResponse {
	return ClientServiceRequestResponse{
		RequestID:               r.ID,
		QuoteID:                 r.QuoteID,
		ServiceName:             r.ServiceName,
		ServiceType:             string(r.ServiceType),
		Description:             r.Description,
		ClientNotes:             r.ClientNotes,
		Status:                  string(r.Status),
		RitualSteps:             fromSteps(r.RitualSteps),
		CompletionPercentage:    r.CompletionPercentage(),
		AmountPaid:              r.AmountPaid,
		RequestedAt:             r.RequestedAt,
		StartedAt:               r.StartedAt,
		CompletedAt:             r.CompletedAt,
		EstimatedCompletionDate: r.EstimatedCompletionDate,
		UpdatedAt:               r.UpdatedAt,
	}
}

func fromSteps(steps []entities.RitualStep) []RitualStepResponse {
	out := make([]RitualStepResponse, 0, len(steps))
	for _, s := range steps {
		photos := s.PhotoURLs
		if photos == nil {
			photos = []string{}
		}
		out = append(out, RitualStepResponse{
			StepNumber:  s.StepNumber,
			StepName:    s.StepName,
			Completed:   s.Completed,
			CompletedAt: s.CompletedAt,
			Notes:       s.Notes,
			PhotoURLs:   photos,
		})
	}
	return out
}

type ServiceRequestPageResponse struct {
	Items []ServiceRequestResponse `json:"items"`
	Total int                      `json:"total"`
	Limit int                      `json:"limit"`
	Skip  int                      `json:"skip"`
}

type ClientServiceRequestPageResponse struct {
	Items []ClientServiceRequestResponse `json:"items"`
	Total int                            `json:"total"`
	Limit int                            `json:"limit"`
	Skip  int                            `json:"skip"`
}

func FromRequestPage(p usecase.RequestPage) ServiceRequestPageResponse {
	items := make([]ServiceRequestResponse, 0, len(p.Items))
	for _, r := range p.Items {
		items = append(items, FromServiceRequest(r))
	}
	return ServiceRequestPageResponse{Items: items, Total: p.Total, Limit: p.Limit, Skip: p.Skip}
}

func FromRequestPageForClient(p usecase.RequestPage) ClientServiceRequestPageResponse {
	items := make([]ClientServiceRequestResponse, 0, len(p.Items))
	for _, r := range p.Items {
		items = append(items, FromServiceRequestForClient(r))
	}
	return ClientServiceRequestPageResponse{Items: items, Total: p.Total, Limit: p.Limit, Skip: p.Skip}
}
