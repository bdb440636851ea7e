package request

import (
	"strings"
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase"
)

// CreateServiceRequestRequest is the self-service payload; the user comes
// from the caller's token.
type CreateServiceRequestRequest struct {
	ServiceType string `json:"service_type" binding:"required"`
	ServiceName string `json:"service_name"`
	Description string `json:"description" binding:"required,max=5000"`
	ClientNotes string `json:"client_notes" binding:"max=5000"`
}

func (r CreateServiceRequestRequest) ToInput(userID string) usecase.CreateRequestInput {
	return usecase.CreateRequestInput{
		UserID:      userID,
		ServiceType: entities.ServiceID(strings.TrimSpace(r.ServiceType)),
		ServiceName: r.ServiceName,
		Description: r.Description,
		ClientNotes: r.ClientNotes,
	}
}

type OpenFromQuoteRequest struct {
	Description string `json:"description" binding:"required,max=5000"`
	ClientNotes string `json:"client_notes" binding:"max=5000"`
}

func (r OpenFromQuoteRequest) ToInput() usecase.OpenFromQuoteInput {
	return usecase.OpenFromQuoteInput{Description: r.Description, ClientNotes: r.ClientNotes}
}

type StatusChangeRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"max=2000"`
}

// AssignRequest assigns the request to AdminID, or to the caller when empty.
type AssignRequest struct {
	AdminID string `json:"admin_id"`
}

type PriorityRequest struct {
	Priority string `json:"priority" binding:"required,oneof=low medium high urgent"`
}

type AdminNotesRequest struct {
	AdminNotes string `json:"admin_notes" binding:"max=5000"`
}

type ScheduleRequest struct {
	EstimatedCompletionDate time.Time `json:"estimated_completion_date" binding:"required"`
}

type TagsRequest struct {
	Tags []string `json:"tags" binding:"max=20,dive,max=40"`
}

// PaymentLinkRequest lets an admin record a payment settled outside the
// gateway flow.
type PaymentLinkRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	AmountPaid      int64  `json:"amount_paid" binding:"gte=0"`
}

type AddStepRequest struct {
	StepName string `json:"step_name" binding:"required,max=200"`
	Notes    string `json:"notes" binding:"max=2000"`
}

type EvidenceRequest struct {
	PhotoURLs []string `json:"photo_urls" binding:"required,min=1,dive,required"`
}

// PageQuery is the limit/skip pair of list endpoints. Zero limit means the
// default page size.
type PageQuery struct {
	Limit int `form:"limit" binding:"gte=0"`
	Skip  int `form:"skip" binding:"gte=0"`
}

// AdminListQuery filters the admin queue.
type AdminListQuery struct {
	PageQuery
	Status      string `form:"status"`
	ServiceType string `form:"service_type"`
	AssignedTo  string `form:"assigned_to"`
	Priority    string `form:"priority"`
	Search      string `form:"search"`
}

func (q AdminListQuery) Filter() entities.AdminFilter {
	return entities.AdminFilter{
		Status:      entities.RequestStatus(strings.TrimSpace(q.Status)),
		ServiceType: entities.ServiceID(strings.TrimSpace(q.ServiceType)),
		AssignedTo:  strings.TrimSpace(q.AssignedTo),
		Priority:    entities.Priority(strings.TrimSpace(q.Priority)),
		Search:      q.Search,
	}
}
