package entities

import (
	"fmt"
	"time"
)

var (
	ErrServiceRequestNotFound = fmt.Errorf("service request %w", ErrNotFound)
	ErrStepNotFound           = fmt.Errorf("ritual step %w", ErrNotFound)
	ErrTerminalStatus         = fmt.Errorf("request is in a terminal status: %w", ErrInvalidTransition)
	ErrTransitionNotAllowed   = fmt.Errorf("status change not allowed: %w", ErrInvalidTransition)
	ErrConcurrentUpdate       = fmt.Errorf("request changed concurrently: %w", ErrConflict)
)

// RequestStatus is the lifecycle state of a service request.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCancelled  RequestStatus = "cancelled"
	RequestStatusOnHold     RequestStatus = "on_hold"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusCompleted, RequestStatusCancelled, RequestStatusOnHold:
		return true
	}
	return false
}

func (s RequestStatus) Terminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusCancelled
}

// Priority orders the admin triage queue.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Rank maps a priority to its sort weight; 0 for unknown values.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	}
	return 0
}

const (
	SystemActor          = "system"
	CreationHistoryNotes = "Request created"
)

// StatusUpdate is one entry of the append-only status history.
type StatusUpdate struct {
	Status    RequestStatus `json:"status"`
	UpdatedBy string        `json:"updated_by"`
	UpdatedAt time.Time     `json:"updated_at"`
	Notes     string        `json:"notes,omitempty"`
}

// RitualStep is one checklist item of a request, ordered by StepNumber.
type RitualStep struct {
	StepNumber  int        `json:"step_number"`
	StepName    string     `json:"step_name"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	PhotoURLs   []string   `json:"photo_urls,omitempty"`
}

// ServiceRequest is one client's request for a service and its full
// lifecycle.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (user_id-index): user_id
//   - status_history and ritual_steps are embedded lists
//
// Monetary representation:
//   - AmountPaid is in minor currency units (cents).
type ServiceRequest struct {
	ID                      string         `json:"id"`
	UserID                  string         `json:"user_id"`
	QuoteID                 string         `json:"quote_id,omitempty"`
	ServiceName             string         `json:"service_name"`
	ServiceType             ServiceID      `json:"service_type"`
	Description             string         `json:"description"`
	ClientNotes             string         `json:"client_notes,omitempty"`
	Status                  RequestStatus  `json:"status"`
	Priority                Priority       `json:"priority"`
	StatusHistory           []StatusUpdate `json:"status_history"`
	AssignedTo              string         `json:"assigned_to,omitempty"`
	AssignedAt              *time.Time     `json:"assigned_at,omitempty"`
	RitualSteps             []RitualStep   `json:"ritual_steps"`
	RitualNotes             string         `json:"ritual_notes,omitempty"`
	PaymentIntentID         string         `json:"payment_intent_id,omitempty"`
	AmountPaid              int64          `json:"amount_paid"`
	RequestedAt             time.Time      `json:"requested_at"`
	StartedAt               *time.Time     `json:"started_at,omitempty"`
	CompletedAt             *time.Time     `json:"completed_at,omitempty"`
	EstimatedCompletionDate *time.Time     `json:"estimated_completion_date,omitempty"`
	AdminNotes              string         `json:"admin_notes,omitempty"`
	Tags                    []string       `json:"tags,omitempty"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
}

// NewServiceRequest builds a pending request carrying the creation history
// entry.
func NewServiceRequest(id, userID string, serviceType ServiceID, serviceName, description, clientNotes string, now time.Time) ServiceRequest {
	return ServiceRequest{
		ID:          id,
		UserID:      userID,
		ServiceName: serviceName,
		ServiceType: serviceType,
		Description: description,
		ClientNotes: clientNotes,
		Status:      RequestStatusPending,
		Priority:    PriorityMedium,
		StatusHistory: []StatusUpdate{{
			Status:    RequestStatusPending,
			UpdatedBy: SystemActor,
			UpdatedAt: now,
			Notes:     CreationHistoryNotes,
		}},
		RitualSteps: []RitualStep{},
		RequestedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CompletionPercentage is completed steps over total steps, rounded; 0 when
// there are no steps.
func (r ServiceRequest) CompletionPercentage() int {
	total := len(r.RitualSteps)
	if total == 0 {
		return 0
	}
	done := 0
	for _, s := range r.RitualSteps {
		if s.Completed {
			done++
		}
	}
	return roundPercent(done, total)
}

// Step returns the step with the given 1-based number and its slice index.
func (r ServiceRequest) Step(stepNumber int) (RitualStep, int, error) {
	idx := stepNumber - 1
	if idx < 0 || idx >= len(r.RitualSteps) {
		return RitualStep{}, -1, ErrStepNotFound
	}
	return r.RitualSteps[idx], idx, nil
}

// StatusChange is the write produced by a validated transition.
type StatusChange struct {
	From         RequestStatus
	Entry        StatusUpdate
	SetStartedAt bool
	SetCompleted bool
}

// PlanTransition validates a status change against the current record and
// describes the write to apply. Started/completed timestamps are only set the
// first time their status is entered.
func (r ServiceRequest) PlanTransition(to RequestStatus, actor, notes string, now time.Time) (StatusChange, error) {
	if !to.Valid() {
		return StatusChange{}, fmt.Errorf("unknown status %q: %w", to, ErrValidation)
	}
	if r.Status.Terminal() {
		return StatusChange{}, ErrTerminalStatus
	}
	if !ValidTransition(r.Status, to) {
		return StatusChange{}, fmt.Errorf("%s -> %s: %w", r.Status, to, ErrTransitionNotAllowed)
	}
	return StatusChange{
		From: r.Status,
		Entry: StatusUpdate{
			Status:    to,
			UpdatedBy: actor,
			UpdatedAt: now,
			Notes:     notes,
		},
		SetStartedAt: to == RequestStatusInProgress && r.StartedAt == nil,
		SetCompleted: to == RequestStatusCompleted && r.CompletedAt == nil,
	}, nil
}

// Apply mirrors on the in-memory record what the store does for a change.
func (r *ServiceRequest) Apply(c StatusChange) {
	now := c.Entry.UpdatedAt
	r.Status = c.Entry.Status
	r.StatusHistory = append(r.StatusHistory, c.Entry)
	r.UpdatedAt = now
	if c.SetStartedAt && r.StartedAt == nil {
		t := now
		r.StartedAt = &t
	}
	if c.SetCompleted && r.CompletedAt == nil {
		t := now
		r.CompletedAt = &t
	}
}
