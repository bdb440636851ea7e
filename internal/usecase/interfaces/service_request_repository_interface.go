package interfaces

import (
	"context"
	"time"

	"ritual_desk/internal/domain/entities"
)

// IServiceRequestRepository abstracts persistence for ServiceRequest.
//
// status_history and ritual_steps are embedded lists that only grow through
// the append methods below. GetByID returns a zero-value request when the id
// does not resolve; writes on a missing id or a failed precondition return
// ErrPreconditionFailed.
type IServiceRequestRepository interface {
	Create(ctx context.Context, r entities.ServiceRequest) (entities.ServiceRequest, error)
	GetByID(ctx context.Context, id string) (entities.ServiceRequest, error)
	ListByUser(ctx context.Context, userID string) ([]entities.ServiceRequest, error)
	List(ctx context.Context, q RequestQuery) ([]entities.ServiceRequest, error)
	// ApplyStatusChange requires the stored status to equal c.From.
	ApplyStatusChange(ctx context.Context, id string, c entities.StatusChange) (entities.ServiceRequest, error)
	UpdateFields(ctx context.Context, id string, u RequestFieldsUpdate) (entities.ServiceRequest, error)
	// AppendStep requires the stored step count to equal expectedCount.
	AppendStep(ctx context.Context, id string, expectedCount int, step entities.RitualStep, at time.Time) (entities.ServiceRequest, error)
	// SetStepCompletion requires the step at index to currently hold !completed.
	SetStepCompletion(ctx context.Context, id string, index int, completed bool, at time.Time) (entities.ServiceRequest, error)
	AppendStepPhotos(ctx context.Context, id string, index int, urls []string, at time.Time) (entities.ServiceRequest, error)
}

// RequestQuery holds the structural filters a store can evaluate itself.
// Empty fields do not filter.
type RequestQuery struct {
	Status         entities.RequestStatus
	ServiceType    entities.ServiceID
	AssignedTo     string
	Priority       entities.Priority
	RequestedSince *time.Time
}

// RequestFieldsUpdate overwrites scalar fields; nil fields are kept.
type RequestFieldsUpdate struct {
	AssignedTo              *string
	AssignedAt              *time.Time
	Priority                *entities.Priority
	AdminNotes              *string
	EstimatedCompletionDate *time.Time
	Tags                    []string
	SetTags                 bool
	PaymentIntentID         *string
	AmountPaid              *int64
	UpdatedAt               time.Time
}
