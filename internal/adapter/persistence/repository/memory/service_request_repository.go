package memory

import (
	"context"
	"sync"
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase/interfaces"

	"github.com/patrickmn/go-cache"
)

// ServiceRequestRepository keeps requests in process memory with the same
// preconditions as the DynamoDB repository.
type ServiceRequestRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var _ interfaces.IServiceRequestRepository = (*ServiceRequestRepository)(nil)

func NewServiceRequestRepository() *ServiceRequestRepository {
	return &ServiceRequestRepository{cache: cache.New(cache.NoExpiration, 0)}
}

func (r *ServiceRequestRepository) Create(_ context.Context, sr entities.ServiceRequest) (entities.ServiceRequest, error) {
	if err := r.cache.Add(sr.ID, copyRequest(sr), cache.NoExpiration); err != nil {
		return entities.ServiceRequest{}, err
	}
	return sr, nil
}

func (r *ServiceRequestRepository) GetByID(_ context.Context, id string) (entities.ServiceRequest, error) {
	if x, found := r.cache.Get(id); found {
		return copyRequest(x.(entities.ServiceRequest)), nil
	}
	return entities.ServiceRequest{}, nil
}

func (r *ServiceRequestRepository) ListByUser(_ context.Context, userID string) ([]entities.ServiceRequest, error) {
	return r.list(func(sr entities.ServiceRequest) bool { return sr.UserID == userID }), nil
}

func (r *ServiceRequestRepository) List(_ context.Context, q interfaces.RequestQuery) ([]entities.ServiceRequest, error) {
	return r.list(func(sr entities.ServiceRequest) bool {
		switch {
		case q.Status != "" && sr.Status != q.Status:
			return false
		case q.ServiceType != "" && sr.ServiceType != q.ServiceType:
			return false
		case q.AssignedTo != "" && sr.AssignedTo != q.AssignedTo:
			return false
		case q.Priority != "" && sr.Priority != q.Priority:
			return false
		case q.RequestedSince != nil && sr.RequestedAt.Before(*q.RequestedSince):
			return false
		}
		return true
	}), nil
}

func (r *ServiceRequestRepository) ApplyStatusChange(_ context.Context, id string, c entities.StatusChange) (entities.ServiceRequest, error) {
	return r.mutate(id, func(sr *entities.ServiceRequest) bool {
		if sr.Status != c.From {
			return false
		}
		sr.Apply(c)
		return true
	})
}

func (r *ServiceRequestRepository) UpdateFields(_ context.Context, id string, u interfaces.RequestFieldsUpdate) (entities.ServiceRequest, error) {
	return r.mutate(id, func(sr *entities.ServiceRequest) bool {
		if u.AssignedTo != nil {
			sr.AssignedTo = *u.AssignedTo
		}
		if u.AssignedAt != nil {
			sr.AssignedAt = copyTime(u.AssignedAt)
		}
		if u.Priority != nil {
			sr.Priority = *u.Priority
		}
		if u.AdminNotes != nil {
			sr.AdminNotes = *u.AdminNotes
		}
		if u.EstimatedCompletionDate != nil {
			sr.EstimatedCompletionDate = copyTime(u.EstimatedCompletionDate)
		}
		if u.SetTags {
			sr.Tags = append([]string{}, u.Tags...)
		}
		if u.PaymentIntentID != nil {
			sr.PaymentIntentID = *u.PaymentIntentID
		}
		if u.AmountPaid != nil {
			sr.AmountPaid = *u.AmountPaid
		}
		sr.UpdatedAt = u.UpdatedAt
		return true
	})
}

func (r *ServiceRequestRepository) AppendStep(_ context.Context, id string, expectedCount int, step entities.RitualStep, at time.Time) (entities.ServiceRequest, error) {
	return r.mutate(id, func(sr *entities.ServiceRequest) bool {
		if len(sr.RitualSteps) != expectedCount {
			return false
		}
		step.PhotoURLs = append([]string{}, step.PhotoURLs...)
		sr.RitualSteps = append(sr.RitualSteps, step)
		sr.UpdatedAt = at
		return true
	})
}

func (r *ServiceRequestRepository) SetStepCompletion(_ context.Context, id string, index int, completed bool, at time.Time) (entities.ServiceRequest, error) {
	return r.mutate(id, func(sr *entities.ServiceRequest) bool {
		if index < 0 || index >= len(sr.RitualSteps) || sr.RitualSteps[index].Completed == completed {
			return false
		}
		s := &sr.RitualSteps[index]
		s.Completed = completed
		if completed {
			s.CompletedAt = copyTime(&at)
		} else {
			s.CompletedAt = nil
		}
		sr.UpdatedAt = at
		return true
	})
}

func (r *ServiceRequestRepository) AppendStepPhotos(_ context.Context, id string, index int, urls []string, at time.Time) (entities.ServiceRequest, error) {
	return r.mutate(id, func(sr *entities.ServiceRequest) bool {
		if index < 0 || index >= len(sr.RitualSteps) {
			return false
		}
		s := &sr.RitualSteps[index]
		s.PhotoURLs = append(s.PhotoURLs, urls...)
		sr.UpdatedAt = at
		return true
	})
}

func (r *ServiceRequestRepository) mutate(id string, apply func(sr *entities.ServiceRequest) bool) (entities.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(id)
	if !found {
		return entities.ServiceRequest{}, interfaces.ErrPreconditionFailed
	}
	sr := copyRequest(x.(entities.ServiceRequest))
	if !apply(&sr) {
		return entities.ServiceRequest{}, interfaces.ErrPreconditionFailed
	}
	r.cache.Set(id, sr, cache.NoExpiration)
	return copyRequest(sr), nil
}

func (r *ServiceRequestRepository) list(keep func(entities.ServiceRequest) bool) []entities.ServiceRequest {
	out := []entities.ServiceRequest{}
	for _, item := range r.cache.Items() {
		sr := item.Object.(entities.ServiceRequest)
		if keep(sr) {
			out = append(out, copyRequest(sr))
		}
	}
	return out
}

// copyRequest detaches the embedded lists so callers never share them with
// the stored value.
func copyRequest(sr entities.ServiceRequest) entities.ServiceRequest {
	sr.StatusHistory = append([]entities.StatusUpdate{}, sr.StatusHistory...)
	steps := make([]entities.RitualStep, len(sr.RitualSteps))
	for i, s := range sr.RitualSteps {
		s.CompletedAt = copyTime(s.CompletedAt)
		s.PhotoURLs = append([]string{}, s.PhotoURLs...)
		steps[i] = s
	}
	sr.RitualSteps = steps
	if sr.Tags != nil {
		sr.Tags = append([]string{}, sr.Tags...)
	}
	sr.AssignedAt = copyTime(sr.AssignedAt)
	sr.StartedAt = copyTime(sr.StartedAt)
	sr.CompletedAt = copyTime(sr.CompletedAt)
	sr.EstimatedCompletionDate = copyTime(sr.EstimatedCompletionDate)
	return sr
}
