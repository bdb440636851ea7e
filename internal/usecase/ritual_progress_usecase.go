package usecase

import (
	"context"
	"errors"
	"strings"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase/interfaces"
)

var (
	ErrEmptyStepName = invalid("step name is required")
	ErrEmptyEvidence = invalid("at least one evidence url is required")
)

// AddStep appends the next numbered step. The store refuses the append if
// another step landed in between, which keeps numbering contiguous.
func (u *ServiceRequestUseCase) AddStep(ctx context.Context, id, stepName, notes string) (entities.ServiceRequest, error) {
	id = strings.TrimSpace(id)
	stepName = strings.TrimSpace(stepName)
	if id == "" {
		return entities.ServiceRequest{}, ErrInvalidRequestID
	}
	if stepName == "" {
		return entities.ServiceRequest{}, ErrEmptyStepName
	}

	r, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	count := len(r.RitualSteps)
	step := entities.RitualStep{
		StepNumber: count + 1,
		StepName:   stepName,
		Notes:      strings.TrimSpace(notes),
		PhotoURLs:  []string{},
	}

	updated, err := u.repo.AppendStep(ctx, id, count, step, u.now())
	if err != nil {
		if errors.Is(err, interfaces.ErrPreconditionFailed) {
			return entities.ServiceRequest{}, u.classifyConflict(ctx, id)
		}
		return entities.ServiceRequest{}, storageError("append step", err)
	}
	u.log.Info("[ritual][usecase] step added", "request_id", id, "step_number", step.StepNumber)
	return updated, nil
}

// ToggleStep flips a step's completion. completed_at is set when the step
// becomes complete and cleared when it is reverted.
func (u *ServiceRequestUseCase) ToggleStep(ctx context.Context, id string, stepNumber int) (entities.ServiceRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceRequest{}, ErrInvalidRequestID
	}
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	step, idx, err := r.Step(stepNumber)
	if err != nil {
		return entities.ServiceRequest{}, err
	}

	updated, err := u.repo.SetStepCompletion(ctx, id, idx, !step.Completed, u.now())
	if err != nil {
		if errors.Is(err, interfaces.ErrPreconditionFailed) {
			return entities.ServiceRequest{}, u.classifyConflict(ctx, id)
		}
		return entities.ServiceRequest{}, storageError("toggle step", err)
	}
	u.log.Info("[ritual][usecase] step toggled", "request_id", id, "step_number", stepNumber, "completed", !step.Completed)
	return updated, nil
}

// AttachEvidence appends upload URLs to a step; existing URLs are kept.
func (u *ServiceRequestUseCase) AttachEvidence(ctx context.Context, id string, stepNumber int, urls []string) (entities.ServiceRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceRequest{}, ErrInvalidRequestID
	}
	clean := make([]string, 0, len(urls))
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return entities.ServiceRequest{}, invalid("evidence url must not be blank")
		}
		clean = append(clean, raw)
	}
	if len(clean) == 0 {
		return entities.ServiceRequest{}, ErrEmptyEvidence
	}

	r, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	_, idx, err := r.Step(stepNumber)
	if err != nil {
		return entities.ServiceRequest{}, err
	}

	updated, err := u.repo.AppendStepPhotos(ctx, id, idx, clean, u.now())
	if err != nil {
		if errors.Is(err, interfaces.ErrPreconditionFailed) {
			return entities.ServiceRequest{}, u.classifyConflict(ctx, id)
		}
		return entities.ServiceRequest{}, storageError("append evidence", err)
	}
	u.log.Info("[ritual][usecase] evidence attached", "request_id", id, "step_number", stepNumber, "count", len(clean))
	return updated, nil
}
