package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/infrastructure/logger"
	"ritual_desk/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequestID = invalid("invalid request id")
	ErrInvalidActorID   = invalid("invalid actor id")
	ErrInvalidPriority  = invalid("unknown priority")
	ErrInvalidStatus    = invalid("unknown status")
	ErrInvalidPage      = invalid("invalid pagination")
	ErrInvalidPayment   = invalid("invalid payment linkage")
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// IServiceRequestUseCase owns the request record: creation, the status state
// machine, admin fields, ritual progress and the read-side queues.
type IServiceRequestUseCase interface {
	Create(ctx context.Context, in CreateRequestInput) (entities.ServiceRequest, error)
	OpenFromQuote(ctx context.Context, quoteID string, in OpenFromQuoteInput) (entities.ServiceRequest, error)
	Get(ctx context.Context, id string) (entities.ServiceRequest, error)

	TransitionStatus(ctx context.Context, id string, status entities.RequestStatus, adminID, notes string) (entities.ServiceRequest, error)
	Assign(ctx context.Context, id, adminID string) (entities.ServiceRequest, error)
	SetPriority(ctx context.Context, id string, priority entities.Priority) (entities.ServiceRequest, error)
	SetAdminNotes(ctx context.Context, id, notes string) (entities.ServiceRequest, error)
	SetEstimatedCompletion(ctx context.Context, id string, at time.Time) (entities.ServiceRequest, error)
	SetTags(ctx context.Context, id string, tags []string) (entities.ServiceRequest, error)
	AttachPayment(ctx context.Context, id, paymentIntentID string, amountPaid int64) (entities.ServiceRequest, error)

	AddStep(ctx context.Context, id, stepName, notes string) (entities.ServiceRequest, error)
	ToggleStep(ctx context.Context, id string, stepNumber int) (entities.ServiceRequest, error)
	AttachEvidence(ctx context.Context, id string, stepNumber int, urls []string) (entities.ServiceRequest, error)

	ListForAdmin(ctx context.Context, f entities.AdminFilter, limit, skip int) (RequestPage, error)
	ListForUser(ctx context.Context, userID string, limit, skip int) (RequestPage, error)
	CountPendingByPriority(ctx context.Context) (entities.PendingCounts, error)
}

type CreateRequestInput struct {
	UserID      string             `validate:"required"`
	ServiceType entities.ServiceID `validate:"required"`
	ServiceName string
	Description string `validate:"required,max=5000"`
	ClientNotes string `validate:"max=5000"`
}

type OpenFromQuoteInput struct {
	Description string `validate:"required,max=5000"`
	ClientNotes string `validate:"max=5000"`
}

// RequestPage is one page of a sorted listing plus the number of matches.
type RequestPage struct {
	Items []entities.ServiceRequest `json:"items"`
	Total int                       `json:"total"`
	Limit int                       `json:"limit"`
	Skip  int                       `json:"skip"`
}

type ServiceRequestUseCase struct {
	repo      interfaces.IServiceRequestRepository
	quoteRepo interfaces.IPriceQuoteRepository
	publisher interfaces.IEventPublisher
	log       *logger.Logger
	now       func() time.Time
}

var _ IServiceRequestUseCase = (*ServiceRequestUseCase)(nil)

func NewServiceRequestUseCase(repo interfaces.IServiceRequestRepository, quoteRepo interfaces.IPriceQuoteRepository, publisher interfaces.IEventPublisher, log *logger.Logger) *ServiceRequestUseCase {
	return &ServiceRequestUseCase{repo: repo, quoteRepo: quoteRepo, publisher: publisher, log: orNop(log), now: utcNow}
}

func (u *ServiceRequestUseCase) Create(ctx context.Context, in CreateRequestInput) (entities.ServiceRequest, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.ServiceName = strings.TrimSpace(in.ServiceName)
	in.Description = strings.TrimSpace(in.Description)
	in.ClientNotes = strings.TrimSpace(in.ClientNotes)
	if err := validateInput(in); err != nil {
		return entities.ServiceRequest{}, err
	}
	if !in.ServiceType.Valid() {
		return entities.ServiceRequest{}, ErrInvalidService
	}
	if in.ServiceName == "" {
		in.ServiceName = in.ServiceType.DisplayName()
	}

	r := entities.NewServiceRequest(uuid.NewString(), in.UserID, in.ServiceType, in.ServiceName, in.Description, in.ClientNotes, u.now())
	return u.persistNew(ctx, r)
}

// OpenFromQuote creates the request for an accepted quote. Accepting the
// quote and creating the request are separate writes.
func (u *ServiceRequestUseCase) OpenFromQuote(ctx context.Context, quoteID string, in OpenFromQuoteInput) (entities.ServiceRequest, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.ServiceRequest{}, ErrInvalidQuoteID
	}
	in.Description = strings.TrimSpace(in.Description)
	in.ClientNotes = strings.TrimSpace(in.ClientNotes)
	if err := validateInput(in); err != nil {
		return entities.ServiceRequest{}, err
	}

	q, err := u.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.ServiceRequest{}, storageError("get quote", err)
	}
	if q.ID == "" {
		return entities.ServiceRequest{}, entities.ErrQuoteNotFound
	}
	if !q.Accepted {
		return entities.ServiceRequest{}, entities.ErrQuoteNotAccepted
	}

	r := entities.NewServiceRequest(uuid.NewString(), q.UserID, q.ServiceID, q.ServiceName, in.Description, in.ClientNotes, u.now())
	r.QuoteID = q.ID
	return u.persistNew(ctx, r)
}

func (u *ServiceRequestUseCase) persistNew(ctx context.Context, r entities.ServiceRequest) (entities.ServiceRequest, error) {
	created, err := u.repo.Create(ctx, r)
	if err != nil {
		u.log.Error("[request][usecase] create failed", "user_id", r.UserID, "err", err)
		return entities.ServiceRequest{}, storageError("create request", err)
	}
	u.log.Info("[request][usecase] created", "request_id", created.ID, "user_id", created.UserID, "service_type", created.ServiceType, "quote_id", created.QuoteID)

	publish(ctx, u.publisher, u.log, entities.Event{
		Type:        entities.EventRequestCreated,
		AggregateID: created.ID,
		UserID:      created.UserID,
		OccurredAt:  created.CreatedAt,
		Attributes:  map[string]string{"service_type": string(created.ServiceType)},
	})
	return created, nil
}

func (u *ServiceRequestUseCase) Get(ctx context.Context, id string) (entities.ServiceRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceRequest{}, ErrInvalidRequestID
	}
	return u.load(ctx, id)
}

// TransitionStatus validates the change against the stored status and
// appends it to the history. The store only applies the write if the status
// is still the one that was validated.
func (u *ServiceRequestUseCase) TransitionStatus(ctx context.Context, id string, status entities.RequestStatus, adminID, notes string) (entities.ServiceRequest, error) {
	id = strings.TrimSpace(id)
	adminID = strings.TrimSpace(adminID)
	if id == "" {
		return entities.ServiceRequest{}, ErrInvalidRequestID
	}
	if adminID == "" {
		return entities.ServiceRequest{}, ErrInvalidActorID
	}
	if !status.Valid() {
		return entities.ServiceRequest{}, ErrInvalidStatus
	}

	r, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	change, err := r.PlanTransition(status, adminID, strings.TrimSpace(notes), u.now())
	if err != nil {
		u.log.Info("[request][usecase] transition refused", "request_id", id, "from", r.Status, "to", status, "err", err)
		return entities.ServiceRequest{}, err
	}

	updated, err := u.repo.ApplyStatusChange(ctx, id, change)
	if err != nil {
		if errors.Is(err, interfaces.ErrPreconditionFailed) {
			return entities.ServiceRequest{}, u.classifyConflict(ctx, id)
		}
		return entities.ServiceRequest{}, storageError("transition status", err)
	}
	u.log.Info("[request][usecase] status changed", "request_id", id, "from", change.From, "to", status, "by", adminID)

	publish(ctx, u.publisher, u.log, entities.Event{
		Type:        entities.EventRequestStatusChanged,
		AggregateID: updated.ID,
		UserID:      updated.UserID,
		OccurredAt:  change.Entry.UpdatedAt,
		Attributes: map[string]string{
			"from":       string(change.From),
			"to":         string(status),
			"updated_by": adminID,
		},
	})
	return updated, nil
}

// Assign overwrites the assignee; there is no handoff between admins.
func (u *ServiceRequestUseCase) Assign(ctx context.Context, id, adminID string) (entities.ServiceRequest, error) {
	adminID = strings.TrimSpace(adminID)
	if adminID == "" {
		return entities.ServiceRequest{}, ErrInvalidActorID
	}
	now := u.now()
	updated, err := u.updateFields(ctx, id, interfaces.RequestFieldsUpdate{AssignedTo: &adminID, AssignedAt: &now, UpdatedAt: now})
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	publish(ctx, u.publisher, u.log, entities.Event{
		Type:        entities.EventRequestAssigned,
		AggregateID: updated.ID,
		UserID:      updated.UserID,
		OccurredAt:  now,
		Attributes:  map[string]string{"assigned_to": adminID},
	})
	return updated, nil
}

func (u *ServiceRequestUseCase) SetPriority(ctx context.Context, id string, priority entities.Priority) (entities.ServiceRequest, error) {
	if !priority.Valid() {
		return entities.ServiceRequest{}, ErrInvalidPriority
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceRequest{}, ErrInvalidRequestID
	}
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if r.Status.Terminal() {
		u.log.Warn("[request][usecase] priority changed on closed request", "request_id", id, "status", r.Status, "priority", priority)
	}
	return u.updateFields(ctx, id, interfaces.RequestFieldsUpdate{Priority: &priority, UpdatedAt: u.now()})
}

// SetAdminNotes overwrites the notes; history is not involved.
func (u *ServiceRequestUseCase) SetAdminNotes(ctx context.Context, id, notes string) (entities.ServiceRequest, error) {
	notes = strings.TrimSpace(notes)
	return u.updateFields(ctx, id, interfaces.RequestFieldsUpdate{AdminNotes: &notes, UpdatedAt: u.now()})
}

func (u *ServiceRequestUseCase) SetEstimatedCompletion(ctx context.Context, id string, at time.Time) (entities.ServiceRequest, error) {
	if at.IsZero() {
		return entities.ServiceRequest{}, invalid("estimated completion date is required")
	}
	at = at.UTC()
	return u.updateFields(ctx, id, interfaces.RequestFieldsUpdate{EstimatedCompletionDate: &at, UpdatedAt: u.now()})
}

func (u *ServiceRequestUseCase) SetTags(ctx context.Context, id string, tags []string) (entities.ServiceRequest, error) {
	seen := map[string]bool{}
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		clean = append(clean, t)
	}
	return u.updateFields(ctx, id, interfaces.RequestFieldsUpdate{Tags: clean, SetTags: true, UpdatedAt: u.now()})
}

// AttachPayment stores what the payment collaborator produced. Amounts are
// not reconciled against the quote here.
func (u *ServiceRequestUseCase) AttachPayment(ctx context.Context, id, paymentIntentID string, amountPaid int64) (entities.ServiceRequest, error) {
	paymentIntentID = strings.TrimSpace(paymentIntentID)
	if paymentIntentID == "" || amountPaid < 0 {
		return entities.ServiceRequest{}, ErrInvalidPayment
	}
	updated, err := u.updateFields(ctx, id, interfaces.RequestFieldsUpdate{PaymentIntentID: &paymentIntentID, AmountPaid: &amountPaid, UpdatedAt: u.now()})
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	u.log.Info("[request][usecase] payment attached", "request_id", updated.ID, "payment_intent_id", paymentIntentID, "amount_paid", amountPaid)
	return updated, nil
}

func (u *ServiceRequestUseCase) ListForAdmin(ctx context.Context, f entities.AdminFilter, limit, skip int) (RequestPage, error) {
	limit, err := normalizePage(limit, skip)
	if err != nil {
		return RequestPage{}, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return RequestPage{}, ErrInvalidStatus
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return RequestPage{}, ErrInvalidPriority
	}
	if f.ServiceType != "" && !f.ServiceType.Valid() {
		return RequestPage{}, ErrInvalidService
	}

	rs, err := u.repo.List(ctx, interfaces.RequestQuery{
		Status:      f.Status,
		ServiceType: f.ServiceType,
		AssignedTo:  strings.TrimSpace(f.AssignedTo),
		Priority:    f.Priority,
	})
	if err != nil {
		return RequestPage{}, storageError("list requests", err)
	}

	matched := rs[:0:0]
	for _, r := range rs {
		if f.Matches(r) {
			matched = append(matched, r)
		}
	}
	entities.SortForAdmin(matched)
	return RequestPage{Items: entities.Page(matched, limit, skip), Total: len(matched), Limit: limit, Skip: skip}, nil
}

// ListForUser only ever returns the given user's requests.
func (u *ServiceRequestUseCase) ListForUser(ctx context.Context, userID string, limit, skip int) (RequestPage, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return RequestPage{}, ErrInvalidUserID
	}
	limit, err := normalizePage(limit, skip)
	if err != nil {
		return RequestPage{}, err
	}

	rs, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return RequestPage{}, storageError("list requests", err)
	}
	own := rs[:0:0]
	for _, r := range rs {
		if r.UserID == userID {
			own = append(own, r)
		}
	}
	entities.SortByRequestedDesc(own)
	return RequestPage{Items: entities.Page(own, limit, skip), Total: len(own), Limit: limit, Skip: skip}, nil
}

func (u *ServiceRequestUseCase) CountPendingByPriority(ctx context.Context) (entities.PendingCounts, error) {
	rs, err := u.repo.List(ctx, interfaces.RequestQuery{Status: entities.RequestStatusPending})
	if err != nil {
		return entities.PendingCounts{}, storageError("list requests", err)
	}
	return entities.CountPendingByPriority(rs), nil
}

func (u *ServiceRequestUseCase) load(ctx context.Context, id string) (entities.ServiceRequest, error) {
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, storageError("get request", err)
	}
	if r.ID == "" {
		return entities.ServiceRequest{}, entities.ErrServiceRequestNotFound
	}
	return r, nil
}

func (u *ServiceRequestUseCase) updateFields(ctx context.Context, id string, upd interfaces.RequestFieldsUpdate) (entities.ServiceRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceRequest{}, ErrInvalidRequestID
	}
	updated, err := u.repo.UpdateFields(ctx, id, upd)
	if err != nil {
		if errors.Is(err, interfaces.ErrPreconditionFailed) {
			return entities.ServiceRequest{}, entities.ErrServiceRequestNotFound
		}
		return entities.ServiceRequest{}, storageError("update request", err)
	}
	return updated, nil
}

// classifyConflict re-reads a request after a failed precondition.
func (u *ServiceRequestUseCase) classifyConflict(ctx context.Context, id string) error {
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return storageError("get request", err)
	}
	if r.ID == "" {
		return entities.ErrServiceRequestNotFound
	}
	return entities.ErrConcurrentUpdate
}

func normalizePage(limit, skip int) (int, error) {
	if skip < 0 || limit < 0 {
		return 0, ErrInvalidPage
	}
	if limit == 0 {
		return defaultPageLimit, nil
	}
	if limit > maxPageLimit {
		return maxPageLimit, nil
	}
	return limit, nil
}
