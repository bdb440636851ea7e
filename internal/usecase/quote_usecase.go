package usecase

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/infrastructure/logger"
	"ritual_desk/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuoteID = invalid("invalid quote id")
	ErrInvalidUserID  = invalid("invalid user id")
	ErrInvalidService = invalid("unknown service id")
	ErrEmptyQuoteEdit = invalid("nothing to update")
)

const (
	defaultQuoteValidDays = 7
	defaultCurrency       = "USD"
)

// IQuoteUseCase exposes the quote ledger: issue, resolve and sweep quotes.
type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, in CreateQuoteInput) (entities.PriceQuote, error)
	GetQuote(ctx context.Context, id string) (entities.PriceQuote, error)
	GetActiveQuote(ctx context.Context, userID string, serviceID entities.ServiceID) (entities.PriceQuote, error)
	ListQuotesForUser(ctx context.Context, userID string) ([]entities.PriceQuote, error)
	AcceptQuote(ctx context.Context, id string) (entities.PriceQuote, error)
	RejectQuote(ctx context.Context, id, reason string) (entities.PriceQuote, error)
	UpdateQuote(ctx context.Context, id string, in UpdateQuoteInput) (entities.PriceQuote, error)
	ExpireSweep(ctx context.Context) (int, error)
	GetQuoteStats(ctx context.Context) (entities.QuoteStats, error)
}

type CreateQuoteInput struct {
	UserID      string             `validate:"required"`
	ServiceID   entities.ServiceID `validate:"required"`
	ServiceName string
	QuotedPrice int64 `validate:"gt=0"`
	Currency    string
	Notes       string
	// ValidDays of 0 falls back to the configured default.
	ValidDays int `validate:"gte=0,lte=365"`
}

// UpdateQuoteInput is an admin renegotiation. Extending validity replaces
// the previous expiry with now + ExtendValidityDays.
type UpdateQuoteInput struct {
	NewPrice           *int64  `validate:"omitnil,gt=0"`
	NewNotes           *string `validate:"omitnil"`
	ExtendValidityDays *int    `validate:"omitnil,gt=0,lte=365"`
}

type QuoteUseCaseOptions struct {
	DefaultCurrency  string
	DefaultValidDays int
}

type QuoteUseCase struct {
	repo      interfaces.IPriceQuoteRepository
	publisher interfaces.IEventPublisher
	log       *logger.Logger
	opts      QuoteUseCaseOptions
	now       func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IPriceQuoteRepository, publisher interfaces.IEventPublisher, log *logger.Logger, opts QuoteUseCaseOptions) *QuoteUseCase {
	if opts.DefaultValidDays <= 0 {
		opts.DefaultValidDays = defaultQuoteValidDays
	}
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = defaultCurrency
	}
	return &QuoteUseCase{repo: repo, publisher: publisher, log: orNop(log), opts: opts, now: utcNow}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, in CreateQuoteInput) (entities.PriceQuote, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.ServiceName = strings.TrimSpace(in.ServiceName)
	in.Notes = strings.TrimSpace(in.Notes)
	if err := validateInput(in); err != nil {
		return entities.PriceQuote{}, err
	}
	if !in.ServiceID.Valid() {
		return entities.PriceQuote{}, ErrInvalidService
	}
	if in.ServiceName == "" {
		in.ServiceName = in.ServiceID.DisplayName()
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = u.opts.DefaultCurrency
	}
	days := in.ValidDays
	if days == 0 {
		days = u.opts.DefaultValidDays
	}

	now := u.now()
	validUntil := now.AddDate(0, 0, days)
	q := entities.PriceQuote{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		ServiceID:   in.ServiceID,
		ServiceName: in.ServiceName,
		QuotedPrice: in.QuotedPrice,
		Currency:    currency,
		Notes:       in.Notes,
		ValidUntil:  &validUntil,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := u.repo.Create(ctx, q)
	if err != nil {
		u.log.Error("[quote][usecase] create failed", "user_id", q.UserID, "service_id", q.ServiceID, "err", err)
		return entities.PriceQuote{}, storageError("create quote", err)
	}
	u.log.Info("[quote][usecase] created", "quote_id", created.ID, "user_id", created.UserID, "service_id", created.ServiceID, "price", created.QuotedPrice)

	publish(ctx, u.publisher, u.log, entities.Event{
		Type:        entities.EventQuoteCreated,
		AggregateID: created.ID,
		UserID:      created.UserID,
		OccurredAt:  now,
		Attributes: map[string]string{
			"service_id":   string(created.ServiceID),
			"quoted_price": strconv.FormatInt(created.QuotedPrice, 10),
			"currency":     created.Currency,
		},
	})
	return created, nil
}

func (u *QuoteUseCase) GetQuote(ctx context.Context, id string) (entities.PriceQuote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PriceQuote{}, ErrInvalidQuoteID
	}
	return u.load(ctx, id)
}

func (u *QuoteUseCase) GetActiveQuote(ctx context.Context, userID string, serviceID entities.ServiceID) (entities.PriceQuote, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.PriceQuote{}, ErrInvalidUserID
	}
	if !serviceID.Valid() {
		return entities.PriceQuote{}, ErrInvalidService
	}

	quotes, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return entities.PriceQuote{}, storageError("list quotes", err)
	}
	forService := quotes[:0:0]
	for _, q := range quotes {
		if q.ServiceID == serviceID {
			forService = append(forService, q)
		}
	}

	latest, n, err := entities.LatestActive(forService, u.now())
	if err != nil {
		return entities.PriceQuote{}, err
	}
	if n > 1 {
		u.log.Warn("[quote][usecase] multiple active quotes", "user_id", userID, "service_id", serviceID, "count", n, "picked", latest.ID)
	}
	return latest, nil
}

func (u *QuoteUseCase) ListQuotesForUser(ctx context.Context, userID string) ([]entities.PriceQuote, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	quotes, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageError("list quotes", err)
	}
	sortQuotesNewestFirst(quotes)
	return quotes, nil
}

func (u *QuoteUseCase) AcceptQuote(ctx context.Context, id string) (entities.PriceQuote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PriceQuote{}, ErrInvalidQuoteID
	}
	q, err := u.load(ctx, id)
	if err != nil {
		return entities.PriceQuote{}, err
	}

	now := u.now()
	done, err := q.CheckAccept(now)
	if err != nil {
		u.log.Info("[quote][usecase] accept refused", "quote_id", id, "err", err)
		return entities.PriceQuote{}, err
	}
	if done {
		return q, nil
	}

	updated, err := u.repo.MarkAccepted(ctx, id, now)
	if err != nil {
		if errors.Is(err, interfaces.ErrPreconditionFailed) {
			return entities.PriceQuote{}, u.classifyConflict(ctx, id, entities.ErrQuoteRejected)
		}
		return entities.PriceQuote{}, storageError("accept quote", err)
	}
	u.log.Info("[quote][usecase] accepted", "quote_id", id, "user_id", updated.UserID)

	publish(ctx, u.publisher, u.log, entities.Event{
		Type:        entities.EventQuoteAccepted,
		AggregateID: updated.ID,
		UserID:      updated.UserID,
		OccurredAt:  now,
		Attributes:  map[string]string{"service_id": string(updated.ServiceID)},
	})
	return updated, nil
}

func (u *QuoteUseCase) RejectQuote(ctx context.Context, id, reason string) (entities.PriceQuote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PriceQuote{}, ErrInvalidQuoteID
	}
	q, err := u.load(ctx, id)
	if err != nil {
		return entities.PriceQuote{}, err
	}
	if err := q.CheckReject(); err != nil {
		u.log.Info("[quote][usecase] reject refused", "quote_id", id, "err", err)
		return entities.PriceQuote{}, err
	}

	now := u.now()
	updated, err := u.repo.MarkRejected(ctx, id, strings.TrimSpace(reason), now)
	if err != nil {
		if errors.Is(err, interfaces.ErrPreconditionFailed) {
			return entities.PriceQuote{}, u.classifyConflict(ctx, id, entities.ErrQuoteAccepted)
		}
		return entities.PriceQuote{}, storageError("reject quote", err)
	}
	u.log.Info("[quote][usecase] rejected", "quote_id", id, "user_id", updated.UserID)

	publish(ctx, u.publisher, u.log, entities.Event{
		Type:        entities.EventQuoteRejected,
		AggregateID: updated.ID,
		UserID:      updated.UserID,
		OccurredAt:  now,
		Attributes:  map[string]string{"reason": updated.RejectionReason},
	})
	return updated, nil
}

func (u *QuoteUseCase) UpdateQuote(ctx context.Context, id string, in UpdateQuoteInput) (entities.PriceQuote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PriceQuote{}, ErrInvalidQuoteID
	}
	if in.NewPrice == nil && in.NewNotes == nil && in.ExtendValidityDays == nil {
		return entities.PriceQuote{}, ErrEmptyQuoteEdit
	}
	if err := validateInput(in); err != nil {
		return entities.PriceQuote{}, err
	}

	q, err := u.load(ctx, id)
	if err != nil {
		return entities.PriceQuote{}, err
	}
	if err := q.CheckUpdate(); err != nil {
		return entities.PriceQuote{}, err
	}

	now := u.now()
	upd := interfaces.QuoteUpdate{QuotedPrice: in.NewPrice, UpdatedAt: now}
	if in.NewNotes != nil {
		notes := strings.TrimSpace(*in.NewNotes)
		upd.Notes = &notes
	}
	if in.ExtendValidityDays != nil {
		validUntil := now.AddDate(0, 0, *in.ExtendValidityDays)
		upd.ValidUntil = &validUntil
	}

	updated, err := u.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, interfaces.ErrPreconditionFailed) {
			return entities.PriceQuote{}, u.classifyConflict(ctx, id, entities.ErrQuoteResolved)
		}
		return entities.PriceQuote{}, storageError("update quote", err)
	}
	u.log.Info("[quote][usecase] updated", "quote_id", id, "price", updated.QuotedPrice)
	return updated, nil
}

// ExpireSweep deletes quotes nobody answered before their expiry. Running it
// again once nothing matches is a no-op.
func (u *QuoteUseCase) ExpireSweep(ctx context.Context) (int, error) {
	quotes, err := u.repo.ListAll(ctx)
	if err != nil {
		return 0, storageError("list quotes", err)
	}

	now := u.now()
	deleted := 0
	for _, q := range quotes {
		if !q.Sweepable(now) {
			continue
		}
		ok, err := u.repo.DeleteExpired(ctx, q)
		if err != nil {
			u.log.Error("[quote][usecase] sweep delete failed", "quote_id", q.ID, "err", err)
			return deleted, storageError("delete expired quote", err)
		}
		if ok {
			deleted++
		}
	}
	u.log.Info("[quote][usecase] sweep done", "scanned", len(quotes), "deleted", deleted)
	return deleted, nil
}

func (u *QuoteUseCase) GetQuoteStats(ctx context.Context) (entities.QuoteStats, error) {
	quotes, err := u.repo.ListAll(ctx)
	if err != nil {
		return entities.QuoteStats{}, storageError("list quotes", err)
	}
	return entities.ComputeQuoteStats(quotes, u.now()), nil
}

func (u *QuoteUseCase) load(ctx context.Context, id string) (entities.PriceQuote, error) {
	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.PriceQuote{}, storageError("get quote", err)
	}
	if q.ID == "" {
		return entities.PriceQuote{}, entities.ErrQuoteNotFound
	}
	return q, nil
}

// classifyConflict re-reads a quote after a failed precondition: a vanished
// quote is reported as not found, anything else as the given conflict.
func (u *QuoteUseCase) classifyConflict(ctx context.Context, id string, conflict error) error {
	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return storageError("get quote", err)
	}
	if q.ID == "" {
		return entities.ErrQuoteNotFound
	}
	return conflict
}

func sortQuotesNewestFirst(quotes []entities.PriceQuote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
}
