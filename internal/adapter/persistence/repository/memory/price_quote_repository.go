package memory

import (
	"context"
	"sync"
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase/interfaces"

	"github.com/patrickmn/go-cache"
)

// PriceQuoteRepository keeps quotes in process memory. Conditional writes
// are serialized by mu so they behave like the document store's condition
// expressions.
type PriceQuoteRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var _ interfaces.IPriceQuoteRepository = (*PriceQuoteRepository)(nil)

func NewPriceQuoteRepository() *PriceQuoteRepository {
	return &PriceQuoteRepository{cache: cache.New(cache.NoExpiration, 0)}
}

func (r *PriceQuoteRepository) Create(_ context.Context, q entities.PriceQuote) (entities.PriceQuote, error) {
	if err := r.cache.Add(q.ID, copyQuote(q), cache.NoExpiration); err != nil {
		return entities.PriceQuote{}, err
	}
	return q, nil
}

func (r *PriceQuoteRepository) GetByID(_ context.Context, id string) (entities.PriceQuote, error) {
	if x, found := r.cache.Get(id); found {
		return copyQuote(x.(entities.PriceQuote)), nil
	}
	return entities.PriceQuote{}, nil
}

func (r *PriceQuoteRepository) ListByUser(_ context.Context, userID string) ([]entities.PriceQuote, error) {
	return r.list(func(q entities.PriceQuote) bool { return q.UserID == userID }), nil
}

func (r *PriceQuoteRepository) ListAll(_ context.Context) ([]entities.PriceQuote, error) {
	return r.list(func(entities.PriceQuote) bool { return true }), nil
}

func (r *PriceQuoteRepository) MarkAccepted(_ context.Context, id string, at time.Time) (entities.PriceQuote, error) {
	return r.mutate(id, func(q *entities.PriceQuote) bool {
		if q.Rejected() {
			return false
		}
		q.Accepted = true
		q.AcceptedAt = &at
		q.UpdatedAt = at
		return true
	})
}

func (r *PriceQuoteRepository) MarkRejected(_ context.Context, id, reason string, at time.Time) (entities.PriceQuote, error) {
	return r.mutate(id, func(q *entities.PriceQuote) bool {
		if q.Accepted {
			return false
		}
		q.RejectedAt = &at
		q.RejectionReason = reason
		q.UpdatedAt = at
		return true
	})
}

func (r *PriceQuoteRepository) Update(_ context.Context, id string, u interfaces.QuoteUpdate) (entities.PriceQuote, error) {
	return r.mutate(id, func(q *entities.PriceQuote) bool {
		if q.Accepted || q.Rejected() {
			return false
		}
		if u.QuotedPrice != nil {
			q.QuotedPrice = *u.QuotedPrice
		}
		if u.Notes != nil {
			q.Notes = *u.Notes
		}
		if u.ValidUntil != nil {
			v := *u.ValidUntil
			q.ValidUntil = &v
		}
		q.UpdatedAt = u.UpdatedAt
		return true
	})
}

func (r *PriceQuoteRepository) DeleteExpired(_ context.Context, q entities.PriceQuote) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(q.ID)
	if !found {
		return false, nil
	}
	cur := x.(entities.PriceQuote)
	if cur.Accepted || cur.Rejected() || cur.ValidUntil == nil || q.ValidUntil == nil || !cur.ValidUntil.Equal(*q.ValidUntil) {
		return false, nil
	}
	r.cache.Delete(q.ID)
	return true, nil
}

func (r *PriceQuoteRepository) mutate(id string, apply func(q *entities.PriceQuote) bool) (entities.PriceQuote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(id)
	if !found {
		return entities.PriceQuote{}, interfaces.ErrPreconditionFailed
	}
	q := copyQuote(x.(entities.PriceQuote))
	if !apply(&q) {
		return entities.PriceQuote{}, interfaces.ErrPreconditionFailed
	}
	r.cache.Set(id, q, cache.NoExpiration)
	return copyQuote(q), nil
}

func (r *PriceQuoteRepository) list(keep func(entities.PriceQuote) bool) []entities.PriceQuote {
	out := []entities.PriceQuote{}
	for _, item := range r.cache.Items() {
		q := item.Object.(entities.PriceQuote)
		if keep(q) {
			out = append(out, copyQuote(q))
		}
	}
	return out
}

func copyQuote(q entities.PriceQuote) entities.PriceQuote {
	q.ValidUntil = copyTime(q.ValidUntil)
	q.AcceptedAt = copyTime(q.AcceptedAt)
	q.RejectedAt = copyTime(q.RejectedAt)
	return q
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
