package memory

import (
	"context"
	"sort"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase/interfaces"

	"github.com/patrickmn/go-cache"
)

type PaymentIntentRepository struct {
	cache *cache.Cache
}

var _ interfaces.IPaymentIntentRepository = (*PaymentIntentRepository)(nil)

func NewPaymentIntentRepository() *PaymentIntentRepository {
	return &PaymentIntentRepository{cache: cache.New(cache.NoExpiration, 0)}
}

func (r *PaymentIntentRepository) Create(_ context.Context, p entities.PaymentIntent) (entities.PaymentIntent, error) {
	if err := r.cache.Add(p.ID, p, cache.NoExpiration); err != nil {
		return entities.PaymentIntent{}, err
	}
	return p, nil
}

func (r *PaymentIntentRepository) GetByID(_ context.Context, id string) (entities.PaymentIntent, error) {
	if x, found := r.cache.Get(id); found {
		return x.(entities.PaymentIntent), nil
	}
	return entities.PaymentIntent{}, nil
}

func (r *PaymentIntentRepository) ListByRequestID(_ context.Context, requestID string) ([]entities.PaymentIntent, error) {
	out := []entities.PaymentIntent{}
	for _, item := range r.cache.Items() {
		p := item.Object.(entities.PaymentIntent)
		if p.RequestID == requestID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
