package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"ritual_desk/internal/adapter/persistence/repository/memory"
	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase/interfaces"
	mock_interfaces "ritual_desk/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newQuoteUseCase(t *testing.T) (*QuoteUseCase, *memory.PriceQuoteRepository, *clock) {
	t.Helper()
	repo := memory.NewPriceQuoteRepository()
	uc := NewQuoteUseCase(repo, nil, nil, QuoteUseCaseOptions{})
	c := newClock()
	uc.now = c.now
	return uc, repo, c
}

func createQuote(t *testing.T, uc *QuoteUseCase, userID string, service entities.ServiceID, price int64) entities.PriceQuote {
	t.Helper()
	q, err := uc.CreateQuote(context.Background(), CreateQuoteInput{UserID: userID, ServiceID: service, QuotedPrice: price})
	require.NoError(t, err)
	return q
}

func TestQuoteUseCase_CreateQuote(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		uc, _, c := newQuoteUseCase(t)
		q := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 15000)

		assert.NotEmpty(t, q.ID)
		assert.Equal(t, "USD", q.Currency)
		assert.Equal(t, entities.ServiceLoveSpell.DisplayName(), q.ServiceName)
		assert.False(t, q.Accepted)
		require.NotNil(t, q.ValidUntil)
		assert.True(t, q.ValidUntil.Equal(c.now().AddDate(0, 0, 7)))
	})

	t.Run("explicit validity and currency", func(t *testing.T) {
		uc, _, c := newQuoteUseCase(t)
		q, err := uc.CreateQuote(context.Background(), CreateQuoteInput{
			UserID: "user-1", ServiceID: entities.ServiceTarotReading, ServiceName: "Deep Tarot",
			QuotedPrice: 4000, Currency: "brl", ValidDays: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, "BRL", q.Currency)
		assert.Equal(t, "Deep Tarot", q.ServiceName)
		assert.True(t, q.ValidUntil.Equal(c.now().AddDate(0, 0, 3)))
	})

	cases := []struct {
		name string
		in   CreateQuoteInput
	}{
		{name: "missing user", in: CreateQuoteInput{ServiceID: entities.ServiceLoveSpell, QuotedPrice: 10}},
		{name: "blank user", in: CreateQuoteInput{UserID: "  ", ServiceID: entities.ServiceLoveSpell, QuotedPrice: 10}},
		{name: "zero price", in: CreateQuoteInput{UserID: "u", ServiceID: entities.ServiceLoveSpell}},
		{name: "negative price", in: CreateQuoteInput{UserID: "u", ServiceID: entities.ServiceLoveSpell, QuotedPrice: -5}},
		{name: "negative validity", in: CreateQuoteInput{UserID: "u", ServiceID: entities.ServiceLoveSpell, QuotedPrice: 5, ValidDays: -1}},
		{name: "unknown service", in: CreateQuoteInput{UserID: "u", ServiceID: "weather_control", QuotedPrice: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, repo, _ := newQuoteUseCase(t)
			_, err := uc.CreateQuote(context.Background(), tc.in)
			if !errors.Is(err, entities.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			all, _ := repo.ListAll(context.Background())
			assert.Empty(t, all)
		})
	}
}

func TestQuoteUseCase_CreateQuote_PublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	pub := mock_interfaces.NewMockIEventPublisher(ctrl)
	uc := NewQuoteUseCase(memory.NewPriceQuoteRepository(), pub, nil, QuoteUseCaseOptions{})

	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.Event) error {
		if e.Type != entities.EventQuoteCreated || e.UserID != "user-1" {
			t.Fatalf("unexpected event %+v", e)
		}
		return errors.New("broker down")
	})

	_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{UserID: "user-1", ServiceID: entities.ServiceMoneySpell, QuotedPrice: 100})
	if err != nil {
		t.Fatalf("publish failures must not fail the write, got %v", err)
	}
}

func TestQuoteUseCase_CreateQuote_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPriceQuoteRepository(ctrl)
	uc := NewQuoteUseCase(repo, nil, nil, QuoteUseCaseOptions{})

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PriceQuote{}, errors.New("throttled"))

	_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{UserID: "u", ServiceID: entities.ServiceMoneySpell, QuotedPrice: 100})
	if !errors.Is(err, entities.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestQuoteUseCase_GetActiveQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("latest created wins", func(t *testing.T) {
		uc, _, c := newQuoteUseCase(t)
		createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		c.advance(time.Minute)
		latest := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 200)
		createQuote(t, uc, "user-1", entities.ServiceMoneySpell, 300)
		createQuote(t, uc, "user-2", entities.ServiceLoveSpell, 400)

		got, err := uc.GetActiveQuote(ctx, "user-1", entities.ServiceLoveSpell)
		require.NoError(t, err)
		assert.Equal(t, latest.ID, got.ID)
	})

	t.Run("accepted quote stays active", func(t *testing.T) {
		uc, _, _ := newQuoteUseCase(t)
		q := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		_, err := uc.AcceptQuote(ctx, q.ID)
		require.NoError(t, err)

		got, err := uc.GetActiveQuote(ctx, "user-1", entities.ServiceLoveSpell)
		require.NoError(t, err)
		assert.Equal(t, q.ID, got.ID)
		assert.True(t, got.Accepted)
	})

	t.Run("rejected and expired are skipped", func(t *testing.T) {
		uc, _, c := newQuoteUseCase(t)
		rejected := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		_, err := uc.RejectQuote(ctx, rejected.ID, "no")
		require.NoError(t, err)
		createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		c.advance(8 * 24 * time.Hour)

		_, err = uc.GetActiveQuote(ctx, "user-1", entities.ServiceLoveSpell)
		assert.ErrorIs(t, err, entities.ErrNoActiveQuote)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		uc, _, _ := newQuoteUseCase(t)
		_, err := uc.GetActiveQuote(ctx, "", entities.ServiceLoveSpell)
		assert.ErrorIs(t, err, entities.ErrValidation)
		_, err = uc.GetActiveQuote(ctx, "user-1", "nope")
		assert.ErrorIs(t, err, entities.ErrValidation)
	})
}

func TestQuoteUseCase_AcceptQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts pending quote", func(t *testing.T) {
		uc, _, c := newQuoteUseCase(t)
		q := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		c.advance(time.Hour)

		got, err := uc.AcceptQuote(ctx, q.ID)
		require.NoError(t, err)
		assert.True(t, got.Accepted)
		require.NotNil(t, got.AcceptedAt)
		assert.True(t, got.AcceptedAt.Equal(c.now()))
	})

	t.Run("second accept returns the quote unchanged", func(t *testing.T) {
		uc, _, c := newQuoteUseCase(t)
		q := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		first, err := uc.AcceptQuote(ctx, q.ID)
		require.NoError(t, err)
		c.advance(time.Hour)

		second, err := uc.AcceptQuote(ctx, q.ID)
		require.NoError(t, err)
		assert.True(t, first.AcceptedAt.Equal(*second.AcceptedAt))
	})

	t.Run("rejected quote conflicts", func(t *testing.T) {
		uc, repo, _ := newQuoteUseCase(t)
		q := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		_, err := uc.RejectQuote(ctx, q.ID, "")
		require.NoError(t, err)

		_, err = uc.AcceptQuote(ctx, q.ID)
		assert.ErrorIs(t, err, entities.ErrConflict)

		stored, _ := repo.GetByID(ctx, q.ID)
		assert.False(t, stored.Accepted)
	})

	t.Run("expired quote is refused", func(t *testing.T) {
		uc, _, c := newQuoteUseCase(t)
		q := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		c.advance(8 * 24 * time.Hour)

		_, err := uc.AcceptQuote(ctx, q.ID)
		assert.ErrorIs(t, err, entities.ErrQuoteExpired)
		assert.ErrorIs(t, err, entities.ErrInvalidTransition)
	})

	t.Run("missing quote", func(t *testing.T) {
		uc, _, _ := newQuoteUseCase(t)
		_, err := uc.AcceptQuote(ctx, "nope")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("rejected between read and write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPriceQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil, nil, QuoteUseCaseOptions{})
		until := time.Now().Add(time.Hour)
		pending := entities.PriceQuote{ID: "q1", ValidUntil: &until}
		rejectedAt := time.Now()

		gomock.InOrder(
			repo.EXPECT().GetByID(gomock.Any(), "q1").Return(pending, nil),
			repo.EXPECT().MarkAccepted(gomock.Any(), "q1", gomock.Any()).Return(entities.PriceQuote{}, interfaces.ErrPreconditionFailed),
			repo.EXPECT().GetByID(gomock.Any(), "q1").Return(entities.PriceQuote{ID: "q1", RejectedAt: &rejectedAt}, nil),
		)

		_, err := uc.AcceptQuote(ctx, "q1")
		assert.ErrorIs(t, err, entities.ErrQuoteRejected)
	})
}

func TestQuoteUseCase_RejectQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("stores reason", func(t *testing.T) {
		uc, _, _ := newQuoteUseCase(t)
		q := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		got, err := uc.RejectQuote(ctx, q.ID, " too expensive ")
		require.NoError(t, err)
		require.NotNil(t, got.RejectedAt)
		assert.Equal(t, "too expensive", got.RejectionReason)
	})

	t.Run("repeated reject overwrites reason", func(t *testing.T) {
		uc, _, _ := newQuoteUseCase(t)
		q := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		_, err := uc.RejectQuote(ctx, q.ID, "first")
		require.NoError(t, err)
		got, err := uc.RejectQuote(ctx, q.ID, "second")
		require.NoError(t, err)
		assert.Equal(t, "second", got.RejectionReason)
	})

	t.Run("accepted quote conflicts", func(t *testing.T) {
		uc, _, _ := newQuoteUseCase(t)
		q := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		_, err := uc.AcceptQuote(ctx, q.ID)
		require.NoError(t, err)

		_, err = uc.RejectQuote(ctx, q.ID, "changed my mind")
		assert.ErrorIs(t, err, entities.ErrQuoteAccepted)
	})
}

func TestQuoteUseCase_UpdateQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("validity is recomputed from now", func(t *testing.T) {
		uc, _, c := newQuoteUseCase(t)
		q := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		c.advance(48 * time.Hour)

		got, err := uc.UpdateQuote(ctx, q.ID, UpdateQuoteInput{NewPrice: int64Ptr(250), NewNotes: strPtr(" includes candles "), ExtendValidityDays: intPtr(2)})
		require.NoError(t, err)
		assert.Equal(t, int64(250), got.QuotedPrice)
		assert.Equal(t, "includes candles", got.Notes)
		assert.True(t, got.ValidUntil.Equal(c.now().AddDate(0, 0, 2)))
	})

	t.Run("nothing to update", func(t *testing.T) {
		uc, _, _ := newQuoteUseCase(t)
		q := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		_, err := uc.UpdateQuote(ctx, q.ID, UpdateQuoteInput{})
		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("non positive price", func(t *testing.T) {
		uc, _, _ := newQuoteUseCase(t)
		q := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		_, err := uc.UpdateQuote(ctx, q.ID, UpdateQuoteInput{NewPrice: int64Ptr(0)})
		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("resolved quote is frozen", func(t *testing.T) {
		uc, _, _ := newQuoteUseCase(t)
		q := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
		_, err := uc.AcceptQuote(ctx, q.ID)
		require.NoError(t, err)

		_, err = uc.UpdateQuote(ctx, q.ID, UpdateQuoteInput{NewPrice: int64Ptr(999)})
		assert.ErrorIs(t, err, entities.ErrQuoteResolved)
	})
}

func TestQuoteUseCase_ExpireSweep(t *testing.T) {
	ctx := context.Background()
	uc, repo, c := newQuoteUseCase(t)

	expired := createQuote(t, uc, "user-1", entities.ServiceLoveSpell, 100)
	accepted := createQuote(t, uc, "user-1", entities.ServiceMoneySpell, 100)
	rejected := createQuote(t, uc, "user-1", entities.ServiceLuckSpell, 100)
	_, err := uc.AcceptQuote(ctx, accepted.ID)
	require.NoError(t, err)
	_, err = uc.RejectQuote(ctx, rejected.ID, "")
	require.NoError(t, err)

	c.advance(8 * 24 * time.Hour)
	fresh := createQuote(t, uc, "user-2", entities.ServiceLoveSpell, 100)

	n, err := uc.ExpireSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, _ := repo.GetByID(ctx, expired.ID)
	assert.Empty(t, got.ID)
	for _, id := range []string{accepted.ID, rejected.ID, fresh.ID} {
		got, _ := repo.GetByID(ctx, id)
		assert.Equal(t, id, got.ID)
	}

	n, err = uc.ExpireSweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "second sweep is a no-op")
}

func TestQuoteUseCase_GetQuoteStats(t *testing.T) {
	ctx := context.Background()
	uc, _, c := newQuoteUseCase(t)

	a := createQuote(t, uc, "u", entities.ServiceLoveSpell, 100)
	r := createQuote(t, uc, "u", entities.ServiceLoveSpell, 100)
	createQuote(t, uc, "u", entities.ServiceLoveSpell, 100)
	_, err := uc.AcceptQuote(ctx, a.ID)
	require.NoError(t, err)
	_, err = uc.RejectQuote(ctx, r.ID, "")
	require.NoError(t, err)
	c.advance(8 * 24 * time.Hour)
	createQuote(t, uc, "u", entities.ServiceLoveSpell, 100)

	stats, err := uc.GetQuoteStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.QuoteStats{Accepted: 1, Pending: 1, Rejected: 1, Total: 4}, stats)
}

func TestQuoteUseCase_ListQuotesForUser(t *testing.T) {
	uc, _, c := newQuoteUseCase(t)
	first := createQuote(t, uc, "u", entities.ServiceLoveSpell, 100)
	c.advance(time.Minute)
	second := createQuote(t, uc, "u", entities.ServiceMoneySpell, 100)
	createQuote(t, uc, "other", entities.ServiceMoneySpell, 100)

	got, err := uc.ListQuotesForUser(context.Background(), "u")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}
