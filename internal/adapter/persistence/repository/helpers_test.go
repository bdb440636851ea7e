package repository

import (
	"testing"
	"time"

	"ritual_desk/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeNames(t *testing.T) {
	assert.Equal(t, map[string]string{"#id": "id"}, mergeNames(nil, map[string]string{"#id": "id"}))
	assert.Equal(t, map[string]string{"#a": "a"}, mergeNames(map[string]string{"#a": "a"}, nil))
	assert.Equal(t, map[string]string{"#a": "a", "#id": "id"}, mergeNames(map[string]string{"#a": "a"}, map[string]string{"#id": "id"}))
}

func TestTimeHelpers(t *testing.T) {
	assert.Equal(t, "", formatTimePtr(nil))
	assert.Nil(t, parseTimePtr(""))
	assert.Nil(t, parseTimePtr("not-a-time"))

	now := time.Date(2026, 3, 1, 12, 30, 0, 5, time.UTC)
	got := parseTimePtr(formatTimePtr(&now))
	require.NotNil(t, got)
	assert.True(t, now.Equal(*got))
}

func TestServiceRequestItem_KeepsEmptyLists(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sr := entities.NewServiceRequest("req-1", "user-1", entities.ServiceTarotReading, "Tarot", "read my cards", "", now)

	it := toServiceRequestItem(sr)
	require.NotNil(t, it.RitualSteps)
	require.NotNil(t, it.Tags)
	require.Len(t, it.StatusHistory, 1)
	assert.Equal(t, "", it.StartedAt)

	back := fromServiceRequestItem(it)
	assert.Equal(t, sr.ID, back.ID)
	assert.Equal(t, entities.RequestStatusPending, back.Status)
	assert.Nil(t, back.StartedAt)
	assert.Equal(t, entities.SystemActor, back.StatusHistory[0].UpdatedBy)
	assert.True(t, now.Equal(back.RequestedAt))
}

func TestPriceQuoteItem_OmitsUnsetMarkers(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	until := now.AddDate(0, 0, 7)
	q := entities.PriceQuote{ID: "q-1", UserID: "u-1", ServiceID: entities.ServiceLoveSpell, QuotedPrice: 15000, ValidUntil: &until, CreatedAt: now, UpdatedAt: now}

	it := toPriceQuoteItem(q)
	assert.Equal(t, "", it.RejectedAt)
	assert.Equal(t, "", it.AcceptedAt)

	back := fromPriceQuoteItem(it)
	assert.Nil(t, back.RejectedAt)
	require.NotNil(t, back.ValidUntil)
	assert.True(t, until.Equal(*back.ValidUntil))
}
