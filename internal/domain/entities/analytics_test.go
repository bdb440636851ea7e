package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	since := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	at := func(h int) *time.Time {
		v := since.Add(time.Duration(h) * time.Hour)
		return &v
	}

	t.Run("empty window", func(t *testing.T) {
		s := Summarize(nil, since, 30)
		assert.Equal(t, 0, s.TotalRequests)
		assert.Equal(t, 0, s.CompletionRate)
		assert.Equal(t, 0, s.AverageCompletionTimeHours)
		assert.NotNil(t, s.RevenueByService)
	})

	t.Run("rollups", func(t *testing.T) {
		rs := []ServiceRequest{
			{ServiceName: "Love Spell", Status: RequestStatusCompleted, RequestedAt: *at(0), StartedAt: at(1), CompletedAt: at(11), AmountPaid: 15000},
			{ServiceName: "Love Spell", Status: RequestStatusCompleted, RequestedAt: *at(0), StartedAt: at(2), CompletedAt: at(32), AmountPaid: 15000},
			{ServiceName: "Tarot Reading", Status: RequestStatusCompleted, RequestedAt: *at(0), CompletedAt: at(5), AmountPaid: 3000},
			{ServiceName: "Tarot Reading", Status: RequestStatusPending, RequestedAt: *at(3)},
			{ServiceName: "Love Spell", Status: RequestStatusPending, RequestedAt: *at(4)},
			{ServiceName: "Money Spell", Status: RequestStatusCancelled, RequestedAt: since.Add(-time.Hour)},
		}
		s := Summarize(rs, since, 30)

		assert.Equal(t, 5, s.TotalRequests)
		assert.Equal(t, 3, s.CompletedRequests)
		assert.Equal(t, 60, s.CompletionRate)
		// (10h + 30h) / 2, the request without a start time is left out
		assert.Equal(t, 20, s.AverageCompletionTimeHours)

		require.Len(t, s.RevenueByService, 2)
		assert.Equal(t, ServiceRevenue{ServiceName: "Love Spell", Count: 3, Revenue: 30000}, s.RevenueByService[0])
		assert.Equal(t, ServiceRevenue{ServiceName: "Tarot Reading", Count: 2, Revenue: 3000}, s.RevenueByService[1])

		require.Len(t, s.RequestsByStatus, 2)
		assert.Equal(t, StatusCount{Status: RequestStatusCompleted, Count: 3}, s.RequestsByStatus[0])
	})

	t.Run("completion rate is bounded", func(t *testing.T) {
		rs := []ServiceRequest{{Status: RequestStatusCompleted, RequestedAt: since}}
		s := Summarize(rs, since, 1)
		assert.Equal(t, 100, s.CompletionRate)
	})
}
