package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdminFilter_Matches(t *testing.T) {
	r := ServiceRequest{
		Status:      RequestStatusPending,
		ServiceType: ServiceLoveSpell,
		ServiceName: "Love Spell",
		Description: "Reunite with my PARTNER",
		ClientNotes: "full moon preferred",
		Priority:    PriorityHigh,
		AssignedTo:  "admin1",
	}

	assert.True(t, AdminFilter{}.Matches(r))
	assert.True(t, AdminFilter{Search: "partner"}.Matches(r))
	assert.True(t, AdminFilter{Search: "MOON"}.Matches(r))
	assert.True(t, AdminFilter{Search: "love"}.Matches(r))
	assert.False(t, AdminFilter{Search: "money"}.Matches(r))
	assert.False(t, AdminFilter{Status: RequestStatusCompleted}.Matches(r))
	assert.False(t, AdminFilter{AssignedTo: "admin2"}.Matches(r))
	assert.True(t, AdminFilter{Priority: PriorityHigh, ServiceType: ServiceLoveSpell}.Matches(r))
}

func TestSortForAdminAndPage(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	rs := []ServiceRequest{
		{ID: "low-new", Priority: PriorityLow, RequestedAt: base.Add(3 * time.Hour)},
		{ID: "urgent-old", Priority: PriorityUrgent, RequestedAt: base},
		{ID: "urgent-new", Priority: PriorityUrgent, RequestedAt: base.Add(time.Hour)},
		{ID: "medium", Priority: PriorityMedium, RequestedAt: base.Add(2 * time.Hour)},
	}
	SortForAdmin(rs)

	ids := make([]string, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"urgent-new", "urgent-old", "medium", "low-new"}, ids)

	assert.Len(t, Page(rs, 2, 0), 2)
	assert.Equal(t, "medium", Page(rs, 2, 2)[0].ID)
	assert.Empty(t, Page(rs, 2, 10))
	assert.Len(t, Page(rs, 0, 1), 3)
}

func TestCountPendingByPriority(t *testing.T) {
	rs := []ServiceRequest{
		{Status: RequestStatusPending, Priority: PriorityUrgent},
		{Status: RequestStatusPending, Priority: PriorityUrgent},
		{Status: RequestStatusPending, Priority: PriorityLow},
		{Status: RequestStatusInProgress, Priority: PriorityHigh},
	}
	assert.Equal(t, PendingCounts{Urgent: 2, Low: 1}, CountPendingByPriority(rs))
	assert.Equal(t, PendingCounts{}, CountPendingByPriority(nil))
}
