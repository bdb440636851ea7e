package entities

import (
	"sort"
	"strings"
)

// AdminFilter narrows the admin triage queue. Empty fields do not filter.
type AdminFilter struct {
	Status      RequestStatus
	ServiceType ServiceID
	AssignedTo  string
	Priority    Priority
	Search      string
}

// Matches applies every filter. Search is a case-insensitive substring match
// against description, client notes and service name.
func (f AdminFilter) Matches(r ServiceRequest) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.ServiceType != "" && r.ServiceType != f.ServiceType {
		return false
	}
	if f.AssignedTo != "" && r.AssignedTo != f.AssignedTo {
		return false
	}
	if f.Priority != "" && r.Priority != f.Priority {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(r.Description), q) ||
			strings.Contains(strings.ToLower(r.ClientNotes), q) ||
			strings.Contains(strings.ToLower(r.ServiceName), q)
	}
	return true
}

// SortForAdmin orders by priority descending, then most recently requested.
func SortForAdmin(rs []ServiceRequest) {
	sort.SliceStable(rs, func(i, j int) bool {
		pi, pj := rs[i].Priority.Rank(), rs[j].Priority.Rank()
		if pi != pj {
			return pi > pj
		}
		return rs[i].RequestedAt.After(rs[j].RequestedAt)
	})
}

func SortByRequestedDesc(rs []ServiceRequest) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].RequestedAt.After(rs[j].RequestedAt)
	})
}

// Page slices an already sorted list.
func Page(rs []ServiceRequest, limit, skip int) []ServiceRequest {
	if skip >= len(rs) {
		return []ServiceRequest{}
	}
	end := len(rs)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return rs[skip:end]
}

// PendingCounts is the fixed-shape pending-by-priority summary.
type PendingCounts struct {
	Urgent int `json:"urgent"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func CountPendingByPriority(rs []ServiceRequest) PendingCounts {
	var c PendingCounts
	for _, r := range rs {
		if r.Status != RequestStatusPending {
			continue
		}
		switch r.Priority {
		case PriorityUrgent:
			c.Urgent++
		case PriorityHigh:
			c.High++
		case PriorityMedium:
			c.Medium++
		case PriorityLow:
			c.Low++
		}
	}
	return c
}
