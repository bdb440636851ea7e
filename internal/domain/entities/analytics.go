package entities

import (
	"math"
	"sort"
	"time"
)

// ServiceRevenue groups requests by service name.
type ServiceRevenue struct {
	ServiceName string `json:"service_name"`
	Count       int    `json:"count"`
	Revenue     int64  `json:"revenue"`
}

type StatusCount struct {
	Status RequestStatus `json:"status"`
	Count  int           `json:"count"`
}

// AnalyticsSummary is the read-side rollup over a window of requests.
type AnalyticsSummary struct {
	WindowDays                 int              `json:"window_days"`
	Since                      time.Time        `json:"since"`
	TotalRequests              int              `json:"total_requests"`
	CompletedRequests          int              `json:"completed_requests"`
	CompletionRate             int              `json:"completion_rate"`
	AverageCompletionTimeHours int              `json:"average_completion_time_hours"`
	RevenueByService           []ServiceRevenue `json:"revenue_by_service"`
	RequestsByStatus           []StatusCount    `json:"requests_by_status"`
}

// Summarize computes the rollup for requests made at or after since.
// Completed requests without a start time are left out of the average.
func Summarize(rs []ServiceRequest, since time.Time, windowDays int) AnalyticsSummary {
	s := AnalyticsSummary{
		WindowDays:       windowDays,
		Since:            since,
		RevenueByService: []ServiceRevenue{},
		RequestsByStatus: []StatusCount{},
	}
	byService := map[string]*ServiceRevenue{}
	byStatus := map[RequestStatus]int{}
	var (
		durTotal time.Duration
		durCount int
	)
	for _, r := range rs {
		if r.RequestedAt.Before(since) {
			continue
		}
		s.TotalRequests++
		byStatus[r.Status]++

		sr, ok := byService[r.ServiceName]
		if !ok {
			sr = &ServiceRevenue{ServiceName: r.ServiceName}
			byService[r.ServiceName] = sr
		}
		sr.Count++
		sr.Revenue += r.AmountPaid

		if r.Status != RequestStatusCompleted {
			continue
		}
		s.CompletedRequests++
		if r.StartedAt != nil && r.CompletedAt != nil {
			durTotal += r.CompletedAt.Sub(*r.StartedAt)
			durCount++
		}
	}

	s.CompletionRate = roundPercent(s.CompletedRequests, s.TotalRequests)
	if durCount > 0 {
		avg := float64(durTotal.Milliseconds()) / float64(durCount)
		s.AverageCompletionTimeHours = int(math.Round(avg / float64(time.Hour.Milliseconds())))
	}

	for _, sr := range byService {
		s.RevenueByService = append(s.RevenueByService, *sr)
	}
	sort.Slice(s.RevenueByService, func(i, j int) bool {
		a, b := s.RevenueByService[i], s.RevenueByService[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.ServiceName < b.ServiceName
	})

	for st, n := range byStatus {
		s.RequestsByStatus = append(s.RequestsByStatus, StatusCount{Status: st, Count: n})
	}
	sort.Slice(s.RequestsByStatus, func(i, j int) bool {
		a, b := s.RequestsByStatus[i], s.RequestsByStatus[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Status < b.Status
	})
	return s
}

func roundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
