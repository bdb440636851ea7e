package entities

import (
	"fmt"
	"time"
)

var (
	ErrQuoteNotFound    = fmt.Errorf("quote %w", ErrNotFound)
	ErrNoActiveQuote    = fmt.Errorf("active quote %w", ErrNotFound)
	ErrQuoteRejected    = fmt.Errorf("quote already rejected: %w", ErrConflict)
	ErrQuoteAccepted    = fmt.Errorf("quote already accepted: %w", ErrConflict)
	ErrQuoteExpired     = fmt.Errorf("quote expired: %w", ErrInvalidTransition)
	ErrQuoteResolved    = fmt.Errorf("quote already resolved: %w", ErrInvalidTransition)
	ErrQuoteNotAccepted = fmt.Errorf("quote not accepted: %w", ErrInvalidTransition)
)

// PriceQuote is an admin-issued, time-bounded price offer for one user and
// one service.
//
// Monetary representation:
//   - QuotedPrice is in minor currency units (cents).
//
// Accepted and RejectedAt are mutually exclusive terminal markers.
type PriceQuote struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	ServiceID       ServiceID  `json:"service_id"`
	ServiceName     string     `json:"service_name"`
	QuotedPrice     int64      `json:"quoted_price"`
	Currency        string     `json:"currency"`
	Notes           string     `json:"notes,omitempty"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
	Accepted        bool       `json:"accepted"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (q PriceQuote) Rejected() bool {
	return q.RejectedAt != nil
}

func (q PriceQuote) Expired(now time.Time) bool {
	return q.ValidUntil != nil && q.ValidUntil.Before(now)
}

// Active reports whether the quote is still authoritative for display: not
// rejected and not past its expiry. An accepted quote stays active.
func (q PriceQuote) Active(now time.Time) bool {
	return !q.Rejected() && !q.Expired(now)
}

// Pending is an active quote the client has not answered yet.
func (q PriceQuote) Pending(now time.Time) bool {
	return q.Active(now) && !q.Accepted
}

// Sweepable reports whether the expiry sweep may delete the quote.
func (q PriceQuote) Sweepable(now time.Time) bool {
	return !q.Accepted && !q.Rejected() && q.Expired(now)
}

// CheckAccept validates an accept against the current state. A nil error with
// done=true means the quote is already accepted and nothing must be written.
func (q PriceQuote) CheckAccept(now time.Time) (done bool, err error) {
	switch {
	case q.Rejected():
		return false, ErrQuoteRejected
	case q.Accepted:
		return true, nil
	case q.Expired(now):
		return false, ErrQuoteExpired
	}
	return false, nil
}

func (q PriceQuote) CheckReject() error {
	if q.Accepted {
		return ErrQuoteAccepted
	}
	return nil
}

func (q PriceQuote) CheckUpdate() error {
	if q.Accepted || q.Rejected() {
		return ErrQuoteResolved
	}
	return nil
}

// LatestActive picks the most recently created active quote. The second
// return value counts how many active quotes were found; more than one is a
// data-quality anomaly the caller should report.
func LatestActive(quotes []PriceQuote, now time.Time) (PriceQuote, int, error) {
	var (
		latest PriceQuote
		n      int
	)
	for _, q := range quotes {
		if !q.Active(now) {
			continue
		}
		n++
		if n == 1 || q.CreatedAt.After(latest.CreatedAt) {
			latest = q
		}
	}
	if n == 0 {
		return PriceQuote{}, 0, ErrNoActiveQuote
	}
	return latest, n, nil
}

// QuoteStats counts quotes by resolution.
type QuoteStats struct {
	Accepted int `json:"accepted"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

func ComputeQuoteStats(quotes []PriceQuote, now time.Time) QuoteStats {
	var s QuoteStats
	for _, q := range quotes {
		s.Total++
		switch {
		case q.Accepted:
			s.Accepted++
		case q.Rejected():
			s.Rejected++
		case q.Pending(now):
			s.Pending++
		}
	}
	return s
}
