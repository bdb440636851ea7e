package entities

// transitionMap lists, per target status, the statuses a request may leave
// to reach it. Re-entering the current non-terminal status is allowed and
// only appends history.
var transitionMap = map[RequestStatus][]RequestStatus{
	RequestStatusPending:    {RequestStatusPending},
	RequestStatusInProgress: {RequestStatusPending, RequestStatusInProgress, RequestStatusOnHold},
	RequestStatusOnHold:     {RequestStatusPending, RequestStatusInProgress, RequestStatusOnHold},
	RequestStatusCompleted:  {RequestStatusInProgress},
	RequestStatusCancelled:  {RequestStatusPending, RequestStatusInProgress, RequestStatusOnHold},
}

func ValidTransition(from, to RequestStatus) bool {
	allowed, ok := transitionMap[to]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == from {
			return true
		}
	}
	return false
}
