package model

import "slices"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusPaid, StatusCancelled},
	StatusPaid:     {StatusCompleted},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusPaid, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Terminal reports statuses with no outgoing transition.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// HoldsListing reports whether a booking in this status keeps its listing booked.
func (s Status) HoldsListing() bool {
	return s == StatusApproved || s == StatusPaid
}

// Receipted reports statuses that have a receipt.
func (s Status) Receipted() bool {
	return s == StatusApproved || s == StatusPaid || s == StatusCompleted
}

// EarningStatuses are the statuses counted as revenue.
var EarningStatuses = []Status{StatusApproved, StatusCompleted}

func (s Status) Earning() bool {
	return slices.Contains(EarningStatuses, s)
}
