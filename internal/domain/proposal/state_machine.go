package proposal

import "time"

type Status string

const (
	StatusNegotiating Status = "negotiating"
	StatusSent        Status = "sent"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusCancelled   Status = "cancelled"
	StatusSold        Status = "sold"
)

// AllowTransition is the directed graph of legal status changes. Statuses
// used to be mutated by direct assignment from form handlers; every change
// now has to pass through this table.
var AllowTransition = map[Status][]Status{
	StatusNegotiating: {StatusSent, StatusCancelled},
	StatusSent:        {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:    {StatusSold},
	// terminal
	StatusRejected:  {},
	StatusCancelled: {},
	StatusSold:      {},
}

// CanTransition reports whether from -> to is legal. Same-state transitions
// are treated as no-ops.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range AllowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition moves the proposal to the target status and maintains the
// milestone timestamps. Proposal transitions never touch the vehicle; only
// the sale finalization flow cascades a vehicle update, inside one
// transaction.
func (p *Proposal) ApplyTransition(to Status, now time.Time) error {
	if !CanTransition(p.Status, to) {
		return ErrInvalidTransition
	}
	if p.Status == to {
		return nil
	}

	p.Status = to
	p.StatusUpdatedAt = now

	switch to {
	case StatusSent:
		if p.SentAt == nil {
			t := now
			p.SentAt = &t
		}
	case StatusApproved, StatusRejected, StatusCancelled:
		if p.DecidedAt == nil {
			t := now
			p.DecidedAt = &t
		}
	case StatusSold:
		if p.SoldAt == nil {
			t := now
			p.SoldAt = &t
		}
	}
	return nil
}
