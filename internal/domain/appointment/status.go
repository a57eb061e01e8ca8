package appointment

import "github.com/trimconnect/salon-booking-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), nil
	default:
		return "", httperr.ErrBusiness("invalid_status")
	}
}

// InitialStatus is the status every booking starts in.
func InitialStatus() Status {
	return StatusPending
}

// IsTerminal reports whether a status has no further legal transitions.
func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ===============================
// Actors
// ===============================

// Actor identifies who is requesting a status change. The transition table
// is the same for everyone; the actor decides which target statuses may be
// requested at all.
type Actor string

const (
	// ActorCustomer is the user who booked the appointment.
	ActorCustomer Actor = "customer"
	// ActorSalon is the salon owner or staff acting for the salon.
	ActorSalon Actor = "salon"
	// ActorSystem covers payment-driven confirmation.
	ActorSystem Actor = "system"
)

// ===============================
// Transition table
// ===============================

var allowedTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
		StatusCompleted: true,
		StatusNoShow:    true,
	},
	StatusConfirmed: {
		StatusCompleted: true,
		StatusCancelled: true,
		StatusNoShow:    true,
	},
	// terminal states have no exits
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

var actorTargets = map[Actor]map[Status]bool{
	ActorCustomer: {StatusCancelled: true},
	ActorSalon: {
		StatusConfirmed: true,
		StatusCompleted: true,
		StatusCancelled: true,
		StatusNoShow:    true,
	},
	ActorSystem: {StatusConfirmed: true},
}

// CanTransition validates a requested move through the lifecycle. Requesting
// the current status again is rejected rather than silently accepted, so a
// repeated confirm never re-fires its side effects.
func CanTransition(from, to Status) error {
	if from == to {
		return httperr.ErrBusiness("status_unchanged")
	}
	next, ok := allowedTransitions[from]
	if !ok || !next[to] {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// CanRequest checks the actor's authority over the target status.
func CanRequest(actor Actor, to Status) error {
	if !actorTargets[actor][to] {
		return httperr.ErrBusiness("transition_not_allowed")
	}
	return nil
}
