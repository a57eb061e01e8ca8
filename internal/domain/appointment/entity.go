package appointment

import (
	"time"

	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

const dateOnly = "2006-01-02"

// Transition moves ap to the requested status on behalf of the actor,
// validating authority, the lifecycle table and the customer cancellation
// window before mutating anything.
//
// The cancellation window is date-only on purpose: a same-day appointment is
// not cancellable by its customer even if the time slot is still hours away.
func Transition(ap *models.Appointment, actor Actor, to Status, now time.Time) error {
	if err := CanRequest(actor, to); err != nil {
		return err
	}
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	if actor == ActorCustomer && to == StatusCancelled {
		if ap.AppointmentDate.Format(dateOnly) <= now.Format(dateOnly) {
			return httperr.ErrBusiness("cancel_window_closed")
		}
	}

	apply(ap, to, now)
	return nil
}

// ConfirmFromPayment is the payment-completion path into confirmed. It
// bypasses actor authority but must not resurrect a cancelled appointment.
// Returns whether the row actually changed, so callers skip the write (and
// any notification) when the appointment was already confirmed.
func ConfirmFromPayment(ap *models.Appointment, now time.Time) (bool, error) {
	switch Status(ap.Status) {
	case StatusCancelled:
		return false, httperr.ErrBusiness("appointment_cancelled")
	case StatusConfirmed:
		return false, nil
	}

	apply(ap, StatusConfirmed, now)
	return true, nil
}

func apply(ap *models.Appointment, to Status, now time.Time) {
	ap.Status = string(to)
	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
}
