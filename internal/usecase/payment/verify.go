package payment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/trimconnect/salon-booking-api/internal/audit"
	apptdomain "github.com/trimconnect/salon-booking-api/internal/domain/appointment"
	domain "github.com/trimconnect/salon-booking-api/internal/domain/payment"
	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/models"
	"github.com/trimconnect/salon-booking-api/internal/timezone"
)

// VerifyPayment applies the gateway's verdict on an online payment, keyed by
// the gateway transaction id. A completed verdict confirms the appointment,
// but never one that was cancelled in the meantime.
type VerifyPayment struct {
	payments     domain.Repository
	appointments apptdomain.Repository
	audit        *audit.Dispatcher
}

func NewVerifyPayment(
	payments domain.Repository,
	appointments apptdomain.Repository,
	auditDisp *audit.Dispatcher,
) *VerifyPayment {
	return &VerifyPayment{
		payments:     payments,
		appointments: appointments,
		audit:        auditDisp,
	}
}

func (uc *VerifyPayment) Execute(
	ctx context.Context,
	transactionID string,
	verdict string,
) (*models.Payment, error) {

	status, err := domain.ParseStatus(verdict)
	if err != nil {
		return nil, err
	}
	if status == domain.StatusPending {
		return nil, httperr.ErrBusiness("invalid_payment_status")
	}

	p, err := uc.payments.GetPaymentByTransactionID(ctx, transactionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("payment_not_found")
	}
	if err != nil {
		return nil, err
	}

	if status != domain.StatusCompleted {
		p.Status = string(status)
		if err := uc.payments.UpdatePayment(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	ap, err := uc.appointments.GetAppointmentByID(ctx, p.AppointmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}

	// the cancelled guard runs before anything is written, so a refused
	// confirmation leaves the payment row untouched too
	changed, err := apptdomain.ConfirmFromPayment(ap, timezone.Now())
	if err != nil {
		return nil, err
	}

	p.Status = string(status)
	if err := uc.payments.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}
	if changed {
		if err := uc.appointments.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  &ap.SalonID,
		Action:   "payment_verified",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{"verdict": string(status)},
	})

	return p, nil
}
