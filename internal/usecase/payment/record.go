package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trimconnect/salon-booking-api/internal/audit"
	apptdomain "github.com/trimconnect/salon-booking-api/internal/domain/appointment"
	domain "github.com/trimconnect/salon-booking-api/internal/domain/payment"
	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/models"
	"github.com/trimconnect/salon-booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type RecordPaymentInput struct {
	AppointmentID uuid.UUID
	Amount        float64
	Method        string
	TransactionID string // gateway reference, online only
	ActorID       uuid.UUID
	ActorRole     string
}

// ======================================================
// USE CASE
// ======================================================

// RecordPayment writes the payment row. Offline money has already changed
// hands, so it lands as completed and immediately confirms the appointment;
// online money lands pending until the gateway verifies it.
type RecordPayment struct {
	payments     domain.Repository
	appointments apptdomain.Repository
	audit        *audit.Dispatcher
}

func NewRecordPayment(
	payments domain.Repository,
	appointments apptdomain.Repository,
	auditDisp *audit.Dispatcher,
) *RecordPayment {
	return &RecordPayment{
		payments:     payments,
		appointments: appointments,
		audit:        auditDisp,
	}
}

func (uc *RecordPayment) Execute(
	ctx context.Context,
	in RecordPaymentInput,
) (*models.Payment, error) {

	method, err := domain.ParseMethod(in.Method)
	if err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}
	if method == domain.MethodOnline && in.TransactionID == "" {
		return nil, httperr.ErrBusiness("missing_transaction_id")
	}

	// role-scoped fetch: the customer must be the booking user, the salon
	// owner must own the salon. Nobody records money against a stranger's
	// appointment.
	var ap *models.Appointment

	switch in.ActorRole {
	case models.RoleCustomer:
		ap, err = uc.appointments.GetAppointmentForUser(ctx, in.AppointmentID, in.ActorID)
	case models.RoleSalonOwner:
		ap, err = uc.appointments.GetAppointmentForSalonOwner(ctx, in.AppointmentID, in.ActorID)
	case models.RoleAdmin:
		ap, err = uc.appointments.GetAppointmentByID(ctx, in.AppointmentID)
	default:
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}

	// an offline payment would confirm immediately, so the cancelled guard
	// runs before anything is written
	if method == domain.MethodOffline {
		if apptdomain.Status(ap.Status) == apptdomain.StatusCancelled {
			return nil, httperr.ErrBusiness("appointment_cancelled")
		}
	}

	now := timezone.Now()
	p := &models.Payment{
		AppointmentID: in.AppointmentID,
		Amount:        in.Amount,
		PaymentMethod: string(method),
		Status:        string(domain.InitialStatus(method)),
		TransactionID: in.TransactionID,
		PaymentDate:   now,
	}

	if err := uc.payments.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	if method == domain.MethodOffline {
		changed, err := apptdomain.ConfirmFromPayment(ap, now)
		if err != nil {
			return nil, err
		}
		if changed {
			if err := uc.appointments.UpdateAppointment(ctx, ap); err != nil {
				return nil, err
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  &ap.SalonID,
		ActorID:  &in.ActorID,
		Action:   "payment_recorded",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{"method": string(method), "amount": in.Amount},
	})

	return p, nil
}
