package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apptdomain "github.com/trimconnect/salon-booking-api/internal/domain/appointment"
	domain "github.com/trimconnect/salon-booking-api/internal/domain/payment"
	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/models"
)

// GetAppointmentPayment looks up the payment recorded for an appointment.
// The appointment fetch is role-scoped, so callers can only reach payments
// on rows they could see anyway.
type GetAppointmentPayment struct {
	payments     domain.Repository
	appointments apptdomain.Repository
}

func NewGetAppointmentPayment(
	payments domain.Repository,
	appointments apptdomain.Repository,
) *GetAppointmentPayment {
	return &GetAppointmentPayment{
		payments:     payments,
		appointments: appointments,
	}
}

func (uc *GetAppointmentPayment) Execute(
	ctx context.Context,
	actorID uuid.UUID,
	actorRole string,
	appointmentID uuid.UUID,
) (*models.Payment, error) {

	var (
		ap  *models.Appointment
		err error
	)

	switch actorRole {
	case models.RoleCustomer:
		ap, err = uc.appointments.GetAppointmentForUser(ctx, appointmentID, actorID)
	case models.RoleSalonOwner:
		ap, err = uc.appointments.GetAppointmentForSalonOwner(ctx, appointmentID, actorID)
	case models.RoleAdmin:
		ap, err = uc.appointments.GetAppointmentByID(ctx, appointmentID)
	default:
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}

	p, err := uc.payments.GetPaymentForAppointment(ctx, ap.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("payment_not_found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
