package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trimconnect/salon-booking-api/internal/audit"
	domain "github.com/trimconnect/salon-booking-api/internal/domain/appointment"
	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/models"
	"github.com/trimconnect/salon-booking-api/internal/notification"
	"github.com/trimconnect/salon-booking-api/internal/settings"
	"github.com/trimconnect/salon-booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SalonID uuid.UUID
	UserID  uuid.UUID

	Date       string // 2006-01-02
	Time       string // 15:04
	ServiceIDs []uuid.UUID
	Notes      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	sms      *notification.Dispatcher
	settings *settings.Service
	audit    *audit.Dispatcher

	exclusiveSlots bool
}

func NewCreateAppointment(
	repo domain.Repository,
	sms *notification.Dispatcher,
	settingsSvc *settings.Service,
	auditDisp *audit.Dispatcher,
	exclusiveSlots bool,
) *CreateAppointment {
	return &CreateAppointment{
		repo:           repo,
		sms:            sms,
		settings:       settingsSvc,
		audit:          auditDisp,
		exclusiveSlots: exclusiveSlots,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Booking with zero services is a caller error
	// --------------------------------------------------
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("no_services")
	}

	// --------------------------------------------------
	// Salon gates
	// --------------------------------------------------
	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("salon_not_found")
	}
	if err != nil {
		return nil, err
	}
	if !salon.IsActive || !salon.IsVerified {
		return nil, httperr.ErrBusiness("salon_not_found")
	}
	if !salon.IsAcceptingAppointments {
		return nil, httperr.ErrBusiness("salon_not_accepting")
	}

	// --------------------------------------------------
	// Slot
	// --------------------------------------------------
	loc := timezone.Location(timezone.DefaultTimezone)

	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	slotTime, err := time.Parse("15:04", in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if date.Before(timezone.Today()) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	// --------------------------------------------------
	// Services must belong to the salon and be active
	// --------------------------------------------------
	services, err := uc.repo.GetActiveServices(ctx, in.SalonID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(in.ServiceIDs) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// --------------------------------------------------
	// Create (row + join rows, one transaction)
	// --------------------------------------------------
	ap := &models.Appointment{
		SalonID:         in.SalonID,
		UserID:          in.UserID,
		AppointmentDate: date,
		AppointmentTime: slotTime.Format("15:04"),
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap, in.ServiceIDs, uc.exclusiveSlots); err != nil {
		return nil, err
	}

	ap.Services = services
	ap.Salon = *salon

	// --------------------------------------------------
	// SMS confirmation (fire-and-forget)
	// --------------------------------------------------
	if uc.settings.Get(ctx).SMSEnabled {
		if user, err := uc.repo.GetProfileByID(ctx, in.UserID); err == nil {
			uc.sms.Dispatch(notification.Event{
				Kind:        notification.KindConfirmation,
				PhoneNumber: user.PhoneNumber,
				ReadableID:  ap.ReadableID,
				SalonName:   salon.Name,
				WhenText:    date.Format("02 Jan 2006") + " at " + ap.AppointmentTime,
			})
		}
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		SalonID:  &salon.ID,
		ActorID:  &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
