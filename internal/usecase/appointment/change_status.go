package appointment

import (
	"context"
	"errors"

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

// ChangeStatus is the only write path for appointment statuses. Every
// request goes through the lifecycle validation in domain/appointment; there
// is no raw status patch anywhere.
type ChangeStatus struct {
	repo     domain.Repository
	sms      *notification.Dispatcher
	settings *settings.Service
	audit    *audit.Dispatcher
}

func NewChangeStatus(
	repo domain.Repository,
	sms *notification.Dispatcher,
	settingsSvc *settings.Service,
	auditDisp *audit.Dispatcher,
) *ChangeStatus {
	return &ChangeStatus{
		repo:     repo,
		sms:      sms,
		settings: settingsSvc,
		audit:    auditDisp,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	actorID uuid.UUID,
	actorRole string,
	appointmentID uuid.UUID,
	newStatus string,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Role-scoped fetch: callers only ever see their own rows
	// --------------------------------------------------
	var (
		ap    *models.Appointment
		actor domain.Actor
	)

	switch actorRole {
	case models.RoleCustomer:
		actor = domain.ActorCustomer
		ap, err = uc.repo.GetAppointmentForUser(ctx, appointmentID, actorID)
	case models.RoleSalonOwner:
		actor = domain.ActorSalon
		ap, err = uc.repo.GetAppointmentForSalonOwner(ctx, appointmentID, actorID)
	case models.RoleAdmin:
		// admins act with salon authority
		actor = domain.ActorSalon
		ap, err = uc.repo.GetAppointmentByID(ctx, appointmentID)
	default:
		return nil, httperr.ErrBusiness("transition_not_allowed")
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}

	if err := domain.Transition(ap, actor, to, timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Status SMS is configurable, never required
	// --------------------------------------------------
	if uc.settings.Get(ctx).SMSEnabled {
		if user, perr := uc.repo.GetProfileByID(ctx, ap.UserID); perr == nil {
			uc.sms.Dispatch(notification.Event{
				Kind:        notification.KindStatusUpdate,
				PhoneNumber: user.PhoneNumber,
				ReadableID:  domain.EnsureReadableID(ap.ReadableID, ap.SalonID.String(), ap.AppointmentNumber, timezone.Now()),
				NewStatus:   string(to),
			})
		}
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  &ap.SalonID,
		ActorID:  &actorID,
		Action:   "appointment_" + string(to),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
