package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/trimconnect/salon-booking-api/internal/domain/appointment"
	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/models"
	"github.com/trimconnect/salon-booking-api/internal/timezone"
)

type ListUserAppointments struct {
	repo domain.Repository
}

func NewListUserAppointments(repo domain.Repository) *ListUserAppointments {
	return &ListUserAppointments{repo: repo}
}

func (uc *ListUserAppointments) Execute(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	apps, err := uc.repo.ListForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	backfillReadableIDs(apps)
	return apps, nil
}

type ListSalonAppointments struct {
	repo domain.Repository
}

func NewListSalonAppointments(repo domain.Repository) *ListSalonAppointments {
	return &ListSalonAppointments{repo: repo}
}

// Execute lists a salon's book. Only the owning profile (or an admin) may
// read it.
func (uc *ListSalonAppointments) Execute(
	ctx context.Context,
	salonID uuid.UUID,
	actorID uuid.UUID,
	actorRole string,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("salon_not_found")
	}
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && salon.OwnerID != actorID {
		return nil, httperr.ErrBusiness("not_salon_owner")
	}

	apps, err := uc.repo.ListForSalon(ctx, salonID, filter)
	if err != nil {
		return nil, err
	}

	backfillReadableIDs(apps)
	return apps, nil
}

// Rows from before the readable id was persisted get the legacy
// recompute-at-read behavior.
func backfillReadableIDs(apps []models.Appointment) {
	now := timezone.Now()
	for i := range apps {
		apps[i].ReadableID = domain.EnsureReadableID(
			apps[i].ReadableID,
			apps[i].SalonID.String(),
			apps[i].AppointmentNumber,
			now,
		)
	}
}
