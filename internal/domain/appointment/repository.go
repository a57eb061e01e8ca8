package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/trimconnect/salon-booking-api/internal/models"
)

// ListFilter selects which slice of a ledger a listing returns.
type ListFilter string

const (
	FilterAll       ListFilter = "all"
	FilterUpcoming  ListFilter = "upcoming"
	FilterPast      ListFilter = "past"
	FilterCancelled ListFilter = "cancelled"
)

func ParseListFilter(s string) ListFilter {
	switch ListFilter(s) {
	case FilterUpcoming, FilterPast, FilterCancelled:
		return ListFilter(s)
	default:
		return FilterAll
	}
}

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Salon, error)

	// -------- Services --------
	GetActiveServices(
		ctx context.Context,
		salonID uuid.UUID,
		serviceIDs []uuid.UUID,
	) ([]models.Service, error)

	// -------- Appointment (create) --------
	// CreateAppointment assigns the per-salon sequence number, inserts the
	// appointment row and one join row per service as a single transaction,
	// and optionally rejects an already-taken (date, time) slot.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		serviceIDs []uuid.UUID,
		exclusiveSlot bool,
	) error

	// -------- Appointment (fetch, role-scoped) --------
	GetAppointmentForUser(
		ctx context.Context,
		appointmentID uuid.UUID,
		userID uuid.UUID,
	) (*models.Appointment, error)

	GetAppointmentForSalonOwner(
		ctx context.Context,
		appointmentID uuid.UUID,
		ownerID uuid.UUID,
	) (*models.Appointment, error)

	GetAppointmentByID(
		ctx context.Context,
		appointmentID uuid.UUID,
	) (*models.Appointment, error)

	// -------- Appointment (state change) --------
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListForUser(
		ctx context.Context,
		userID uuid.UUID,
		filter ListFilter,
	) ([]models.Appointment, error)

	ListForSalon(
		ctx context.Context,
		salonID uuid.UUID,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- Profile --------
	GetProfileByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Profile, error)
}
