package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/trimconnect/salon-booking-api/internal/domain/appointment"
	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/models"
	"github.com/trimconnect/salon-booking-api/internal/timezone"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Salon / Profile
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalonByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) GetProfileByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Profile, error) {

	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActiveServices(
	ctx context.Context,
	salonID uuid.UUID,
	serviceIDs []uuid.UUID,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = TRUE AND id IN ?", salonID, serviceIDs).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

// CreateAppointment runs the whole booking write as one transaction: the
// per-salon sequence number is taken under a row lock, the appointment row
// and its join rows land together or not at all.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	serviceIDs []uuid.UUID,
	exclusiveSlot bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if exclusiveSlot {
			var count int64
			if err := tx.Model(&models.Appointment{}).
				Where(
					"salon_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
					ap.SalonID,
					ap.AppointmentDate,
					ap.AppointmentTime,
					[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
				).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return httperr.ErrBusiness("slot_taken")
			}
		}

		var last models.Appointment
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("salon_id = ?", ap.SalonID).
			Order("appointment_number DESC").
			First(&last).Error
		switch {
		case err == nil:
			ap.AppointmentNumber = last.AppointmentNumber + 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			ap.AppointmentNumber = 1
		default:
			return err
		}

		ap.ReadableID = domain.FormatReadableID(
			ap.SalonID.String(),
			ap.AppointmentNumber,
			timezone.Now(),
		)

		if err := tx.Omit(clause.Associations).Create(ap).Error; err != nil {
			return err
		}

		joins := make([]models.AppointmentService, 0, len(serviceIDs))
		for _, sid := range serviceIDs {
			joins = append(joins, models.AppointmentService{
				AppointmentID: ap.ID,
				ServiceID:     sid,
			})
		}

		return tx.Create(&joins).Error
	})
}

// --------------------------------------------------
// Appointment (fetch, role-scoped)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Salon").
		Preload("User").
		First(&ap, "id = ?", appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForUser(
	ctx context.Context,
	appointmentID uuid.UUID,
	userID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Salon").
		Where("id = ? AND user_id = ?", appointmentID, userID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForSalonOwner(
	ctx context.Context,
	appointmentID uuid.UUID,
	ownerID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Salon").
		Preload("User").
		Joins("JOIN salons ON salons.id = appointments.salon_id").
		Where("appointments.id = ? AND salons.owner_id = ?", appointmentID, ownerID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Salon").
		Where("user_id = ?", userID)

	return r.list(applyFilter(q, filter))
}

func (r *AppointmentGormRepository) ListForSalon(
	ctx context.Context,
	salonID uuid.UUID,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Salon").
		Preload("User").
		Where("salon_id = ?", salonID)

	return r.list(applyFilter(q, filter))
}

func (r *AppointmentGormRepository) list(q *gorm.DB) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := q.
		Order("appointment_date ASC").
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func applyFilter(q *gorm.DB, filter domain.ListFilter) *gorm.DB {
	today := timezone.Today().Format("2006-01-02")

	switch filter {
	case domain.FilterUpcoming:
		return q.Where(
			"appointment_date >= ? AND status IN ?",
			today,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
		)
	case domain.FilterPast:
		return q.Where(
			"appointment_date < ? OR status IN ?",
			today,
			[]string{string(domain.StatusCompleted), string(domain.StatusNoShow)},
		)
	case domain.FilterCancelled:
		return q.Where("status = ?", string(domain.StatusCancelled))
	default:
		return q
	}
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
