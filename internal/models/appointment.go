package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salon_id"`
	Salon   Salon     `gorm:"foreignKey:SalonID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon"`

	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User   Profile   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	// the booked slot: calendar date plus a time-of-day kept separate from it
	AppointmentDate time.Time `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:5;not null" json:"appointment_time"`

	// per-salon sequence, assigned inside the create transaction, never by callers
	AppointmentNumber int `gorm:"not null" json:"appointment_number"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes string `gorm:"size:500" json:"notes"`

	// persisted once at booking time, see domain/appointment.FormatReadableID
	ReadableID string `gorm:"size:20" json:"readable_id"`

	Services []Service `gorm:"many2many:appointment_services;" json:"services"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService is the join row linking an appointment to one booked
// service. Created with the appointment, removed only by cascade.
type AppointmentService struct {
	AppointmentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"appointment_id"`
	ServiceID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"service_id"`
}
