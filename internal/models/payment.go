package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	AppointmentID uuid.UUID   `gorm:"type:uuid;index;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Amount float64 `gorm:"not null" json:"amount"`

	PaymentMethod string `gorm:"size:20;not null" json:"payment_method"`
	Status        string `gorm:"size:20;default:'pending'" json:"status"`

	// gateway reference, set for online payments only
	TransactionID string `gorm:"size:100;index" json:"transaction_id"`

	PaymentDate time.Time `json:"payment_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
