package models

import (
	"time"

	"github.com/google/uuid"
)

type Salon struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	OwnerID uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	Owner   Profile   `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`

	Address    string `gorm:"size:255;not null" json:"address"`
	City       string `gorm:"size:100;not null" json:"city"`
	State      string `gorm:"size:100" json:"state"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	Country    string `gorm:"size:100;default:'India'" json:"country"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	PhoneNumber string `gorm:"size:20" json:"phone_number"`
	Email       string `gorm:"size:100" json:"email"`

	LogoURL   string `gorm:"size:255" json:"logo_url"`
	BannerURL string `gorm:"size:255" json:"banner_url"`

	// display-only, slot feasibility is not enforced against these
	OpeningTime string `gorm:"size:5" json:"opening_time"`
	ClosingTime string `gorm:"size:5" json:"closing_time"`

	IsVerified              bool `gorm:"default:false" json:"is_verified"`
	IsActive                bool `gorm:"default:true" json:"is_active"`
	IsAcceptingAppointments bool `gorm:"default:true" json:"is_accepting_appointments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
