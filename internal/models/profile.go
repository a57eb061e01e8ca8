package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleCustomer   = "customer"
	RoleSalonOwner = "salon_owner"
	RoleAdmin      = "admin"
)

type Profile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`

	PhoneNumber     string `gorm:"size:20" json:"phone_number"`
	IsPhoneVerified bool   `gorm:"default:false" json:"is_phone_verified"`

	Role string `gorm:"size:20;default:'customer'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
