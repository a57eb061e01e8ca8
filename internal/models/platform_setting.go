package models

import "time"

// PlatformSetting is a platform-wide key/value pair edited by admins
// (map provider, SMS toggle, booking rules).
type PlatformSetting struct {
	Key   string `gorm:"size:50;primaryKey" json:"key"`
	Value string `gorm:"size:255;not null" json:"value"`

	UpdatedAt time.Time `json:"updated_at"`
}
