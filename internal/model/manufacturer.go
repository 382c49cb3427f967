package model

import (
	"time"

	"github.com/google/uuid"
)

type Manufacturer struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"not null"`
	ContactEmail  string    `gorm:"not null"`
	ContactPhone  string    `gorm:"not null"`
	Address       string    `gorm:"not null"`
	LicenseNumber string    `gorm:"not null"`
	CreatedAt     time.Time
}
