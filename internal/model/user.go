package model

import (
	"time"

	"github.com/google/uuid"
)

// User stores an authenticated operator. Staff users receive quality alerts by email.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         UserRole  `gorm:"type:varchar(20);not null;index"`
	Picture      *string
	CreatedAt    time.Time
}
