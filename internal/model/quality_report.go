package model

import (
	"time"

	"github.com/google/uuid"
)

// QualityReport is append-only: no Update or Delete exists for it.
type QualityReport struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BatchID     uuid.UUID     `gorm:"type:uuid;not null;index"`
	BatchNumber string        `gorm:"not null"`
	ProductName string        `gorm:"not null"`
	TestDate    time.Time     `gorm:"not null"`
	TestType    string        `gorm:"not null"`
	Result      QualityStatus `gorm:"type:varchar(20);not null"`
	Notes       string
	TestedBy    string `gorm:"not null"`
	CreatedAt   time.Time
}
