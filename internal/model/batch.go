package model

import (
	"time"

	"github.com/google/uuid"
)

// Batch is one production lot of a single product.
// ManufacturerName is copied at creation so listings never need a join.
type Batch struct {
	ID               uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BatchNumber      string        `gorm:"not null;index"`
	ProductName      string        `gorm:"not null"`
	ProductType      string        `gorm:"type:varchar(20);not null"` // "drug" | "consumable"
	ManufacturerID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	ManufacturerName string        `gorm:"not null"`
	ProductionDate   time.Time     `gorm:"not null"`
	ExpiryDate       time.Time     `gorm:"not null"`
	Quantity         int           `gorm:"not null"`
	Status           BatchStatus   `gorm:"type:varchar(20);not null;default:'in_production'"`
	QualityStatus    QualityStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt        time.Time
}
