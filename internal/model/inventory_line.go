package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryLine is the single stock position of a batch.
// CurrentStock only changes through the stock ledger; InitialStock never changes.
type InventoryLine struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BatchID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	BatchNumber  string    `gorm:"not null"`
	ProductName  string    `gorm:"not null"`
	CurrentStock int       `gorm:"not null;check:current_stock >= 0"`
	InitialStock int       `gorm:"not null;check:initial_stock >= 0"`
	ExpiryDate   time.Time `gorm:"not null;index"`
	Location     string    `gorm:"not null"`
	LastUpdated  time.Time `gorm:"not null"`
}
