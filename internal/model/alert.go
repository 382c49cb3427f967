package model

import (
	"time"

	"github.com/google/uuid"
)

// Alert is raised by the alert rules. The composite unique index makes
// (batch_id, alert_type) one-shot: once an alert exists for the pair no
// other is ever inserted, whether or not it was read.
type Alert struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AlertType   AlertType  `gorm:"type:varchar(30);not null;uniqueIndex:idx_alert_batch_type,priority:2"`
	Title       string     `gorm:"not null"`
	Message     string     `gorm:"not null"`
	BatchID     *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_alert_batch_type,priority:1"`
	BatchNumber *string
	Severity    Severity  `gorm:"type:varchar(10);not null"`
	IsRead      bool      `gorm:"not null;default:false"`
	EmailSent   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"index"`
}
