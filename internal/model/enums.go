package model

// BatchStatus is the lifecycle position of a production lot.
type BatchStatus string

const (
	BatchInProduction BatchStatus = "in_production"
	BatchInTransit    BatchStatus = "in_transit"
	BatchInStock      BatchStatus = "in_stock"
	BatchExpired      BatchStatus = "expired"
	BatchDepleted     BatchStatus = "depleted"
)

func (s BatchStatus) Valid() bool {
	switch s {
	case BatchInProduction, BatchInTransit, BatchInStock, BatchExpired, BatchDepleted:
		return true
	}
	return false
}

// QualityStatus is both the result of a single test and the aggregate
// verdict stored on the batch.
type QualityStatus string

const (
	QualityPending QualityStatus = "pending"
	QualityPassed  QualityStatus = "passed"
	QualityFailed  QualityStatus = "failed"
)

func (s QualityStatus) Valid() bool {
	switch s {
	case QualityPending, QualityPassed, QualityFailed:
		return true
	}
	return false
}

// AlertType names the rule that produced an alert.
type AlertType string

const (
	AlertExpiryWarning AlertType = "expiry_warning"
	AlertLowStock      AlertType = "low_stock"
	AlertQualityIssue  AlertType = "quality_issue"
	AlertExpiredBatch  AlertType = "expired_batch"
)

func (t AlertType) Valid() bool {
	switch t {
	case AlertExpiryWarning, AlertLowStock, AlertQualityIssue, AlertExpiredBatch:
		return true
	}
	return false
}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// UserRole: "admin" | "staff" | "manufacturer"
type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleStaff        UserRole = "staff"
	RoleManufacturer UserRole = "manufacturer"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleManufacturer:
		return true
	}
	return false
}
