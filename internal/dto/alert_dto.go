package dto

type AlertResponse struct {
	ID          string  `json:"id"`
	AlertType   string  `json:"alert_type"`
	Title       string  `json:"title"`
	Message     string  `json:"message"`
	BatchID     *string `json:"batch_id"`
	BatchNumber *string `json:"batch_number"`
	Severity    string  `json:"severity"`
	IsRead      bool    `json:"is_read"`
	EmailSent   bool    `json:"email_sent"`
	CreatedAt   string  `json:"created_at"`
}

// SweepScheduledResponse is returned by POST /v1/alerts/check.
type SweepScheduledResponse struct {
	Message string `json:"message"`
}

// NotificationJob is the queue payload for one alert email to one recipient.
type NotificationJob struct {
	AlertID string `json:"alert_id"`
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
