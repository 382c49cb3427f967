package infra

import (
	"fmt"
	"html"
	"net/smtp"

	"github.com/Lahari-104/Mediguard/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer is the SMTP transport for alert emails.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
	send     func(e *email.Email, addr string, auth smtp.Auth) error
}

func NewMailer(cfg *config.Config) *Mailer {
	from := cfg.SenderEmail
	if from == "" {
		from = cfg.SMTPUser
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendAlert delivers one alert email with both a plain-text and an HTML body.
func (m *Mailer) SendAlert(to, subject, message string) error {
	if m.host == "" {
		return fmt.Errorf("mailer: SMTP_HOST not configured")
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(message)
	e.HTML = []byte(alertHTML(message))

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := m.send(e, m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}

func alertHTML(message string) string {
	return "<html><body><h2>Hospital Inventory Alert</h2><p>" + html.EscapeString(message) + "</p></body></html>"
}
