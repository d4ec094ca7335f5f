package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

type Config struct {
	Host     string
	Port     string
	From     string
	Password string
}

// Mailer sends registration notification emails over plain SMTP.
type Mailer struct {
	cfg Config
	log *zerolog.Logger
}

func New(cfg Config, log *zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// SendRegistrationEmail notifies a student about a registration change.
// Action is either "registered" or "unregistered".
func (m *Mailer) SendRegistrationEmail(eventTitle, action, recipient string) error {
	var subject, body string
	switch action {
	case "registered":
		subject = "Registration confirmed"
		body = fmt.Sprintf("Hello!\n\nYou are registered for the event \"%s\". See you there!", eventTitle)
	case "unregistered":
		subject = "Registration cancelled"
		body = fmt.Sprintf("Hello!\n\nYour registration for the event \"%s\" has been cancelled.", eventTitle)
	default:
		return fmt.Errorf("unknown action %q", action)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.cfg.From, recipient, subject, body,
	)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{recipient}, []byte(msg)); err != nil {
		m.log.Warn().Msgf("failed to send email to %s: %v", recipient, err)
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().Str("email", recipient).Str("action", action).Msg("notification email sent")
	return nil
}
