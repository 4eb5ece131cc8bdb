// Package notify delivers alert emails. Delivery is best-effort: callers
// log errors and move on, so a broken relay never stalls the poll loop.
package notify

import (
	"errors"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

// ErrNotConfigured is returned when sender, password or recipient is
// missing; delivery is skipped rather than attempted half-configured.
var ErrNotConfigured = errors.New("email user, password and recipient must all be configured")

type Mailer struct {
	host      string
	port      int
	user      string
	password  string
	recipient string
	log       zerolog.Logger
}

func NewMailer(host string, port int, user, password, recipient string, log zerolog.Logger) *Mailer {
	return &Mailer{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		recipient: recipient,
		log:       log,
	}
}

// Notify sends one HTML email over authenticated SMTP (STARTTLS).
func (m *Mailer) Notify(subject, htmlBody string) error {
	if m.user == "" || m.password == "" || m.recipient == "" {
		return ErrNotConfigured
	}

	m.log.Info().Str("to", m.recipient).Str("subject", subject).Msg("sending email")

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", m.recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return err
	}

	m.log.Info().Str("subject", subject).Msg("email sent")
	return nil
}
