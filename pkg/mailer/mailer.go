package mailer

import (
	"context"
	"log"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends email through a configured SMTP transport
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New creates a Mailer using SMTP credentials
func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers one message with plain-text and HTML alternatives.
// Delivery is attempted exactly once; retry policy belongs to the caller's transport, not here.
func (m *Mailer) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return err
	}

	log.Printf("[Mailer] Email sent successfully to %s", to)
	return nil
}
