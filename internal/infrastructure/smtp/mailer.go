package smtp

import (
	"context"
	"fmt"

	"github.com/go-otp-nosql/internal/config"
	"github.com/go-otp-nosql/internal/domain"
	"gopkg.in/gomail.v2"
)

// Mailer sends HTML emails.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type mailer struct {
	dialer dialer
	from   string
}

// NewMailer returns domain.ErrNotConfigured when no SMTP host is set.
func NewMailer(cfg *config.Config) (Mailer, error) {
	if !cfg.EmailConfigured() {
		return nil, fmt.Errorf("smtp: no host: %w", domain.ErrNotConfigured)
	}
	return &mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}, nil
}

// SendEmail dials and sends one message. The dialer has no context support, so the send
// runs on its own goroutine and ctx only bounds how long the caller waits for it.
func (m *mailer) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}
