package delivery

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-otp-nosql/internal/application/content"
	"github.com/go-otp-nosql/internal/domain"
	"github.com/go-otp-nosql/internal/infrastructure/smtp"
	"github.com/go-otp-nosql/internal/infrastructure/sns"
	"github.com/go-otp-nosql/internal/pkg/id"
	"github.com/go-otp-nosql/internal/pkg/phone"
)

// DefaultTimeout bounds a single provider call when none is configured.
const DefaultTimeout = 5 * time.Second

// Outcome reports what happened to one message.
// Via is domain.ViaEmail/ViaSMS when a provider was called and domain.ViaConsole otherwise.
type Outcome struct {
	Via         string
	Dispatched  bool
	Delivered   bool
	Destination string
	DispatchID  string
	Err         error
}

// Adapter is what the verification service dispatches through.
type Adapter interface {
	Send(ctx context.Context, to string, msg content.Message) Outcome
}

// EmailAdapter sends through a Mailer, or logs to the console when none is configured.
type EmailAdapter struct {
	mailer  smtp.Mailer
	timeout time.Duration
}

// NewEmailAdapter accepts a nil mailer, which selects console fallback.
func NewEmailAdapter(mailer smtp.Mailer, timeout time.Duration) *EmailAdapter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &EmailAdapter{mailer: mailer, timeout: timeout}
}

func (a *EmailAdapter) Configured() bool { return a.mailer != nil }

func (a *EmailAdapter) Send(ctx context.Context, to string, msg content.Message) Outcome {
	out := Outcome{Destination: to, DispatchID: id.New()}
	if a.mailer == nil {
		out.Via = domain.ViaConsole
		slog.Info("email provider not configured; console delivery",
			"dispatch_id", out.DispatchID, "to", to, "subject", msg.Subject, "code", msg.Code)
		return out
	}

	out.Via = domain.ViaEmail
	out.Dispatched = true
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	if err := a.mailer.SendEmail(ctx, to, msg.Subject, msg.Body); err != nil {
		out.Err = err
		slog.Error("email delivery failed", "dispatch_id", out.DispatchID, "to", to, "err", err)
		return out
	}
	out.Delivered = true
	slog.Info("email delivered", "dispatch_id", out.DispatchID, "to", to)
	return out
}

// SMSAdapter normalizes the destination to E.164 form and sends through an SMSSender,
// or logs to the console when none is configured.
type SMSAdapter struct {
	sender      sns.SMSSender
	countryCode string
	timeout     time.Duration
}

// NewSMSAdapter accepts a nil sender, which selects console fallback.
func NewSMSAdapter(sender sns.SMSSender, countryCode string, timeout time.Duration) *SMSAdapter {
	if countryCode == "" {
		countryCode = phone.DefaultCountryCode
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &SMSAdapter{sender: sender, countryCode: countryCode, timeout: timeout}
}

func (a *SMSAdapter) Configured() bool { return a.sender != nil }

func (a *SMSAdapter) Send(ctx context.Context, to string, msg content.Message) Outcome {
	dest := phone.Format(to, a.countryCode)
	out := Outcome{Destination: dest, DispatchID: id.New()}
	if a.sender == nil {
		out.Via = domain.ViaConsole
		slog.Info("sms provider not configured; console delivery",
			"dispatch_id", out.DispatchID, "to", dest, "body", msg.Body, "code", msg.Code)
		return out
	}

	out.Via = domain.ViaSMS
	out.Dispatched = true
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	if err := a.sender.SendSMS(ctx, dest, msg.Body); err != nil {
		out.Err = err
		slog.Error("sms delivery failed", "dispatch_id", out.DispatchID, "to", dest, "err", err)
		return out
	}
	out.Delivered = true
	slog.Info("sms delivered", "dispatch_id", out.DispatchID, "to", dest)
	return out
}
