package verification

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-otp-nosql/internal/application/content"
	"github.com/go-otp-nosql/internal/application/delivery"
	"github.com/go-otp-nosql/internal/domain"
)

// User-facing messages. These are shown directly in the UI.
const (
	msgUserNotRegistered = "User not found. Please register first."
	msgUserNotFound      = "User not found."
	msgNoValidCode       = "No valid verification code found. Please generate a new verification code from your profile."
	msgInvalidCode       = "Invalid verification code."
	msgExpiredCode       = "Verification code has expired. Please generate a new one."
	msgConsoleDelivery   = "Verification code found in database. No delivery provider is configured; the code was written to the server log."
	msgUnconfirmed       = "Verification code found in database, but delivery could not be confirmed. Please try again shortly."
	msgFailedSend        = "Failed to send verification code"
	msgFailedVerify      = "Failed to verify code"
	msgFailedCancel      = "Failed to cancel verification"
)

type SendRequest struct {
	Identifier string `json:"identifier" validate:"required,identifier"`
	Role       string `json:"role" validate:"omitempty,oneof=customer vendor admin"`
	UserID     string `json:"user_id"`
	Purpose    string `json:"purpose" validate:"omitempty,oneof=registration login password-reset profile-update"`
}

type VerifyRequest struct {
	Identifier string `json:"identifier" validate:"required,identifier"`
	Code       string `json:"code" validate:"required,max=32"`
	Role       string `json:"role" validate:"omitempty,oneof=customer vendor admin"`
	UserID     string `json:"user_id"`
}

type CancelRequest struct {
	Identifier string `json:"identifier" validate:"required,identifier"`
	Role       string `json:"role" validate:"omitempty,oneof=customer vendor admin"`
	UserID     string `json:"user_id"`
}

// Service delivers, validates and cancels one-time codes for customers, vendors and admins.
// It never mints codes: a code must already be stored on the record.
// No method returns a Go error; failures are reported on the Result.
type Service interface {
	SendOTP(ctx context.Context, req SendRequest) domain.Result
	VerifyOTP(ctx context.Context, req VerifyRequest) domain.Result
	CancelVerification(ctx context.Context, req CancelRequest) domain.Result
}

type renderer interface {
	Render(role domain.Role, purpose domain.Purpose, d content.Data, ch domain.Channel) (content.Message, error)
}

type service struct {
	resolver   *Resolver
	codes      *CodeStore
	content    renderer
	email      delivery.Adapter
	sms        delivery.Adapter
	exposeCode bool
	now        func() time.Time
}

type ServiceDeps struct {
	Stores      Stores
	Content     renderer
	Email       delivery.Adapter
	SMS         delivery.Adapter
	CountryCode string
	// ExposeCode includes the raw code in send results. Never set it in production.
	ExposeCode bool
	Now        func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		resolver:   NewResolver(deps.Stores, deps.CountryCode),
		codes:      NewCodeStore(deps.Stores, now),
		content:    deps.Content,
		email:      deps.Email,
		sms:        deps.SMS,
		exposeCode: deps.ExposeCode,
		now:        now,
	}
}

func (s *service) SendOTP(ctx context.Context, req SendRequest) domain.Result {
	lookup, err := parseLookup(req.Identifier, req.Role, req.UserID)
	if err != nil {
		return badRequest(err)
	}
	purpose, err := domain.ParsePurpose(req.Purpose)
	if err != nil {
		return badRequest(err)
	}
	ch := lookup.Channel()

	rec, err := s.resolver.Resolve(ctx, lookup)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Result{Message: msgUserNotRegistered, Channel: ch, Err: err}
		}
		return failed(msgFailedSend, ch, err)
	}

	live, err := s.codes.ReadCode(rec, ch)
	if err != nil {
		return domain.Result{Message: msgNoValidCode, Role: rec.Role, Channel: ch, Err: err}
	}

	dest := rec.Destination(ch)
	if dest == "" {
		return domain.Result{
			Message: fmt.Sprintf("No %s on file for this account.", strings.ToLower(channelLabel(ch))),
			Role:    rec.Role,
			Channel: ch,
			Err:     fmt.Errorf("%s %s has no %s: %w", rec.Role, rec.UserID, ch, domain.ErrBadRequest),
		}
	}

	msg, err := s.content.Render(rec.Role, purpose, content.Data{
		Name:      rec.FirstName,
		Code:      live.Code,
		ExpiresIn: live.Expiry.Sub(s.now()),
	}, ch)
	if err != nil {
		return failed(msgFailedSend, ch, err)
	}

	adapter := s.sms
	if ch == domain.ChannelEmail {
		adapter = s.email
	}
	// Deliver to the address on file.
	out := adapter.Send(ctx, dest, msg)

	res := domain.Result{
		Success:      true,
		Status:       domain.StatusPending,
		Role:         rec.Role,
		Channel:      ch,
		Delivered:    out.Delivered,
		DeliveredVia: out.Via,
	}
	switch {
	case out.Delivered:
		res.Message = fmt.Sprintf("Verification code sent to %s", out.Destination)
	case out.Dispatched:
		res.Message = msgUnconfirmed
		res.Err = fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, out.Err)
		slog.Warn("otp delivery failed; code remains valid",
			"role", rec.Role, "user_id", rec.UserID, "channel", ch, "dispatch_id", out.DispatchID, "err", out.Err)
	default:
		res.Message = msgConsoleDelivery
	}
	if s.exposeCode {
		res.Code = live.Code
	}
	return res
}

func (s *service) VerifyOTP(ctx context.Context, req VerifyRequest) domain.Result {
	lookup, err := parseLookup(req.Identifier, req.Role, req.UserID)
	if err != nil {
		r := badRequest(err)
		r.Status = domain.StatusRejected
		return r
	}
	ch := lookup.Channel()

	rec, err := s.resolver.Resolve(ctx, lookup)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return rejected(msgUserNotFound, "", ch, err)
		}
		r := failed(msgFailedVerify, ch, err)
		r.Status = domain.StatusRejected
		return r
	}

	if rec.Verified(ch) {
		return approved(fmt.Sprintf("%s already verified.", channelLabel(ch)), rec.Role, ch)
	}

	code, expiry := rec.CodePair(ch)
	if code == nil || !codesEqual(*code, req.Code) {
		return rejected(msgInvalidCode, rec.Role, ch, domain.ErrInvalidCode)
	}
	if expiry == nil || !expiry.After(s.now()) {
		return rejected(msgExpiredCode, rec.Role, ch, domain.ErrExpiredCode)
	}

	if err := s.codes.MarkVerified(ctx, rec, ch); err != nil {
		r := failed(msgFailedVerify, ch, err)
		r.Status = domain.StatusRejected
		r.Role = rec.Role
		return r
	}
	slog.Info("otp verified", "role", rec.Role, "user_id", rec.UserID, "channel", ch)
	return approved(fmt.Sprintf("%s verified successfully.", channelLabel(ch)), rec.Role, ch)
}

// CancelVerification clears the code pair on every record the lookup matches. Without a role
// or user id that is every role store holding the identifier. Matching nothing is a success
// with zero affected.
func (s *service) CancelVerification(ctx context.Context, req CancelRequest) domain.Result {
	lookup, err := parseLookup(req.Identifier, req.Role, req.UserID)
	if err != nil {
		return badRequest(err)
	}
	ch := lookup.Channel()

	recs, err := s.resolver.ResolveAll(ctx, lookup)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return failed(msgFailedCancel, ch, err)
	}

	affected := 0
	for _, rec := range recs {
		code, expiry := rec.CodePair(ch)
		if code == nil && expiry == nil {
			continue
		}
		if err := s.codes.ClearCode(ctx, rec, ch); err != nil {
			r := failed(msgFailedCancel, ch, err)
			r.Affected = &affected
			return r
		}
		affected++
		slog.Info("otp cancelled", "role", rec.Role, "user_id", rec.UserID, "channel", ch)
	}

	res := domain.Result{Success: true, Channel: ch, Affected: &affected}
	if len(recs) == 1 {
		res.Role = recs[0].Role
	}
	if affected == 0 {
		res.Message = "No pending verification code to cancel."
	} else {
		res.Message = fmt.Sprintf("Verification cancelled for %d record(s).", affected)
	}
	return res
}

func parseLookup(identifier, role, userID string) (Lookup, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Lookup{}, fmt.Errorf("identifier is required: %w", domain.ErrBadRequest)
	}
	r, err := domain.ParseRole(role)
	if err != nil {
		return Lookup{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID != "" && r == "" {
		return Lookup{}, fmt.Errorf("role is required with a user id: %w", domain.ErrBadRequest)
	}
	return Lookup{Identifier: identifier, Role: r, UserID: userID}, nil
}

func codesEqual(stored, supplied string) bool {
	supplied = strings.TrimSpace(supplied)
	return stored != "" && subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

func channelLabel(ch domain.Channel) string {
	if ch == domain.ChannelEmail {
		return "Email"
	}
	return "Mobile number"
}

func approved(msg string, role domain.Role, ch domain.Channel) domain.Result {
	return domain.Result{Success: true, Status: domain.StatusApproved, Message: msg, Role: role, Channel: ch}
}

func rejected(msg string, role domain.Role, ch domain.Channel, err error) domain.Result {
	return domain.Result{Status: domain.StatusRejected, Message: msg, Role: role, Channel: ch, Err: err}
}

func badRequest(err error) domain.Result {
	return domain.Result{Message: strings.TrimSuffix(err.Error(), ": "+domain.ErrBadRequest.Error()), Err: err}
}

// failed reports an unexpected store or rendering error without exposing it as a Go error.
func failed(msg string, ch domain.Channel, err error) domain.Result {
	slog.Error(strings.ToLower(msg), "channel", ch, "err", err)
	return domain.Result{Message: msg, Channel: ch, Error: err.Error(), Err: err}
}
