package issuance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-otp-nosql/internal/application/verification"
	"github.com/go-otp-nosql/internal/domain"
	"github.com/go-otp-nosql/internal/pkg/token"
)

const (
	CodeLength = 6
	DefaultTTL = 10 * time.Minute
)

// Issued describes a freshly stored code. Code is only filled when the service exposes codes.
type Issued struct {
	Role      domain.Role    `json:"role"`
	Channel   domain.Channel `json:"channel"`
	ExpiresAt time.Time      `json:"expires_at"`
	Code      string         `json:"code,omitempty"`
}

type IssueRequest struct {
	Channel string `json:"channel" validate:"required,oneof=email mobile sms phone"`
}

// Service mints codes for the authenticated user. Delivery is a separate step.
type Service interface {
	Issue(ctx context.Context, role domain.Role, userID string, ch domain.Channel) (*Issued, error)
}

type service struct {
	stores     verification.Stores
	codes      *verification.CodeStore
	ttl        time.Duration
	exposeCode bool
	now        func() time.Time
}

type ServiceDeps struct {
	Stores     verification.Stores
	TTL        time.Duration
	ExposeCode bool
	Now        func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	ttl := deps.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &service{
		stores:     deps.Stores,
		codes:      verification.NewCodeStore(deps.Stores, now),
		ttl:        ttl,
		exposeCode: deps.ExposeCode,
		now:        now,
	}
}

func (s *service) Issue(ctx context.Context, role domain.Role, userID string, ch domain.Channel) (*Issued, error) {
	store, ok := s.stores[role]
	if !ok || store == nil {
		return nil, fmt.Errorf("issue: unknown role %q: %w", role, domain.ErrBadRequest)
	}
	rec, err := store.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("issue: %w", err)
	}
	rec.Role = role

	if rec.Destination(ch) == "" {
		return nil, fmt.Errorf("issue: no %s on file: %w", ch, domain.ErrBadRequest)
	}
	if rec.Verified(ch) {
		return nil, fmt.Errorf("issue: %s already verified: %w", ch, domain.ErrConflict)
	}

	code, err := token.NewNumericCode(CodeLength)
	if err != nil {
		return nil, err
	}
	expiry := s.now().Add(s.ttl)
	if err := s.codes.SetCode(ctx, rec, ch, code, expiry); err != nil {
		return nil, fmt.Errorf("issue: %w", err)
	}
	slog.Info("otp issued", "role", role, "user_id", userID, "channel", ch, "expires_at", expiry.UTC())

	out := &Issued{Role: role, Channel: ch, ExpiresAt: expiry.UTC()}
	if s.exposeCode {
		out.Code = code
	}
	return out, nil
}
