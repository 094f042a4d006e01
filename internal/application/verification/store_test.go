package verification

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-otp-nosql/internal/application/content"
	"github.com/go-otp-nosql/internal/application/delivery"
	"github.com/go-otp-nosql/internal/domain"
	"github.com/stretchr/testify/mock"
)

// memStore is an in-memory RecordStore keyed by user id.
type memStore struct {
	mu      sync.Mutex
	recs    map[string]*domain.Record
	updates []map[string]interface{}
}

func newMemStore(recs ...*domain.Record) *memStore {
	s := &memStore{recs: map[string]*domain.Record{}}
	for _, r := range recs {
		s.recs[r.UserID] = r
	}
	return s
}

func (s *memStore) GetByID(_ context.Context, userID string) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.recs[userID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (s *memStore) GetByEmail(_ context.Context, email string) (*domain.Record, error) {
	return s.match(func(r *domain.Record) bool { return strings.EqualFold(r.Email, email) })
}

func (s *memStore) GetByPhone(_ context.Context, p string) (*domain.Record, error) {
	return s.match(func(r *domain.Record) bool { return r.PhoneNumber != "" && r.PhoneNumber == p })
}

func (s *memStore) match(fn func(*domain.Record) bool) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.recs {
		if fn(r) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memStore) Update(_ context.Context, userID string, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recs[userID]
	if !ok {
		return domain.ErrNotFound
	}
	s.updates = append(s.updates, updates)
	for k, v := range updates {
		switch k {
		case domain.FieldEmailVerified:
			r.EmailVerified = v.(bool)
		case domain.FieldMobileVerified:
			r.MobileVerified = v.(bool)
		case domain.FieldEmailVerificationCode:
			r.EmailVerificationCode = strPtr(v)
		case domain.FieldMobileVerificationCode:
			r.MobileVerificationCode = strPtr(v)
		case domain.FieldEmailVerificationExpiry:
			r.EmailVerificationExpiry = timePtr(v)
		case domain.FieldMobileVerificationExpiry:
			r.MobileVerificationExpiry = timePtr(v)
		}
	}
	return nil
}

func (s *memStore) get(userID string) *domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s.recs[userID]
	return &cp
}

func strPtr(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}

func timePtr(v interface{}) *time.Time {
	if v == nil {
		return nil
	}
	t := v.(time.Time)
	return &t
}

// mockStore is used where a test needs a store to fail.
type mockStore struct{ mock.Mock }

func (m *mockStore) GetByID(ctx context.Context, userID string) (*domain.Record, error) {
	args := m.Called(ctx, userID)
	if r, _ := args.Get(0).(*domain.Record); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) GetByEmail(ctx context.Context, email string) (*domain.Record, error) {
	args := m.Called(ctx, email)
	if r, _ := args.Get(0).(*domain.Record); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) GetByPhone(ctx context.Context, p string) (*domain.Record, error) {
	args := m.Called(ctx, p)
	if r, _ := args.Get(0).(*domain.Record); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

// stubAdapter records what it was asked to send and returns a fixed outcome.
type stubAdapter struct {
	out  delivery.Outcome
	sent []content.Message
	to   []string
}

func (a *stubAdapter) Send(_ context.Context, to string, msg content.Message) delivery.Outcome {
	a.sent = append(a.sent, msg)
	a.to = append(a.to, to)
	out := a.out
	out.Destination = to
	return out
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func withEmailCode(r *domain.Record, code string, expiry time.Time) *domain.Record {
	r.EmailVerificationCode, r.EmailVerificationExpiry = &code, &expiry
	return r
}

func withMobileCode(r *domain.Record, code string, expiry time.Time) *domain.Record {
	r.MobileVerificationCode, r.MobileVerificationExpiry = &code, &expiry
	return r
}
