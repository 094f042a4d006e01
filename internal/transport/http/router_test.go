package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-otp-nosql/internal/config"
	"github.com/go-otp-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo holds at most one record and matches it by email.
type fakeRepo struct{ rec *domain.Record }

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Record, error) {
	if f.rec == nil || f.rec.UserID != id {
		return nil, domain.ErrNotFound
	}
	cp := *f.rec
	return &cp, nil
}
func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*domain.Record, error) {
	if f.rec == nil || !strings.EqualFold(f.rec.Email, email) {
		return nil, domain.ErrNotFound
	}
	cp := *f.rec
	return &cp, nil
}
func (f *fakeRepo) GetByPhone(context.Context, string) (*domain.Record, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeRepo) Update(_ context.Context, _ string, updates map[string]interface{}) error {
	for k, v := range updates {
		switch k {
		case domain.FieldEmailVerified:
			f.rec.EmailVerified = v.(bool)
		case domain.FieldEmailVerificationCode:
			f.rec.EmailVerificationCode = nil
		case domain.FieldEmailVerificationExpiry:
			f.rec.EmailVerificationExpiry = nil
		}
	}
	return nil
}

func newTestRouter(env string, customer *domain.Record) http.Handler {
	cfg := &config.Config{AppEnv: env, BrandName: "Bazaar", SMSCountryCode: "91"}
	return NewRouter(cfg, &Deps{
		Customers: &fakeRepo{rec: customer},
		Vendors:   &fakeRepo{},
		Admins:    &fakeRepo{},
	})
}

func do(h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf []byte
	if body != nil {
		buf, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Ping(t *testing.T) {
	rr := do(newTestRouter("development", nil), http.MethodGet, "/v1/health-check/ping", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "pong")
}

func TestRouter_IssueNotMountedWithoutJWT(t *testing.T) {
	rr := do(newTestRouter("development", nil), http.MethodPost, "/v1/otp/issue", map[string]string{"channel": "email"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_SendAndVerifyConsole(t *testing.T) {
	code := "482913"
	exp := time.Now().Add(10 * time.Minute)
	rec := &domain.Record{UserID: "c1", Email: "u@x.com", EmailVerificationCode: &code, EmailVerificationExpiry: &exp}
	h := newTestRouter("development", rec)

	rr := do(h, http.MethodPost, "/v1/otp/send", map[string]string{"identifier": "u@x.com"})
	require.Equal(t, http.StatusOK, rr.Code)
	var sent domain.Result
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&sent))
	assert.Equal(t, domain.ViaConsole, sent.DeliveredVia)
	assert.Equal(t, code, sent.Code)

	rr = do(h, http.MethodPost, "/v1/otp/verify", map[string]string{"identifier": "u@x.com", "code": code})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, rec.EmailVerified)
	assert.Nil(t, rec.EmailVerificationCode)
}

func TestRouter_ProductionHidesCode(t *testing.T) {
	code := "482913"
	exp := time.Now().Add(10 * time.Minute)
	rec := &domain.Record{UserID: "c1", Email: "u@x.com", EmailVerificationCode: &code, EmailVerificationExpiry: &exp}

	rr := do(newTestRouter("production", rec), http.MethodPost, "/v1/otp/send", map[string]string{"identifier": "u@x.com"})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), code)
}

func TestRouter_SendUnknownUser(t *testing.T) {
	rr := do(newTestRouter("development", nil), http.MethodPost, "/v1/otp/send", map[string]string{"identifier": "ghost@x.com"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
