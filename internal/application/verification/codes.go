package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/go-otp-nosql/internal/domain"
)

// LiveCode is a stored code whose expiry is still in the future.
type LiveCode struct {
	Code   string
	Expiry time.Time
}

// CodeStore reads and clears the code fields embedded on a record. Every write touches the
// code and its expiry together in one update.
type CodeStore struct {
	stores Stores
	now    func() time.Time
}

func NewCodeStore(stores Stores, now func() time.Time) *CodeStore {
	if now == nil {
		now = time.Now
	}
	return &CodeStore{stores: stores, now: now}
}

// ReadCode returns domain.ErrNoValidCode unless code and expiry are both set and expiry > now.
func (c *CodeStore) ReadCode(rec *domain.Record, ch domain.Channel) (LiveCode, error) {
	code, expiry := rec.CodePair(ch)
	if code == nil || *code == "" || expiry == nil || !expiry.After(c.now()) {
		return LiveCode{}, domain.ErrNoValidCode
	}
	return LiveCode{Code: *code, Expiry: *expiry}, nil
}

// ClearCode removes the code and expiry for ch.
func (c *CodeStore) ClearCode(ctx context.Context, rec *domain.Record, ch domain.Channel) error {
	_, codeField, expiryField := domain.VerificationFields(ch)
	if err := c.update(ctx, rec, map[string]interface{}{codeField: nil, expiryField: nil}); err != nil {
		return err
	}
	setCodePair(rec, ch, nil, nil)
	return nil
}

// MarkVerified sets the verified flag and clears the code pair in the same update.
func (c *CodeStore) MarkVerified(ctx context.Context, rec *domain.Record, ch domain.Channel) error {
	verifiedField, codeField, expiryField := domain.VerificationFields(ch)
	err := c.update(ctx, rec, map[string]interface{}{
		verifiedField: true,
		codeField:     nil,
		expiryField:   nil,
	})
	if err != nil {
		return err
	}
	if ch == domain.ChannelEmail {
		rec.EmailVerified = true
	} else {
		rec.MobileVerified = true
	}
	setCodePair(rec, ch, nil, nil)
	return nil
}

// SetCode writes a freshly minted code pair. Only the issuance flow calls this.
func (c *CodeStore) SetCode(ctx context.Context, rec *domain.Record, ch domain.Channel, code string, expiry time.Time) error {
	_, codeField, expiryField := domain.VerificationFields(ch)
	expiry = expiry.UTC()
	if err := c.update(ctx, rec, map[string]interface{}{codeField: code, expiryField: expiry}); err != nil {
		return err
	}
	setCodePair(rec, ch, &code, &expiry)
	return nil
}

func (c *CodeStore) update(ctx context.Context, rec *domain.Record, updates map[string]interface{}) error {
	store, ok := c.stores[rec.Role]
	if !ok || store == nil {
		return fmt.Errorf("no store for role %q: %w", rec.Role, domain.ErrBadRequest)
	}
	return store.Update(ctx, rec.UserID, updates)
}

func setCodePair(rec *domain.Record, ch domain.Channel, code *string, expiry *time.Time) {
	if ch == domain.ChannelEmail {
		rec.EmailVerificationCode, rec.EmailVerificationExpiry = code, expiry
		return
	}
	rec.MobileVerificationCode, rec.MobileVerificationExpiry = code, expiry
}
