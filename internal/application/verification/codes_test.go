package verification

import (
	"context"
	"testing"
	"time"

	"github.com/go-otp-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCode(t *testing.T) {
	c := NewCodeStore(nil, clock)
	cases := []struct {
		name string
		rec  *domain.Record
		ok   bool
	}{
		{"no code", &domain.Record{}, false},
		{"empty code", withEmailCode(&domain.Record{}, "", fixedNow.Add(time.Minute)), false},
		{"expiry equals now", withEmailCode(&domain.Record{}, "111111", fixedNow), false},
		{"expired", withEmailCode(&domain.Record{}, "111111", fixedNow.Add(-time.Second)), false},
		{"live", withEmailCode(&domain.Record{}, "111111", fixedNow.Add(time.Second)), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			live, err := c.ReadCode(tc.rec, domain.ChannelEmail)
			if !tc.ok {
				assert.ErrorIs(t, err, domain.ErrNoValidCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "111111", live.Code)
		})
	}
}

func TestReadCode_ChannelsAreIndependent(t *testing.T) {
	rec := withEmailCode(&domain.Record{}, "111111", fixedNow.Add(time.Minute))
	_, err := NewCodeStore(nil, clock).ReadCode(rec, domain.ChannelMobile)
	assert.ErrorIs(t, err, domain.ErrNoValidCode)
}

func TestMarkVerified_SingleUpdate(t *testing.T) {
	rec := withMobileCode(&domain.Record{UserID: "v1", Role: domain.RoleVendor}, "222222", fixedNow.Add(time.Minute))
	vendors := newMemStore(rec)
	c := NewCodeStore(Stores{domain.RoleVendor: vendors}, clock)

	require.NoError(t, c.MarkVerified(context.Background(), rec, domain.ChannelMobile))

	require.Len(t, vendors.updates, 1)
	assert.Equal(t, map[string]interface{}{
		domain.FieldMobileVerified:           true,
		domain.FieldMobileVerificationCode:   nil,
		domain.FieldMobileVerificationExpiry: nil,
	}, vendors.updates[0])
	assert.True(t, rec.MobileVerified)
	assert.Nil(t, rec.MobileVerificationCode)
	assert.Nil(t, rec.MobileVerificationExpiry)
}

func TestClearCode(t *testing.T) {
	rec := withEmailCode(&domain.Record{UserID: "c1", Role: domain.RoleCustomer}, "333333", fixedNow.Add(time.Minute))
	customers := newMemStore(rec)
	c := NewCodeStore(Stores{domain.RoleCustomer: customers}, clock)

	require.NoError(t, c.ClearCode(context.Background(), rec, domain.ChannelEmail))

	stored := customers.get("c1")
	assert.Nil(t, stored.EmailVerificationCode)
	assert.Nil(t, stored.EmailVerificationExpiry)
	assert.False(t, stored.EmailVerified)
}

func TestSetCode_UnknownRole(t *testing.T) {
	c := NewCodeStore(Stores{}, clock)
	err := c.SetCode(context.Background(), &domain.Record{UserID: "x", Role: domain.RoleAdmin}, domain.ChannelEmail, "1", fixedNow)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}
