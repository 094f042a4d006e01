package content

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/go-otp-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allRoles = []domain.Role{domain.RoleCustomer, domain.RoleVendor, domain.RoleAdmin}

var allPurposes = []domain.Purpose{
	domain.PurposeRegistration, domain.PurposeLogin, domain.PurposePasswordReset, domain.PurposeProfileUpdate,
}

func newGen() *Generator { return NewGenerator("Bazaar", "help@bazaar.test") }

func data() Data { return Data{Name: "Asha", Code: "482913", ExpiresIn: 10 * time.Minute} }

func TestEmail_ContainsCodeNameExpiry(t *testing.T) {
	g := newGen()
	for _, r := range allRoles {
		for _, p := range allPurposes {
			msg, err := g.Render(r, p, data(), domain.ChannelEmail)
			require.NoError(t, err)
			assert.True(t, msg.HTML)
			assert.NotEmpty(t, msg.Subject)
			assert.Contains(t, msg.Body, "482913", "%s/%s", r, p)
			assert.Contains(t, msg.Body, "Asha")
			assert.Contains(t, msg.Body, "10 minutes")
		}
	}
}

func TestEmail_PurposeChangesLeadForCustomerAndVendor(t *testing.T) {
	g := newGen()
	for _, r := range []domain.Role{domain.RoleCustomer, domain.RoleVendor} {
		seen := map[string]bool{}
		subjects := map[string]bool{}
		for _, p := range allPurposes {
			msg, err := g.Email(r, p, data())
			require.NoError(t, err)
			seen[g.lead(r, p)] = true
			subjects[msg.Subject] = true
			assert.Contains(t, msg.Body, g.lead(r, p))
		}
		assert.Len(t, seen, len(allPurposes), "role %s", r)
		assert.Len(t, subjects, len(allPurposes), "role %s", r)
	}
}

func TestEmail_AdminIsSevereAndPurposeIndependent(t *testing.T) {
	g := newGen()
	reg, err := g.Email(domain.RoleAdmin, domain.PurposeRegistration, data())
	require.NoError(t, err)
	login, err := g.Email(domain.RoleAdmin, domain.PurposeLogin, data())
	require.NoError(t, err)

	assert.Equal(t, reg, login)
	assert.Contains(t, reg.Body, "SECURITY WARNING")
	assert.Contains(t, reg.Subject, "Admin")

	customer, err := g.Email(domain.RoleCustomer, domain.PurposeRegistration, data())
	require.NoError(t, err)
	assert.NotContains(t, customer.Body, "SECURITY WARNING")
}

func TestEmail_EscapesName(t *testing.T) {
	msg, err := newGen().Email(domain.RoleCustomer, domain.PurposeLogin, Data{Name: "<script>x</script>", Code: "1"})
	require.NoError(t, err)
	assert.NotContains(t, msg.Body, "<script>x</script>")
	assert.Contains(t, msg.Body, "&lt;script&gt;")
}

func TestSMS_RequiredParts(t *testing.T) {
	g := newGen()
	for _, r := range allRoles {
		msg, err := g.Render(r, domain.PurposeRegistration, data(), domain.ChannelMobile)
		require.NoError(t, err)
		assert.False(t, msg.HTML)
		assert.Empty(t, msg.Subject)
		assert.Contains(t, msg.Body, "Hi Asha")
		assert.Contains(t, msg.Body, "482913")
		assert.Contains(t, msg.Body, "10 minutes")
		assert.Contains(t, strings.ToLower(msg.Body), "share this code")
		assert.LessOrEqual(t, utf8.RuneCountInString(msg.Body), MaxSMSLength)
	}
}

func TestSMS_PurposeOnlyAffectsVendor(t *testing.T) {
	g := newGen()
	for _, r := range []domain.Role{domain.RoleCustomer, domain.RoleAdmin} {
		a, _ := g.SMS(r, domain.PurposeRegistration, data())
		b, _ := g.SMS(r, domain.PurposePasswordReset, data())
		assert.Equal(t, a, b, "role %s", r)
	}
	a, _ := g.SMS(domain.RoleVendor, domain.PurposeRegistration, data())
	b, _ := g.SMS(domain.RoleVendor, domain.PurposePasswordReset, data())
	assert.NotEqual(t, a, b)
	assert.Contains(t, b.Body, "password reset")
}

func TestSMS_LongNameIsTruncatedToFit(t *testing.T) {
	d := data()
	d.Name = strings.Repeat("N", 400)
	msg, err := newGen().SMS(domain.RoleAdmin, domain.PurposeLogin, d)
	require.NoError(t, err)
	assert.LessOrEqual(t, utf8.RuneCountInString(msg.Body), MaxSMSLength)
	assert.Contains(t, msg.Body, "482913")
}

func TestSMS_LongBrandStillFits(t *testing.T) {
	g := NewGenerator(strings.Repeat("B", 200), "help@bazaar.test")
	d := data()
	d.Name = strings.Repeat("N", 100)
	for _, r := range allRoles {
		for _, p := range allPurposes {
			msg, err := g.SMS(r, p, d)
			require.NoError(t, err)
			assert.LessOrEqual(t, utf8.RuneCountInString(msg.Body), MaxSMSLength, "%s/%s", r, p)
			assert.Contains(t, msg.Body, "482913")
		}
	}
}

func TestSMS_EmptyNameGreetsGenerically(t *testing.T) {
	msg, err := newGen().SMS(domain.RoleCustomer, "", Data{Code: "1", ExpiresIn: time.Minute})
	require.NoError(t, err)
	assert.Contains(t, msg.Body, "Hi there")
	assert.Contains(t, msg.Body, "1 minute.")
}

func TestRender_UnknownRole(t *testing.T) {
	_, err := newGen().Render("guest", domain.PurposeLogin, data(), domain.ChannelEmail)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	_, err = newGen().Render("guest", domain.PurposeLogin, data(), domain.ChannelMobile)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestExpiryDisplay(t *testing.T) {
	assert.Equal(t, "1 minute", ExpiryDisplay(0))
	assert.Equal(t, "1 minute", ExpiryDisplay(20*time.Second))
	assert.Equal(t, "5 minutes", ExpiryDisplay(4*time.Minute+time.Second))
	assert.Equal(t, "10 minutes", ExpiryDisplay(10*time.Minute))
}
