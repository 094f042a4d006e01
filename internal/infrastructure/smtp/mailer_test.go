package smtp

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-otp-nosql/internal/config"
	"github.com/go-otp-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	err   error
	delay time.Duration
	sent  []*gomail.Message
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	time.Sleep(f.delay)
	f.sent = append(f.sent, m...)
	return f.err
}

func TestNewMailer_NoHost_NotConfigured(t *testing.T) {
	_, err := NewMailer(&config.Config{})
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))
}

func TestSendEmail_BuildsHTMLMessage(t *testing.T) {
	d := &fakeDialer{}
	m := &mailer{dialer: d, from: "noreply@shop.com"}

	require.NoError(t, m.SendEmail(context.Background(), "a@b.com", "Your code", "<p>123456</p>"))
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"a@b.com"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Your code"}, d.sent[0].GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := d.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
}

func TestSendEmail_ProviderError(t *testing.T) {
	m := &mailer{dialer: &fakeDialer{err: errors.New("535 auth failed")}, from: "x@y.z"}
	err := m.SendEmail(context.Background(), "a@b.com", "s", "b")
	assert.ErrorContains(t, err, "535 auth failed")
}

func TestSendEmail_ContextDeadline(t *testing.T) {
	m := &mailer{dialer: &fakeDialer{delay: 200 * time.Millisecond}, from: "x@y.z"}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := m.SendEmail(ctx, "a@b.com", "s", "b")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
