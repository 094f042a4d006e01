package domain

import (
	"fmt"
	"strings"
)

// Channel is the medium a code proves control of.
type Channel string

const (
	ChannelEmail  Channel = "email"
	ChannelMobile Channel = "mobile"
)

// ChannelFor infers the channel from an identifier: anything with an '@' is an email address.
func ChannelFor(identifier string) Channel {
	if strings.Contains(identifier, "@") {
		return ChannelEmail
	}
	return ChannelMobile
}

func ParseChannel(s string) (Channel, error) {
	switch c := Channel(strings.ToLower(strings.TrimSpace(s))); c {
	case ChannelEmail, ChannelMobile:
		return c, nil
	case "sms", "phone":
		return ChannelMobile, nil
	}
	return "", fmt.Errorf("unknown channel %q: %w", s, ErrBadRequest)
}

// Purpose is the user-facing reason a code was requested.
type Purpose string

const (
	PurposeRegistration  Purpose = "registration"
	PurposeLogin         Purpose = "login"
	PurposePasswordReset Purpose = "password-reset"
	PurposeProfileUpdate Purpose = "profile-update"
)

// ParsePurpose defaults to registration when s is empty.
func ParsePurpose(s string) (Purpose, error) {
	switch p := Purpose(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PurposeRegistration, nil
	case PurposeRegistration, PurposeLogin, PurposePasswordReset, PurposeProfileUpdate:
		return p, nil
	}
	return "", fmt.Errorf("unknown purpose %q: %w", s, ErrBadRequest)
}
