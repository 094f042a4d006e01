package phone

import "strings"

// DefaultCountryCode is prefixed onto bare 10-digit local numbers.
const DefaultCountryCode = "91"

// FormatPhoneNumber normalizes p into E.164-style form using DefaultCountryCode.
func FormatPhoneNumber(p string) string {
	return Format(p, DefaultCountryCode)
}

// Format normalizes p into E.164-style form:
//   - 10 digits get "+<countryCode>" prefixed
//   - 12 or 13 digits already starting with countryCode get a leading "+"
//   - anything else is passed through with a leading "+" if absent
func Format(p, countryCode string) string {
	p = strip(p)
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "+") {
		return p
	}
	switch {
	case len(p) == 10:
		return "+" + countryCode + p
	case (len(p) == 12 || len(p) == 13) && strings.HasPrefix(p, countryCode):
		return "+" + p
	}
	return "+" + p
}

// IsValidLocalMobile reports whether p is a 10-digit local mobile number starting with 6-9.
func IsValidLocalMobile(p string) bool {
	p = strip(p)
	if len(p) != 10 || p[0] < '6' || p[0] > '9' {
		return false
	}
	return digitsOnly(p)
}

// strip drops whitespace and common separators, keeping a leading '+'.
func strip(p string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(p) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
