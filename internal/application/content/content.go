package content

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-otp-nosql/internal/domain"
)

// MaxSMSLength bounds every rendered SMS body (two concatenated GSM segments).
const MaxSMSLength = 320

// MaxBrandLength caps the brand name so every SMS template fits MaxSMSLength with a one-rune name.
const MaxBrandLength = 40

// Data is what a message is personalized with.
type Data struct {
	Name      string
	Code      string
	ExpiresIn time.Duration
}

// Message is a rendered message. Subject is empty for SMS. Code is carried alongside the
// body so a console fallback can log it without parsing HTML.
type Message struct {
	Subject string
	Body    string
	HTML    bool
	Code    string
}

// Generator renders role- and purpose-specific OTP messages.
type Generator struct {
	brand        string
	supportEmail string
	email        map[domain.Role]*template.Template
}

func NewGenerator(brand, supportEmail string) *Generator {
	return &Generator{
		brand:        clip(strings.TrimSpace(brand), MaxBrandLength),
		supportEmail: supportEmail,
		email: map[domain.Role]*template.Template{
			domain.RoleCustomer: template.Must(template.New("customer").Parse(customerEmailTmpl)),
			domain.RoleVendor:   template.Must(template.New("vendor").Parse(vendorEmailTmpl)),
			domain.RoleAdmin:    template.Must(template.New("admin").Parse(adminEmailTmpl)),
		},
	}
}

// Render produces the message for ch. Email honours purpose for customers and vendors;
// SMS honours purpose only for vendors.
func (g *Generator) Render(role domain.Role, purpose domain.Purpose, d Data, ch domain.Channel) (Message, error) {
	if ch == domain.ChannelEmail {
		return g.Email(role, purpose, d)
	}
	return g.SMS(role, purpose, d)
}

func (g *Generator) Email(role domain.Role, purpose domain.Purpose, d Data) (Message, error) {
	tmpl, ok := g.email[role]
	if !ok {
		return Message{}, fmt.Errorf("no email template for role %q: %w", role, domain.ErrBadRequest)
	}
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, emailView{
		Brand:        g.brand,
		SupportEmail: g.supportEmail,
		Name:         displayName(d.Name),
		Code:         d.Code,
		Lead:         g.lead(role, purpose),
		Expiry:       ExpiryDisplay(d.ExpiresIn),
	})
	if err != nil {
		return Message{}, fmt.Errorf("render %s email: %w", role, err)
	}
	return Message{Subject: g.subject(role, purpose), Body: buf.String(), HTML: true, Code: d.Code}, nil
}

func (g *Generator) SMS(role domain.Role, purpose domain.Purpose, d Data) (Message, error) {
	var render func(name string) string
	switch role {
	case domain.RoleCustomer:
		render = func(name string) string { return g.customerSMS(name, d) }
	case domain.RoleVendor:
		render = func(name string) string { return g.vendorSMS(name, purpose, d) }
	case domain.RoleAdmin:
		render = func(name string) string { return g.adminSMS(name, d) }
	default:
		return Message{}, fmt.Errorf("no sms template for role %q: %w", role, domain.ErrBadRequest)
	}
	return Message{Body: fitSMS(render, displayName(d.Name)), Code: d.Code}, nil
}

type emailView struct {
	Brand        string
	SupportEmail string
	Name         string
	Code         string
	Lead         string
	Expiry       string
}

func (g *Generator) subject(role domain.Role, purpose domain.Purpose) string {
	switch role {
	case domain.RoleAdmin:
		return fmt.Sprintf("[%s Admin] Security verification code", g.brand)
	case domain.RoleVendor:
		switch purpose {
		case domain.PurposeLogin:
			return fmt.Sprintf("%s Seller Center: your login code", g.brand)
		case domain.PurposePasswordReset:
			return fmt.Sprintf("%s Seller Center: password reset code", g.brand)
		case domain.PurposeProfileUpdate:
			return fmt.Sprintf("%s Seller Center: confirm your store profile changes", g.brand)
		}
		return fmt.Sprintf("%s Seller Center: verify your vendor account", g.brand)
	}
	switch purpose {
	case domain.PurposeLogin:
		return fmt.Sprintf("Your %s login code", g.brand)
	case domain.PurposePasswordReset:
		return fmt.Sprintf("Reset your %s password", g.brand)
	case domain.PurposeProfileUpdate:
		return fmt.Sprintf("Confirm your %s profile changes", g.brand)
	}
	return fmt.Sprintf("Verify your %s account", g.brand)
}

// lead is the only purpose-dependent part of an email body.
func (g *Generator) lead(role domain.Role, purpose domain.Purpose) string {
	switch role {
	case domain.RoleAdmin:
		return fmt.Sprintf("A verification code was requested for your %s administrator account. Enter the code below to continue.", g.brand)
	case domain.RoleVendor:
		switch purpose {
		case domain.PurposeLogin:
			return fmt.Sprintf("Use the code below to sign in to your %s seller dashboard.", g.brand)
		case domain.PurposePasswordReset:
			return fmt.Sprintf("A password reset was requested for your %s seller account. Use the code below to continue.", g.brand)
		case domain.PurposeProfileUpdate:
			return fmt.Sprintf("Use the code below to confirm changes to your store profile on %s.", g.brand)
		}
		return fmt.Sprintf("Thanks for registering as a seller on %s. Use the code below to verify your vendor account.", g.brand)
	}
	switch purpose {
	case domain.PurposeLogin:
		return fmt.Sprintf("Use the code below to finish signing in to your %s account.", g.brand)
	case domain.PurposePasswordReset:
		return fmt.Sprintf("We received a request to reset your %s password. Use the code below to continue.", g.brand)
	case domain.PurposeProfileUpdate:
		return fmt.Sprintf("Use the code below to confirm the changes to your %s profile.", g.brand)
	}
	return fmt.Sprintf("Welcome to %s! Use the code below to verify your account and start shopping.", g.brand)
}

func (g *Generator) customerSMS(name string, d Data) string {
	return fmt.Sprintf("Hi %s, your %s verification code is %s. It expires in %s. Do not share this code with anyone.",
		name, g.brand, d.Code, ExpiryDisplay(d.ExpiresIn))
}

func (g *Generator) vendorSMS(name string, purpose domain.Purpose, d Data) string {
	return fmt.Sprintf("Hi %s, your %s seller %s code is %s. Valid for %s. Never share this code with anyone, including %s staff.",
		name, g.brand, purposePhrase(purpose), d.Code, ExpiryDisplay(d.ExpiresIn), g.brand)
}

func (g *Generator) adminSMS(name string, d Data) string {
	return fmt.Sprintf("%s ADMIN SECURITY ALERT: Hi %s, your admin verification code is %s. Expires in %s. NEVER share this code. If you did not request it, contact security immediately.",
		g.brand, name, d.Code, ExpiryDisplay(d.ExpiresIn))
}

func purposePhrase(p domain.Purpose) string {
	switch p {
	case domain.PurposeLogin:
		return "login"
	case domain.PurposePasswordReset:
		return "password reset"
	case domain.PurposeProfileUpdate:
		return "profile update"
	}
	return "registration"
}

// ExpiryDisplay renders a remaining validity window in whole minutes, rounded up, never below one.
func ExpiryDisplay(d time.Duration) string {
	m := int((d + time.Minute - 1) / time.Minute)
	if m < 1 {
		m = 1
	}
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}

func displayName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}

// fitSMS shortens the name until the body fits MaxSMSLength. Code, expiry and warning are never cut.
func fitSMS(render func(name string) string, name string) string {
	body := render(name)
	over := utf8.RuneCountInString(body) - MaxSMSLength
	if over <= 0 {
		return body
	}
	runes := []rune(name)
	keep := len(runes) - over
	if keep < 1 {
		keep = 1
	}
	return render(string(runes[:keep]))
}

func clip(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}
