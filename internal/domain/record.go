package domain

import "time"

// Record is the verification-relevant subset of a customer, vendor or admin user.
// Role is filled in by the repository that read it and is never persisted.
type Record struct {
	UserID      string `json:"id" dynamodbav:"user_id"`
	Role        Role   `json:"role" dynamodbav:"-"`
	FirstName   string `json:"first_name" dynamodbav:"first_name"`
	Email       string `json:"email" dynamodbav:"email"`
	PhoneNumber string `json:"phone_number" dynamodbav:"phone_number"`

	EmailVerified  bool `json:"email_verified" dynamodbav:"email_verified"`
	MobileVerified bool `json:"mobile_verified" dynamodbav:"mobile_verified"`

	EmailVerificationCode    *string    `json:"-" dynamodbav:"email_verification_code"`
	EmailVerificationExpiry  *time.Time `json:"-" dynamodbav:"email_verification_expiry"`
	MobileVerificationCode   *string    `json:"-" dynamodbav:"mobile_verification_code"`
	MobileVerificationExpiry *time.Time `json:"-" dynamodbav:"mobile_verification_expiry"`
}

// Verified reports the terminal verified flag for ch.
func (r *Record) Verified(ch Channel) bool {
	if ch == ChannelEmail {
		return r.EmailVerified
	}
	return r.MobileVerified
}

// CodePair returns the stored code and expiry for ch; either may be nil.
func (r *Record) CodePair(ch Channel) (*string, *time.Time) {
	if ch == ChannelEmail {
		return r.EmailVerificationCode, r.EmailVerificationExpiry
	}
	return r.MobileVerificationCode, r.MobileVerificationExpiry
}

// Destination returns the stored address for ch.
func (r *Record) Destination(ch Channel) string {
	if ch == ChannelEmail {
		return r.Email
	}
	return r.PhoneNumber
}

// Attribute names of the verification fields, shared by the repository and the services
// that build partial updates.
const (
	FieldEmailVerified            = "email_verified"
	FieldMobileVerified           = "mobile_verified"
	FieldEmailVerificationCode    = "email_verification_code"
	FieldEmailVerificationExpiry  = "email_verification_expiry"
	FieldMobileVerificationCode   = "mobile_verification_code"
	FieldMobileVerificationExpiry = "mobile_verification_expiry"
)

// VerificationFields names the verified/code/expiry attributes for ch.
func VerificationFields(ch Channel) (verified, code, expiry string) {
	if ch == ChannelEmail {
		return FieldEmailVerified, FieldEmailVerificationCode, FieldEmailVerificationExpiry
	}
	return FieldMobileVerified, FieldMobileVerificationCode, FieldMobileVerificationExpiry
}
