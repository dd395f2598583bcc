package domain

import "time"

// CodePurpose tells registration OTPs apart from password reset tokens.
type CodePurpose string

const (
	PurposeRegistration  CodePurpose = "registration"
	PurposePasswordReset CodePurpose = "password_reset"
)

const (
	OTPLength      = 6
	OTPTTL         = 10 * time.Minute
	MaxOTPAttempts = 5
	ResetTokenTTL  = 30 * time.Minute
)

// VerificationCode is a short-lived secret bound to an e-mail address.
// For password resets Code holds the token and Email the account it unlocks.
type VerificationCode struct {
	Email     string      `json:"email"`
	Purpose   CodePurpose `json:"purpose"`
	Code      string      `json:"code"`
	ExpiresAt time.Time   `json:"expires_at"`
	Attempts  int         `json:"attempts"`
}

// Expired reports whether the code is no longer usable at now.
func (c *VerificationCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// AuthEvent is an entry in the account audit trail.
type AuthEvent struct {
	Email     string
	Action    string
	Success   bool
	Detail    string
	Timestamp time.Time
}
