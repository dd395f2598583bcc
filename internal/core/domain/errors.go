package domain

import "errors"

// Job errors.
var (
	ErrJobNotFound = errors.New("job not found")
	ErrInvalidJob  = errors.New("title and description are required")
)

// Account errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrForbidden          = errors.New("access forbidden")
)

// Verification code errors.
var (
	ErrCodeNotFound      = errors.New("verification code expired or not found")
	ErrInvalidOTP        = errors.New("invalid verification code")
	ErrTooManyAttempts   = errors.New("too many verification attempts")
	ErrInvalidTransition = errors.New("invalid auth flow transition")
)
