package ports

import (
	"context"

	"github.com/codeblaze/portal/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// ResetPasswordInput carries the reset form together with the link token.
type ResetPasswordInput struct {
	Token           string
	Password        string
	ConfirmPassword string
}

// AuthService implements the account flow behind the login screens.
type AuthService interface {
	// Register creates an unverified account and mails a registration OTP.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	VerifyOTP(ctx context.Context, email, otp string) (*domain.User, error)
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// ForgotPassword never reports whether the account exists.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
