package handler

import (
	"time"

	"github.com/codeblaze/portal/internal/core/domain"
)

// errorResponse is the error envelope shared by every handler.
type errorResponse struct {
	Error string `json:"error" example:"invalid or expired code"`
}

// messageResponse carries a human-readable confirmation.
type messageResponse struct {
	Message string `json:"message" example:"Job deleted successfully"`
}

type registerRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type registerResponse struct {
	Message string `json:"message" example:"OTP sent to your email"`
	Email   string `json:"email" example:"ada@example.com"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type userResponse struct {
	ID        string    `json:"id" example:"5f0c6c1e-8f55-4a53-9d1c-0d1f2b8e8a11"`
	Name      string    `json:"name" example:"Ada Lovelace"`
	Email     string    `json:"email" example:"ada@example.com"`
	Role      string    `json:"role" example:"user"`
	Verified  bool      `json:"verified" example:"true"`
	CreatedAt time.Time `json:"createdAt"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type verifyOTPResponse struct {
	Message string       `json:"message" example:"Email verified successfully"`
	User    userResponse `json:"user"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
	}
}
