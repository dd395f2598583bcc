// Package authflow drives the login, registration, OTP and password reset
// screens. The Controller owns the current screen and moves between them as
// the user acts; every failure is kept as a display string.
package authflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/codeblaze/portal/internal/core/domain"
	"github.com/codeblaze/portal/pkg/client"
)

// ErrIncompleteOTP is returned when a verification is submitted with empty boxes.
var ErrIncompleteOTP = errors.New("please enter the complete 6-digit code")

// ErrMissingResetToken is returned when a reset link carries no token.
var ErrMissingResetToken = errors.New("reset link is missing its token")

// AuthClient is the account backend the screens talk to.
type AuthClient interface {
	Register(ctx context.Context, req client.RegisterRequest) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*client.Session, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req client.ResetPasswordRequest) error
}

// Controller holds the flow state. It is safe for concurrent use; actions
// run one at a time.
type Controller struct {
	mu     sync.Mutex
	client AuthClient
	log    zerolog.Logger

	state        domain.AuthFlowState
	errMsg       string
	notice       string
	pendingEmail string
	resetToken   string
	session      *client.Session
}

func NewController(c AuthClient, log zerolog.Logger) *Controller {
	return &Controller{
		client: c,
		log:    log,
		state:  domain.FlowInitial,
	}
}

func (c *Controller) State() domain.AuthFlowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Error is the message of the last failed action, empty after a success.
func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Notice is the confirmation of the last successful action.
func (c *Controller) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// PendingEmail is the address awaiting OTP verification.
func (c *Controller) PendingEmail() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingEmail
}

// Session is the result of the last successful login, or nil.
func (c *Controller) Session() *client.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Register requests a registration OTP and shows the code screen.
func (c *Controller) Register(ctx context.Context, form RegisterForm) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.begin("register", domain.FlowOTPSent); err != nil {
		return err
	}
	if err := validateForm(form); err != nil {
		return c.fail(err)
	}

	email := strings.TrimSpace(form.Email)
	err := c.client.Register(ctx, client.RegisterRequest{
		Name:            strings.TrimSpace(form.Name),
		Email:           email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		return c.fail(err)
	}

	c.pendingEmail = email
	c.notice = fmt.Sprintf("We sent a 6-digit code to %s", email)
	c.moveTo(domain.FlowOTPSent)
	return nil
}

// SubmitOTP verifies the code once all six boxes are filled. On success the
// login screen is shown.
func (c *Controller) SubmitOTP(ctx context.Context, form OTPForm) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearMessages()
	if c.state != domain.FlowOTPSent {
		return c.invalid("verify code")
	}
	if !form.Complete() {
		return c.fail(ErrIncompleteOTP)
	}
	if err := validateForm(form); err != nil {
		return c.fail(err)
	}

	if err := c.client.VerifyOTP(ctx, c.pendingEmail, form.Code()); err != nil {
		return c.fail(err)
	}

	c.notice = "Email verified. Please log in."
	c.pendingEmail = ""
	c.moveTo(domain.FlowInitial)
	return nil
}

// ResendOTP asks for a fresh code while the code screen is shown.
func (c *Controller) ResendOTP(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearMessages()
	if c.state != domain.FlowOTPSent {
		return c.invalid("resend code")
	}
	if err := c.client.ResendOTP(ctx, c.pendingEmail); err != nil {
		return c.fail(err)
	}
	c.notice = fmt.Sprintf("A new code was sent to %s", c.pendingEmail)
	return nil
}

// Login authenticates from the login screen. The state does not change.
func (c *Controller) Login(ctx context.Context, form LoginForm) (*client.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearMessages()
	if c.state != domain.FlowInitial {
		return nil, c.invalid("login")
	}
	if err := validateForm(form); err != nil {
		return nil, c.fail(err)
	}

	s, err := c.client.Login(ctx, strings.TrimSpace(form.Email), form.Password)
	if err != nil {
		return nil, c.fail(err)
	}

	c.session = s
	c.notice = "Login successful"
	c.log.Debug().Str("user_id", s.User.ID).Msg("logged in")
	return s, nil
}

// ForgotPassword opens the forgot password screen.
func (c *Controller) ForgotPassword() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.begin("forgot password", domain.FlowForgotPasswordForm); err != nil {
		return err
	}
	c.moveTo(domain.FlowForgotPasswordForm)
	return nil
}

// SubmitForgotPassword asks for a reset link. The confirmation screen is
// shown whatever the backend answered; a backend failure is returned and
// kept as the error string.
func (c *Controller) SubmitForgotPassword(ctx context.Context, form ForgotPasswordForm) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.begin("request reset link", domain.FlowForgotPasswordRequested); err != nil {
		return err
	}
	if err := validateForm(form); err != nil {
		return c.fail(err)
	}

	err := c.client.ForgotPassword(ctx, strings.TrimSpace(form.Email))
	c.moveTo(domain.FlowForgotPasswordRequested)
	if err != nil {
		c.errMsg = err.Error()
		c.log.Debug().Err(err).Msg("reset link request failed")
		return err
	}
	c.notice = "If an account exists for this email, a reset link has been sent"
	return nil
}

// OpenResetLink shows the reset password screen for a token taken from a
// reset link. It works from any screen.
func (c *Controller) OpenResetLink(token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearMessages()
	token = strings.TrimSpace(token)
	if token == "" {
		return c.fail(ErrMissingResetToken)
	}
	c.resetToken = token
	c.pendingEmail = ""
	c.moveTo(domain.FlowResetPasswordForm)
	return nil
}

// SubmitResetPassword stores the new password and returns to login.
func (c *Controller) SubmitResetPassword(ctx context.Context, form ResetPasswordForm) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearMessages()
	if c.state != domain.FlowResetPasswordForm {
		return c.invalid("reset password")
	}
	if err := validateForm(form); err != nil {
		return c.fail(err)
	}

	err := c.client.ResetPassword(ctx, client.ResetPasswordRequest{
		Token:           c.resetToken,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		return c.fail(err)
	}

	c.resetToken = ""
	c.notice = "Password reset successfully. Please log in."
	c.moveTo(domain.FlowInitial)
	return nil
}

// BackToLogin returns to the login screen from anywhere and drops any
// in-progress form data.
func (c *Controller) BackToLogin() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearMessages()
	c.pendingEmail = ""
	c.resetToken = ""
	c.moveTo(domain.FlowInitial)
}

// begin clears old messages and checks that the current state may move to next.
// Caller must hold c.mu.
func (c *Controller) begin(action string, next domain.AuthFlowState) error {
	c.clearMessages()
	if !c.state.CanTransitionTo(next) {
		return c.invalid(action)
	}
	return nil
}

func (c *Controller) invalid(action string) error {
	err := fmt.Errorf("%w: cannot %s from %s", domain.ErrInvalidTransition, action, c.state)
	c.errMsg = err.Error()
	return err
}

func (c *Controller) fail(err error) error {
	c.errMsg = err.Error()
	return err
}

func (c *Controller) clearMessages() {
	c.errMsg = ""
	c.notice = ""
}

func (c *Controller) moveTo(next domain.AuthFlowState) {
	if c.state != next {
		c.log.Debug().Str("from", string(c.state)).Str("to", string(next)).Msg("auth flow transition")
	}
	c.state = next
}
