package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/codeblaze/portal/internal/api/metrics"
	"github.com/codeblaze/portal/internal/core/domain"
	"github.com/codeblaze/portal/internal/core/ports"
)

const otpAlphabet = "0123456789"

// AuthConfig holds the token and link settings of AuthService.
type AuthConfig struct {
	JWTSecret   string
	TokenTTL    time.Duration
	FrontendURL string
}

// AuthService implements registration with e-mail OTP, login and password reset.
type AuthService struct {
	users  ports.UserRepository
	codes  ports.CodeStore
	mail   ports.MailQueue
	audit  ports.AuditRepository
	cfg    AuthConfig
	logger zerolog.Logger
	now    func() time.Time
}

// NewAuthService wires the account flow. audit may be nil.
func NewAuthService(
	users ports.UserRepository,
	codes ports.CodeStore,
	mail ports.MailQueue,
	audit ports.AuditRepository,
	cfg AuthConfig,
	logger zerolog.Logger,
) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:  users,
		codes:  codes,
		mail:   mail,
		audit:  audit,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := checkPassword(in.Password, in.ConfirmPassword); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && user.Verified:
		s.record(ctx, email, "register", false, "already registered")
		return nil, domain.ErrUserExists
	case err == nil:
		// An abandoned registration is taken over by the new one.
		user.Name = name
		user.PasswordHash = string(hash)
		user.UpdatedAt = now
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("register: %w", err)
		}
	case errors.Is(err, domain.ErrUserNotFound):
		user, err = s.users.Create(ctx, &domain.User{
			ID:           uuid.NewString(),
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("register: %w", err)
	}

	if err := s.issueOTP(ctx, user); err != nil {
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	s.record(ctx, email, "register", true, "")
	s.logger.Info().Str("user_id", user.ID).Msg("registration pending verification")
	return user, nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (*domain.User, error) {
	email = normalizeEmail(email)
	otp = strings.TrimSpace(otp)
	if email == "" || otp == "" {
		return nil, domain.ErrInvalidOTP
	}

	code, err := s.codes.Get(ctx, domain.PurposeRegistration, email)
	if err != nil {
		return nil, err
	}
	if code.Attempts >= domain.MaxOTPAttempts {
		_ = s.codes.Delete(ctx, domain.PurposeRegistration, email)
		return nil, domain.ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(code.Code), []byte(otp)) != 1 {
		metrics.AuthAttemptsTotal.WithLabelValues("verify_otp", "failure").Inc()
		s.record(ctx, email, "verify_otp", false, "wrong code")

		n, err := s.codes.IncrementAttempts(ctx, domain.PurposeRegistration, email)
		if err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("failed to count otp attempt")
			return nil, domain.ErrInvalidOTP
		}
		if n >= domain.MaxOTPAttempts {
			_ = s.codes.Delete(ctx, domain.PurposeRegistration, email)
			return nil, domain.ErrTooManyAttempts
		}
		return nil, domain.ErrInvalidOTP
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	user.Verified = true
	user.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("verify otp: %w", err)
	}

	if err := s.codes.Delete(ctx, domain.PurposeRegistration, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to delete used otp")
	}

	metrics.AuthAttemptsTotal.WithLabelValues("verify_otp", "success").Inc()
	s.record(ctx, email, "verify_otp", true, "")
	return user, nil
}

func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified {
		return domain.ErrAlreadyVerified
	}
	return s.issueOTP(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		s.record(ctx, email, "login", false, "bad password")
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.Verified {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return "", nil, domain.ErrEmailNotVerified
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	s.record(ctx, email, "login", true, "")
	return token, user, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.logger.Debug().Str("email", email).Msg("password reset for unknown account")
		return nil
	}
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	token := uuid.NewString()
	code := &domain.VerificationCode{
		Email:     user.Email,
		Purpose:   domain.PurposePasswordReset,
		Code:      token,
		ExpiresAt: s.now().UTC().Add(domain.ResetTokenTTL),
	}
	if err := s.codes.Save(ctx, token, code); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	s.mail.Enqueue(resetMail(user, s.resetLink(token)))
	metrics.VerificationCodesIssuedTotal.WithLabelValues(string(domain.PurposePasswordReset)).Inc()
	s.record(ctx, email, "forgot_password", true, "")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, in ports.ResetPasswordInput) error {
	token := strings.TrimSpace(in.Token)
	if token == "" {
		return domain.ErrCodeNotFound
	}
	if err := checkPassword(in.Password, in.ConfirmPassword); err != nil {
		return err
	}

	code, err := s.codes.Get(ctx, domain.PurposePasswordReset, token)
	if err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, code.Email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	// Following the mailed link proves ownership of the address.
	user.Verified = true
	user.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if err := s.codes.Delete(ctx, domain.PurposePasswordReset, token); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to delete used reset token")
	}

	metrics.AuthAttemptsTotal.WithLabelValues("reset_password", "success").Inc()
	s.record(ctx, user.Email, "reset_password", true, "")
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) issueOTP(ctx context.Context, user *domain.User) error {
	otp, err := gonanoid.Generate(otpAlphabet, domain.OTPLength)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	code := &domain.VerificationCode{
		Email:     user.Email,
		Purpose:   domain.PurposeRegistration,
		Code:      otp,
		ExpiresAt: s.now().UTC().Add(domain.OTPTTL),
	}
	if err := s.codes.Save(ctx, user.Email, code); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	s.mail.Enqueue(otpMail(user, otp))
	metrics.VerificationCodesIssuedTotal.WithLabelValues(string(domain.PurposeRegistration)).Inc()
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) resetLink(token string) string {
	base := strings.TrimRight(s.cfg.FrontendURL, "/")
	return base + "/reset-password?token=" + url.QueryEscape(token)
}

// record writes the audit entry; a failing audit store only logs.
func (s *AuthService) record(ctx context.Context, email, action string, ok bool, detail string) {
	if s.audit == nil {
		return
	}
	event := &domain.AuthEvent{
		Email:     email,
		Action:    action,
		Success:   ok,
		Detail:    detail,
		Timestamp: s.now().UTC(),
	}
	if err := s.audit.InsertAuthEvent(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to insert auth event")
	}
}

func checkPassword(password, confirm string) error {
	if len(password) < domain.MinPasswordLength {
		return domain.ErrWeakPassword
	}
	if password != confirm {
		return domain.ErrPasswordMismatch
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
