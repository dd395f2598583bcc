package ports

import (
	"context"

	"github.com/codeblaze/portal/internal/core/domain"
)

// CodeStore keeps verification codes until they expire.
// Keys are (purpose, key): the e-mail for OTPs, the token for reset links.
type CodeStore interface {
	Save(ctx context.Context, key string, code *domain.VerificationCode) error
	// Get returns ErrCodeNotFound for missing or expired entries.
	Get(ctx context.Context, purpose domain.CodePurpose, key string) (*domain.VerificationCode, error)
	// IncrementAttempts bumps the failed attempt counter and returns the new value.
	IncrementAttempts(ctx context.Context, purpose domain.CodePurpose, key string) (int, error)
	Delete(ctx context.Context, purpose domain.CodePurpose, key string) error
}
