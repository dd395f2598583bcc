package ports

import (
	"context"

	"github.com/codeblaze/portal/internal/core/domain"
)

// UserRepository persists portal accounts. E-mail is the natural key.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create inserts a new account; ErrUserExists when the e-mail is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update overwrites an existing account; ErrUserNotFound when absent.
	Update(ctx context.Context, user *domain.User) error
}

// AuditRepository records account events. Failures are not fatal to callers.
type AuditRepository interface {
	InsertAuthEvent(ctx context.Context, event *domain.AuthEvent) error
}
