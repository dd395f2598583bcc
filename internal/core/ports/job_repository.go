package ports

import (
	"context"

	"github.com/codeblaze/portal/internal/core/domain"
)

// JobRepository stores job postings in insertion order.
type JobRepository interface {
	List(ctx context.Context) ([]*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	Create(ctx context.Context, job *domain.Job) error
	// Replace overwrites the stored job with the same ID; ErrJobNotFound when absent.
	Replace(ctx context.Context, job *domain.Job) error
	// Delete removes every job with the given ID. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error
}
