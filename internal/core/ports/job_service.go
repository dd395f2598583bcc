package ports

import (
	"context"

	"github.com/codeblaze/portal/internal/core/domain"
)

// JobInput carries the writable fields of a job posting.
type JobInput struct {
	Title               string
	EmploymentType      string
	Department          string
	Location            string
	ApplicationDeadline string
	Description         string
	Requirements        []string
	Responsibilities    []string
	Benefits            []string
}

// ListJobsInput carries the public listing query.
type ListJobsInput struct {
	Filter domain.JobFilter
	Page   int
	Limit  int
}

// ListJobsResult is one page of the public listing.
type ListJobsResult struct {
	Items      []*domain.Job
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// JobService defines the job board use cases.
type JobService interface {
	ListAll(ctx context.Context) ([]*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	Create(ctx context.Context, in JobInput) (*domain.Job, error)
	Update(ctx context.Context, id string, in JobInput) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
	ListPublic(ctx context.Context, in ListJobsInput) (*ListJobsResult, error)
}
