// Package memory holds process-local stores. Data is lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/codeblaze/portal/internal/core/domain"
)

// JobRepository keeps job postings in a slice, in insertion order.
type JobRepository struct {
	mu   sync.RWMutex
	jobs []*domain.Job
}

func NewJobRepository(seed ...*domain.Job) *JobRepository {
	r := &JobRepository{}
	for _, j := range seed {
		r.jobs = append(r.jobs, cloneJob(j))
	}
	return r
}

func (r *JobRepository) List(_ context.Context) ([]*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Job, len(r.jobs))
	for i, j := range r.jobs {
		out[i] = cloneJob(j)
	}
	return out, nil
}

func (r *JobRepository) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, j := range r.jobs {
		if j.ID == id {
			return cloneJob(j), nil
		}
	}
	return nil, domain.ErrJobNotFound
}

func (r *JobRepository) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs = append(r.jobs, cloneJob(job))
	return nil
}

func (r *JobRepository) Replace(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, j := range r.jobs {
		if j.ID == job.ID {
			r.jobs[i] = cloneJob(job)
			return nil
		}
	}
	return domain.ErrJobNotFound
}

func (r *JobRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]*domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if j.ID != id {
			kept = append(kept, j)
		}
	}
	r.jobs = kept
	return nil
}

func cloneJob(j *domain.Job) *domain.Job {
	clone := *j
	clone.Requirements = copyStrings(j.Requirements)
	clone.Responsibilities = copyStrings(j.Responsibilities)
	clone.Benefits = copyStrings(j.Benefits)
	return &clone
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
