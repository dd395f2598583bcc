package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/codeblaze/portal/internal/api/metrics"
	"github.com/codeblaze/portal/internal/core/domain"
	"github.com/codeblaze/portal/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// JobService implements the admin job board and the public careers listing.
type JobService struct {
	repo   ports.JobRepository
	logger zerolog.Logger
	now    func() time.Time

	mu     sync.Mutex
	lastID int64
}

func NewJobService(repo ports.JobRepository, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, logger: logger, now: time.Now}
}

func (s *JobService) ListAll(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.FindByID(ctx, id)
}

// Create appends a new posting. Title and description must not be blank.
func (s *JobService) Create(ctx context.Context, in ports.JobInput) (*domain.Job, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrInvalidJob
	}

	now := s.now().UTC()
	job := applyInput(&domain.Job{
		ID:         s.nextID(now),
		PostedDate: now.Format(domain.DateLayout),
	}, in)

	if err := s.repo.Create(ctx, job); err != nil {
		s.logger.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	metrics.JobMutationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("job_id", job.ID).Str("title", job.Title).Msg("job created")
	return job, nil
}

// Update replaces the writable fields of an existing posting. The ID and
// posted date of the stored record are kept.
func (s *JobService) Update(ctx context.Context, id string, in ports.JobInput) (*domain.Job, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	job := applyInput(&domain.Job{
		ID:         existing.ID,
		PostedDate: existing.PostedDate,
	}, in)

	if err := s.repo.Replace(ctx, job); err != nil {
		return nil, err
	}

	metrics.JobMutationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().Str("job_id", job.ID).Msg("job updated")
	return job, nil
}

// Delete removes the posting if present. Deleting a missing ID succeeds.
func (s *JobService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	metrics.JobMutationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("job_id", id).Msg("job deleted")
	return nil
}

// ListPublic filters and pages the postings, newest first.
func (s *JobService) ListPublic(ctx context.Context, in ports.ListJobsInput) (*ports.ListJobsResult, error) {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	now := s.now().UTC()
	matched := make([]*domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Matches(in.Filter, now) {
			matched = append(matched, j)
		}
	}
	sort.SliceStable(matched, func(a, b int) bool {
		return idValue(matched[a].ID) > idValue(matched[b].ID)
	})

	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	page := in.Page
	if page < 1 {
		page = 1
	}

	total := len(matched)
	totalPages := (total + limit - 1) / limit

	// page is caller controlled; compare before multiplying so huge values cannot overflow.
	start, end := total, total
	if page-1 < totalPages {
		start = (page - 1) * limit
		end = min(start+limit, total)
	}

	return &ports.ListJobsResult{
		Items:      matched[start:end],
		Total:      int64(total),
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// nextID renders the creation time in milliseconds. IDs issued by one
// process are strictly increasing even within the same millisecond.
func (s *JobService) nextID(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func applyInput(job *domain.Job, in ports.JobInput) *domain.Job {
	job.Title = strings.TrimSpace(in.Title)
	job.Slug = slug.Make(job.Title)
	job.EmploymentType = domain.EmploymentType(in.EmploymentType)
	job.Department = in.Department
	job.Location = in.Location
	job.ApplicationDeadline = in.ApplicationDeadline
	job.Description = in.Description
	job.Requirements = nonNil(in.Requirements)
	job.Responsibilities = nonNil(in.Responsibilities)
	job.Benefits = nonNil(in.Benefits)
	return job
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// idValue orders timestamp IDs numerically; foreign IDs sort last.
func idValue(id string) int64 {
	v, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
