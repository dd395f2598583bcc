package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeblaze/portal/internal/core/domain"
	"github.com/codeblaze/portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	jobs    []*domain.Job
	listErr error
}

func (r *stubJobRepo) List(_ context.Context) ([]*domain.Job, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Job, len(r.jobs))
	for i, j := range r.jobs {
		clone := *j
		out[i] = &clone
	}
	return out, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	for _, j := range r.jobs {
		if j.ID == id {
			clone := *j
			return &clone, nil
		}
	}
	return nil, domain.ErrJobNotFound
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) error {
	clone := *job
	r.jobs = append(r.jobs, &clone)
	return nil
}

func (r *stubJobRepo) Replace(_ context.Context, job *domain.Job) error {
	for i, j := range r.jobs {
		if j.ID == job.ID {
			clone := *job
			r.jobs[i] = &clone
			return nil
		}
	}
	return domain.ErrJobNotFound
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	kept := r.jobs[:0]
	for _, j := range r.jobs {
		if j.ID != id {
			kept = append(kept, j)
		}
	}
	r.jobs = kept
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var fixedNow = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

func newJobSvc(repo *stubJobRepo) *JobService {
	svc := NewJobService(repo, discardLogger)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func jobInput(title string) ports.JobInput {
	return ports.JobInput{
		Title:               title,
		EmploymentType:      "Full-time",
		Department:          "Engineering",
		Location:            "Remote",
		ApplicationDeadline: "2026-06-30",
		Description:         "Build things",
		Requirements:        []string{"Go"},
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestJobService_Create_Success(t *testing.T) {
	repo := &stubJobRepo{}
	svc := newJobSvc(repo)

	job, err := svc.Create(context.Background(), jobInput("  Senior Go Engineer "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.ID != strconv.FormatInt(fixedNow.UnixMilli(), 10) {
		t.Errorf("expected millisecond timestamp id, got %s", job.ID)
	}
	if job.PostedDate != "2026-05-10" {
		t.Errorf("unexpected posted date %q", job.PostedDate)
	}
	if job.Title != "Senior Go Engineer" || job.Slug != "senior-go-engineer" {
		t.Errorf("unexpected title/slug: %q %q", job.Title, job.Slug)
	}
	if job.Benefits == nil || job.Responsibilities == nil {
		t.Error("list fields must be non-nil")
	}
	if len(repo.jobs) != 1 {
		t.Fatalf("expected 1 stored job, got %d", len(repo.jobs))
	}
}

func TestJobService_Create_RequiresTitleAndDescription(t *testing.T) {
	svc := newJobSvc(&stubJobRepo{})

	in := jobInput("")
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidJob) {
		t.Fatalf("expected ErrInvalidJob for missing title, got %v", err)
	}

	in = jobInput("Designer")
	in.Description = "   "
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidJob) {
		t.Fatalf("expected ErrInvalidJob for blank description, got %v", err)
	}
}

func TestJobService_Create_IDsStrictlyIncrease(t *testing.T) {
	repo := &stubJobRepo{}
	svc := newJobSvc(repo)

	a, _ := svc.Create(context.Background(), jobInput("A"))
	b, _ := svc.Create(context.Background(), jobInput("B"))
	if a.ID == b.ID {
		t.Fatalf("ids collided: %s", a.ID)
	}
	if idValue(b.ID) <= idValue(a.ID) {
		t.Fatalf("expected increasing ids, got %s then %s", a.ID, b.ID)
	}
}

// ---------------------------------------------------------------------------
// Update / Delete
// ---------------------------------------------------------------------------

func TestJobService_Update_PreservesIDAndPostedDate(t *testing.T) {
	repo := &stubJobRepo{}
	svc := newJobSvc(repo)
	created, _ := svc.Create(context.Background(), jobInput("Analyst"))

	svc.now = func() time.Time { return fixedNow.AddDate(0, 1, 0) }
	in := jobInput("Lead Analyst")
	in.Location = "Pune"
	updated, err := svc.Update(context.Background(), created.ID, in)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ID != created.ID || updated.PostedDate != created.PostedDate {
		t.Fatalf("id/postedDate changed: %+v vs %+v", updated, created)
	}
	if updated.Title != "Lead Analyst" || updated.Location != "Pune" || updated.Slug != "lead-analyst" {
		t.Fatalf("fields not replaced: %+v", updated)
	}

	stored, _ := repo.FindByID(context.Background(), created.ID)
	if stored.Title != "Lead Analyst" {
		t.Fatalf("repository not updated: %+v", stored)
	}
}

func TestJobService_Update_NotFound(t *testing.T) {
	svc := newJobSvc(&stubJobRepo{})

	if _, err := svc.Update(context.Background(), "42", jobInput("X")); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobService_Delete_IsIdempotent(t *testing.T) {
	repo := &stubJobRepo{}
	svc := newJobSvc(repo)
	a, _ := svc.Create(context.Background(), jobInput("A"))
	b, _ := svc.Create(context.Background(), jobInput("B"))

	if err := svc.Delete(context.Background(), a.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), a.ID); err != nil {
		t.Fatalf("repeated delete failed: %v", err)
	}
	if len(repo.jobs) != 1 || repo.jobs[0].ID != b.ID {
		t.Fatalf("expected only %s to remain, got %+v", b.ID, repo.jobs)
	}
}

// ---------------------------------------------------------------------------
// ListPublic
// ---------------------------------------------------------------------------

func seedJobs(t *testing.T, svc *JobService) {
	t.Helper()
	inputs := []ports.JobInput{
		{Title: "Go Engineer", Description: "backend", Department: "Engineering", Location: "Remote", EmploymentType: "Full-time"},
		{Title: "Design Intern", Description: "figma", Department: "Design", Location: "Pune", EmploymentType: "Internship"},
		{Title: "Closed Role", Description: "old", Department: "Engineering", Location: "Remote", ApplicationDeadline: "2026-01-01"},
		{Title: "React Intern", Description: "frontend backend glue", Department: "Engineering", Location: "Pune", EmploymentType: "Internship"},
	}
	for _, in := range inputs {
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestJobService_ListPublic_Filters(t *testing.T) {
	svc := newJobSvc(&stubJobRepo{})
	seedJobs(t, svc)
	ctx := context.Background()

	res, _ := svc.ListPublic(ctx, ports.ListJobsInput{Filter: domain.JobFilter{Department: "engineering"}})
	if res.Total != 3 {
		t.Errorf("department filter: expected 3, got %d", res.Total)
	}

	res, _ = svc.ListPublic(ctx, ports.ListJobsInput{Filter: domain.JobFilter{EmploymentType: "Internship", Location: "Pune"}})
	if res.Total != 2 {
		t.Errorf("type+location filter: expected 2, got %d", res.Total)
	}

	res, _ = svc.ListPublic(ctx, ports.ListJobsInput{Filter: domain.JobFilter{Query: "BACKEND"}})
	if res.Total != 2 {
		t.Errorf("query filter: expected 2, got %d", res.Total)
	}

	res, _ = svc.ListPublic(ctx, ports.ListJobsInput{Filter: domain.JobFilter{OpenOnly: true}})
	if res.Total != 3 {
		t.Errorf("open filter: expected 3, got %d", res.Total)
	}
	for _, j := range res.Items {
		if j.Title == "Closed Role" {
			t.Error("closed role must be excluded")
		}
	}
}

func TestJobService_ListPublic_PagingNewestFirst(t *testing.T) {
	svc := newJobSvc(&stubJobRepo{})
	seedJobs(t, svc)

	res, err := svc.ListPublic(context.Background(), ports.ListJobsInput{Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 4 || res.TotalPages != 2 || res.Page != 2 || res.Limit != 3 {
		t.Fatalf("unexpected pagination: %+v", res)
	}
	if len(res.Items) != 1 || res.Items[0].Title != "Go Engineer" {
		t.Fatalf("expected oldest job on last page, got %+v", res.Items)
	}

	res, _ = svc.ListPublic(context.Background(), ports.ListJobsInput{Page: 9, Limit: 500})
	if res.Limit != maxPageLimit || len(res.Items) != 0 {
		t.Fatalf("expected capped limit and empty page, got %+v", res)
	}
}

func TestJobService_ListPublic_HugePageIsEmpty(t *testing.T) {
	svc := newJobSvc(&stubJobRepo{})
	seedJobs(t, svc)

	for _, page := range []int{1_000_000_000_000_000_000, math.MaxInt} {
		res, err := svc.ListPublic(context.Background(), ports.ListJobsInput{Page: page, Limit: maxPageLimit})
		if err != nil {
			t.Fatalf("page %d: unexpected error: %v", page, err)
		}
		if len(res.Items) != 0 || res.Total != 4 || res.Page != page || res.TotalPages != 1 {
			t.Fatalf("page %d: expected empty page with full total, got %+v", page, res)
		}
	}
}

func TestJobService_ListPublic_RepoError(t *testing.T) {
	svc := newJobSvc(&stubJobRepo{listErr: errors.New("boom")})

	if _, err := svc.ListPublic(context.Background(), ports.ListJobsInput{}); err == nil {
		t.Fatal("expected error")
	}
}
