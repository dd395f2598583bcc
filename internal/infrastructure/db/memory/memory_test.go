package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/codeblaze/portal/internal/core/domain"
)

func TestJobRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(&domain.Job{ID: "1", Title: "Seeded"})

	if err := repo.Create(ctx, &domain.Job{ID: "2", Title: "Second", Requirements: []string{"Go"}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	jobs, _ := repo.List(ctx)
	if len(jobs) != 2 || jobs[0].ID != "1" || jobs[1].ID != "2" {
		t.Fatalf("expected insertion order, got %+v", jobs)
	}

	// Mutating a returned job must not leak into the store.
	jobs[1].Requirements[0] = "Rust"
	got, _ := repo.FindByID(ctx, "2")
	if got.Requirements[0] != "Go" {
		t.Fatalf("store shares slices with callers: %+v", got)
	}

	if err := repo.Replace(ctx, &domain.Job{ID: "2", Title: "Replaced"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, _ = repo.FindByID(ctx, "2")
	if got.Title != "Replaced" {
		t.Fatalf("replace not applied: %+v", got)
	}

	if err := repo.Replace(ctx, &domain.Job{ID: "404"}); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}

	_ = repo.Delete(ctx, "1")
	_ = repo.Delete(ctx, "1")
	if _, err := repo.FindByID(ctx, "1"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected deleted job to be gone, got %v", err)
	}
	jobs, _ = repo.List(ctx)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job left, got %d", len(jobs))
	}
}

func TestJobRepository_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Create(ctx, &domain.Job{ID: string(rune('a' + i%26))})
			_, _ = repo.List(ctx)
		}(i)
	}
	wg.Wait()

	jobs, _ := repo.List(ctx)
	if len(jobs) != 50 {
		t.Fatalf("expected 50 jobs, got %d", len(jobs))
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	user := &domain.User{ID: "u1", Email: "a@example.com", Name: "A"}

	if _, err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, user); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	user.Verified = true
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.FindByID(ctx, "u1")
	if err != nil || !got.Verified {
		t.Fatalf("unexpected user: %+v, %v", got, err)
	}

	if err := repo.Update(ctx, &domain.User{Email: "ghost@example.com"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCodeStore_ExpiryAndAttempts(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewCodeStore()
	store.now = func() time.Time { return clock }

	code := &domain.VerificationCode{
		Email:     "a@example.com",
		Purpose:   domain.PurposeRegistration,
		Code:      "123456",
		ExpiresAt: clock.Add(time.Minute),
	}
	_ = store.Save(ctx, "a@example.com", code)

	if _, err := store.Get(ctx, domain.PurposePasswordReset, "a@example.com"); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("purposes must not collide, got %v", err)
	}

	n, err := store.IncrementAttempts(ctx, domain.PurposeRegistration, "a@example.com")
	if err != nil || n != 1 {
		t.Fatalf("expected 1 attempt, got %d, %v", n, err)
	}
	got, _ := store.Get(ctx, domain.PurposeRegistration, "a@example.com")
	if got.Attempts != 1 || got.Code != "123456" {
		t.Fatalf("unexpected code: %+v", got)
	}

	clock = clock.Add(time.Minute)
	if _, err := store.Get(ctx, domain.PurposeRegistration, "a@example.com"); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}
