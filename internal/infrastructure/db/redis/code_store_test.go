package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/codeblaze/portal/internal/core/domain"
)

func newTestStore(t *testing.T) (*CodeStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCodeStore(client), mr
}

func otp(email string, ttl time.Duration) *domain.VerificationCode {
	return &domain.VerificationCode{
		Email:     email,
		Purpose:   domain.PurposeRegistration,
		Code:      "123456",
		ExpiresAt: time.Now().Add(ttl),
	}
}

func TestCodeStore_SaveGet(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "ada@example.com", otp("ada@example.com", 10*time.Minute)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL("code:registration:ada@example.com"); ttl <= 0 || ttl > 10*time.Minute {
		t.Fatalf("expected ttl matching expiry, got %v", ttl)
	}

	got, err := store.Get(ctx, domain.PurposeRegistration, "ada@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Code != "123456" || got.Attempts != 0 {
		t.Fatalf("unexpected code: %+v", got)
	}

	if _, err := store.Get(ctx, domain.PurposePasswordReset, "ada@example.com"); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("other purpose: expected ErrCodeNotFound, got %v", err)
	}
}

func TestCodeStore_SaveRejectsExpired(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Save(context.Background(), "ada@example.com", otp("ada@example.com", -time.Second)); err == nil {
		t.Fatal("expected error for expired code")
	}
}

func TestCodeStore_SaveResetsAttempts(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_ = store.Save(ctx, "ada@example.com", otp("ada@example.com", time.Minute))
	if _, err := store.IncrementAttempts(ctx, domain.PurposeRegistration, "ada@example.com"); err != nil {
		t.Fatalf("increment: %v", err)
	}
	_ = store.Save(ctx, "ada@example.com", otp("ada@example.com", time.Minute))

	got, err := store.Get(ctx, domain.PurposeRegistration, "ada@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Attempts != 0 {
		t.Fatalf("expected attempts reset on resend, got %d", got.Attempts)
	}
}

func TestCodeStore_IncrementAttempts(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	_ = store.Save(ctx, "ada@example.com", otp("ada@example.com", time.Minute))

	for want := 1; want <= 3; want++ {
		n, err := store.IncrementAttempts(ctx, domain.PurposeRegistration, "ada@example.com")
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if n != want {
			t.Fatalf("expected %d attempts, got %d", want, n)
		}
	}

	got, _ := store.Get(ctx, domain.PurposeRegistration, "ada@example.com")
	if got.Attempts != 3 {
		t.Fatalf("expected stored attempts 3, got %d", got.Attempts)
	}
	if ttl := mr.TTL("code:registration:ada@example.com"); ttl <= 0 {
		t.Fatalf("increment must keep the expiry, ttl %v", ttl)
	}
}

func TestCodeStore_IncrementAttemptsMissingDoesNotCreateKey(t *testing.T) {
	store, mr := newTestStore(t)

	_, err := store.IncrementAttempts(context.Background(), domain.PurposeRegistration, "ghost@example.com")
	if !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
	if mr.Exists("code:registration:ghost@example.com") {
		t.Fatal("increment on a missing code must not create a key")
	}
}

func TestCodeStore_IncrementAttemptsAfterExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	_ = store.Save(ctx, "ada@example.com", otp("ada@example.com", time.Minute))

	mr.FastForward(2 * time.Minute)

	if _, err := store.IncrementAttempts(ctx, domain.PurposeRegistration, "ada@example.com"); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
	if mr.Exists("code:registration:ada@example.com") {
		t.Fatal("expired code must not be recreated without a ttl")
	}
	if _, err := store.Get(ctx, domain.PurposeRegistration, "ada@example.com"); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("get after expiry: expected ErrCodeNotFound, got %v", err)
	}
}

func TestCodeStore_IncrementAttemptsConcurrent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	_ = store.Save(ctx, "ada@example.com", otp("ada@example.com", time.Minute))

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int]bool, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := store.IncrementAttempts(ctx, domain.PurposeRegistration, "ada@example.com")
			if err != nil {
				t.Errorf("increment: %v", err)
				return
			}
			mu.Lock()
			seen[n] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != workers {
		t.Fatalf("expected %d distinct counter values, got %d", workers, len(seen))
	}
	got, _ := store.Get(ctx, domain.PurposeRegistration, "ada@example.com")
	if got.Attempts != workers {
		t.Fatalf("expected %d attempts, got %d", workers, got.Attempts)
	}
}

func TestCodeStore_Delete(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	_ = store.Save(ctx, "ada@example.com", otp("ada@example.com", time.Minute))

	if err := store.Delete(ctx, domain.PurposeRegistration, "ada@example.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("code:registration:ada@example.com") {
		t.Fatal("key still present after delete")
	}
	if err := store.Delete(ctx, domain.PurposeRegistration, "ada@example.com"); err != nil {
		t.Fatalf("repeated delete: %v", err)
	}
}
