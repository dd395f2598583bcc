package memory

import (
	"context"
	"sync"
	"time"

	"github.com/codeblaze/portal/internal/core/domain"
)

type codeKey struct {
	purpose domain.CodePurpose
	key     string
}

// CodeStore keeps verification codes in a map and drops them lazily once expired.
type CodeStore struct {
	mu    sync.Mutex
	codes map[codeKey]domain.VerificationCode
	now   func() time.Time
}

func NewCodeStore() *CodeStore {
	return &CodeStore{codes: make(map[codeKey]domain.VerificationCode), now: time.Now}
}

func (s *CodeStore) Save(_ context.Context, key string, code *domain.VerificationCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[codeKey{code.Purpose, key}] = *code
	return nil
}

func (s *CodeStore) Get(_ context.Context, purpose domain.CodePurpose, key string) (*domain.VerificationCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.live(codeKey{purpose, key})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CodeStore) IncrementAttempts(_ context.Context, purpose domain.CodePurpose, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := codeKey{purpose, key}
	c, err := s.live(k)
	if err != nil {
		return 0, err
	}
	c.Attempts++
	s.codes[k] = c
	return c.Attempts, nil
}

func (s *CodeStore) Delete(_ context.Context, purpose domain.CodePurpose, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.codes, codeKey{purpose, key})
	return nil
}

// live must be called with s.mu held.
func (s *CodeStore) live(k codeKey) (domain.VerificationCode, error) {
	c, ok := s.codes[k]
	if !ok {
		return domain.VerificationCode{}, domain.ErrCodeNotFound
	}
	if c.Expired(s.now()) {
		delete(s.codes, k)
		return domain.VerificationCode{}, domain.ErrCodeNotFound
	}
	return c, nil
}
