package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codeblaze/portal/internal/core/domain"
)

// CodeStore keeps verification codes in Redis hashes that expire with the code.
// Key format: code:<purpose>:<key>
type CodeStore struct {
	client *redis.Client
}

// NewCodeStore creates a CodeStore wrapping the given Redis client.
func NewCodeStore(client *redis.Client) *CodeStore {
	return &CodeStore{client: client}
}

// Save stores the code with a TTL matching its expiry.
func (s *CodeStore) Save(ctx context.Context, key string, code *domain.VerificationCode) error {
	ttl := time.Until(code.ExpiresAt)
	if ttl <= 0 {
		return errors.New("save code: already expired")
	}

	payload, err := json.Marshal(code)
	if err != nil {
		return fmt.Errorf("save code: %w", err)
	}

	k := s.key(code.Purpose, key)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, k)
	pipe.HSet(ctx, k, "data", payload, "attempts", 0)
	pipe.Expire(ctx, k, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	return nil
}

// Get returns the live code; Redis has already dropped expired ones.
func (s *CodeStore) Get(ctx context.Context, purpose domain.CodePurpose, key string) (*domain.VerificationCode, error) {
	vals, err := s.client.HGetAll(ctx, s.key(purpose, key)).Result()
	if err != nil {
		return nil, fmt.Errorf("get code: %w", err)
	}
	data, ok := vals["data"]
	if !ok {
		return nil, domain.ErrCodeNotFound
	}

	var code domain.VerificationCode
	if err := json.Unmarshal([]byte(data), &code); err != nil {
		return nil, fmt.Errorf("decode code: %w", err)
	}
	if n, err := strconv.Atoi(vals["attempts"]); err == nil {
		code.Attempts = n
	}
	if code.Expired(time.Now()) {
		return nil, domain.ErrCodeNotFound
	}
	return &code, nil
}

// incrAttempts bumps the counter only while the hash still exists, so a code
// that expires between check and write is never recreated without a TTL.
var incrAttempts = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
return redis.call('HINCRBY', KEYS[1], 'attempts', 1)
`)

// IncrementAttempts bumps the attempt counter atomically.
func (s *CodeStore) IncrementAttempts(ctx context.Context, purpose domain.CodePurpose, key string) (int, error) {
	attempts, err := incrAttempts.Run(ctx, s.client, []string{s.key(purpose, key)}).Int()
	if err != nil {
		return 0, fmt.Errorf("increment attempts: %w", err)
	}
	if attempts < 0 {
		return 0, domain.ErrCodeNotFound
	}
	return attempts, nil
}

func (s *CodeStore) Delete(ctx context.Context, purpose domain.CodePurpose, key string) error {
	return s.client.Del(ctx, s.key(purpose, key)).Err()
}

func (s *CodeStore) key(purpose domain.CodePurpose, key string) string {
	return fmt.Sprintf("code:%s:%s", purpose, key)
}
