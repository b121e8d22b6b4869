package token

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Record is one active token. It stores identity pointers only, never the
// signed token itself.
type Record struct {
	TokenID   string    `json:"token_id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store tracks which tokens are active. Implementations must remain
// stateless and opaque; a missing record simply means the token is no
// longer valid.
type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, tokenID string) (*Record, error)
	Delete(ctx context.Context, tokenID string) error
}

type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed token store. Records expire with
// the token's own TTL.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "token:",
	}
}

func (r *RedisStore) key(tokenID string) string {
	return r.prefix + tokenID
}

func (r *RedisStore) Put(ctx context.Context, rec Record) error {
	if rec.TokenID == "" || rec.UserID == "" {
		return fmt.Errorf("token: missing token_id or user_id")
	}

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("token: expires_at must be in the future")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("token: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(rec.TokenID), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, tokenID string) (*Record, error) {
	val, err := r.client.Get(ctx, r.key(tokenID)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("token: failed to unmarshal: %w", err)
	}

	return &rec, nil
}

func (r *RedisStore) Delete(ctx context.Context, tokenID string) error {
	return r.client.Del(ctx, r.key(tokenID)).Err()
}

// MemStore keeps active tokens in memory. Used in tests and when no Redis
// address is configured.
type MemStore struct {
	mu   sync.Mutex
	recs map[string]Record
}

func NewMemStore() *MemStore {
	return &MemStore{recs: make(map[string]Record)}
}

func (m *MemStore) Put(ctx context.Context, rec Record) error {
	if rec.TokenID == "" || rec.UserID == "" {
		return fmt.Errorf("token: missing token_id or user_id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.TokenID] = rec
	return nil
}

func (m *MemStore) Get(ctx context.Context, tokenID string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.recs[tokenID]
	if !ok || time.Now().After(rec.ExpiresAt) {
		return nil, nil
	}
	return &rec, nil
}

func (m *MemStore) Delete(ctx context.Context, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, tokenID)
	return nil
}
