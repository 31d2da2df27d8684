package careers

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultMappingTTL = 90 * 24 * time.Hour

// RedisStore persists learned company-to-URL mappings and lookup counters
// in Redis. Counters expire alongside mappings so abandoned companies do
// not accumulate forever.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a store. An empty prefix defaults to "careers" and
// a zero TTL to 90 days.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "careers"
	}
	if ttl <= 0 {
		ttl = defaultMappingTTL
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Get returns the learned URL for a company or "" when none is stored.
func (s *RedisStore) Get(ctx context.Context, company string) (string, error) {
	url, err := s.client.Get(ctx, s.mappingKey(company)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return url, nil
}

// Set stores a learned mapping with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, company, url string) error {
	if err := s.client.Set(ctx, s.mappingKey(company), url, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// IncrLookups bumps the lookup counter for an unknown company and returns
// the new count.
func (s *RedisStore) IncrLookups(ctx context.Context, company string) (int64, error) {
	key := s.lookupKey(company)
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	if n == 1 {
		s.client.Expire(ctx, key, s.ttl)
	}
	return n, nil
}

func (s *RedisStore) mappingKey(company string) string {
	return fmt.Sprintf("%s:page:%s", s.prefix, company)
}

func (s *RedisStore) lookupKey(company string) string {
	return fmt.Sprintf("%s:lookups:%s", s.prefix, company)
}
