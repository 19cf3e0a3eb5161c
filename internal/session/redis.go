package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:v1:"

type redisStore struct {
	cache *redis.Client
}

// NewRedisStore builds a Redis-backed session store. Keys are written without
// a TTL so sessions survive restarts.
func NewRedisStore(cache *redis.Client) Store {
	return &redisStore{cache: cache}
}

func (s *redisStore) Create(ctx context.Context, phone string) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+token, phone, 0).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisStore) Lookup(ctx context.Context, token string) (string, error) {
	phone, err := s.cache.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return phone, nil
}
