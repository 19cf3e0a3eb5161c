package identity

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ChallengeStore holds live one-time codes keyed by canonical phone. At most
// one challenge is live per phone; Put overwrites any prior entry.
type ChallengeStore interface {
	Put(ctx context.Context, challenge Challenge) error
	Get(ctx context.Context, phone string) (Challenge, error)
	Delete(ctx context.Context, phone string) error
}

type memoryChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]Challenge
}

// NewMemoryChallengeStore builds an in-memory challenge store.
func NewMemoryChallengeStore() ChallengeStore {
	return &memoryChallengeStore{challenges: make(map[string]Challenge)}
}

func (s *memoryChallengeStore) Put(_ context.Context, challenge Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[challenge.Phone] = challenge
	return nil
}

func (s *memoryChallengeStore) Get(_ context.Context, phone string) (Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	challenge, ok := s.challenges[phone]
	if !ok {
		return Challenge{}, ErrChallengeNotFound
	}
	return challenge, nil
}

func (s *memoryChallengeStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, phone)
	return nil
}

const challengeKeyPrefix = "otp:v1:"

// redisChallengeStore keeps challenges in Redis with a TTL slightly past the
// expiry so stale entries clean themselves up. Expiry is still checked
// explicitly at verification.
type redisChallengeStore struct {
	cache *redis.Client
}

// NewRedisChallengeStore builds a Redis-backed challenge store.
func NewRedisChallengeStore(cache *redis.Client) ChallengeStore {
	return &redisChallengeStore{cache: cache}
}

func (s *redisChallengeStore) Put(ctx context.Context, challenge Challenge) error {
	payload, err := json.Marshal(challenge)
	if err != nil {
		return err
	}
	ttl := time.Until(challenge.ExpiresAt) + time.Minute
	return s.cache.Set(ctx, challengeKeyPrefix+challenge.Phone, payload, ttl).Err()
}

func (s *redisChallengeStore) Get(ctx context.Context, phone string) (Challenge, error) {
	payload, err := s.cache.Get(ctx, challengeKeyPrefix+phone).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Challenge{}, ErrChallengeNotFound
		}
		return Challenge{}, err
	}
	var challenge Challenge
	if err := json.Unmarshal(payload, &challenge); err != nil {
		return Challenge{}, err
	}
	return challenge, nil
}

func (s *redisChallengeStore) Delete(ctx context.Context, phone string) error {
	return s.cache.Del(ctx, challengeKeyPrefix+phone).Err()
}
