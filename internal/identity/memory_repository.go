package identity

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryRepository builds an in-memory user store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Phone]; exists {
		return ErrUserExists
	}
	r.users[user.Phone] = user
	return nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, phone string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[phone]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *memoryRepository) List(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *memoryRepository) Credit(_ context.Context, phone string, amount int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[phone]
	if !ok {
		return 0, ErrUserNotFound
	}
	user.Balance += amount
	r.users[phone] = user
	return user.Balance, nil
}

func (r *memoryRepository) Debit(_ context.Context, phone string, amount int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[phone]
	if !ok {
		return 0, ErrUserNotFound
	}
	if user.Balance < amount {
		return 0, ErrInsufficientBalance
	}
	user.Balance -= amount
	r.users[phone] = user
	return user.Balance, nil
}
