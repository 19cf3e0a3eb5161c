package withdrawals

import (
	"context"
	"sync"
	"time"

	"github.com/spincash/spin_cash/internal/identity"
)

type memoryRepository struct {
	mu          sync.Mutex
	users       identity.Repository
	nextID      int64
	withdrawals map[int64]Withdrawal
}

// NewMemoryRepository builds an in-memory withdrawal store for development
// and tests, holding and refunding balances through the given user
// repository. Identifiers are sequential starting at 1.
func NewMemoryRepository(users identity.Repository) Repository {
	return &memoryRepository{users: users, nextID: 1, withdrawals: make(map[int64]Withdrawal)}
}

func (r *memoryRepository) CreatePending(ctx context.Context, phone string, amount int64, method string) (Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.users.Debit(ctx, phone, amount); err != nil {
		return Withdrawal{}, err
	}

	w := Withdrawal{
		ID:        r.nextID,
		UserPhone: phone,
		Amount:    amount,
		Method:    method,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	r.nextID++
	r.withdrawals[w.ID] = w
	return w, nil
}

func (r *memoryRepository) Get(_ context.Context, id int64) (Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.withdrawals[id]
	if !ok {
		return Withdrawal{}, ErrNotFound
	}
	return w, nil
}

func (r *memoryRepository) List(_ context.Context) ([]Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Withdrawal, 0, len(r.withdrawals))
	for id := int64(1); id < r.nextID; id++ {
		if w, ok := r.withdrawals[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memoryRepository) Process(ctx context.Context, id int64, status string, at time.Time) (Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.withdrawals[id]
	if !ok {
		return Withdrawal{}, ErrNotFound
	}
	if w.Status != StatusPending {
		return Withdrawal{}, ErrAlreadyProcessed
	}

	if status == StatusRejected {
		if _, err := r.users.Credit(ctx, w.UserPhone, w.Amount); err != nil {
			return Withdrawal{}, err
		}
	}

	w.Status = status
	processed := at.UTC()
	w.ProcessedAt = &processed
	r.withdrawals[id] = w
	return w, nil
}
