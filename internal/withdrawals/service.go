package withdrawals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spincash/spin_cash/internal/audit"
	"github.com/spincash/spin_cash/internal/notification"
)

// Service coordinates withdrawal state transitions. The paired balance
// mutations live in the repository so record and funds always move together:
// Create holds the amount, reject refunds it, approve only finalizes.
type Service struct {
	repo     Repository
	recorder audit.Recorder
	notifier notification.Notifier
}

// NewService constructs a withdrawal service.
func NewService(repo Repository, recorder audit.Recorder, notifier notification.Notifier) *Service {
	return &Service{repo: repo, recorder: recorder, notifier: notifier}
}

// Create places a pending withdrawal, holding the amount from the user's
// balance.
func (s *Service) Create(ctx context.Context, phone string, amount int64, method string) (Withdrawal, error) {
	if amount <= 0 || strings.TrimSpace(method) == "" {
		return Withdrawal{}, ErrInvalidInput
	}

	w, err := s.repo.CreatePending(ctx, phone, amount, method)
	if err != nil {
		return Withdrawal{}, err
	}

	s.record(ctx, phone, audit.KindWithdrawalCreated, amount)
	return w, nil
}

// Process moves a pending withdrawal to a terminal state. Approve finalizes
// the hold; reject refunds it. A withdrawal that already left pending fails
// with ErrAlreadyProcessed no matter the action.
func (s *Service) Process(ctx context.Context, id int64, action string) (Withdrawal, error) {
	var status string
	switch action {
	case ActionApprove:
		status = StatusApproved
	case ActionReject:
		status = StatusRejected
	default:
		return Withdrawal{}, ErrInvalidInput
	}

	w, err := s.repo.Process(ctx, id, status, time.Now().UTC())
	if err != nil {
		return Withdrawal{}, err
	}

	switch status {
	case StatusApproved:
		s.record(ctx, w.UserPhone, audit.KindWithdrawalApproved, w.Amount)
		s.notify(ctx, w, "Your withdrawal of %d via %s was approved")
	case StatusRejected:
		s.record(ctx, w.UserPhone, audit.KindWithdrawalRejected, w.Amount)
		s.notify(ctx, w, "Your withdrawal of %d via %s was rejected and refunded")
	}

	return w, nil
}

// Get fetches a withdrawal by identifier.
func (s *Service) Get(ctx context.Context, id int64) (Withdrawal, error) {
	return s.repo.Get(ctx, id)
}

// List returns all withdrawals, oldest first.
func (s *Service) List(ctx context.Context) ([]Withdrawal, error) {
	return s.repo.List(ctx)
}

func (s *Service) record(ctx context.Context, phone, kind string, amount int64) {
	if s.recorder == nil {
		return
	}
	_ = s.recorder.Record(ctx, audit.Event{UserPhone: phone, Kind: kind, Amount: amount, At: time.Now().UTC()})
}

func (s *Service) notify(ctx context.Context, w Withdrawal, format string) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.Send(ctx, notification.Message{
		Kind:        notification.KindWithdrawal,
		Destination: w.UserPhone,
		Body:        fmt.Sprintf(format, w.Amount, w.Method),
	})
}
