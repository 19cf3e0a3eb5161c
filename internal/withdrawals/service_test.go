package withdrawals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spincash/spin_cash/internal/audit"
	"github.com/spincash/spin_cash/internal/identity"
)

func seedUsers(t *testing.T, phone string, balance int64) identity.Repository {
	t.Helper()
	users := identity.NewMemoryRepository()
	err := users.Create(context.Background(), identity.User{
		Phone:     phone,
		Username:  "player",
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return users
}

func newTestService(t *testing.T, phone string, balance int64) (*Service, identity.Repository) {
	t.Helper()
	users := seedUsers(t, phone, balance)
	svc := NewService(NewMemoryRepository(users), audit.NewMemoryRecorder(), nil)
	return svc, users
}

func balanceOf(t *testing.T, users identity.Repository, phone string) int64 {
	t.Helper()
	user, err := users.FindByPhone(context.Background(), phone)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	return user.Balance
}

func TestCreateHoldsBalance(t *testing.T) {
	svc, users := newTestService(t, "+919000000000", 100)
	ctx := context.Background()

	w, err := svc.Create(ctx, "+919000000000", 40, "bank")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.ID != 1 || w.Status != StatusPending || w.Amount != 40 {
		t.Fatalf("unexpected withdrawal: %+v", w)
	}
	if got := balanceOf(t, users, "+919000000000"); got != 60 {
		t.Fatalf("expected held balance 60, got %d", got)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	svc, _ := newTestService(t, "+919000000000", 100)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "+919000000000", 0, "bank"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero amount, got %v", err)
	}
	if _, err := svc.Create(ctx, "+919000000000", 10, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank method, got %v", err)
	}
}

func TestCreateInsufficientBalance(t *testing.T) {
	svc, users := newTestService(t, "+919000000000", 30)

	_, err := svc.Create(context.Background(), "+919000000000", 40, "bank")
	if !errors.Is(err, identity.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := balanceOf(t, users, "+919000000000"); got != 30 {
		t.Fatalf("balance must be untouched, got %d", got)
	}
}

// flakyUsers wraps a user repository and fails balance mutations on demand.
type flakyUsers struct {
	identity.Repository
	failDebit  bool
	failCredit bool
}

var errStoreDown = errors.New("store down")

func (f *flakyUsers) Debit(ctx context.Context, phone string, amount int64) (int64, error) {
	if f.failDebit {
		return 0, errStoreDown
	}
	return f.Repository.Debit(ctx, phone, amount)
}

func (f *flakyUsers) Credit(ctx context.Context, phone string, amount int64) (int64, error) {
	if f.failCredit {
		return 0, errStoreDown
	}
	return f.Repository.Credit(ctx, phone, amount)
}

func TestCreateFailedHoldLeavesNoRecord(t *testing.T) {
	users := &flakyUsers{Repository: seedUsers(t, "+919000000000", 100), failDebit: true}
	svc := NewService(NewMemoryRepository(users), audit.NewMemoryRecorder(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "+919000000000", 40, "bank"); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("no withdrawal may exist without its hold, got %+v", all)
	}
}

func TestFailedRefundKeepsWithdrawalPending(t *testing.T) {
	users := &flakyUsers{Repository: seedUsers(t, "+919000000000", 100)}
	svc := NewService(NewMemoryRepository(users), audit.NewMemoryRecorder(), nil)
	ctx := context.Background()

	w, err := svc.Create(ctx, "+919000000000", 40, "bank")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A refund that cannot be applied must not leave the record terminal,
	// otherwise the retry hits ErrAlreadyProcessed and the funds are lost.
	users.failCredit = true
	if _, err := svc.Process(ctx, w.ID, ActionReject); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	got, err := svc.Get(ctx, w.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusPending {
		t.Fatalf("withdrawal must stay pending after failed refund, got %q", got.Status)
	}

	// Once the store recovers the retry succeeds and refunds exactly once.
	users.failCredit = false
	if _, err := svc.Process(ctx, w.ID, ActionReject); err != nil {
		t.Fatalf("retry reject: %v", err)
	}
	if got := balanceOf(t, users, "+919000000000"); got != 100 {
		t.Fatalf("expected balance restored to 100, got %d", got)
	}
}

func TestRejectRefundsExactly(t *testing.T) {
	svc, users := newTestService(t, "+919000000000", 100)
	ctx := context.Background()

	w, err := svc.Create(ctx, "+919000000000", 40, "bank")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	processed, err := svc.Process(ctx, w.ID, ActionReject)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if processed.Status != StatusRejected {
		t.Fatalf("expected rejected, got %q", processed.Status)
	}
	if processed.ProcessedAt == nil {
		t.Fatal("expected processed timestamp")
	}
	if got := balanceOf(t, users, "+919000000000"); got != 100 {
		t.Fatalf("expected balance restored to 100, got %d", got)
	}
}

func TestApproveFinalizesHold(t *testing.T) {
	svc, users := newTestService(t, "+919000000000", 100)
	ctx := context.Background()

	w, err := svc.Create(ctx, "+919000000000", 40, "upi")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	processed, err := svc.Process(ctx, w.ID, ActionApprove)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if processed.Status != StatusApproved {
		t.Fatalf("expected approved, got %q", processed.Status)
	}
	// Funds were already held at creation; approval must not debit again.
	if got := balanceOf(t, users, "+919000000000"); got != 60 {
		t.Fatalf("expected balance 60, got %d", got)
	}
}

func TestProcessIsSingleShot(t *testing.T) {
	svc, users := newTestService(t, "+919000000000", 100)
	ctx := context.Background()

	w, err := svc.Create(ctx, "+919000000000", 40, "bank")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Process(ctx, w.ID, ActionReject); err != nil {
		t.Fatalf("first reject: %v", err)
	}

	if _, err := svc.Process(ctx, w.ID, ActionReject); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed on retry, got %v", err)
	}
	if _, err := svc.Process(ctx, w.ID, ActionApprove); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed for approve after reject, got %v", err)
	}

	// A second rejection must not refund twice.
	if got := balanceOf(t, users, "+919000000000"); got != 100 {
		t.Fatalf("expected balance 100 after single refund, got %d", got)
	}
}

func TestProcessUnknownID(t *testing.T) {
	svc, _ := newTestService(t, "+919000000000", 100)

	if _, err := svc.Process(context.Background(), 42, ActionApprove); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProcessRejectsUnknownAction(t *testing.T) {
	svc, _ := newTestService(t, "+919000000000", 100)
	ctx := context.Background()

	w, err := svc.Create(ctx, "+919000000000", 10, "bank")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Process(ctx, w.ID, "archive"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, err := svc.Get(ctx, w.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusPending {
		t.Fatalf("status must stay pending, got %q", got.Status)
	}
}

func TestListReturnsSnapshotInOrder(t *testing.T) {
	svc, _ := newTestService(t, "+919000000000", 100)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, "+919000000000", 10, "bank"); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 withdrawals, got %d", len(all))
	}
	for i, w := range all {
		if w.ID != int64(i+1) {
			t.Fatalf("expected sequential ids, got %+v", all)
		}
	}
}
