package withdrawals

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spincash/spin_cash/internal/identity"
)

// Repository persists withdrawal records together with their paired balance
// mutations: creating a pending withdrawal holds the funds, rejecting one
// refunds them. Each implementation keeps the pair atomic.
type Repository interface {
	// CreatePending holds amount from the user's balance and stores a
	// pending withdrawal, as one atomic step.
	CreatePending(ctx context.Context, phone string, amount int64, method string) (Withdrawal, error)
	Get(ctx context.Context, id int64) (Withdrawal, error)
	List(ctx context.Context) ([]Withdrawal, error)
	// Process moves a pending withdrawal to a terminal status, refunding the
	// hold when the status is rejected. The transition is conditional on the
	// current status so two concurrent calls cannot both succeed.
	Process(ctx context.Context, id int64, status string, at time.Time) (Withdrawal, error)
}

// PostgresRepository stores withdrawals in PostgreSQL. All paired mutations
// run in a single transaction with row locks.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreatePending debits the balance and inserts the pending record in one
// transaction, locking the user row for the balance check.
func (r *PostgresRepository) CreatePending(ctx context.Context, phone string, amount int64, method string) (Withdrawal, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Withdrawal{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM users WHERE phone = $1 FOR UPDATE`, phone).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Withdrawal{}, identity.ErrUserNotFound
		}
		return Withdrawal{}, err
	}
	if balance < amount {
		return Withdrawal{}, identity.ErrInsufficientBalance
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET balance = balance - $1 WHERE phone = $2`, amount, phone); err != nil {
		return Withdrawal{}, err
	}

	w := Withdrawal{
		UserPhone: phone,
		Amount:    amount,
		Method:    method,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	row := tx.QueryRow(ctx, `INSERT INTO withdrawals (user_phone, amount, method, status, created_at)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		w.UserPhone, w.Amount, w.Method, w.Status, w.CreatedAt)
	if err := row.Scan(&w.ID); err != nil {
		return Withdrawal{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Withdrawal{}, err
	}
	return w, nil
}

// Get fetches a withdrawal by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (Withdrawal, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_phone, amount, method, status, created_at, processed_at
        FROM withdrawals WHERE id = $1`, id)
	return scanWithdrawal(row)
}

// List returns a full snapshot of all withdrawals, oldest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Withdrawal, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_phone, amount, method, status, created_at, processed_at
        FROM withdrawals ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Process locks the withdrawal row, transitions it out of pending and, for a
// rejection, credits the refund inside the same transaction. A terminal
// record therefore always has its balance effect applied.
func (r *PostgresRepository) Process(ctx context.Context, id int64, status string, at time.Time) (Withdrawal, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Withdrawal{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx, `SELECT id, user_phone, amount, method, status, created_at, processed_at
        FROM withdrawals WHERE id = $1 FOR UPDATE`, id)
	w, err := scanWithdrawal(row)
	if err != nil {
		return Withdrawal{}, err
	}
	if w.Status != StatusPending {
		return Withdrawal{}, ErrAlreadyProcessed
	}

	processed := at.UTC()
	if _, err := tx.Exec(ctx, `UPDATE withdrawals SET status = $1, processed_at = $2 WHERE id = $3`,
		status, processed, id); err != nil {
		return Withdrawal{}, err
	}

	if status == StatusRejected {
		if _, err := tx.Exec(ctx, `UPDATE users SET balance = balance + $1 WHERE phone = $2`,
			w.Amount, w.UserPhone); err != nil {
			return Withdrawal{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Withdrawal{}, err
	}

	w.Status = status
	w.ProcessedAt = &processed
	return w, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWithdrawal(row rowScanner) (Withdrawal, error) {
	var (
		w           Withdrawal
		createdAt   time.Time
		processedAt *time.Time
	)
	if err := row.Scan(&w.ID, &w.UserPhone, &w.Amount, &w.Method, &w.Status, &createdAt, &processedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Withdrawal{}, ErrNotFound
		}
		return Withdrawal{}, err
	}
	w.CreatedAt = createdAt.UTC()
	if processedAt != nil {
		t := processedAt.UTC()
		w.ProcessedAt = &t
	}
	return w, nil
}
