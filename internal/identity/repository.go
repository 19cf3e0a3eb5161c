package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists users and their balances.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByPhone(ctx context.Context, phone string) (User, error)
	List(ctx context.Context) ([]User, error)
	Credit(ctx context.Context, phone string, amount int64) (int64, error)
	Debit(ctx context.Context, phone string, amount int64) (int64, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user record.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (phone, username, email, balance, created_at)
        VALUES ($1, $2, $3, $4, $5)`, user.Phone, user.Username, user.Email, user.Balance, user.CreatedAt.UTC())
	return err
}

// FindByPhone fetches a user by canonical phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT phone, username, email, balance, created_at
        FROM users WHERE phone = $1`, phone)
	return scanUser(row)
}

// List returns a full snapshot of all users.
func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT phone, username, email, balance, created_at
        FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Credit adds amount to the user's balance and returns the new balance.
func (r *PostgresRepository) Credit(ctx context.Context, phone string, amount int64) (int64, error) {
	row := r.db.QueryRow(ctx, `UPDATE users SET balance = balance + $1
        WHERE phone = $2 RETURNING balance`, amount, phone)
	var balance int64
	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return balance, nil
}

// Debit subtracts amount from the user's balance if sufficient funds remain.
// The balance check and the update are a single statement so concurrent
// debits cannot overdraw the account.
func (r *PostgresRepository) Debit(ctx context.Context, phone string, amount int64) (int64, error) {
	row := r.db.QueryRow(ctx, `UPDATE users SET balance = balance - $1
        WHERE phone = $2 AND balance >= $1 RETURNING balance`, amount, phone)
	var balance int64
	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, ferr := r.FindByPhone(ctx, phone); ferr != nil {
				return 0, ferr
			}
			return 0, ErrInsufficientBalance
		}
		return 0, err
	}
	return balance, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		user      User
		createdAt time.Time
	)
	if err := row.Scan(&user.Phone, &user.Username, &user.Email, &user.Balance, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
