package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRecorder appends events to the audit_events table.
type PostgresRecorder struct {
	db *pgxpool.Pool
}

// NewPostgresRecorder builds a Postgres-backed recorder.
func NewPostgresRecorder(db *pgxpool.Pool) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

// Record inserts the event.
func (r *PostgresRecorder) Record(ctx context.Context, event Event) error {
	_, err := r.db.Exec(ctx, `INSERT INTO audit_events (user_phone, kind, amount, at)
        VALUES ($1, $2, $3, $4)`, event.UserPhone, event.Kind, event.Amount, event.At.UTC())
	return err
}
