package audit

import (
	"context"
	"time"
)

const (
	// KindSpin records a spin play and the prize credited.
	KindSpin = "spin"
	// KindScratch records a scratch-card play and the prize credited.
	KindScratch = "scratch"
	// KindWithdrawalCreated records a pending withdrawal and the amount held.
	KindWithdrawalCreated = "withdrawal_created"
	// KindWithdrawalApproved records an approved withdrawal.
	KindWithdrawalApproved = "withdrawal_approved"
	// KindWithdrawalRejected records a rejected withdrawal and the refund.
	KindWithdrawalRejected = "withdrawal_rejected"
)

// Event is one append-only audit record.
type Event struct {
	UserPhone string    `json:"user_phone"`
	Kind      string    `json:"kind"`
	Amount    int64     `json:"amount"`
	At        time.Time `json:"at"`
}

// Recorder appends audit events. Recording is best effort; callers do not
// fail the user-facing operation when the recorder errors.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}
