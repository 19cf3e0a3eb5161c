package withdrawals

import "time"

const (
	// StatusPending is the initial state of every withdrawal.
	StatusPending = "pending"
	// StatusApproved is terminal; the held funds leave the system.
	StatusApproved = "approved"
	// StatusRejected is terminal; the held funds are refunded.
	StatusRejected = "rejected"
)

const (
	// ActionApprove finalizes a pending withdrawal.
	ActionApprove = "approve"
	// ActionReject declines a pending withdrawal and refunds the hold.
	ActionReject = "reject"
)

// Withdrawal is a user request to convert balance into an external payout.
// The balance is debited when the request is created; rejection refunds it.
type Withdrawal struct {
	ID          int64      `json:"id"`
	UserPhone   string     `json:"user_phone"`
	Amount      int64      `json:"amount"`
	Method      string     `json:"method"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}
