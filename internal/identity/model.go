package identity

import "time"

// User represents a registered player identified by canonical phone number.
type User struct {
	Phone     string    `json:"phone"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// Challenge is a pending one-time code issued for a phone number. The profile
// fields are held until verification succeeds and the user record is created.
type Challenge struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
