package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// ErrNotFound indicates the presented token maps to no session.
var ErrNotFound = errors.New("session not found")

// Store maps opaque bearer tokens to canonical phone numbers. Sessions have
// no expiry or revocation path; a token is valid for as long as the store
// holds it.
type Store interface {
	Create(ctx context.Context, phone string) (string, error)
	Lookup(ctx context.Context, token string) (string, error)
}

// NewToken mints an opaque session token from 32 random bytes.
func NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
