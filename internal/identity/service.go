package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/spincash/spin_cash/internal/notification"
)

// Options configures identity behaviour.
type Options struct {
	DefaultCountryCode string
	OTPTTL             time.Duration
	SignupBonus        int64
}

// Service manages user lifecycle and the one-time-code login flow.
type Service struct {
	repo       Repository
	challenges ChallengeStore
	notifier   notification.Notifier
	opts       Options
}

// NewService creates a new identity service.
func NewService(repo Repository, challenges ChallengeStore, notifier notification.Notifier, opts Options) *Service {
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = 5 * time.Minute
	}
	return &Service{repo: repo, challenges: challenges, notifier: notifier, opts: opts}
}

// Canonical normalizes a raw phone number using the configured country code.
func (s *Service) Canonical(raw string) string {
	return CanonicalPhone(raw, s.opts.DefaultCountryCode)
}

// RequestCode issues a one-time code for the phone, replacing any live
// challenge, and returns the code. Delivery is a logging stub; the caller
// echoes the code back in mock mode.
func (s *Service) RequestCode(ctx context.Context, username, phone, email string) (string, error) {
	canonical := s.Canonical(phone)

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	challenge := Challenge{
		Phone:     canonical,
		Code:      code,
		Username:  username,
		Email:     email,
		ExpiresAt: time.Now().UTC().Add(s.opts.OTPTTL),
	}
	if err := s.challenges.Put(ctx, challenge); err != nil {
		return "", err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindOTPCode,
			Destination: canonical,
			Body:        fmt.Sprintf("Your SpinCash login code is %s", code),
		})
	}

	return code, nil
}

// VerifyCode checks a submitted code against the live challenge for the
// phone. On success the challenge is consumed and the user record is looked
// up, or created with the signup bonus on first login.
func (s *Service) VerifyCode(ctx context.Context, phone, code string) (User, error) {
	canonical := s.Canonical(phone)

	challenge, err := s.challenges.Get(ctx, canonical)
	if err != nil {
		return User{}, err
	}

	if challenge.Expired(time.Now().UTC()) {
		_ = s.challenges.Delete(ctx, canonical)
		return User{}, ErrCodeExpired
	}

	if challenge.Code != code {
		return User{}, ErrCodeMismatch
	}

	if err := s.challenges.Delete(ctx, canonical); err != nil {
		return User{}, err
	}

	user, err := s.repo.FindByPhone(ctx, canonical)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	user = User{
		Phone:     canonical,
		Username:  challenge.Username,
		Email:     challenge.Email,
		Balance:   s.opts.SignupBonus,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Find fetches the user record for an already canonical phone.
func (s *Service) Find(ctx context.Context, phone string) (User, error) {
	return s.repo.FindByPhone(ctx, phone)
}

// List returns a full snapshot of all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func generateCode() (string, error) {
	// 4-digit code, 1000..9999.
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
