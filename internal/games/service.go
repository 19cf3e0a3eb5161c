package games

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spincash/spin_cash/internal/audit"
	"github.com/spincash/spin_cash/internal/identity"
)

// Service draws prizes and credits them to player balances.
type Service struct {
	users    identity.Repository
	recorder audit.Recorder
	draw     func(n int) int
}

// NewService builds a games service using the default random source.
func NewService(users identity.Repository, recorder audit.Recorder) *Service {
	return &Service{users: users, recorder: recorder, draw: rand.IntN}
}

// NewServiceWithDraw builds a games service with an injected draw function.
// Tests use this to pin the sampled index.
func NewServiceWithDraw(users identity.Repository, recorder audit.Recorder, draw func(n int) int) *Service {
	return &Service{users: users, recorder: recorder, draw: draw}
}

// PlayResult is the outcome of a single play.
type PlayResult struct {
	Prize   int64
	Balance int64
}

// Play samples a prize from the game's table, credits it to the user and
// records an audit event.
func (s *Service) Play(ctx context.Context, phone string, game Game) (PlayResult, error) {
	prizes := Prizes(game)
	if prizes == nil {
		return PlayResult{}, fmt.Errorf("unknown game %q", game)
	}

	var kind string
	switch game {
	case GameSpin:
		kind = audit.KindSpin
	case GameScratch:
		kind = audit.KindScratch
	}

	prize := prizes[s.draw(len(prizes))]

	balance, err := s.users.Credit(ctx, phone, prize)
	if err != nil {
		return PlayResult{}, err
	}

	if s.recorder != nil {
		_ = s.recorder.Record(ctx, audit.Event{
			UserPhone: phone,
			Kind:      kind,
			Amount:    prize,
			At:        time.Now().UTC(),
		})
	}

	return PlayResult{Prize: prize, Balance: balance}, nil
}
