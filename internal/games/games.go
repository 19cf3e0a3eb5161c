package games

// Game identifies a mini-game.
type Game string

const (
	// GameSpin is the prize wheel.
	GameSpin Game = "spin"
	// GameScratch is the scratch card.
	GameScratch Game = "scratch"
)

// Prize tables are fixed ordered lists sampled uniformly per index, so a
// duplicated amount is proportionally more likely. Zero is the house edge.
var (
	spinPrizes    = []int64{0, 0, 5, 10, 0, 20, 50, 0, 100, 10}
	scratchPrizes = []int64{0, 5, 0, 0, 10, 25, 0, 50, 0, 5}
)

// Prizes returns the prize table for the game, or nil for an unknown game.
func Prizes(game Game) []int64 {
	switch game {
	case GameSpin:
		return spinPrizes
	case GameScratch:
		return scratchPrizes
	default:
		return nil
	}
}
