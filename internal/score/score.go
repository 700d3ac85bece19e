// Package score stores finished games and cosmetic choices, and bridges the
// game loop to the store without blocking it.
package score

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomz197/invaders/internal/errors"
)

//go:generate mockgen -destination=mocks/mock_score.go -package=mocks github.com/tomz197/invaders/internal/score Submitter,Leaderboard,Cosmetics

// Limits applied to submitted scores.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
	MaxScore          = 10_000_000
	CoinDivisor       = 10
	DefaultTopN       = 10
)

// Record is one submitted game.
type Record struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Coins     int       `json:"coins"`
	CreatedAt time.Time `json:"createdAt"`
}

// Submitter stores a final score for an identity.
type Submitter interface {
	SubmitScore(ctx context.Context, identity string, points int) (*Record, error)
}

// Leaderboard lists the best records, highest score first and earliest
// submission first among equal scores.
type Leaderboard interface {
	Top(ctx context.Context, n int) ([]Record, error)
}

// Cosmetics reads and sets the projectile colour an identity has equipped.
type Cosmetics interface {
	Equipped(ctx context.Context, identity string) (Cosmetic, error)
	Equip(ctx context.Context, identity string, c Cosmetic) error
}

// Store is the full score and cosmetic backend.
type Store interface {
	Submitter
	Leaderboard
	Cosmetics
}

// NormalizeUsername trims surrounding space and checks the length limits.
func NormalizeUsername(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return "", errors.InvalidArgumentf("username must be %d-%d characters", MinUsernameLength, MaxUsernameLength).
			WithMeta("length", n)
	}
	return name, nil
}

// ClampScore bounds a reported score to [0, MaxScore].
func ClampScore(points int) int {
	if points < 0 {
		return 0
	}
	if points > MaxScore {
		return MaxScore
	}
	return points
}

// CoinsFor returns the coins earned for a score.
func CoinsFor(points int) int {
	return points / CoinDivisor
}
