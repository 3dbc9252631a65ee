// Package difficulty tunes per-game difficulty and multiplier for a player's
// skill level. The stored catalog entry is never mutated; callers receive a
// derived copy.
package difficulty

import (
	"github.com/luckcraft/wagercore/pkg/catalog"
	"github.com/luckcraft/wagercore/pkg/entities"
)

const (
	minDifficulty = 0.1
	maxDifficulty = 1.0

	// skillWeight spreads the adjustment factor across 0.9-1.1 for skill
	// levels 0-1
	skillWeight = 0.2

	// multiplierDamping keeps the multiplier change at a tenth of the
	// difficulty change
	multiplierDamping = 0.1
)

// Adjuster derives tuned game configurations
type Adjuster struct {
	catalog *catalog.Catalog
}

// NewAdjuster creates a new difficulty adjuster
func NewAdjuster(cat *catalog.Catalog) *Adjuster {
	return &Adjuster{catalog: cat}
}

// Adjust returns a copy of the game's configuration tuned for the player.
// recentPerformance is accepted from the caller's analytics but does not
// currently weight the factor; skill level alone drives it.
func (a *Adjuster) Adjust(gameID int, skillLevel float64, recentPerformance float64) (entities.GameConfig, error) {
	if skillLevel < 0 || skillLevel > 1 {
		return entities.GameConfig{}, entities.NewEngineError(entities.ErrInvalidSkill, "skill level must be in [0,1]")
	}

	game, err := a.catalog.Get(gameID)
	if err != nil {
		return entities.GameConfig{}, err
	}

	factor := 1 + (skillLevel-0.5)*skillWeight

	tuned := game
	tuned.Difficulty = clamp(game.Difficulty*factor, minDifficulty, maxDifficulty)
	tuned.Multiplier = game.Multiplier * (1 + (factor-1)*multiplierDamping)
	return tuned, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
