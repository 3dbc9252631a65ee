package entities

// GameType categorizes a catalog entry
type GameType string

const (
	GameTypeAdventure   GameType = "adventure"
	GameTypeExploration GameType = "exploration"
	GameTypeAction      GameType = "action"
)

// GameConfig is the static configuration for a single game. It is loaded once
// at startup by the catalog and never mutated afterwards; difficulty tuning
// returns derived copies instead of writing back.
type GameConfig struct {
	ID              int      `yaml:"id"`
	Type            GameType `yaml:"type"`
	BaseProbability float64  `yaml:"base_probability"` // player win chance before fairness adjustment, in (0,1)
	Difficulty      float64  `yaml:"difficulty"`       // in [0,1]
	Multiplier      float64  `yaml:"multiplier"`       // payout multiplier applied to the bet on a win, > 1
	DefaultOdds     float64  `yaml:"default_odds"`     // displayed odds when no outcome history exists
}

// Validate checks that a catalog entry is well formed
func (g GameConfig) Validate() error {
	if g.ID <= 0 {
		return NewEngineError(ErrInvalidCatalog, "game id must be positive")
	}
	if g.BaseProbability <= 0 || g.BaseProbability >= 1 {
		return NewEngineError(ErrInvalidCatalog, "base probability must be in (0,1)")
	}
	if g.Difficulty < 0 || g.Difficulty > 1 {
		return NewEngineError(ErrInvalidCatalog, "difficulty must be in [0,1]")
	}
	if g.Multiplier <= 1 {
		return NewEngineError(ErrInvalidCatalog, "multiplier must be greater than 1")
	}
	return nil
}
