// Package catalog holds the static per-game configuration. The catalog is
// built once at startup and read-only afterwards, so lookups need no locking.
package catalog

import (
	"fmt"
	"sort"

	"github.com/luckcraft/wagercore/pkg/entities"
)

// Catalog is an immutable set of game configurations keyed by game ID
type Catalog struct {
	games map[int]entities.GameConfig
}

// New builds a catalog from a list of game configurations. Every entry is
// validated and duplicate IDs are rejected.
func New(games []entities.GameConfig) (*Catalog, error) {
	if len(games) == 0 {
		return nil, entities.NewEngineError(entities.ErrInvalidCatalog, "catalog must contain at least one game")
	}

	byID := make(map[int]entities.GameConfig, len(games))
	for _, g := range games {
		if err := g.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byID[g.ID]; exists {
			return nil, entities.NewEngineError(entities.ErrInvalidCatalog,
				fmt.Sprintf("duplicate game id %d", g.ID))
		}
		byID[g.ID] = g
	}

	return &Catalog{games: byID}, nil
}

// Get returns the configuration for a game ID
func (c *Catalog) Get(gameID int) (entities.GameConfig, error) {
	g, ok := c.games[gameID]
	if !ok {
		return entities.GameConfig{}, entities.NewEngineError(entities.ErrGameNotFound,
			fmt.Sprintf("game %d not found", gameID))
	}
	return g, nil
}

// Games returns all configurations sorted by ID
func (c *Catalog) Games() []entities.GameConfig {
	out := make([]entities.GameConfig, 0, len(c.games))
	for _, g := range c.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Default returns the built-in three-game catalog used when no catalog file
// is configured
func Default() *Catalog {
	c, err := New([]entities.GameConfig{
		{ID: 1, Type: entities.GameTypeAdventure, BaseProbability: 0.45, Difficulty: 0.6, Multiplier: 1.5, DefaultOdds: 1.5},
		{ID: 2, Type: entities.GameTypeExploration, BaseProbability: 0.40, Difficulty: 0.7, Multiplier: 2.0, DefaultOdds: 2.0},
		{ID: 3, Type: entities.GameTypeAction, BaseProbability: 0.50, Difficulty: 0.5, Multiplier: 1.8, DefaultOdds: 1.8},
	})
	if err != nil {
		// The built-in catalog is static and always valid
		panic(err)
	}
	return c
}
