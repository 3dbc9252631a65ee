// Package odds derives the displayed odds for a game from its recent outcome
// history, reported bet volume and short-term trend.
package odds

import (
	"context"

	"github.com/luckcraft/wagercore/pkg/catalog"
	"github.com/luckcraft/wagercore/pkg/entities"
	patternRepo "github.com/luckcraft/wagercore/pkg/repositories/pattern"
)

// Config holds the odds calculation tunables
type Config struct {
	HouseEdge     float64 // added to the win rate when inverting to base odds
	SampleSize    int     // outcomes considered for the win rate
	TrendWindow   int     // most recent outcomes considered for the trend
	MinOdds       float64 // lower clamp on the final odds
	MaxOdds       float64 // upper clamp on the final odds
	HighVolume    float64 // volume above which odds are shaded down
	LowVolume     float64 // volume below which odds are shaded up
	HighVolumeAdj float64 // adjustment applied above HighVolume
	LowVolumeAdj  float64 // adjustment applied below LowVolume
	TrendHotWins  int     // wins in the trend window that shade odds down
	TrendColdWins int     // wins in the trend window that shade odds up
	TrendAdj      float64 // magnitude of the trend adjustment
}

// DefaultConfig returns the standard odds tuning
func DefaultConfig() Config {
	return Config{
		HouseEdge:     0.05,
		SampleSize:    100,
		TrendWindow:   10,
		MinOdds:       1.1,
		MaxOdds:       10.0,
		HighVolume:    10000,
		LowVolume:     1000,
		HighVolumeAdj: -0.05,
		LowVolumeAdj:  0.03,
		TrendHotWins:  8,
		TrendColdWins: 2,
		TrendAdj:      0.02,
	}
}

// MarketConditions carries the market inputs reported by the caller. A zero
// Volume means unknown; the calculator then falls back to the wagered volume
// observed in the sampled history. Callers that want no volume shading at all
// pass any value between LowVolume and HighVolume.
type MarketConditions struct {
	Volume float64
}

// Calculator computes display odds per game
type Calculator struct {
	catalog  *catalog.Catalog
	patterns patternRepo.Repository
	cfg      Config
}

// NewCalculator creates a new odds calculator
func NewCalculator(cat *catalog.Catalog, patterns patternRepo.Repository, cfg Config) *Calculator {
	return &Calculator{
		catalog:  cat,
		patterns: patterns,
		cfg:      cfg,
	}
}

// CalculateOptimalOdds derives the odds for a game. With no history it
// returns the game's configured default; otherwise the win rate over the
// sample is inverted against the house edge, then shaded for volume and
// short-term trend, and clamped to the configured range.
func (c *Calculator) CalculateOptimalOdds(ctx context.Context, gameID int, market MarketConditions) (float64, error) {
	game, err := c.catalog.Get(gameID)
	if err != nil {
		return 0, err
	}

	recent, err := c.patterns.Recent(ctx, gameID, c.cfg.SampleSize)
	if err != nil {
		return 0, err
	}

	if len(recent) == 0 {
		if game.DefaultOdds > 0 {
			return game.DefaultOdds, nil
		}
		return c.cfg.MinOdds, nil
	}

	var wins int
	var wagered float64
	for _, o := range recent {
		if o.Win {
			wins++
		}
		wagered += o.BetAmount
	}
	winRate := float64(wins) / float64(len(recent))

	baseOdds := 1 / (winRate + c.cfg.HouseEdge)

	volume := market.Volume
	if volume == 0 {
		volume = wagered
	}
	var volumeAdj float64
	switch {
	case volume > c.cfg.HighVolume:
		volumeAdj = c.cfg.HighVolumeAdj
	case volume < c.cfg.LowVolume:
		volumeAdj = c.cfg.LowVolumeAdj
	}

	trendAdj := c.trendAdjustment(recent)

	final := baseOdds * (1 + volumeAdj + trendAdj)
	if final < c.cfg.MinOdds {
		final = c.cfg.MinOdds
	}
	if final > c.cfg.MaxOdds {
		final = c.cfg.MaxOdds
	}
	return final, nil
}

// trendAdjustment shades odds down when players have been winning most of
// the trend window and up when they have been losing most of it
func (c *Calculator) trendAdjustment(recent []*entities.Outcome) float64 {
	window := recent
	if len(window) > c.cfg.TrendWindow {
		window = window[len(window)-c.cfg.TrendWindow:]
	}

	var wins int
	for _, o := range window {
		if o.Win {
			wins++
		}
	}

	switch {
	case wins >= c.cfg.TrendHotWins:
		return -c.cfg.TrendAdj
	case wins <= c.cfg.TrendColdWins:
		return c.cfg.TrendAdj
	}
	return 0
}
