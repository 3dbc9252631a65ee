// Package fairness implements the streak-dependent probability adjustment
// ("rubber-banding") and the process-wide win-rate telemetry it is checked
// against.
package fairness

import (
	"sync/atomic"

	"github.com/luckcraft/wagercore/pkg/entities"
)

// Config holds the fairness tunables
type Config struct {
	TargetHouseEdge    float64 // expected fraction of volume retained by the house
	DriftTolerance     float64 // win-rate distance from target before Drift is flagged
	LossStreakTrigger  int     // loss streak length that triggers the boost
	WinStreakTrigger   int     // win streak length that triggers the penalty
	LossBoost          float64 // probability added on a long loss streak
	WinPenalty         float64 // probability removed on a long win streak
	ProbabilityCeiling float64 // cap applied to boosted probabilities
	ProbabilityFloor   float64 // floor applied to penalized probabilities
}

// DefaultConfig returns the standard fairness tuning
func DefaultConfig() Config {
	return Config{
		TargetHouseEdge:    0.05,
		DriftTolerance:     0.02,
		LossStreakTrigger:  5,
		WinStreakTrigger:   3,
		LossBoost:          0.05,
		WinPenalty:         0.03,
		ProbabilityCeiling: 0.55,
		ProbabilityFloor:   0.35,
	}
}

// Controller adjusts win probabilities for player streaks and keeps the
// global fairness counters. Counters are atomics, so recording results from
// concurrent bets needs no locking.
type Controller struct {
	cfg        Config
	totalGames atomic.Int64
	playerWins atomic.Int64
}

// NewController creates a controller with the given tuning
func NewController(cfg Config) *Controller {
	return &Controller{cfg: cfg}
}

// Adjust computes the adjusted win probability for a player's recent streaks.
// The loss-streak rule wins when both streaks qualify: players on long losing
// runs get a bounded boost, players on winning runs a bounded reduction.
func (c *Controller) Adjust(baseProbability float64, history entities.PlayerHistory) float64 {
	if history.RecentLossStreak > c.cfg.LossStreakTrigger {
		boosted := baseProbability + c.cfg.LossBoost
		if boosted > c.cfg.ProbabilityCeiling {
			return c.cfg.ProbabilityCeiling
		}
		return boosted
	}

	if history.RecentWinStreak > c.cfg.WinStreakTrigger {
		reduced := baseProbability - c.cfg.WinPenalty
		if reduced < c.cfg.ProbabilityFloor {
			return c.cfg.ProbabilityFloor
		}
		return reduced
	}

	return baseProbability
}

// RecordResult increments the fairness counters for one decided bet and
// returns the resulting snapshot
func (c *Controller) RecordResult(win bool) entities.FairnessSnapshot {
	c.totalGames.Add(1)
	if win {
		c.playerWins.Add(1)
	}
	return c.Snapshot()
}

// Snapshot returns the current fairness counters. Drift is set when the
// rolling player win rate strays more than the tolerance from the target
// rate implied by the house edge; it is a diagnostic for the caller, not a
// corrective action.
func (c *Controller) Snapshot() entities.FairnessSnapshot {
	total := c.totalGames.Load()
	wins := c.playerWins.Load()

	snap := entities.FairnessSnapshot{
		TotalGames:      total,
		PlayerWins:      wins,
		TargetHouseEdge: c.cfg.TargetHouseEdge,
	}
	if total == 0 {
		return snap
	}

	snap.PlayerWinRate = float64(wins) / float64(total)
	target := 1 - c.cfg.TargetHouseEdge
	diff := snap.PlayerWinRate - target
	if diff < 0 {
		diff = -diff
	}
	snap.Drift = diff > c.cfg.DriftTolerance
	return snap
}
