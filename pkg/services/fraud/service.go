// Package fraud combines independent suspicion indicators into a composite
// risk score and a recommended action.
package fraud

import (
	"context"

	"github.com/luckcraft/wagercore/pkg/entities"
)

// Config holds the scoring tunables
type Config struct {
	IndicatorWeight float64 // score contributed by each firing indicator
	SuspiciousAbove float64 // score above which the bet is flagged suspicious
	SuspendAbove    float64 // score above which the action is suspend
	MonitorAbove    float64 // score above which the action is monitor
}

// DefaultConfig returns the standard scoring tuning
func DefaultConfig() Config {
	return Config{
		IndicatorWeight: 0.2,
		SuspiciousAbove: 0.7,
		SuspendAbove:    0.8,
		MonitorAbove:    0.6,
	}
}

// Scorer evaluates a bet against its configured indicators
type Scorer struct {
	cfg        Config
	indicators []Indicator
}

// NewScorer creates a scorer over a set of indicators
func NewScorer(cfg Config, indicators ...Indicator) *Scorer {
	return &Scorer{
		cfg:        cfg,
		indicators: indicators,
	}
}

// Evaluate runs every indicator and derives the composite assessment. The
// score is clamped to [0,1] before any threshold is applied, so a large
// indicator set can never push it past the action boundaries. Thresholds are
// strict: a score of exactly 0.8 recommends monitor, not suspend.
func (s *Scorer) Evaluate(ctx context.Context, userID string, bet entities.BetData, profile entities.PlayerHistory) entities.RiskAssessment {
	var fired []entities.IndicatorTag
	for _, ind := range s.indicators {
		if ind.Evaluate(ctx, userID, bet, profile) {
			fired = append(fired, ind.Tag())
		}
	}

	score := float64(len(fired)) * s.cfg.IndicatorWeight
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}

	action := entities.ActionAllow
	switch {
	case score > s.cfg.SuspendAbove:
		action = entities.ActionSuspend
	case score > s.cfg.MonitorAbove:
		action = entities.ActionMonitor
	}

	return entities.RiskAssessment{
		Indicators:        fired,
		Score:             score,
		IsSuspicious:      score > s.cfg.SuspiciousAbove,
		RecommendedAction: action,
	}
}
