// Package outcome decides win/lose results for incoming bets. It combines
// the game catalog, the fairness controller and an injected randomness
// source, and records every decided bet in the pattern store.
package outcome

import (
	"context"

	"github.com/google/uuid"

	"github.com/luckcraft/wagercore/pkg/catalog"
	"github.com/luckcraft/wagercore/pkg/clock"
	"github.com/luckcraft/wagercore/pkg/entities"
	"github.com/luckcraft/wagercore/pkg/random"
	patternRepo "github.com/luckcraft/wagercore/pkg/repositories/pattern"
	"github.com/luckcraft/wagercore/pkg/services/fairness"
)

// Service generates bet outcomes
type Service struct {
	catalog  *catalog.Catalog
	fairness *fairness.Controller
	patterns patternRepo.Repository
	source   random.Source
	clk      clock.Clock
}

// NewService creates a new outcome service
func NewService(cat *catalog.Catalog, ctrl *fairness.Controller, patterns patternRepo.Repository, source random.Source, clk clock.Clock) *Service {
	return &Service{
		catalog:  cat,
		fairness: ctrl,
		patterns: patterns,
		source:   source,
		clk:      clk,
	}
}

// Result pairs a decided outcome with the fairness snapshot taken right
// after it was counted. Fairness.Drift tells the caller the global win rate
// has strayed from target; the correction itself is already implicit in the
// probability adjustment.
type Result struct {
	Outcome  *entities.Outcome
	Fairness entities.FairnessSnapshot
}

// GenerateOutcome decides a single bet. The raw random sample and the
// probability actually used are kept on the outcome for audit. The outcome
// is appended to the pattern store before the fairness counters move, so a
// storage failure leaves both untouched.
func (s *Service) GenerateOutcome(ctx context.Context, gameID int, betAmount float64, history entities.PlayerHistory) (*Result, error) {
	if betAmount <= 0 {
		return nil, entities.NewEngineError(entities.ErrInvalidBet, "bet amount must be positive")
	}
	if err := history.Validate(); err != nil {
		return nil, err
	}

	game, err := s.catalog.Get(gameID)
	if err != nil {
		return nil, err
	}

	adjusted := s.fairness.Adjust(game.BaseProbability, history)
	sample := s.source.Float64()
	win := sample < adjusted

	var payout float64
	if win {
		payout = betAmount * game.Multiplier
	}

	o := &entities.Outcome{
		ID:              uuid.NewString(),
		GameID:          gameID,
		BetAmount:       betAmount,
		Win:             win,
		Payout:          payout,
		ProbabilityUsed: adjusted,
		RandomValue:     sample,
		Timestamp:       s.clk.Now(),
	}

	if err := s.patterns.Append(ctx, o); err != nil {
		return nil, err
	}

	snap := s.fairness.RecordResult(win)
	return &Result{Outcome: o, Fairness: snap}, nil
}
