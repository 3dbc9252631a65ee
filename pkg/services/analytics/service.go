// Package analytics answers per-game reporting queries over the pattern
// store and the fairness counters.
package analytics

import (
	"context"

	patternRepo "github.com/luckcraft/wagercore/pkg/repositories/pattern"
	"github.com/luckcraft/wagercore/pkg/services/fairness"

	"github.com/luckcraft/wagercore/pkg/entities"
)

// GameAnalytics summarizes a game's retained outcome history
type GameAnalytics struct {
	GameID        int
	TotalGames    int
	PlayerWinRate float64
	AverageBet    float64
	TotalPayout   float64
	Fairness      entities.FairnessSnapshot
}

// Service computes analytics over the pattern store
type Service struct {
	patterns patternRepo.Repository
	fairness *fairness.Controller
}

// NewService creates a new analytics service
func NewService(patterns patternRepo.Repository, ctrl *fairness.Controller) *Service {
	return &Service{
		patterns: patterns,
		fairness: ctrl,
	}
}

// GameAnalytics aggregates the retained history for one game. A game with no
// recorded outcomes yields zero rates rather than an error.
func (s *Service) GameAnalytics(ctx context.Context, gameID int) (*GameAnalytics, error) {
	outcomes, err := s.patterns.Recent(ctx, gameID, 0)
	if err != nil {
		return nil, err
	}

	result := &GameAnalytics{
		GameID:     gameID,
		TotalGames: len(outcomes),
		Fairness:   s.fairness.Snapshot(),
	}
	if len(outcomes) == 0 {
		return result, nil
	}

	var wins int
	var wagered, paid float64
	for _, o := range outcomes {
		if o.Win {
			wins++
		}
		wagered += o.BetAmount
		paid += o.Payout
	}

	result.PlayerWinRate = float64(wins) / float64(len(outcomes))
	result.AverageBet = wagered / float64(len(outcomes))
	result.TotalPayout = paid
	return result, nil
}
