// Package behavior tracks per-player betting statistics, segments bets into
// sessions and classifies responsible-gaming risk on every recorded bet.
package behavior

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/luckcraft/wagercore/pkg/clock"
	"github.com/luckcraft/wagercore/pkg/entities"
	behaviorRepo "github.com/luckcraft/wagercore/pkg/repositories/behavior"
)

// Config holds the behavior classification tunables
type Config struct {
	SessionGap        time.Duration // inter-bet gap that starts a new session
	HighAvgBet        float64       // average bet size above which risk is high
	HighSessionLoss   float64       // session loss above which risk is high
	MediumAvgBet      float64       // average bet size above which risk is medium
	MediumSessionLoss float64       // session loss above which risk is medium
}

// DefaultConfig returns the standard behavior tuning
func DefaultConfig() Config {
	return Config{
		SessionGap:        30 * time.Minute,
		HighAvgBet:        1000,
		HighSessionLoss:   5000,
		MediumAvgBet:      500,
		MediumSessionLoss: 2000,
	}
}

// Recommendation text per risk level
var (
	highRiskRecommendations = []string{
		"Consider taking a break",
		"Set daily betting limits",
		"Review your betting strategy",
	}
	mediumRiskRecommendations = []string{
		"Monitor your spending",
		"Consider smaller bet sizes",
	}
)

// BetRecord pairs a bet with its resolution for tracking. Callers recording
// a bet before the outcome is decided leave Won false and Payout zero; the
// unresolved bet counts toward session loss until the player record is next
// updated.
type BetRecord struct {
	Bet    entities.BetData
	Won    bool
	Payout float64
}

// Result is the tracker's answer for one recorded bet
type Result struct {
	RiskLevel       entities.RiskLevel
	Recommendations []string
	ShouldAlert     bool
	Behavior        *entities.PlayerBehavior
}

// Tracker records bets and classifies player risk
type Tracker struct {
	store behaviorRepo.Store
	clk   clock.Clock
	cfg   Config
}

// NewTracker creates a new behavior tracker
func NewTracker(store behaviorRepo.Store, clk clock.Clock, cfg Config) *Tracker {
	return &Tracker{
		store: store,
		clk:   clk,
		cfg:   cfg,
	}
}

// RecordBet updates the player's running statistics and active session, then
// classifies risk. Classification is recomputed fresh on every call, never
// carried over from the previous one.
func (t *Tracker) RecordBet(ctx context.Context, userID string, rec BetRecord) (*Result, error) {
	if rec.Bet.Amount <= 0 {
		return nil, entities.NewEngineError(entities.ErrInvalidBet, "bet amount must be positive")
	}

	ts := rec.Bet.Timestamp
	if ts.IsZero() {
		ts = t.clk.Now()
	}

	updated, err := t.store.Update(ctx, userID, func(b *entities.PlayerBehavior) error {
		b.TotalBets++
		b.TotalAmount += rec.Bet.Amount
		b.AverageBetSize = b.TotalAmount / float64(b.TotalBets)

		session := b.CurrentSession()
		if session == nil || ts.Sub(session.LastBetAt) > t.cfg.SessionGap {
			session = &entities.Session{
				ID:        uuid.NewString(),
				StartedAt: ts,
			}
			b.Sessions = append(b.Sessions, session)
		}

		session.Bets = append(session.Bets, entities.SessionBet{
			Amount:    rec.Bet.Amount,
			Won:       rec.Won,
			Timestamp: ts,
		})
		session.LastBetAt = ts

		if rec.Won {
			net := rec.Payout - rec.Bet.Amount
			session.Profit += net
			if net > b.BiggestWin {
				b.BiggestWin = net
			}
		} else {
			session.Profit -= rec.Bet.Amount
			if rec.Bet.Amount > b.BiggestLoss {
				b.BiggestLoss = rec.Bet.Amount
			}
		}

		b.RiskLevel = t.classify(b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	level := updated.RiskLevel
	return &Result{
		RiskLevel:       level,
		Recommendations: recommendations(level),
		ShouldAlert:     level == entities.RiskLevelHigh,
		Behavior:        updated,
	}, nil
}

// Behavior returns the stored record for a player, or nil if the player has
// never placed a bet
func (t *Tracker) Behavior(ctx context.Context, userID string) (*entities.PlayerBehavior, error) {
	return t.store.Get(ctx, userID)
}

// classify derives the risk level from average bet size and the active
// session's loss
func (t *Tracker) classify(b *entities.PlayerBehavior) entities.RiskLevel {
	var sessionLoss float64
	if session := b.CurrentSession(); session != nil {
		sessionLoss = session.Loss()
	}

	switch {
	case b.AverageBetSize > t.cfg.HighAvgBet || sessionLoss > t.cfg.HighSessionLoss:
		return entities.RiskLevelHigh
	case b.AverageBetSize > t.cfg.MediumAvgBet || sessionLoss > t.cfg.MediumSessionLoss:
		return entities.RiskLevelMedium
	default:
		return entities.RiskLevelLow
	}
}

// recommendations returns the fixed advice list for a risk level
func recommendations(level entities.RiskLevel) []string {
	switch level {
	case entities.RiskLevelHigh:
		return append([]string(nil), highRiskRecommendations...)
	case entities.RiskLevelMedium:
		return append([]string(nil), mediumRiskRecommendations...)
	default:
		return nil
	}
}
