package fraud

import (
	"context"
	"sync"
	"time"

	"github.com/luckcraft/wagercore/pkg/clock"
	"github.com/luckcraft/wagercore/pkg/entities"
)

// Indicator is a single pluggable suspicion signal. Evaluate reports whether
// the signal fires for this bet; implementations must be safe for concurrent
// use and must not mutate their inputs.
type Indicator interface {
	Tag() entities.IndicatorTag
	Evaluate(ctx context.Context, userID string, bet entities.BetData, profile entities.PlayerHistory) bool
}

// Func adapts a plain function into an Indicator, for deployments that plug
// in their own checks
type Func struct {
	tag entities.IndicatorTag
	fn  func(ctx context.Context, userID string, bet entities.BetData, profile entities.PlayerHistory) bool
}

// NewFunc creates an Indicator from a function. A nil function never fires.
func NewFunc(tag entities.IndicatorTag, fn func(ctx context.Context, userID string, bet entities.BetData, profile entities.PlayerHistory) bool) *Func {
	return &Func{tag: tag, fn: fn}
}

func (f *Func) Tag() entities.IndicatorTag { return f.tag }

func (f *Func) Evaluate(ctx context.Context, userID string, bet entities.BetData, profile entities.PlayerHistory) bool {
	if f.fn == nil {
		return false
	}
	return f.fn(ctx, userID, bet, profile)
}

// UnusualBetSize fires when a bet exceeds a multiple of the player's
// historical average bet size. Players with no history never trigger it.
type UnusualBetSize struct {
	factor float64
}

// NewUnusualBetSize creates the indicator; a non-positive factor falls back
// to the standard 10x
func NewUnusualBetSize(factor float64) *UnusualBetSize {
	if factor <= 0 {
		factor = 10
	}
	return &UnusualBetSize{factor: factor}
}

func (u *UnusualBetSize) Tag() entities.IndicatorTag { return entities.IndicatorUnusualBetSize }

func (u *UnusualBetSize) Evaluate(ctx context.Context, userID string, bet entities.BetData, profile entities.PlayerHistory) bool {
	if profile.AverageBetSize <= 0 {
		return false
	}
	return bet.Amount > profile.AverageBetSize*u.factor
}

// RapidBetting fires when a player places more than maxBets bets inside the
// sliding window. It keeps its own per-user timestamps, pruned on each
// evaluation.
type RapidBetting struct {
	window  time.Duration
	maxBets int
	clk     clock.Clock

	mu   sync.Mutex
	seen map[string][]time.Time
}

// NewRapidBetting creates the indicator. Non-positive parameters fall back
// to 10 bets per minute.
func NewRapidBetting(window time.Duration, maxBets int, clk clock.Clock) *RapidBetting {
	if window <= 0 {
		window = time.Minute
	}
	if maxBets <= 0 {
		maxBets = 10
	}
	return &RapidBetting{
		window:  window,
		maxBets: maxBets,
		clk:     clk,
		seen:    make(map[string][]time.Time),
	}
}

func (r *RapidBetting) Tag() entities.IndicatorTag { return entities.IndicatorRapidBetting }

func (r *RapidBetting) Evaluate(ctx context.Context, userID string, bet entities.BetData, profile entities.PlayerHistory) bool {
	now := bet.Timestamp
	if now.IsZero() {
		now = r.clk.Now()
	}
	cutoff := now.Add(-r.window)

	r.mu.Lock()
	defer r.mu.Unlock()

	times := r.seen[userID]
	kept := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	r.seen[userID] = kept

	return len(kept) > r.maxBets
}

// PatternList matches bet metadata fingerprints against a maintained set of
// known abuse signatures. The list starts empty, so a fresh scorer lets
// everything through until signatures are added.
type PatternList struct {
	mu         sync.RWMutex
	signatures map[string]struct{}
}

// NewPatternList creates an empty signature list
func NewPatternList() *PatternList {
	return &PatternList{signatures: make(map[string]struct{})}
}

// Add registers an abuse signature
func (p *PatternList) Add(signature string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signatures[signature] = struct{}{}
}

// Remove deletes an abuse signature
func (p *PatternList) Remove(signature string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.signatures, signature)
}

func (p *PatternList) Tag() entities.IndicatorTag { return entities.IndicatorFraudPattern }

func (p *PatternList) Evaluate(ctx context.Context, userID string, bet entities.BetData, profile entities.PlayerHistory) bool {
	if bet.Metadata.Fingerprint == "" {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, found := p.signatures[bet.Metadata.Fingerprint]
	return found
}

// DefaultIndicators returns the standard indicator set: a real bet-size
// check, a rapid-betting window, an empty signature list and a permissive
// device check. Deployments replace the last two with their own policy.
func DefaultIndicators(clk clock.Clock) []Indicator {
	return []Indicator{
		NewRapidBetting(time.Minute, 10, clk),
		NewUnusualBetSize(10),
		NewPatternList(),
		NewFunc(entities.IndicatorSuspiciousDevice, nil),
	}
}
