package fraud

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luckcraft/wagercore/pkg/entities"
)

// firing builds n indicators that always fire, with distinct tags
func firing(n int) []Indicator {
	tags := []entities.IndicatorTag{
		entities.IndicatorRapidBetting,
		entities.IndicatorUnusualBetSize,
		entities.IndicatorFraudPattern,
		entities.IndicatorSuspiciousDevice,
		"custom_signal_1",
		"custom_signal_2",
	}
	out := make([]Indicator, n)
	for i := 0; i < n; i++ {
		out[i] = NewFunc(tags[i], func(context.Context, string, entities.BetData, entities.PlayerHistory) bool {
			return true
		})
	}
	return out
}

func TestEvaluateNoIndicators(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	assessment := scorer.Evaluate(context.Background(), "user-1", entities.BetData{Amount: 100}, entities.PlayerHistory{})
	assert.Equal(t, 0.0, assessment.Score)
	assert.False(t, assessment.IsSuspicious)
	assert.Equal(t, entities.ActionAllow, assessment.RecommendedAction)
	assert.Empty(t, assessment.Indicators)
}

func TestEvaluateScoreAndAction(t *testing.T) {
	tests := []struct {
		name       string
		fired      int
		wantScore  float64
		wantAction entities.RiskAction
		suspicious bool
	}{
		{"one indicator", 1, 0.2, entities.ActionAllow, false},
		{"three indicators", 3, 0.6, entities.ActionAllow, false},
		// Exactly 0.8 is monitor: the suspend boundary is strict
		{"four indicators", 4, 0.8, entities.ActionMonitor, true},
		// Five indicators clamp to 1.0 and cross the suspend boundary
		{"five indicators", 5, 1.0, entities.ActionSuspend, true},
		{"six indicators still clamp", 6, 1.0, entities.ActionSuspend, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scorer := NewScorer(DefaultConfig(), firing(tc.fired)...)

			assessment := scorer.Evaluate(context.Background(), "user-1", entities.BetData{Amount: 100}, entities.PlayerHistory{})
			assert.InDelta(t, tc.wantScore, assessment.Score, 1e-9)
			assert.Equal(t, tc.wantAction, assessment.RecommendedAction)
			assert.Equal(t, tc.suspicious, assessment.IsSuspicious)
			assert.Len(t, assessment.Indicators, tc.fired)
		})
	}
}

func TestEvaluateCollectsFiredTags(t *testing.T) {
	never := NewFunc(entities.IndicatorSuspiciousDevice, nil)
	always := NewFunc(entities.IndicatorFraudPattern, func(context.Context, string, entities.BetData, entities.PlayerHistory) bool {
		return true
	})
	scorer := NewScorer(DefaultConfig(), never, always)

	assessment := scorer.Evaluate(context.Background(), "user-1", entities.BetData{Amount: 100}, entities.PlayerHistory{})
	assert.Equal(t, []entities.IndicatorTag{entities.IndicatorFraudPattern}, assessment.Indicators)
}
