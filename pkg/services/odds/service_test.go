package odds

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckcraft/wagercore/pkg/catalog"
	"github.com/luckcraft/wagercore/pkg/entities"
	patternRepo "github.com/luckcraft/wagercore/pkg/repositories/pattern"
)

func newCalculator(t *testing.T) (*Calculator, *patternRepo.MemoryRepository) {
	t.Helper()
	repo := patternRepo.NewMemoryRepository(patternRepo.DefaultCapacity)
	return NewCalculator(catalog.Default(), repo, DefaultConfig()), repo
}

// fill appends outcomes for a game: wins of them winning, the rest losses,
// all with the same bet amount, losses first
func fill(t *testing.T, repo *patternRepo.MemoryRepository, gameID, total, wins int, amount float64) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < total; i++ {
		err := repo.Append(ctx, &entities.Outcome{
			ID:        fmt.Sprintf("o-%d", i),
			GameID:    gameID,
			BetAmount: amount,
			Win:       i >= total-wins,
		})
		require.NoError(t, err)
	}
}

func TestOddsUnknownGame(t *testing.T) {
	calc, _ := newCalculator(t)

	_, err := calc.CalculateOptimalOdds(context.Background(), 42, MarketConditions{})
	require.Error(t, err)
	assert.True(t, entities.IsEngineError(err, entities.ErrGameNotFound))
}

func TestOddsEmptyHistoryReturnsDefault(t *testing.T) {
	calc, _ := newCalculator(t)

	odds, err := calc.CalculateOptimalOdds(context.Background(), 2, MarketConditions{})
	require.NoError(t, err)
	// Game 2's configured default
	assert.Equal(t, 2.0, odds)
}

func TestOddsZeroWinRateClampsHigh(t *testing.T) {
	calc, repo := newCalculator(t)
	fill(t, repo, 1, 100, 0, 100)

	// 1/(0+0.05) = 20 before adjustments; clamped to the ceiling
	odds, err := calc.CalculateOptimalOdds(context.Background(), 1, MarketConditions{Volume: 5000})
	require.NoError(t, err)
	assert.Equal(t, 10.0, odds)
}

func TestOddsFullWinRateClampsLow(t *testing.T) {
	calc, repo := newCalculator(t)
	fill(t, repo, 1, 100, 100, 100)

	// 1/(1+0.05) ~ 0.95 before adjustments; clamped to the floor
	odds, err := calc.CalculateOptimalOdds(context.Background(), 1, MarketConditions{Volume: 5000})
	require.NoError(t, err)
	assert.Equal(t, 1.1, odds)
}

func TestOddsVolumeAdjustment(t *testing.T) {
	// 50 wins out of 100: win rate 0.5, base odds 1/0.55
	base := 1 / 0.55

	tests := []struct {
		name   string
		volume float64
		want   float64
	}{
		{"high volume shades down", 20000, base * 0.95},
		{"low volume shades up", 500, base * 1.03},
		{"normal volume unadjusted", 5000, base},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calc, repo := newCalculator(t)
			// Trend window is neutral: last 10 outcomes are 10 wins... use
			// alternating instead so the window holds 5 wins
			ctx := context.Background()
			for i := 0; i < 100; i++ {
				require.NoError(t, repo.Append(ctx, &entities.Outcome{
					ID:        fmt.Sprintf("o-%d", i),
					GameID:    1,
					BetAmount: 100,
					Win:       i%2 == 0,
				}))
			}

			odds, err := calc.CalculateOptimalOdds(ctx, 1, MarketConditions{Volume: tc.volume})
			require.NoError(t, err)
			assert.InDelta(t, tc.want, odds, 1e-9)
		})
	}
}

func TestOddsTrendAdjustment(t *testing.T) {
	// Keep the overall win rate at 0.5 (50 of 100) while controlling the
	// last ten outcomes
	build := func(lastTenWins int) []*entities.Outcome {
		outcomes := make([]*entities.Outcome, 0, 100)
		winsLeft := 50 - lastTenWins
		for i := 0; i < 90; i++ {
			win := winsLeft > 0
			if win {
				winsLeft--
			}
			outcomes = append(outcomes, &entities.Outcome{ID: fmt.Sprintf("h-%d", i), GameID: 1, BetAmount: 100, Win: win})
		}
		for i := 0; i < 10; i++ {
			outcomes = append(outcomes, &entities.Outcome{ID: fmt.Sprintf("t-%d", i), GameID: 1, BetAmount: 100, Win: i < lastTenWins})
		}
		return outcomes
	}

	base := 1 / 0.55

	tests := []struct {
		name        string
		lastTenWins int
		want        float64
	}{
		{"hot streak shades down", 8, base * 0.98},
		{"cold streak shades up", 2, base * 1.02},
		{"mixed window unadjusted", 5, base},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := patternRepo.NewMemoryRepository(patternRepo.DefaultCapacity)
			calc := NewCalculator(catalog.Default(), repo, DefaultConfig())
			ctx := context.Background()
			for _, o := range build(tc.lastTenWins) {
				require.NoError(t, repo.Append(ctx, o))
			}

			odds, err := calc.CalculateOptimalOdds(ctx, 1, MarketConditions{Volume: 5000})
			require.NoError(t, err)
			assert.InDelta(t, tc.want, odds, 1e-9)
		})
	}
}

func TestOddsVolumeFallsBackToWageredHistory(t *testing.T) {
	calc, repo := newCalculator(t)
	// 100 bets of 5 each: wagered volume 500 is below the low-volume line
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		require.NoError(t, repo.Append(ctx, &entities.Outcome{
			ID:        fmt.Sprintf("o-%d", i),
			GameID:    1,
			BetAmount: 5,
			Win:       i%2 == 0,
		}))
	}

	odds, err := calc.CalculateOptimalOdds(ctx, 1, MarketConditions{})
	require.NoError(t, err)
	assert.InDelta(t, (1/0.55)*1.03, odds, 1e-9)
}

func TestOddsAlwaysInRange(t *testing.T) {
	calc, repo := newCalculator(t)
	ctx := context.Background()

	for _, wins := range []int{0, 25, 50, 75, 100} {
		repo = patternRepo.NewMemoryRepository(patternRepo.DefaultCapacity)
		calc = NewCalculator(catalog.Default(), repo, DefaultConfig())
		fill(t, repo, 1, 100, wins, 100)

		odds, err := calc.CalculateOptimalOdds(ctx, 1, MarketConditions{Volume: 5000})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, odds, 1.1, "wins=%d", wins)
		assert.LessOrEqual(t, odds, 10.0, "wins=%d", wins)
	}
}
