package difficulty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckcraft/wagercore/pkg/catalog"
	"github.com/luckcraft/wagercore/pkg/entities"
)

func TestAdjustSkillLevels(t *testing.T) {
	adjuster := NewAdjuster(catalog.Default())

	// Game 1: difficulty 0.6, multiplier 1.5
	tests := []struct {
		name           string
		skill          float64
		wantDifficulty float64
		wantMultiplier float64
	}{
		{"average skill leaves the game untouched", 0.5, 0.6, 1.5},
		{"top skill raises difficulty", 1.0, 0.66, 1.515},
		{"bottom skill lowers difficulty", 0.0, 0.54, 1.485},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tuned, err := adjuster.Adjust(1, tc.skill, 0.5)
			require.NoError(t, err)
			assert.InDelta(t, tc.wantDifficulty, tuned.Difficulty, 1e-9)
			assert.InDelta(t, tc.wantMultiplier, tuned.Multiplier, 1e-9)
			// Everything else carries over unchanged
			assert.Equal(t, 1, tuned.ID)
			assert.InDelta(t, 0.45, tuned.BaseProbability, 1e-9)
		})
	}
}

func TestAdjustClampsDifficulty(t *testing.T) {
	cat, err := catalog.New([]entities.GameConfig{
		{ID: 1, Type: entities.GameTypeAdventure, BaseProbability: 0.45, Difficulty: 0.1, Multiplier: 1.5, DefaultOdds: 1.5},
		{ID: 2, Type: entities.GameTypeAction, BaseProbability: 0.50, Difficulty: 0.95, Multiplier: 1.8, DefaultOdds: 1.8},
	})
	require.NoError(t, err)
	adjuster := NewAdjuster(cat)

	// 0.1 * 0.9 would fall below the floor
	tuned, err := adjuster.Adjust(1, 0.0, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, tuned.Difficulty, 1e-9)

	// 0.95 * 1.1 would exceed the ceiling
	tuned, err = adjuster.Adjust(2, 1.0, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, tuned.Difficulty, 1e-9)
}

func TestAdjustInvalidSkill(t *testing.T) {
	adjuster := NewAdjuster(catalog.Default())

	for _, skill := range []float64{-0.1, 1.1, 2} {
		_, err := adjuster.Adjust(1, skill, 0.5)
		require.Error(t, err, "skill=%v", skill)
		assert.True(t, entities.IsEngineError(err, entities.ErrInvalidSkill))
	}
}

func TestAdjustUnknownGame(t *testing.T) {
	adjuster := NewAdjuster(catalog.Default())

	_, err := adjuster.Adjust(99, 0.5, 0.5)
	require.Error(t, err)
	assert.True(t, entities.IsEngineError(err, entities.ErrGameNotFound))
}

func TestAdjustLeavesCatalogUntouched(t *testing.T) {
	cat := catalog.Default()
	adjuster := NewAdjuster(cat)

	_, err := adjuster.Adjust(1, 1.0, 0.5)
	require.NoError(t, err)

	stored, err := cat.Get(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, stored.Difficulty, 1e-9)
	assert.InDelta(t, 1.5, stored.Multiplier, 1e-9)
}
