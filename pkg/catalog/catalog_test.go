package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckcraft/wagercore/pkg/entities"
)

func TestNewRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name  string
		games []entities.GameConfig
	}{
		{
			name:  "empty catalog",
			games: nil,
		},
		{
			name: "zero probability",
			games: []entities.GameConfig{
				{ID: 1, BaseProbability: 0, Difficulty: 0.5, Multiplier: 1.5},
			},
		},
		{
			name: "probability of one",
			games: []entities.GameConfig{
				{ID: 1, BaseProbability: 1, Difficulty: 0.5, Multiplier: 1.5},
			},
		},
		{
			name: "difficulty above one",
			games: []entities.GameConfig{
				{ID: 1, BaseProbability: 0.4, Difficulty: 1.2, Multiplier: 1.5},
			},
		},
		{
			name: "multiplier of one",
			games: []entities.GameConfig{
				{ID: 1, BaseProbability: 0.4, Difficulty: 0.5, Multiplier: 1},
			},
		},
		{
			name: "duplicate ids",
			games: []entities.GameConfig{
				{ID: 1, BaseProbability: 0.4, Difficulty: 0.5, Multiplier: 1.5},
				{ID: 1, BaseProbability: 0.5, Difficulty: 0.5, Multiplier: 2.0},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.games)
			require.Error(t, err)
			assert.True(t, entities.IsEngineError(err, entities.ErrInvalidCatalog))
		})
	}
}

func TestGetIsDeterministic(t *testing.T) {
	cat := Default()

	first, err := cat.Get(1)
	require.NoError(t, err)

	// Repeated lookups always return the same configuration
	for i := 0; i < 10; i++ {
		again, err := cat.Get(1)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGetUnknownGame(t *testing.T) {
	cat := Default()

	_, err := cat.Get(42)
	require.Error(t, err)
	assert.True(t, entities.IsEngineError(err, entities.ErrGameNotFound))
}

func TestDefaultCatalog(t *testing.T) {
	cat := Default()

	games := cat.Games()
	require.Len(t, games, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{games[0].ID, games[1].ID, games[2].ID})

	adventure, err := cat.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 0.45, adventure.BaseProbability)
	assert.Equal(t, 1.5, adventure.Multiplier)
}

func TestLoadFile(t *testing.T) {
	cat, err := LoadFile("testdata/catalog.yaml")
	require.NoError(t, err)

	game, err := cat.Get(7)
	require.NoError(t, err)
	assert.Equal(t, entities.GameTypeAction, game.Type)
	assert.Equal(t, 0.48, game.BaseProbability)
	assert.Equal(t, 2.2, game.Multiplier)
	assert.Equal(t, 2.1, game.DefaultOdds)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.True(t, entities.IsEngineError(err, entities.ErrInvalidCatalog))
}
