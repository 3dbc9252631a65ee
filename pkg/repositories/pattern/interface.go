package pattern

import (
	"context"

	"github.com/luckcraft/wagercore/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_pattern

// DefaultCapacity is the number of outcomes retained per game before the
// oldest entries are dropped
const DefaultCapacity = 1000

// Repository defines storage operations for per-game outcome history
type Repository interface {
	// Append records an outcome for its game, dropping the oldest retained
	// entries once the capacity limit is exceeded
	Append(ctx context.Context, outcome *entities.Outcome) error

	// Recent returns up to limit of the most recent outcomes for a game in
	// insertion order (oldest first); limit <= 0 returns all retained entries
	Recent(ctx context.Context, gameID int, limit int) ([]*entities.Outcome, error)

	// Count returns the number of retained outcomes for a game
	Count(ctx context.Context, gameID int) (int, error)

	// Close closes any resources used by the repository
	Close() error
}
