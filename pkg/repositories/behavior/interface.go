package behavior

import (
	"context"

	"github.com/luckcraft/wagercore/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_behavior

// Store defines storage operations for per-player behavior state.
// Update is the only write path: it runs the mutation under a per-user lock,
// so concurrent bets from the same player never race on the running totals
// or on session selection.
type Store interface {
	// Get returns a copy of the stored behavior for a user, or nil if the
	// user has never placed a bet
	Get(ctx context.Context, userID string) (*entities.PlayerBehavior, error)

	// Update applies fn to the user's behavior, creating a fresh record on
	// first contact, and returns a copy of the updated state. If fn returns
	// an error the stored state is left unchanged.
	Update(ctx context.Context, userID string, fn func(*entities.PlayerBehavior) error) (*entities.PlayerBehavior, error)

	// Close closes any resources used by the store
	Close() error
}
