package behavior

import (
	"context"
	"sync"

	"github.com/luckcraft/wagercore/pkg/entities"
)

// MemoryStore implements Store with in-memory storage. Each user has their
// own shard and lock, so updates for different players never contend.
type MemoryStore struct {
	mu     sync.RWMutex
	shards map[string]*userShard
}

type userShard struct {
	mu       sync.Mutex
	behavior *entities.PlayerBehavior
}

// NewMemoryStore creates a new in-memory behavior store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		shards: make(map[string]*userShard),
	}
}

// shard returns the shard for a user, creating it on first use
func (s *MemoryStore) shard(userID string) *userShard {
	s.mu.RLock()
	sh, ok := s.shards[userID]
	s.mu.RUnlock()
	if ok {
		return sh
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sh, ok = s.shards[userID]; ok {
		return sh
	}
	sh = &userShard{}
	s.shards[userID] = sh
	return sh
}

// Get returns a copy of the stored behavior for a user, or nil if none exists
func (s *MemoryStore) Get(ctx context.Context, userID string) (*entities.PlayerBehavior, error) {
	sh := s.shard(userID)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if sh.behavior == nil {
		return nil, nil
	}
	return cloneBehavior(sh.behavior), nil
}

// Update applies fn under the user's lock. The mutation runs against a copy,
// which only replaces the stored state when fn succeeds.
func (s *MemoryStore) Update(ctx context.Context, userID string, fn func(*entities.PlayerBehavior) error) (*entities.PlayerBehavior, error) {
	sh := s.shard(userID)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	var working *entities.PlayerBehavior
	if sh.behavior == nil {
		working = &entities.PlayerBehavior{
			UserID:    userID,
			RiskLevel: entities.RiskLevelLow,
		}
	} else {
		working = cloneBehavior(sh.behavior)
	}

	if err := fn(working); err != nil {
		return nil, err
	}

	sh.behavior = working
	return cloneBehavior(working), nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}

// cloneBehavior deep-copies a behavior record so callers never alias the
// stored state
func cloneBehavior(b *entities.PlayerBehavior) *entities.PlayerBehavior {
	out := *b
	out.Sessions = make([]*entities.Session, len(b.Sessions))
	for i, sess := range b.Sessions {
		cp := *sess
		cp.Bets = append([]entities.SessionBet(nil), sess.Bets...)
		out.Sessions[i] = &cp
	}
	return &out
}
