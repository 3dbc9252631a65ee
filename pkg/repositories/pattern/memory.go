package pattern

import (
	"context"
	"sync"

	"github.com/luckcraft/wagercore/pkg/entities"
)

// MemoryRepository implements Repository with in-memory storage. Each game
// has its own shard and lock, so appends and reads for different games never
// contend with each other.
type MemoryRepository struct {
	capacity int

	mu     sync.RWMutex
	shards map[int]*gameShard
}

type gameShard struct {
	mu       sync.RWMutex
	outcomes []*entities.Outcome
}

// NewMemoryRepository creates a new in-memory repository. A non-positive
// capacity falls back to DefaultCapacity.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryRepository{
		capacity: capacity,
		shards:   make(map[int]*gameShard),
	}
}

// shard returns the shard for a game, creating it on first use
func (r *MemoryRepository) shard(gameID int) *gameShard {
	r.mu.RLock()
	s, ok := r.shards[gameID]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok = r.shards[gameID]; ok {
		return s
	}
	s = &gameShard{}
	r.shards[gameID] = s
	return s
}

// Append records an outcome, trimming the oldest entry once the shard is at
// capacity. Append and trim happen under one lock so readers never observe a
// mid-trim state.
func (r *MemoryRepository) Append(ctx context.Context, outcome *entities.Outcome) error {
	s := r.shard(outcome.GameID)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.outcomes = append(s.outcomes, outcome)
	if len(s.outcomes) > r.capacity {
		overflow := len(s.outcomes) - r.capacity
		s.outcomes = append(s.outcomes[:0:0], s.outcomes[overflow:]...)
	}
	return nil
}

// Recent returns a copy of the most recent outcomes in insertion order
func (r *MemoryRepository) Recent(ctx context.Context, gameID int, limit int) ([]*entities.Outcome, error) {
	s := r.shard(gameID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	outcomes := s.outcomes
	if limit > 0 && len(outcomes) > limit {
		outcomes = outcomes[len(outcomes)-limit:]
	}

	out := make([]*entities.Outcome, len(outcomes))
	copy(out, outcomes)
	return out, nil
}

// Count returns the number of retained outcomes for a game
func (r *MemoryRepository) Count(ctx context.Context, gameID int) (int, error) {
	s := r.shard(gameID)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.outcomes), nil
}

// Close is a no-op for the memory repository
func (r *MemoryRepository) Close() error {
	return nil
}
