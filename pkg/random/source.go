// Package random defines the randomness contract for fairness-critical
// decisions. The engine never reaches for a global generator; callers inject
// a Source so production and test behavior are swapped via configuration.
package random

import (
	"math/rand"
	"sync"
)

// Source produces uniform samples over [0,1). Implementations must be safe
// for concurrent sampling.
type Source interface {
	Float64() float64
}

// LockedSource wraps a seeded math/rand generator behind a mutex so it can be
// shared across concurrent bet requests. It is not cryptographically secure;
// deployments that need that property supply their own Source.
type LockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedSource creates a concurrency-safe source from a seed
func NewLockedSource(seed int64) *LockedSource {
	return &LockedSource{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns the next uniform sample over [0,1)
func (s *LockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Sequence is a deterministic source that replays a fixed list of values,
// wrapping around when exhausted. Intended for tests.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequence creates a source that yields the given values in order
func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return &Sequence{values: values}
}

// Float64 returns the next value in the sequence
func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
