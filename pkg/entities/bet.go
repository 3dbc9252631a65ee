package entities

import "time"

// BetMetadata carries connection and device details supplied by the API layer.
// The engine only inspects it through fraud indicator implementations.
type BetMetadata struct {
	IP          string
	DeviceID    string
	UserAgent   string
	Fingerprint string
}

// BetData describes a single incoming bet
type BetData struct {
	GameID    int
	Amount    float64
	Timestamp time.Time // when the bet was placed; zero means "now"
	Metadata  BetMetadata
}

// PlayerHistory is a read-only snapshot of a player's recent results,
// supplied by the caller alongside each bet
type PlayerHistory struct {
	RecentWinStreak  int
	RecentLossStreak int
	AverageBetSize   float64 // historical average, used by fraud screening
}

// Validate checks that a history snapshot is well formed
func (h PlayerHistory) Validate() error {
	if h.RecentWinStreak < 0 || h.RecentLossStreak < 0 {
		return NewEngineError(ErrInvalidHistory, "streak counts must be non-negative")
	}
	if h.AverageBetSize < 0 {
		return NewEngineError(ErrInvalidHistory, "average bet size must be non-negative")
	}
	return nil
}
