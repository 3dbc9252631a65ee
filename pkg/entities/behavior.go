package entities

import "time"

// RiskLevel is the coarse classification of a player's spending behavior
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// SessionBet is a single bet recorded inside a session
type SessionBet struct {
	Amount    float64
	Won       bool
	Timestamp time.Time
}

// Session is a contiguous run of bets; a new session starts when the gap
// since the previous bet exceeds the configured threshold (30 minutes by
// default)
type Session struct {
	ID        string
	StartedAt time.Time
	LastBetAt time.Time
	Bets      []SessionBet
	Profit    float64
}

// Loss returns the sum of amounts of losing bets in the session
func (s *Session) Loss() float64 {
	var loss float64
	for _, b := range s.Bets {
		if !b.Won {
			loss += b.Amount
		}
	}
	return loss
}

// PlayerBehavior holds the running statistics for a single player. Created
// lazily on the first bet and mutated on every subsequent one; the engine
// never deletes it.
type PlayerBehavior struct {
	UserID         string
	TotalBets      int
	TotalAmount    float64
	AverageBetSize float64
	BiggestWin     float64
	BiggestLoss    float64
	Sessions       []*Session
	RiskLevel      RiskLevel
}

// CurrentSession returns the most recent session, or nil if none exists
func (b *PlayerBehavior) CurrentSession() *Session {
	if len(b.Sessions) == 0 {
		return nil
	}
	return b.Sessions[len(b.Sessions)-1]
}
