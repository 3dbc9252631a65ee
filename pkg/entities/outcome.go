package entities

import "time"

// Outcome is the immutable record of a single decided bet. The raw random
// sample and the probability actually used are kept for auditability.
type Outcome struct {
	ID              string    // unique identifier
	GameID          int       // game the bet was placed on
	BetAmount       float64   // wagered amount, > 0
	Win             bool      // whether the player won
	Payout          float64   // BetAmount * multiplier on a win, 0 otherwise
	ProbabilityUsed float64   // win probability after fairness adjustment
	RandomValue     float64   // raw sample drawn from [0,1)
	Timestamp       time.Time // when the outcome was decided
}
