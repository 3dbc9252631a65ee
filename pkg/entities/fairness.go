package entities

// FairnessSnapshot is a point-in-time view of the process-wide fairness
// counters
type FairnessSnapshot struct {
	TotalGames      int64
	PlayerWins      int64
	TargetHouseEdge float64
	PlayerWinRate   float64 // PlayerWins / TotalGames, 0 when no games yet
	Drift           bool    // true when the win rate strays more than the tolerance from target
}
