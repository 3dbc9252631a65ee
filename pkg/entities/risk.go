package entities

// RiskAction is the action recommended by the fraud scorer
type RiskAction string

const (
	ActionAllow   RiskAction = "allow"
	ActionMonitor RiskAction = "monitor"
	ActionSuspend RiskAction = "suspend"
)

// IndicatorTag names a single suspicion signal
type IndicatorTag string

const (
	IndicatorRapidBetting     IndicatorTag = "rapid_betting"
	IndicatorUnusualBetSize   IndicatorTag = "unusual_bet_size"
	IndicatorFraudPattern     IndicatorTag = "fraud_pattern_match"
	IndicatorSuspiciousDevice IndicatorTag = "suspicious_device"
)

// RiskAssessment is the composite result of a fraud evaluation. It is
// computed fresh per evaluation and never stored by the engine.
type RiskAssessment struct {
	Indicators        []IndicatorTag
	Score             float64 // in [0,1]
	IsSuspicious      bool    // Score > 0.7
	RecommendedAction RiskAction
}
