// Package research contains the deterministic scoring and verdict engines.
// Everything in this package is pure: no I/O, no clock, no hidden state.
// Callers fetch and persist data elsewhere; this package only transforms
// already-resolved inputs into advisory outputs.
package research

// TechnicalBias is the directional read of a symbol's technical setup.
type TechnicalBias string

const (
	BiasBullish TechnicalBias = "BULLISH"
	BiasBearish TechnicalBias = "BEARISH"
	BiasNeutral TechnicalBias = "NEUTRAL"
)

// Verdict is the categorical entry recommendation for one symbol.
type Verdict string

const (
	VerdictGoodEntry        Verdict = "good-entry"
	VerdictWait             Verdict = "wait"
	VerdictPass             Verdict = "pass"
	VerdictInsufficientData Verdict = "insufficient-data"
)

// Confidence is the tier attached to a verdict.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Signal is an upstream-detected event attached to a symbol. The verdict
// engine never inspects it; it rides along for the display badge.
type Signal struct {
	Type string `json:"type"`
}

// Recommendation is the input record for the verdict engine. All scores are
// on a 0-100 scale and are trusted as produced upstream; zero doubles as the
// "no data" marker for CurrentPrice and CompositeScore.
type Recommendation struct {
	Symbol           string
	CurrentPrice     float64
	CompositeScore   float64
	FundamentalScore float64
	TechnicalScore   float64
	AnalystScore     float64
	ConvictionScore  float64
	DipScore         float64
	TechnicalBias    TechnicalBias
	TargetUpside     *float64
	PrimarySignal    *Signal
}

// VerdictResult is the output of the verdict engine. Reasons are appended in
// rule-evaluation order; the presentation layer shows only the first four, so
// the order is part of the contract.
type VerdictResult struct {
	Verdict     Verdict    `json:"verdict"`
	Confidence  Confidence `json:"confidence"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Reasons     []string   `json:"reasons"`
}

// RiskLevel is a totally ordered risk tier.
type RiskLevel string

const (
	RiskLow          RiskLevel = "low"
	RiskModerate     RiskLevel = "moderate"
	RiskModerateHigh RiskLevel = "moderate-high"
	RiskHigh         RiskLevel = "high"
)

var riskRank = map[RiskLevel]int{
	RiskLow:          0,
	RiskModerate:     1,
	RiskModerateHigh: 2,
	RiskHigh:         3,
}

// escalate returns the higher of the two levels. Rules use it so a later
// rule can never demote a level set by an earlier one.
func escalate(current, candidate RiskLevel) RiskLevel {
	if riskRank[candidate] > riskRank[current] {
		return candidate
	}
	return current
}

// RiskInput carries the fundamental ratios for the risk engine. Nil means
// the upstream provider had no value for that field.
type RiskInput struct {
	Beta         *float64
	DebtToEquity *float64
	NetMargin    *float64
	CurrentRatio *float64
}

// RiskResult is the output of the risk engine.
type RiskResult struct {
	RiskLevel   RiskLevel `json:"risk_level"`
	RiskFactors []string  `json:"risk_factors"`
}

// orZero dereferences an optional score, defaulting to zero. Applied at each
// use site rather than once up front: not every nullable field defaults the
// same way (beta checks skip on nil instead).
func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
