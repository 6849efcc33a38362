package research

import "fmt"

// EvaluateVerdict converts a fully populated Recommendation into a bounded
// advisory verdict. Branches form a decision tree with first-match-wins
// semantics, not a weighted score: branch order and reason order are
// observable because the display truncates reasons to the first four.
func EvaluateVerdict(in Recommendation) VerdictResult {
	// Data-sufficiency gate. Zero price or zero composite means the refresh
	// pipeline has not produced usable data for this symbol yet.
	if in.CurrentPrice <= 0 || in.CompositeScore <= 0 {
		return VerdictResult{
			Verdict:     VerdictInsufficientData,
			Confidence:  ConfidenceLow,
			Title:       "Not enough data",
			Description: "Price or score data is missing for this symbol.",
			Reasons:     []string{"Missing price or score data"},
		}
	}

	goodFundamentals := in.FundamentalScore >= 55
	goodTechnical := in.TechnicalBias == BiasBullish || in.TechnicalScore >= 50
	goodAnalyst := in.AnalystScore >= 50
	hasUpside := orZero(in.TargetUpside) > 10
	highConviction := in.ConvictionScore >= 60
	isOversold := in.DipScore >= 40

	switch {
	case in.CompositeScore >= 60 && (hasUpside || isOversold) && goodTechnical:
		confidence := ConfidenceLow
		if in.CompositeScore >= 70 && highConviction {
			confidence = ConfidenceHigh
		} else if in.CompositeScore >= 60 {
			// The low fallthrough below this branch cannot fire while the
			// outer gate requires CompositeScore >= 60. Kept anyway so the
			// confidence tiers stay tunable independently of the gate.
			confidence = ConfidenceMedium
		}

		var reasons []string
		if goodFundamentals {
			reasons = append(reasons, "Strong fundamentals")
		}
		if goodTechnical {
			reasons = append(reasons, "Favorable technical setup")
		}
		if hasUpside {
			reasons = append(reasons, fmt.Sprintf("Upside to analyst target: %.0f%%", orZero(in.TargetUpside)))
		}
		if isOversold {
			reasons = append(reasons, "Oversold zone")
		}
		if highConviction {
			reasons = append(reasons, "High long-term quality")
		}

		return VerdictResult{
			Verdict:     VerdictGoodEntry,
			Confidence:  confidence,
			Title:       "Good entry point",
			Description: "Quality setup with a favorable entry price.",
			Reasons:     reasons,
		}

	case in.CompositeScore >= 50 && goodFundamentals:
		confidence := ConfidenceLow
		if in.CompositeScore >= 55 {
			confidence = ConfidenceMedium
		}

		var reasons []string
		if in.TechnicalBias == BiasBearish {
			reasons = append(reasons, "Bearish technical trend")
		}
		if in.TechnicalScore < 40 {
			reasons = append(reasons, "Weak technical indicators")
		}
		if orZero(in.TargetUpside) < 5 {
			reasons = append(reasons, "Low upside to analyst target")
		}
		if !isOversold && in.TechnicalBias != BiasBullish {
			reasons = append(reasons, "Wait for a better entry point")
		}

		return VerdictResult{
			Verdict:     VerdictWait,
			Confidence:  confidence,
			Title:       "Worth watching",
			Description: "Solid company, but the entry could be better.",
			Reasons:     reasons,
		}

	default:
		confidence := ConfidenceMedium
		if in.CompositeScore < 40 {
			confidence = ConfidenceHigh
		}

		var reasons []string
		if !goodFundamentals {
			reasons = append(reasons, "Weak fundamentals")
		}
		if !goodAnalyst {
			reasons = append(reasons, "Negative analyst consensus")
		}
		if in.TechnicalBias == BiasBearish {
			reasons = append(reasons, "Bearish technical outlook")
		}
		if orZero(in.TargetUpside) < 0 {
			reasons = append(reasons, "Price above analyst target")
		}
		if in.ConvictionScore < 40 {
			reasons = append(reasons, "Low long-term quality")
		}

		return VerdictResult{
			Verdict:     VerdictPass,
			Confidence:  confidence,
			Title:       "Better opportunities elsewhere",
			Description: "Current scores do not support an entry.",
			Reasons:     reasons,
		}
	}
}
