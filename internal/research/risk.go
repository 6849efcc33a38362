package research

// EvaluateRisk classifies a symbol's risk tier from fundamental ratios and
// realized volatility. The level starts at moderate; beta performs the one
// initial assignment (which may set low), every later rule may only raise
// the level. Rules run in a fixed order and are not short-circuiting: each
// applicable rule appends its factor and applies its adjustment, and later
// escalation conditions inspect the level as already adjusted.
func EvaluateRisk(in RiskInput, volatilityPct *float64) RiskResult {
	level := RiskModerate
	var factors []string

	if in.Beta != nil {
		switch beta := *in.Beta; {
		case beta > 1.5:
			level = RiskHigh
			factors = append(factors, "High beta, volatility well above market")
		case beta > 1.2:
			level = RiskModerateHigh
			factors = append(factors, "Higher volatility than market")
		case beta < 0.7:
			level = RiskLow
			factors = append(factors, "Low beta, defensive stock")
		}
	}

	if in.DebtToEquity != nil {
		if *in.DebtToEquity > 2 {
			factors = append(factors, "High leverage")
			// Escalates only from the moderate baseline; a beta-assigned
			// low stays low on leverage alone.
			if level == RiskModerate {
				level = RiskModerateHigh
			}
		} else if *in.DebtToEquity < 0.3 {
			factors = append(factors, "Low leverage")
		}
	}

	if in.NetMargin != nil {
		if *in.NetMargin < 0 {
			factors = append(factors, "Negative margin (loss-making)")
			level = escalate(level, RiskModerateHigh)
		} else if *in.NetMargin < 5 {
			factors = append(factors, "Low profitability")
		}
	}

	if volatilityPct != nil && *volatilityPct > 4 {
		factors = append(factors, "High daily volatility")
	}

	if in.CurrentRatio != nil && *in.CurrentRatio < 1 {
		factors = append(factors, "Low liquidity (current ratio < 1)")
		level = escalate(level, RiskModerateHigh)
	}

	if len(factors) == 0 {
		factors = append(factors, "Average risk profile")
	}

	return RiskResult{RiskLevel: level, RiskFactors: factors}
}
