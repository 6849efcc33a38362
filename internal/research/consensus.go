package research

// Consensus weights. Fundamentals carry the most weight; sentiment the least
// since headline keyword scoring is the noisiest input.
const (
	weightFundamental = 0.35
	weightTechnical   = 0.25
	weightAnalyst     = 0.25
	weightSentiment   = 0.15
)

// CompositeScore blends the four sub-scores into the aggregate quality score.
func CompositeScore(fundamental, technical, analyst, sentiment float64) float64 {
	composite := fundamental*weightFundamental +
		technical*weightTechnical +
		analyst*weightAnalyst +
		sentiment*weightSentiment
	return clamp(composite, 0, 100)
}

// ConvictionScore measures long-term holding quality, independent of entry
// timing: fundamentals dominate, technicals are excluded entirely.
func ConvictionScore(fundamental, analyst, sentiment float64) float64 {
	return clamp(fundamental*0.55+analyst*0.30+sentiment*0.15, 0, 100)
}

// DipScore measures how oversold a symbol currently is, from its position in
// the 52-week range plus an RSI kicker. 100 means deeply oversold.
func DipScore(price, high52w, low52w, rsi float64) float64 {
	if price <= 0 || high52w <= low52w {
		return 0
	}

	position := clamp((price-low52w)/(high52w-low52w), 0, 1)
	score := (1 - position) * 60

	switch {
	case rsi > 0 && rsi < 30:
		score += 40
	case rsi > 0 && rsi < 40:
		score += 25
	case rsi > 0 && rsi < 50:
		score += 10
	}

	return clamp(score, 0, 100)
}

// FundamentalMetrics are the ratios used for the fundamental sub-score.
// Nil fields are skipped and leave the score at its baseline contribution.
type FundamentalMetrics struct {
	NetMargin     *float64
	ReturnOnEquity *float64
	DebtToEquity  *float64
	CurrentRatio  *float64
	RevenueGrowth *float64
}

// ScoreFundamentals converts ratio quality into a 0-100 score. Starts at a
// neutral 50 and adjusts per metric; missing metrics adjust nothing.
func ScoreFundamentals(m FundamentalMetrics) float64 {
	score := 50.0

	if m.NetMargin != nil {
		switch margin := *m.NetMargin; {
		case margin > 15:
			score += 15
		case margin > 5:
			score += 8
		case margin < 0:
			score -= 20
		}
	}

	if m.ReturnOnEquity != nil {
		if *m.ReturnOnEquity > 15 {
			score += 10
		} else if *m.ReturnOnEquity < 0 {
			score -= 10
		}
	}

	if m.DebtToEquity != nil {
		if *m.DebtToEquity < 0.5 {
			score += 10
		} else if *m.DebtToEquity > 2 {
			score -= 15
		}
	}

	if m.CurrentRatio != nil {
		if *m.CurrentRatio > 1.5 {
			score += 5
		} else if *m.CurrentRatio < 1 {
			score -= 10
		}
	}

	if m.RevenueGrowth != nil {
		if *m.RevenueGrowth > 10 {
			score += 10
		} else if *m.RevenueGrowth < 0 {
			score -= 10
		}
	}

	return clamp(score, 0, 100)
}

// RecommendationTrend is the analyst rating distribution for one symbol.
type RecommendationTrend struct {
	StrongBuy  int
	Buy        int
	Hold       int
	Sell       int
	StrongSell int
}

// ScoreAnalyst converts the rating distribution plus target upside into a
// 0-100 score. No ratings at all yields a neutral 50 before the upside
// adjustment.
func ScoreAnalyst(trend RecommendationTrend, targetUpside *float64) float64 {
	total := trend.StrongBuy + trend.Buy + trend.Hold + trend.Sell + trend.StrongSell

	score := 50.0
	if total > 0 {
		// Weighted consensus in [-1, 1]: strong buy counts double.
		net := float64(2*trend.StrongBuy+trend.Buy-trend.Sell-2*trend.StrongSell) / float64(2*total)
		score = 50 + net*35
	}

	if targetUpside != nil {
		score += clamp(*targetUpside, -15, 15)
	}

	return clamp(score, 0, 100)
}
