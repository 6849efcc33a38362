package research

import "math"

// TechnicalSnapshot is the computed technical read over a series of daily
// closes, newest close last.
type TechnicalSnapshot struct {
	Score         float64
	Bias          TechnicalBias
	RSI           float64
	SMA20         float64
	SMA50         float64
	VolatilityPct float64
}

// SMA returns the simple moving average of the trailing period. Returns 0
// when there is not enough data.
func SMA(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period {
		return 0
	}
	sum := 0.0
	for _, c := range closes[len(closes)-period:] {
		sum += c
	}
	return sum / float64(period)
}

// RSI computes Wilder's relative strength index over the trailing period.
// Returns 0 when there is not enough data; 100 when there were no losses.
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 0
	}

	var avgGain, avgLoss float64
	start := len(closes) - period - 1
	for i := start + 1; i <= start+period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := start + period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// DailyVolatilityPct is the standard deviation of daily returns, in percent.
func DailyVolatilityPct(closes []float64) float64 {
	if len(closes) < 3 {
		return 0
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance) * 100
}

// EvaluateTechnicals scores the technical setup from daily closes. The score
// starts neutral at 50 and moves on moving-average structure and RSI; the
// bias follows the score with a neutral band in the middle.
func EvaluateTechnicals(closes []float64) TechnicalSnapshot {
	snap := TechnicalSnapshot{Score: 50, Bias: BiasNeutral}
	if len(closes) == 0 {
		return snap
	}

	price := closes[len(closes)-1]
	snap.SMA20 = SMA(closes, 20)
	snap.SMA50 = SMA(closes, 50)
	snap.RSI = RSI(closes, 14)
	snap.VolatilityPct = DailyVolatilityPct(closes)

	if snap.SMA20 > 0 {
		if price > snap.SMA20 {
			snap.Score += 10
		} else {
			snap.Score -= 5
		}
	}
	if snap.SMA50 > 0 {
		if price > snap.SMA50 {
			snap.Score += 10
		} else {
			snap.Score -= 10
		}
	}
	if snap.SMA20 > 0 && snap.SMA50 > 0 && snap.SMA20 > snap.SMA50 {
		snap.Score += 10
	}

	switch {
	case snap.RSI >= 45 && snap.RSI <= 70:
		snap.Score += 10
	case snap.RSI > 70:
		snap.Score -= 10
	case snap.RSI > 0 && snap.RSI < 30:
		// Deeply oversold reads as a bounce setup, not extra weakness.
		snap.Score += 5
	}

	snap.Score = clamp(snap.Score, 0, 100)

	if snap.Score >= 60 {
		snap.Bias = BiasBullish
	} else if snap.Score <= 40 {
		snap.Bias = BiasBearish
	}

	return snap
}
