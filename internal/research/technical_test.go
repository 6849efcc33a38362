package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 4.0, SMA(closes, 3))
	assert.Equal(t, 3.0, SMA(closes, 5))
	assert.Equal(t, 0.0, SMA(closes, 6), "not enough data")
	assert.Equal(t, 0.0, SMA(closes, 0))
}

func TestRSI(t *testing.T) {
	t.Run("all gains saturate at 100", func(t *testing.T) {
		closes := make([]float64, 20)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		assert.Equal(t, 100.0, RSI(closes, 14))
	})

	t.Run("all losses read near zero", func(t *testing.T) {
		closes := make([]float64, 20)
		for i := range closes {
			closes[i] = 100 - float64(i)
		}
		assert.Less(t, RSI(closes, 14), 1.0)
	})

	t.Run("not enough data", func(t *testing.T) {
		assert.Equal(t, 0.0, RSI([]float64{1, 2, 3}, 14))
	})

	t.Run("bounded", func(t *testing.T) {
		closes := []float64{50, 52, 51, 53, 52, 54, 53, 55, 54, 56, 55, 57, 56, 58, 57, 59}
		rsi := RSI(closes, 14)
		assert.Greater(t, rsi, 0.0)
		assert.Less(t, rsi, 100.0)
	})
}

func TestDailyVolatilityPct(t *testing.T) {
	t.Run("constant series has zero volatility", func(t *testing.T) {
		assert.Equal(t, 0.0, DailyVolatilityPct([]float64{100, 100, 100, 100}))
	})

	t.Run("choppier series is more volatile", func(t *testing.T) {
		calm := []float64{100, 101, 100, 101, 100, 101}
		wild := []float64{100, 110, 95, 112, 90, 115}
		assert.Greater(t, DailyVolatilityPct(wild), DailyVolatilityPct(calm))
	})

	t.Run("not enough data", func(t *testing.T) {
		assert.Equal(t, 0.0, DailyVolatilityPct([]float64{100, 101}))
	})
}

func TestEvaluateTechnicals(t *testing.T) {
	t.Run("empty series is neutral", func(t *testing.T) {
		snap := EvaluateTechnicals(nil)
		assert.Equal(t, 50.0, snap.Score)
		assert.Equal(t, BiasNeutral, snap.Bias)
	})

	t.Run("steady uptrend is bullish", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = 100 + float64(i)*0.5
		}
		snap := EvaluateTechnicals(closes)
		assert.Equal(t, BiasBullish, snap.Bias)
		assert.GreaterOrEqual(t, snap.Score, 60.0)
	})

	t.Run("steady downtrend is bearish", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = 100 - float64(i)*0.5
		}
		snap := EvaluateTechnicals(closes)
		assert.Equal(t, BiasBearish, snap.Bias)
		assert.LessOrEqual(t, snap.Score, 40.0)
	})

	t.Run("short series stays near neutral", func(t *testing.T) {
		snap := EvaluateTechnicals([]float64{100, 101, 102})
		assert.Equal(t, BiasNeutral, snap.Bias)
	})
}
