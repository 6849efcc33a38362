package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompositeScore_WeightedBlend(t *testing.T) {
	// All sub-scores equal: the composite must equal them (weights sum to 1).
	assert.InDelta(t, 70.0, CompositeScore(70, 70, 70, 70), 0.001)

	// Fundamentals carry the largest weight.
	withStrongFundamentals := CompositeScore(90, 50, 50, 50)
	withStrongTechnicals := CompositeScore(50, 90, 50, 50)
	assert.Greater(t, withStrongFundamentals, withStrongTechnicals)
}

func TestCompositeScore_Clamped(t *testing.T) {
	assert.Equal(t, 100.0, CompositeScore(200, 200, 200, 200))
	assert.Equal(t, 0.0, CompositeScore(-10, -10, -10, -10))
}

func TestConvictionScore_IgnoresTechnicals(t *testing.T) {
	assert.InDelta(t, 80.0, ConvictionScore(80, 80, 80), 0.001)
	assert.Greater(t, ConvictionScore(90, 50, 50), ConvictionScore(50, 90, 50))
}

func TestDipScore(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		high   float64
		low    float64
		rsi    float64
		assert func(t *testing.T, score float64)
	}{
		{
			name: "at 52-week low and oversold RSI", price: 50, high: 100, low: 50, rsi: 25,
			assert: func(t *testing.T, score float64) { assert.Equal(t, 100.0, score) },
		},
		{
			name: "at 52-week high", price: 100, high: 100, low: 50, rsi: 65,
			assert: func(t *testing.T, score float64) { assert.Equal(t, 0.0, score) },
		},
		{
			name: "mid-range neutral RSI", price: 75, high: 100, low: 50, rsi: 55,
			assert: func(t *testing.T, score float64) { assert.InDelta(t, 30.0, score, 0.001) },
		},
		{
			name: "no data", price: 0, high: 100, low: 50, rsi: 30,
			assert: func(t *testing.T, score float64) { assert.Equal(t, 0.0, score) },
		},
		{
			name: "degenerate range", price: 50, high: 50, low: 50, rsi: 30,
			assert: func(t *testing.T, score float64) { assert.Equal(t, 0.0, score) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assert(t, DipScore(tt.price, tt.high, tt.low, tt.rsi))
		})
	}
}

func TestScoreFundamentals(t *testing.T) {
	t.Run("no metrics is neutral", func(t *testing.T) {
		assert.Equal(t, 50.0, ScoreFundamentals(FundamentalMetrics{}))
	})

	t.Run("quality profile scores high", func(t *testing.T) {
		score := ScoreFundamentals(FundamentalMetrics{
			NetMargin:      floatPtr(20),
			ReturnOnEquity: floatPtr(25),
			DebtToEquity:   floatPtr(0.3),
			CurrentRatio:   floatPtr(2),
			RevenueGrowth:  floatPtr(15),
		})
		assert.Equal(t, 100.0, score)
	})

	t.Run("distressed profile scores low", func(t *testing.T) {
		score := ScoreFundamentals(FundamentalMetrics{
			NetMargin:      floatPtr(-5),
			ReturnOnEquity: floatPtr(-10),
			DebtToEquity:   floatPtr(3),
			CurrentRatio:   floatPtr(0.6),
			RevenueGrowth:  floatPtr(-8),
		})
		assert.Equal(t, 0.0, score)
	})
}

func TestScoreAnalyst(t *testing.T) {
	t.Run("no ratings is neutral", func(t *testing.T) {
		assert.Equal(t, 50.0, ScoreAnalyst(RecommendationTrend{}, nil))
	})

	t.Run("unanimous strong buy", func(t *testing.T) {
		score := ScoreAnalyst(RecommendationTrend{StrongBuy: 10}, nil)
		assert.Equal(t, 85.0, score)
	})

	t.Run("unanimous strong sell", func(t *testing.T) {
		score := ScoreAnalyst(RecommendationTrend{StrongSell: 10}, nil)
		assert.Equal(t, 15.0, score)
	})

	t.Run("upside adjustment is capped", func(t *testing.T) {
		base := ScoreAnalyst(RecommendationTrend{Buy: 5, Hold: 5}, nil)
		boosted := ScoreAnalyst(RecommendationTrend{Buy: 5, Hold: 5}, floatPtr(40))
		assert.InDelta(t, base+15, boosted, 0.001)
	})

	t.Run("negative upside drags", func(t *testing.T) {
		base := ScoreAnalyst(RecommendationTrend{Hold: 10}, nil)
		dragged := ScoreAnalyst(RecommendationTrend{Hold: 10}, floatPtr(-10))
		assert.InDelta(t, base-10, dragged, 0.001)
	})
}
