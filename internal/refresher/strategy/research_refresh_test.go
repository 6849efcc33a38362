package strategy

import (
	"testing"

	"portfolio-tracker/internal/research"

	"github.com/stretchr/testify/assert"
)

func TestPrimarySignal(t *testing.T) {
	tests := []struct {
		name string
		tech research.TechnicalSnapshot
		dip  float64
		want string
	}{
		{
			name: "oversold bounce beats the cross signals",
			tech: research.TechnicalSnapshot{RSI: 25, SMA20: 95, SMA50: 100, Bias: research.BiasBearish},
			dip:  55,
			want: "oversold_bounce",
		},
		{
			name: "golden cross on bullish bias",
			tech: research.TechnicalSnapshot{RSI: 55, SMA20: 110, SMA50: 100, Bias: research.BiasBullish},
			want: "golden_cross",
		},
		{
			name: "death cross on bearish bias",
			tech: research.TechnicalSnapshot{RSI: 45, SMA20: 90, SMA50: 100, Bias: research.BiasBearish},
			want: "death_cross",
		},
		{
			name: "bullish bias without a cross stays quiet",
			tech: research.TechnicalSnapshot{RSI: 55, SMA20: 95, SMA50: 100, Bias: research.BiasBullish},
			want: "",
		},
		{
			name: "no moving averages yet",
			tech: research.TechnicalSnapshot{RSI: 55, Bias: research.BiasNeutral},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, primarySignal(tt.tech, tt.dip))
		})
	}
}

func TestTargetMean(t *testing.T) {
	upside := 20.0
	assert.InDelta(t, 120, targetMean(&upside, 100), 1e-9)
	assert.Zero(t, targetMean(nil, 100))
}

func TestNonZeroPtr(t *testing.T) {
	assert.Nil(t, nonZeroPtr(0))
	if got := nonZeroPtr(2.5); assert.NotNil(t, got) {
		assert.Equal(t, 2.5, *got)
	}
}
