package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_Empty(t *testing.T) {
	summary := Value(nil)
	assert.Equal(t, 0.0, summary.TotalValue)
	assert.Equal(t, 0.0, summary.GainPercent)
	assert.Empty(t, summary.Positions)
}

func TestValue_SinglePosition(t *testing.T) {
	summary := Value([]Position{
		{Symbol: "AAPL", Shares: 10, AvgCost: 150, Price: 180, PrevClose: 175, HasPrice: true},
	})

	assert.InDelta(t, 1800.0, summary.TotalValue, 0.001)
	assert.InDelta(t, 1500.0, summary.CostBasis, 0.001)
	assert.InDelta(t, 300.0, summary.Gain, 0.001)
	assert.InDelta(t, 20.0, summary.GainPercent, 0.001)

	pv := summary.Positions[0]
	assert.InDelta(t, 50.0, pv.DayChange, 0.001)
	assert.InDelta(t, 100.0*5/175, pv.DayChangePercent, 0.001)
}

func TestValue_MissingQuoteCarriedAtCost(t *testing.T) {
	summary := Value([]Position{
		{Symbol: "AAPL", Shares: 10, AvgCost: 150, Price: 180, PrevClose: 175, HasPrice: true},
		{Symbol: "NEWCO", Shares: 5, AvgCost: 20, HasPrice: false},
	})

	assert.InDelta(t, 1800.0+100.0, summary.TotalValue, 0.001)

	newco := summary.Positions[1]
	assert.Equal(t, 100.0, newco.MarketValue)
	assert.Equal(t, 0.0, newco.Gain)
	assert.False(t, newco.HasPrice)
}

func TestValue_LosingPosition(t *testing.T) {
	summary := Value([]Position{
		{Symbol: "XYZ", Shares: 4, AvgCost: 50, Price: 40, PrevClose: 42, HasPrice: true},
	})

	assert.InDelta(t, -40.0, summary.Gain, 0.001)
	assert.InDelta(t, -20.0, summary.GainPercent, 0.001)
	assert.InDelta(t, -8.0, summary.Positions[0].DayChange, 0.001)
}
