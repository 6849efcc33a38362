package service

import (
	"testing"

	"portfolio-tracker/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buy(symbol string, shares, price, fees float64) entity.Transaction {
	return entity.Transaction{Symbol: symbol, Side: entity.TransactionBuy, Shares: shares, Price: price, Fees: fees}
}

func sell(symbol string, shares, price float64) entity.Transaction {
	return entity.Transaction{Symbol: symbol, Side: entity.TransactionSell, Shares: shares, Price: price}
}

func TestRebuildHolding_SingleBuy(t *testing.T) {
	shares, avgCost, err := RebuildHolding([]entity.Transaction{
		buy("AAPL", 10, 150, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, shares)
	assert.Equal(t, 150.0, avgCost)
}

func TestRebuildHolding_BuysAverageUpWithFees(t *testing.T) {
	shares, avgCost, err := RebuildHolding([]entity.Transaction{
		buy("AAPL", 10, 100, 10),
		buy("AAPL", 10, 200, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, shares)
	// (10*100 + 10 + 10*200 + 10) / 20
	assert.InDelta(t, 151.0, avgCost, 0.001)
}

func TestRebuildHolding_SellKeepsAvgCost(t *testing.T) {
	shares, avgCost, err := RebuildHolding([]entity.Transaction{
		buy("AAPL", 10, 100, 0),
		sell("AAPL", 4, 120),
	})
	require.NoError(t, err)
	assert.Equal(t, 6.0, shares)
	assert.Equal(t, 100.0, avgCost)
}

func TestRebuildHolding_SellOutResetsPosition(t *testing.T) {
	shares, avgCost, err := RebuildHolding([]entity.Transaction{
		buy("AAPL", 10, 100, 0),
		sell("AAPL", 10, 120),
		buy("AAPL", 5, 80, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, shares)
	assert.Equal(t, 80.0, avgCost, "a fresh buy after a full exit sets a fresh cost basis")
}

func TestRebuildHolding_OversellRejected(t *testing.T) {
	_, _, err := RebuildHolding([]entity.Transaction{
		buy("AAPL", 10, 100, 0),
		sell("AAPL", 11, 120),
	})
	assert.ErrorIs(t, err, ErrOversell)
}

func TestRebuildHolding_SellWithoutPositionRejected(t *testing.T) {
	_, _, err := RebuildHolding([]entity.Transaction{
		sell("AAPL", 1, 120),
	})
	assert.ErrorIs(t, err, ErrOversell)
}

func TestRebuildHolding_DividendLeavesPositionUntouched(t *testing.T) {
	shares, avgCost, err := RebuildHolding([]entity.Transaction{
		buy("AAPL", 10, 100, 0),
		{Symbol: "AAPL", Side: entity.TransactionDividend, Shares: 0, Price: 0.24},
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, shares)
	assert.Equal(t, 100.0, avgCost)
}

func TestRebuildHolding_FractionalSellOut(t *testing.T) {
	// Three equal fractional sells must close the position despite float drift.
	shares, _, err := RebuildHolding([]entity.Transaction{
		buy("VTI", 1, 300, 0),
		sell("VTI", 1.0/3, 310),
		sell("VTI", 1.0/3, 310),
		sell("VTI", 1.0/3, 310),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, shares)
}
