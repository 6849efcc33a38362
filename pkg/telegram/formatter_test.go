package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPriceAlert(t *testing.T) {
	ts := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC).Unix()

	above := FormatPriceAlert(AlertAboveTarget, "AAPL", 151.25, 150, ts)
	assert.Contains(t, above, "Target price reached")
	assert.Contains(t, above, "AAPL")
	assert.Contains(t, above, "151.25")
	assert.Contains(t, above, "150.00")

	below := FormatPriceAlert(AlertBelowStop, "TSLA", 88.10, 90, ts)
	assert.Contains(t, below, "Stop level breached")
	assert.Contains(t, below, "88.10")
}

func TestFormatSnapshotSummary(t *testing.T) {
	up := FormatSnapshotSummary("Retirement", 11000, 10000, 1000, 10)
	assert.Contains(t, up, "Retirement")
	assert.Contains(t, up, "+1000.00")
	assert.Contains(t, up, "+10.00%")

	down := FormatSnapshotSummary("Growth", 9000, 10000, -1000, -10)
	assert.Contains(t, down, "-1000.00")
}
