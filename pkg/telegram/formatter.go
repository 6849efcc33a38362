package telegram

import (
	"fmt"
	"time"
)

// AlertType identifies which price threshold was crossed.
type AlertType string

const (
	AlertAboveTarget AlertType = "ABOVE_TARGET"
	AlertBelowStop   AlertType = "BELOW_STOP"
)

// FormatPriceAlert formats a holding price alert as a Markdown message.
func FormatPriceAlert(alertType AlertType, symbol string, triggerPrice, targetPrice float64, timestamp int64) string {
	var icon, label string
	switch alertType {
	case AlertAboveTarget:
		icon = "🟢"
		label = "Target price reached"
	case AlertBelowStop:
		icon = "🔴"
		label = "Stop level breached"
	default:
		icon = "🟡"
		label = "Price alert"
	}

	triggeredAt := time.Unix(timestamp, 0).Format("2006-01-02 15:04")

	return fmt.Sprintf("%s *%s*\n📈 *%s*\nTrigger price: %.2f\nAlert level: %.2f\nAt: %s",
		icon, label, symbol, triggerPrice, targetPrice, triggeredAt)
}

// FormatSnapshotSummary formats a daily portfolio valuation as a Markdown message.
func FormatSnapshotSummary(portfolioName string, totalValue, costBasis, gain, gainPercent float64) string {
	icon := "😐"
	if gain > 0 {
		icon = "😊"
	} else if gain < 0 {
		icon = "😟"
	}

	return fmt.Sprintf("📊 *Daily Snapshot: %s*\n💰 Value: %.2f\n🧾 Cost basis: %.2f\n%s Gain: %+.2f (%+.2f%%)",
		portfolioName, totalValue, costBasis, icon, gain, gainPercent)
}
