package dto

import (
	"encoding/json"
	"time"
)

// CreatePortfolioRequest is the DTO for creating a new portfolio.
type CreatePortfolioRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// UpdatePortfolioRequest is the DTO for updating an existing portfolio.
type UpdatePortfolioRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// HoldingResponse represents one position within a portfolio.
type HoldingResponse struct {
	ID          uint     `json:"id"`
	Symbol      string   `json:"symbol"`
	Shares      float64  `json:"shares"`
	AvgCost     float64  `json:"avg_cost"`
	TargetPrice *float64 `json:"target_price,omitempty"`
	StopPrice   *float64 `json:"stop_price,omitempty"`
	PriceAlert  bool     `json:"price_alert"`
}

// PortfolioResponse is the DTO for API responses containing portfolio details.
type PortfolioResponse struct {
	ID        uint              `json:"id"`
	Name      string            `json:"name"`
	Currency  string            `json:"currency"`
	Holdings  []HoldingResponse `json:"holdings,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// HoldingPerformance is the valuation of one holding against latest prices.
type HoldingPerformance struct {
	Symbol           string  `json:"symbol"`
	Shares           float64 `json:"shares"`
	AvgCost          float64 `json:"avg_cost"`
	CurrentPrice     float64 `json:"current_price"`
	MarketValue      float64 `json:"market_value"`
	CostBasis        float64 `json:"cost_basis"`
	Gain             float64 `json:"gain"`
	GainPercent      float64 `json:"gain_percent"`
	DayChange        float64 `json:"day_change"`
	DayChangePercent float64 `json:"day_change_percent"`
	HasPrice         bool    `json:"has_price"`
}

// PerformanceResponse is the full valuation of a portfolio.
type PerformanceResponse struct {
	PortfolioID uint                 `json:"portfolio_id"`
	TotalValue  float64              `json:"total_value"`
	CostBasis   float64              `json:"cost_basis"`
	Gain        float64              `json:"gain"`
	GainPercent float64              `json:"gain_percent"`
	Holdings    []HoldingPerformance `json:"holdings"`
}

// SnapshotResponse is one persisted daily valuation row.
type SnapshotResponse struct {
	SnapshotDate time.Time       `json:"snapshot_date"`
	TotalValue   float64         `json:"total_value"`
	CostBasis    float64         `json:"cost_basis"`
	Gain         float64         `json:"gain"`
	GainPercent  float64         `json:"gain_percent"`
	Positions    json.RawMessage `json:"positions,omitempty" swaggertype:"object"`
}
