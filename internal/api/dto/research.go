package dto

import (
	"encoding/json"
	"time"
)

// VerdictDTO is the rendered entry verdict for one symbol.
type VerdictDTO struct {
	Verdict     string   `json:"verdict"`
	Confidence  string   `json:"confidence"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Reasons     []string `json:"reasons"`
}

// RiskDTO is the rendered risk assessment for one symbol.
type RiskDTO struct {
	RiskLevel   string   `json:"risk_level"`
	RiskFactors []string `json:"risk_factors"`
}

// ResearchResponse is the combined research view for one symbol.
type ResearchResponse struct {
	Symbol        string     `json:"symbol"`
	CurrentPrice  float64    `json:"current_price"`
	Scores        ScoresDTO  `json:"scores"`
	Verdict       VerdictDTO `json:"verdict"`
	Risk          RiskDTO    `json:"risk"`
	PrimarySignal string     `json:"primary_signal,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ScoresDTO groups the sub-scores shown alongside the verdict.
type ScoresDTO struct {
	Composite   float64  `json:"composite"`
	Fundamental float64  `json:"fundamental"`
	Technical   float64  `json:"technical"`
	Analyst     float64  `json:"analyst"`
	Sentiment   float64  `json:"sentiment"`
	Conviction  float64  `json:"conviction"`
	Dip         float64  `json:"dip"`
	Bias        string   `json:"bias"`
	TargetUpside *float64 `json:"target_upside,omitempty"`
}

// SignalResponse is the raw stored signal row for one symbol.
type SignalResponse struct {
	Symbol        string          `json:"symbol"`
	CurrentPrice  float64         `json:"current_price"`
	PreviousClose float64         `json:"previous_close"`
	Scores        ScoresDTO       `json:"scores"`
	Beta          *float64        `json:"beta,omitempty"`
	DebtToEquity  *float64        `json:"debt_to_equity,omitempty"`
	NetMargin     *float64        `json:"net_margin,omitempty"`
	CurrentRatio  *float64        `json:"current_ratio,omitempty"`
	VolatilityPct *float64        `json:"volatility_pct,omitempty"`
	Data          json.RawMessage `json:"data,omitempty" swaggertype:"object"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// StockResponse is the DTO for a tracked stock.
type StockResponse struct {
	ID       uint   `json:"id"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// CreateStockRequest is the DTO for adding a stock to the tracked universe.
type CreateStockRequest struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}
