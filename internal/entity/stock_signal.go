package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StockSignal is the latest research row for one symbol: prices, sub-scores
// and fundamentals refreshed by the research_refresh job. Nullable columns
// mean the upstream provider had no data for that field.
type StockSignal struct {
	ID             int64   `gorm:"primaryKey" json:"id"`
	Symbol         string  `gorm:"not null;uniqueIndex" json:"symbol"`
	CurrentPrice   float64 `json:"current_price"`
	PreviousClose  float64 `json:"previous_close"`
	CompositeScore float64 `json:"composite_score"`

	FundamentalScore float64 `json:"fundamental_score"`
	TechnicalScore   float64 `json:"technical_score"`
	AnalystScore     float64 `json:"analyst_score"`
	SentimentScore   float64 `json:"sentiment_score"`
	ConvictionScore  float64 `json:"conviction_score"`
	DipScore         float64 `json:"dip_score"`

	TechnicalBias string   `json:"technical_bias"`
	TargetUpside  *float64 `json:"target_upside"`
	PrimarySignal string   `json:"primary_signal"`

	Beta          *float64 `json:"beta"`
	DebtToEquity  *float64 `json:"debt_to_equity"`
	NetMargin     *float64 `json:"net_margin"`
	CurrentRatio  *float64 `json:"current_ratio"`
	VolatilityPct *float64 `json:"volatility_pct"`

	Data      datatypes.JSON `gorm:"type:jsonb" json:"data"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"`
}

func (StockSignal) TableName() string {
	return "stock_signals"
}
