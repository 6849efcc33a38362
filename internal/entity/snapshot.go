package entity

import (
	"time"

	"gorm.io/datatypes"
)

// PortfolioSnapshot is one day's valuation of a portfolio. Positions holds
// the per-symbol breakdown as JSONB.
type PortfolioSnapshot struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	PortfolioID  uint           `gorm:"not null;index:idx_snapshots_portfolio_date" json:"portfolio_id"`
	SnapshotDate time.Time      `gorm:"not null;index:idx_snapshots_portfolio_date" json:"snapshot_date"`
	TotalValue   float64        `gorm:"not null" json:"total_value"`
	CostBasis    float64        `gorm:"not null" json:"cost_basis"`
	Gain         float64        `gorm:"not null" json:"gain"`
	GainPercent  float64        `gorm:"not null" json:"gain_percent"`
	Positions    datatypes.JSON `gorm:"type:jsonb" json:"positions"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (PortfolioSnapshot) TableName() string {
	return "portfolio_snapshots"
}
