package entity

import (
	"time"

	"gorm.io/gorm"
)

type Portfolio struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Currency  string         `gorm:"not null;default:USD" json:"currency"`
	Holdings  []Holding      `json:"holdings,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}

// Holding is the current position in one symbol, derived from transactions.
type Holding struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PortfolioID uint      `gorm:"not null;index" json:"portfolio_id"`
	Symbol      string    `gorm:"not null" json:"symbol"`
	Shares      float64   `gorm:"not null" json:"shares"`
	AvgCost     float64   `gorm:"not null" json:"avg_cost"`
	TargetPrice *float64  `json:"target_price"`
	StopPrice   *float64  `json:"stop_price"`
	PriceAlert  bool      `gorm:"not null;default:false" json:"price_alert"`
	LastAlertAt *time.Time `json:"last_alert_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Holding) TableName() string {
	return "holdings"
}
