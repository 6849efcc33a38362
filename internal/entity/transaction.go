package entity

import (
	"time"

	"gorm.io/gorm"
)

type TransactionSide string

const (
	TransactionBuy      TransactionSide = "BUY"
	TransactionSell     TransactionSide = "SELL"
	TransactionDividend TransactionSide = "DIVIDEND"
)

type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	PortfolioID uint            `gorm:"not null;index" json:"portfolio_id"`
	Symbol      string          `gorm:"not null" json:"symbol"`
	Side        TransactionSide `gorm:"not null" json:"side"`
	Shares      float64         `gorm:"not null" json:"shares"`
	Price       float64         `gorm:"not null" json:"price"`
	Fees        float64         `gorm:"not null;default:0" json:"fees"`
	TradeDate   time.Time       `gorm:"not null" json:"trade_date"`
	Note        string          `json:"note"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
