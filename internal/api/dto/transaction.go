package dto

import "time"

// CreateTransactionRequest is the DTO for recording a trade.
type CreateTransactionRequest struct {
	Symbol    string    `json:"symbol"`
	Side      string    `json:"side"` // BUY, SELL or DIVIDEND
	Shares    float64   `json:"shares"`
	Price     float64   `json:"price"`
	Fees      float64   `json:"fees"`
	TradeDate time.Time `json:"trade_date"`
	Note      string    `json:"note"`
}

// TransactionResponse is the DTO for API responses containing a transaction.
type TransactionResponse struct {
	ID          uint      `json:"id"`
	PortfolioID uint      `json:"portfolio_id"`
	Symbol      string    `json:"symbol"`
	Side        string    `json:"side"`
	Shares      float64   `json:"shares"`
	Price       float64   `json:"price"`
	Fees        float64   `json:"fees"`
	TradeDate   time.Time `json:"trade_date"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}
