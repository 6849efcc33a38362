package repository

import (
	"context"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockSignalRepository defines the write-side interface for stock signals.
type StockSignalRepository interface {
	FindBySymbol(ctx context.Context, symbol string) (*entity.StockSignal, error)
	FindBySymbols(ctx context.Context, symbols []string) ([]entity.StockSignal, error)
	Upsert(ctx context.Context, signal *entity.StockSignal) error
	UpdatePrices(ctx context.Context, symbol string, price, previousClose float64) error
}

// NewStockSignalRepository creates a new GORM-based stock signal repository.
func NewStockSignalRepository(db *gorm.DB) StockSignalRepository {
	return &stockSignalRepository{db: db}
}

type stockSignalRepository struct {
	db *gorm.DB
}

func (r *stockSignalRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.StockSignal, error) {
	var signal entity.StockSignal
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&signal).Error; err != nil {
		return nil, err
	}
	return &signal, nil
}

func (r *stockSignalRepository) FindBySymbols(ctx context.Context, symbols []string) ([]entity.StockSignal, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	var signals []entity.StockSignal
	if err := r.db.WithContext(ctx).Where("symbol IN ?", symbols).Find(&signals).Error; err != nil {
		return nil, err
	}
	return signals, nil
}

// Upsert writes the full signal row, replacing any previous row for the symbol.
func (r *stockSignalRepository) Upsert(ctx context.Context, signal *entity.StockSignal) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_price", "previous_close", "composite_score",
			"fundamental_score", "technical_score", "analyst_score",
			"sentiment_score", "conviction_score", "dip_score",
			"technical_bias", "target_upside", "primary_signal",
			"beta", "debt_to_equity", "net_margin", "current_ratio",
			"volatility_pct", "data", "updated_at",
		}),
	}).Create(signal).Error
}

// UpdatePrices touches only the price columns, leaving scores from the last
// full research refresh intact.
func (r *stockSignalRepository) UpdatePrices(ctx context.Context, symbol string, price, previousClose float64) error {
	return r.db.WithContext(ctx).
		Model(&entity.StockSignal{}).
		Where("symbol = ?", symbol).
		Updates(map[string]interface{}{
			"current_price":  price,
			"previous_close": previousClose,
		}).Error
}
