package repository

import (
	"context"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
)

// StockSignalRepository defines read access to the latest research signals.
type StockSignalRepository interface {
	FindBySymbol(ctx context.Context, symbol string) (*entity.StockSignal, error)
	FindBySymbols(ctx context.Context, symbols []string) ([]entity.StockSignal, error)
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
	var signals []entity.StockSignal
	if len(symbols) == 0 {
		return signals, nil
	}
	if err := r.db.WithContext(ctx).Where("symbol IN ?", symbols).Find(&signals).Error; err != nil {
		return nil, err
	}
	return signals, nil
}
