package repository

import (
	"context"
	"strings"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
)

// StocksRepository defines the interface for the tracked stock universe.
type StocksRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	FindAll(ctx context.Context) ([]entity.Stock, error)
	Search(ctx context.Context, query string) ([]entity.Stock, error)
	FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error)
	Delete(ctx context.Context, id uint) error
}

// NewStocksRepository creates a new GORM-based stocks repository.
func NewStocksRepository(db *gorm.DB) StocksRepository {
	return &stocksRepository{db: db}
}

type stocksRepository struct {
	db *gorm.DB
}

func (r *stocksRepository) Create(ctx context.Context, stock *entity.Stock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

func (r *stocksRepository) FindAll(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	if err := r.db.WithContext(ctx).Order("symbol ASC").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

func (r *stocksRepository) Search(ctx context.Context, query string) ([]entity.Stock, error) {
	var stocks []entity.Stock
	pattern := "%" + strings.ToUpper(query) + "%"
	err := r.db.WithContext(ctx).
		Where("UPPER(symbol) LIKE ? OR UPPER(name) LIKE ?", pattern, pattern).
		Order("symbol ASC").
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}

func (r *stocksRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	var stock entity.Stock
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stocksRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Stock{}, id).Error
}
