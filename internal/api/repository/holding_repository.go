package repository

import (
	"context"
	"errors"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
)

// HoldingRepository defines the interface for holding data operations.
type HoldingRepository interface {
	FindByPortfolio(ctx context.Context, portfolioID uint) ([]entity.Holding, error)
	FindByPortfolioAndSymbol(ctx context.Context, portfolioID uint, symbol string) (*entity.Holding, error)
	Save(ctx context.Context, holding *entity.Holding) error
	Delete(ctx context.Context, id uint) error
}

// NewHoldingRepository creates a new GORM-based holding repository.
func NewHoldingRepository(db *gorm.DB) HoldingRepository {
	return &holdingRepository{db: db}
}

type holdingRepository struct {
	db *gorm.DB
}

func (r *holdingRepository) FindByPortfolio(ctx context.Context, portfolioID uint) ([]entity.Holding, error) {
	var holdings []entity.Holding
	if err := r.db.WithContext(ctx).Where("portfolio_id = ?", portfolioID).Find(&holdings).Error; err != nil {
		return nil, err
	}
	return holdings, nil
}

// FindByPortfolioAndSymbol returns nil without error when no holding exists.
func (r *holdingRepository) FindByPortfolioAndSymbol(ctx context.Context, portfolioID uint, symbol string) (*entity.Holding, error) {
	var holding entity.Holding
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ? AND symbol = ?", portfolioID, symbol).
		First(&holding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &holding, nil
}

func (r *holdingRepository) Save(ctx context.Context, holding *entity.Holding) error {
	return r.db.WithContext(ctx).Save(holding).Error
}

func (r *holdingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Holding{}, id).Error
}
