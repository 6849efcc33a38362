package repository

import (
	"context"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
)

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	FindByID(ctx context.Context, id uint) (*entity.Transaction, error)
	FindByPortfolio(ctx context.Context, portfolioID uint) ([]entity.Transaction, error)
	FindByPortfolioAndSymbol(ctx context.Context, portfolioID uint, symbol string) ([]entity.Transaction, error)
	Delete(ctx context.Context, id uint) error
}

// NewTransactionRepository creates a new GORM-based transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

type transactionRepository struct {
	db *gorm.DB
}

func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*entity.Transaction, error) {
	var transaction entity.Transaction
	if err := r.db.WithContext(ctx).First(&transaction, id).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepository) FindByPortfolio(ctx context.Context, portfolioID uint) ([]entity.Transaction, error) {
	var transactions []entity.Transaction
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("trade_date ASC, id ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *transactionRepository) FindByPortfolioAndSymbol(ctx context.Context, portfolioID uint, symbol string) ([]entity.Transaction, error) {
	var transactions []entity.Transaction
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ? AND symbol = ?", portfolioID, symbol).
		Order("trade_date ASC, id ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Transaction{}, id).Error
}
