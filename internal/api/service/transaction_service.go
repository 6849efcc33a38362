package service

import (
	"context"
	"fmt"
	"strings"

	"portfolio-tracker/internal/api/dto"
	"portfolio-tracker/internal/api/repository"
	"portfolio-tracker/internal/entity"
	"portfolio-tracker/pkg/logger"
)

// sellEpsilon absorbs float drift when a sell closes out a position.
const sellEpsilon = 1e-9

// ErrOversell is returned when a sell exceeds the currently held shares.
var ErrOversell = fmt.Errorf("sell exceeds held shares")

// TransactionService defines the interface for recording trades. Creating or
// deleting a transaction re-derives the affected holding from the full
// transaction history, so holdings never drift from their source of truth.
type TransactionService interface {
	CreateTransaction(ctx context.Context, portfolioID uint, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	GetTransactions(ctx context.Context, portfolioID uint) ([]*dto.TransactionResponse, error)
	DeleteTransaction(ctx context.Context, portfolioID, id uint) error
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	holdingRepo repository.HoldingRepository,
	logger *logger.Logger,
) TransactionService {
	return &transactionService{
		transactionRepo: transactionRepo,
		holdingRepo:     holdingRepo,
		logger:          logger,
	}
}

type transactionService struct {
	transactionRepo repository.TransactionRepository
	holdingRepo     repository.HoldingRepository
	logger          *logger.Logger
}

func (s *transactionService) CreateTransaction(ctx context.Context, portfolioID uint, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	side := entity.TransactionSide(strings.ToUpper(req.Side))
	switch side {
	case entity.TransactionBuy, entity.TransactionSell, entity.TransactionDividend:
	default:
		return nil, fmt.Errorf("invalid transaction side: %s", req.Side)
	}
	if req.Shares < 0 || req.Price < 0 {
		return nil, fmt.Errorf("shares and price must be non-negative")
	}

	symbol := strings.ToUpper(req.Symbol)

	// Validate a sell against current history before persisting anything.
	existing, err := s.transactionRepo.FindByPortfolioAndSymbol(ctx, portfolioID, symbol)
	if err != nil {
		return nil, err
	}
	transaction := &entity.Transaction{
		PortfolioID: portfolioID,
		Symbol:      symbol,
		Side:        side,
		Shares:      req.Shares,
		Price:       req.Price,
		Fees:        req.Fees,
		TradeDate:   req.TradeDate,
		Note:        req.Note,
	}
	if _, _, err := RebuildHolding(append(existing, *transaction)); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	if err := s.syncHolding(ctx, portfolioID, symbol); err != nil {
		s.logger.Error("Failed to sync holding after transaction", logger.ErrorField(err),
			logger.Field("portfolio_id", portfolioID), logger.StringField("symbol", symbol))
		return nil, err
	}

	return mapToTransactionResponse(transaction), nil
}

func (s *transactionService) GetTransactions(ctx context.Context, portfolioID uint) ([]*dto.TransactionResponse, error) {
	transactions, err := s.transactionRepo.FindByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	var responses []*dto.TransactionResponse
	for i := range transactions {
		responses = append(responses, mapToTransactionResponse(&transactions[i]))
	}
	return responses, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, portfolioID, id uint) error {
	transaction, err := s.transactionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if transaction.PortfolioID != portfolioID {
		return fmt.Errorf("transaction %d does not belong to portfolio %d", id, portfolioID)
	}

	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.syncHolding(ctx, portfolioID, transaction.Symbol); err != nil {
		s.logger.Error("Failed to sync holding after delete", logger.ErrorField(err),
			logger.Field("transaction_id", id))
		return err
	}

	s.logger.Info("Transaction deleted", logger.Field("transaction_id", id))
	return nil
}

// syncHolding re-derives the holding for one symbol from its remaining
// transactions, creating, updating or removing the holding row as needed.
func (s *transactionService) syncHolding(ctx context.Context, portfolioID uint, symbol string) error {
	transactions, err := s.transactionRepo.FindByPortfolioAndSymbol(ctx, portfolioID, symbol)
	if err != nil {
		return err
	}

	shares, avgCost, err := RebuildHolding(transactions)
	if err != nil {
		return err
	}

	holding, err := s.holdingRepo.FindByPortfolioAndSymbol(ctx, portfolioID, symbol)
	if err != nil {
		return err
	}

	if shares <= sellEpsilon {
		if holding != nil {
			return s.holdingRepo.Delete(ctx, holding.ID)
		}
		return nil
	}

	if holding == nil {
		holding = &entity.Holding{PortfolioID: portfolioID, Symbol: symbol}
	}
	holding.Shares = shares
	holding.AvgCost = avgCost
	return s.holdingRepo.Save(ctx, holding)
}

// RebuildHolding folds an ordered transaction history into current shares and
// average cost. Buys raise the average cost basis including fees; sells reduce
// shares at unchanged cost; dividends leave the position untouched.
func RebuildHolding(transactions []entity.Transaction) (shares, avgCost float64, err error) {
	for _, tx := range transactions {
		switch tx.Side {
		case entity.TransactionBuy:
			totalCost := shares*avgCost + tx.Shares*tx.Price + tx.Fees
			shares += tx.Shares
			if shares > 0 {
				avgCost = totalCost / shares
			}
		case entity.TransactionSell:
			if tx.Shares > shares+sellEpsilon {
				return 0, 0, fmt.Errorf("%w: %s sell of %.4f with %.4f held", ErrOversell, tx.Symbol, tx.Shares, shares)
			}
			shares -= tx.Shares
			if shares <= sellEpsilon {
				shares = 0
				avgCost = 0
			}
		case entity.TransactionDividend:
			// Cash event only; the position is unchanged.
		}
	}
	return shares, avgCost, nil
}

func mapToTransactionResponse(transaction *entity.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:          transaction.ID,
		PortfolioID: transaction.PortfolioID,
		Symbol:      transaction.Symbol,
		Side:        string(transaction.Side),
		Shares:      transaction.Shares,
		Price:       transaction.Price,
		Fees:        transaction.Fees,
		TradeDate:   transaction.TradeDate,
		Note:        transaction.Note,
		CreatedAt:   transaction.CreatedAt,
	}
}
