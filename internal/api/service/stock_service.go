package service

import (
	"context"
	"strings"

	"portfolio-tracker/internal/api/dto"
	"portfolio-tracker/internal/api/repository"
	"portfolio-tracker/internal/entity"
	"portfolio-tracker/pkg/logger"
)

// StockService defines the interface for the tracked stock universe.
type StockService interface {
	CreateStock(ctx context.Context, req *dto.CreateStockRequest) (*dto.StockResponse, error)
	GetStocks(ctx context.Context, query string) ([]*dto.StockResponse, error)
	DeleteStock(ctx context.Context, id uint) error
}

// NewStockService creates a new stock service.
func NewStockService(stocksRepo repository.StocksRepository, logger *logger.Logger) StockService {
	return &stockService{stocksRepo: stocksRepo, logger: logger}
}

type stockService struct {
	stocksRepo repository.StocksRepository
	logger     *logger.Logger
}

func (s *stockService) CreateStock(ctx context.Context, req *dto.CreateStockRequest) (*dto.StockResponse, error) {
	stock := &entity.Stock{
		Symbol:   strings.ToUpper(req.Symbol),
		Name:     req.Name,
		Exchange: req.Exchange,
	}
	if err := s.stocksRepo.Create(ctx, stock); err != nil {
		return nil, err
	}
	return mapToStockResponse(stock), nil
}

func (s *stockService) GetStocks(ctx context.Context, query string) ([]*dto.StockResponse, error) {
	var (
		stocks []entity.Stock
		err    error
	)
	if query != "" {
		stocks, err = s.stocksRepo.Search(ctx, query)
	} else {
		stocks, err = s.stocksRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	var responses []*dto.StockResponse
	for i := range stocks {
		responses = append(responses, mapToStockResponse(&stocks[i]))
	}
	return responses, nil
}

func (s *stockService) DeleteStock(ctx context.Context, id uint) error {
	if err := s.stocksRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete stock", logger.ErrorField(err), logger.Field("stock_id", id))
		return err
	}
	return nil
}

func mapToStockResponse(stock *entity.Stock) *dto.StockResponse {
	return &dto.StockResponse{
		ID:       stock.ID,
		Symbol:   stock.Symbol,
		Name:     stock.Name,
		Exchange: stock.Exchange,
	}
}
