package service

import (
	"context"
	"time"

	"portfolio-tracker/internal/api/dto"
	"portfolio-tracker/internal/api/repository"
	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/valuation"
	"portfolio-tracker/pkg/logger"
)

// PortfolioService defines the interface for managing portfolios.
type PortfolioService interface {
	CreatePortfolio(ctx context.Context, req *dto.CreatePortfolioRequest) (*dto.PortfolioResponse, error)
	GetPortfolioByID(ctx context.Context, id uint) (*dto.PortfolioResponse, error)
	GetAllPortfolios(ctx context.Context) ([]*dto.PortfolioResponse, error)
	UpdatePortfolio(ctx context.Context, id uint, req *dto.UpdatePortfolioRequest) (*dto.PortfolioResponse, error)
	DeletePortfolio(ctx context.Context, id uint) error
	GetPerformance(ctx context.Context, id uint) (*dto.PerformanceResponse, error)
	GetSnapshots(ctx context.Context, id uint, days int) ([]dto.SnapshotResponse, error)
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(
	portfolioRepo repository.PortfolioRepository,
	signalRepo repository.StockSignalRepository,
	snapshotRepo repository.SnapshotRepository,
	logger *logger.Logger,
) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		signalRepo:    signalRepo,
		snapshotRepo:  snapshotRepo,
		logger:        logger,
	}
}

type portfolioService struct {
	portfolioRepo repository.PortfolioRepository
	signalRepo    repository.StockSignalRepository
	snapshotRepo  repository.SnapshotRepository
	logger        *logger.Logger
}

func (s *portfolioService) CreatePortfolio(ctx context.Context, req *dto.CreatePortfolioRequest) (*dto.PortfolioResponse, error) {
	portfolio := &entity.Portfolio{
		Name:     req.Name,
		Currency: req.Currency,
	}
	if portfolio.Currency == "" {
		portfolio.Currency = "USD"
	}

	if err := s.portfolioRepo.Create(ctx, portfolio); err != nil {
		return nil, err
	}

	return mapToPortfolioResponse(portfolio), nil
}

func (s *portfolioService) GetPortfolioByID(ctx context.Context, id uint) (*dto.PortfolioResponse, error) {
	portfolio, err := s.portfolioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToPortfolioResponse(portfolio), nil
}

func (s *portfolioService) GetAllPortfolios(ctx context.Context) ([]*dto.PortfolioResponse, error) {
	portfolios, err := s.portfolioRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var responses []*dto.PortfolioResponse
	for i := range portfolios {
		responses = append(responses, mapToPortfolioResponse(&portfolios[i]))
	}
	return responses, nil
}

func (s *portfolioService) UpdatePortfolio(ctx context.Context, id uint, req *dto.UpdatePortfolioRequest) (*dto.PortfolioResponse, error) {
	portfolio, err := s.portfolioRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to find portfolio for update", logger.ErrorField(err), logger.Field("portfolio_id", id))
		return nil, err
	}

	portfolio.Name = req.Name
	if req.Currency != "" {
		portfolio.Currency = req.Currency
	}

	if err := s.portfolioRepo.Update(ctx, portfolio); err != nil {
		s.logger.Error("Failed to update portfolio", logger.ErrorField(err), logger.Field("portfolio_id", id))
		return nil, err
	}

	return mapToPortfolioResponse(portfolio), nil
}

func (s *portfolioService) DeletePortfolio(ctx context.Context, id uint) error {
	if err := s.portfolioRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete portfolio", logger.ErrorField(err), logger.Field("portfolio_id", id))
		return err
	}
	s.logger.Info("Portfolio deleted", logger.Field("portfolio_id", id))
	return nil
}

// GetPerformance values every holding against the latest stored signals.
func (s *portfolioService) GetPerformance(ctx context.Context, id uint) (*dto.PerformanceResponse, error) {
	portfolio, err := s.portfolioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(portfolio.Holdings))
	for _, h := range portfolio.Holdings {
		symbols = append(symbols, h.Symbol)
	}

	signals, err := s.signalRepo.FindBySymbols(ctx, symbols)
	if err != nil {
		return nil, err
	}
	signalsBySymbol := make(map[string]entity.StockSignal, len(signals))
	for _, sig := range signals {
		signalsBySymbol[sig.Symbol] = sig
	}

	positions := make([]valuation.Position, 0, len(portfolio.Holdings))
	for _, h := range portfolio.Holdings {
		pos := valuation.Position{
			Symbol:  h.Symbol,
			Shares:  h.Shares,
			AvgCost: h.AvgCost,
		}
		if sig, ok := signalsBySymbol[h.Symbol]; ok && sig.CurrentPrice > 0 {
			pos.Price = sig.CurrentPrice
			pos.PrevClose = sig.PreviousClose
			pos.HasPrice = true
		}
		positions = append(positions, pos)
	}

	summary := valuation.Value(positions)

	resp := &dto.PerformanceResponse{
		PortfolioID: portfolio.ID,
		TotalValue:  summary.TotalValue,
		CostBasis:   summary.CostBasis,
		Gain:        summary.Gain,
		GainPercent: summary.GainPercent,
		Holdings:    make([]dto.HoldingPerformance, 0, len(summary.Positions)),
	}
	for _, pv := range summary.Positions {
		resp.Holdings = append(resp.Holdings, dto.HoldingPerformance{
			Symbol:           pv.Symbol,
			Shares:           pv.Shares,
			AvgCost:          pv.AvgCost,
			CurrentPrice:     pv.Price,
			MarketValue:      pv.MarketValue,
			CostBasis:        pv.CostBasis,
			Gain:             pv.Gain,
			GainPercent:      pv.GainPercent,
			DayChange:        pv.DayChange,
			DayChangePercent: pv.DayChangePercent,
			HasPrice:         pv.HasPrice,
		})
	}

	return resp, nil
}

func (s *portfolioService) GetSnapshots(ctx context.Context, id uint, days int) ([]dto.SnapshotResponse, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	snapshots, err := s.snapshotRepo.FindByPortfolio(ctx, id, since)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SnapshotResponse, 0, len(snapshots))
	for _, snap := range snapshots {
		responses = append(responses, dto.SnapshotResponse{
			SnapshotDate: snap.SnapshotDate,
			TotalValue:   snap.TotalValue,
			CostBasis:    snap.CostBasis,
			Gain:         snap.Gain,
			GainPercent:  snap.GainPercent,
			Positions:    []byte(snap.Positions),
		})
	}
	return responses, nil
}

func mapToPortfolioResponse(portfolio *entity.Portfolio) *dto.PortfolioResponse {
	resp := &dto.PortfolioResponse{
		ID:        portfolio.ID,
		Name:      portfolio.Name,
		Currency:  portfolio.Currency,
		CreatedAt: portfolio.CreatedAt,
		UpdatedAt: portfolio.UpdatedAt,
	}
	for _, h := range portfolio.Holdings {
		resp.Holdings = append(resp.Holdings, dto.HoldingResponse{
			ID:          h.ID,
			Symbol:      h.Symbol,
			Shares:      h.Shares,
			AvgCost:     h.AvgCost,
			TargetPrice: h.TargetPrice,
			StopPrice:   h.StopPrice,
			PriceAlert:  h.PriceAlert,
		})
	}
	return resp
}
