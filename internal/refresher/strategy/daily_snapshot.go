package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/refresher/repository"
	"portfolio-tracker/internal/valuation"
	"portfolio-tracker/pkg/logger"
	"portfolio-tracker/pkg/telegram"
	"portfolio-tracker/pkg/utils"
)

// DailySnapshotStrategy values every portfolio against the latest stored
// prices and persists one snapshot row per portfolio per day.
type DailySnapshotStrategy struct {
	logger           *logger.Logger
	portfolioRepo    repository.PortfolioRepository
	signalRepo       repository.StockSignalRepository
	telegramNotifier telegram.Notifier
}

// DailySnapshotResult is the per-portfolio outcome of one run.
type DailySnapshotResult struct {
	PortfolioID uint    `json:"portfolio_id"`
	Status      string  `json:"status"`
	TotalValue  float64 `json:"total_value,omitempty"`
	Errors      string  `json:"errors,omitempty"`
}

// NewDailySnapshotStrategy creates a new instance of DailySnapshotStrategy.
func NewDailySnapshotStrategy(
	logger *logger.Logger,
	portfolioRepo repository.PortfolioRepository,
	signalRepo repository.StockSignalRepository,
	telegramNotifier telegram.Notifier,
) *DailySnapshotStrategy {
	return &DailySnapshotStrategy{
		logger:           logger,
		portfolioRepo:    portfolioRepo,
		signalRepo:       signalRepo,
		telegramNotifier: telegramNotifier,
	}
}

// GetType returns the job type this strategy handles.
func (s *DailySnapshotStrategy) GetType() entity.JobType {
	return entity.JobTypeDailySnapshot
}

// Execute snapshots every portfolio. Re-running on the same day overwrites
// that day's rows.
func (s *DailySnapshotStrategy) Execute(ctx context.Context, job *entity.RefreshJob) (string, error) {
	portfolios, err := s.portfolioRepo.FindAllWithHoldings(ctx)
	if err != nil {
		return FAILED, fmt.Errorf("failed to load portfolios: %w", err)
	}
	if len(portfolios) == 0 {
		return SKIPPED, nil
	}

	snapshotDate := truncateToDay(utils.TimeNowNY())

	results := make([]DailySnapshotResult, 0, len(portfolios))
	failed := 0
	for _, portfolio := range portfolios {
		result := DailySnapshotResult{PortfolioID: portfolio.ID, Status: SUCCESS}

		summary, err := s.snapshotPortfolio(ctx, &portfolio, snapshotDate)
		if err != nil {
			s.logger.Error("Failed to snapshot portfolio", logger.ErrorField(err), logger.Field("portfolio_id", portfolio.ID))
			result.Status = FAILED
			result.Errors = err.Error()
			failed++
		} else {
			result.TotalValue = summary.TotalValue
			s.notify(&portfolio, summary)
		}
		results = append(results, result)
	}

	output, err := json.Marshal(results)
	if err != nil {
		return FAILED, fmt.Errorf("failed to marshal results: %w", err)
	}
	if failed == len(portfolios) {
		return string(output), fmt.Errorf("all %d portfolios failed", failed)
	}
	return string(output), nil
}

func (s *DailySnapshotStrategy) snapshotPortfolio(ctx context.Context, portfolio *entity.Portfolio, snapshotDate time.Time) (*valuation.Summary, error) {
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

	breakdown, err := json.Marshal(summary.Positions)
	if err != nil {
		return nil, err
	}

	snapshot := &entity.PortfolioSnapshot{
		PortfolioID:  portfolio.ID,
		SnapshotDate: snapshotDate,
		TotalValue:   summary.TotalValue,
		CostBasis:    summary.CostBasis,
		Gain:         summary.Gain,
		GainPercent:  summary.GainPercent,
		Positions:    breakdown,
	}
	if err := s.portfolioRepo.UpsertSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *DailySnapshotStrategy) notify(portfolio *entity.Portfolio, summary *valuation.Summary) {
	if s.telegramNotifier == nil {
		return
	}
	msg := telegram.FormatSnapshotSummary(portfolio.Name, summary.TotalValue, summary.CostBasis, summary.Gain, summary.GainPercent)
	if err := s.telegramNotifier.SendMessage(msg); err != nil {
		s.logger.Error("Failed to send snapshot summary", logger.ErrorField(err), logger.Field("portfolio_id", portfolio.ID))
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
