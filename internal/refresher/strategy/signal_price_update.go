package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/refresher/dto"
	"portfolio-tracker/internal/refresher/repository"
	"portfolio-tracker/pkg/logger"
	redisPkg "portfolio-tracker/pkg/redis"

	"gorm.io/gorm"
)

const redisKeyLastPrice = "last_price:%s"

// SignalPriceUpdateStrategy refreshes current prices for every tracked symbol
// without touching the research scores.
type SignalPriceUpdateStrategy struct {
	logger       *logger.Logger
	universeRepo repository.UniverseRepository
	yahooRepo    repository.YahooFinanceRepository
	polygonRepo  repository.PolygonRepository
	signalRepo   repository.StockSignalRepository
	redisClient  *redisPkg.Client
}

// SignalPriceUpdateResult is the per-symbol outcome of one run.
type SignalPriceUpdateResult struct {
	Symbol string  `json:"symbol"`
	Status string  `json:"status"`
	Price  float64 `json:"price,omitempty"`
	Errors string  `json:"errors,omitempty"`
}

// NewSignalPriceUpdateStrategy creates a new instance of SignalPriceUpdateStrategy.
func NewSignalPriceUpdateStrategy(
	logger *logger.Logger,
	universeRepo repository.UniverseRepository,
	yahooRepo repository.YahooFinanceRepository,
	polygonRepo repository.PolygonRepository,
	signalRepo repository.StockSignalRepository,
	redisClient *redisPkg.Client,
) *SignalPriceUpdateStrategy {
	return &SignalPriceUpdateStrategy{
		logger:       logger,
		universeRepo: universeRepo,
		yahooRepo:    yahooRepo,
		polygonRepo:  polygonRepo,
		signalRepo:   signalRepo,
		redisClient:  redisClient,
	}
}

// GetType returns the job type this strategy handles.
func (s *SignalPriceUpdateStrategy) GetType() entity.JobType {
	return entity.JobTypeSignalPriceUpdate
}

// Execute refreshes prices for the full symbol universe. Per-symbol failures
// are recorded in the output instead of aborting the batch.
func (s *SignalPriceUpdateStrategy) Execute(ctx context.Context, job *entity.RefreshJob) (string, error) {
	symbols, err := s.universeRepo.AllSymbols(ctx)
	if err != nil {
		return FAILED, fmt.Errorf("failed to resolve symbol universe: %w", err)
	}
	if len(symbols) == 0 {
		return SKIPPED, nil
	}

	results := make([]SignalPriceUpdateResult, 0, len(symbols))
	failed := 0
	for _, symbol := range symbols {
		result := SignalPriceUpdateResult{Symbol: symbol, Status: SUCCESS}

		quote, err := s.fetchQuote(ctx, symbol)
		if err != nil {
			result.Status = FAILED
			result.Errors = err.Error()
			failed++
			results = append(results, result)
			continue
		}

		if err := s.storePrices(ctx, quote); err != nil {
			s.logger.Error("Failed to store prices", logger.ErrorField(err), logger.StringField("symbol", symbol))
			result.Status = FAILED
			result.Errors = err.Error()
			failed++
		} else {
			result.Price = quote.Price
		}
		results = append(results, result)
	}

	output, err := json.Marshal(results)
	if err != nil {
		return FAILED, fmt.Errorf("failed to marshal results: %w", err)
	}
	if failed == len(symbols) {
		return string(output), fmt.Errorf("all %d symbols failed", failed)
	}
	return string(output), nil
}

// fetchQuote tries Yahoo first and falls back to the Polygon previous close.
func (s *SignalPriceUpdateStrategy) fetchQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	quote, err := s.yahooRepo.GetQuote(ctx, symbol)
	if err == nil && quote.Price > 0 {
		return quote, nil
	}

	s.logger.DebugContext(ctx, "Yahoo quote failed, trying Polygon", logger.StringField("symbol", symbol))
	fallback, fallbackErr := s.polygonRepo.GetPreviousClose(ctx, symbol)
	if fallbackErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, fallbackErr
	}
	return fallback, nil
}

func (s *SignalPriceUpdateStrategy) storePrices(ctx context.Context, quote *dto.Quote) error {
	_, err := s.signalRepo.FindBySymbol(ctx, quote.Symbol)
	switch {
	case err == nil:
		err = s.signalRepo.UpdatePrices(ctx, quote.Symbol, quote.Price, quote.PreviousClose)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// First sighting of the symbol: seed a price-only row so the
		// performance endpoint can value it before the next research run.
		err = s.signalRepo.Upsert(ctx, &entity.StockSignal{
			Symbol:        quote.Symbol,
			CurrentPrice:  quote.Price,
			PreviousClose: quote.PreviousClose,
		})
	}
	if err != nil {
		return err
	}

	key := fmt.Sprintf(redisKeyLastPrice, quote.Symbol)
	if err := s.redisClient.Set(ctx, key, quote.Price, 24*time.Hour).Err(); err != nil {
		s.logger.Error("Failed to cache last price", logger.ErrorField(err), logger.StringField("symbol", quote.Symbol))
	}
	return nil
}
