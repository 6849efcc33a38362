package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/refresher/dto"
	"portfolio-tracker/internal/refresher/repository"
	"portfolio-tracker/pkg/logger"
	redisPkg "portfolio-tracker/pkg/redis"
	"portfolio-tracker/pkg/telegram"
	"portfolio-tracker/pkg/utils"

	"github.com/patrickmn/go-cache"
)

const redisKeyPriceAlert = "price_alert:%d:%s"

// PriceAlertStrategy compares armed holding thresholds against fresh quotes
// and notifies via Telegram. A Redis key per holding and alert type
// suppresses resends while the price stays past the threshold.
type PriceAlertStrategy struct {
	logger           *logger.Logger
	inmemoryCache    *cache.Cache
	portfolioRepo    repository.PortfolioRepository
	yahooRepo        repository.YahooFinanceRepository
	telegramNotifier telegram.Notifier
	redisClient      *redisPkg.Client
}

// PriceAlertPayload tunes resend suppression per job.
type PriceAlertPayload struct {
	AlertCacheDuration string `json:"alert_cache_duration"`
}

// PriceAlertResult is the per-holding outcome of one run.
type PriceAlertResult struct {
	Symbol string `json:"symbol"`
	Status string `json:"status"`
	Alert  string `json:"alert,omitempty"`
	Errors string `json:"errors,omitempty"`
}

// NewPriceAlertStrategy creates a new instance of PriceAlertStrategy.
func NewPriceAlertStrategy(
	logger *logger.Logger,
	portfolioRepo repository.PortfolioRepository,
	yahooRepo repository.YahooFinanceRepository,
	telegramNotifier telegram.Notifier,
	redisClient *redisPkg.Client,
) *PriceAlertStrategy {
	return &PriceAlertStrategy{
		logger:           logger,
		inmemoryCache:    cache.New(5*time.Minute, 10*time.Minute),
		portfolioRepo:    portfolioRepo,
		yahooRepo:        yahooRepo,
		telegramNotifier: telegramNotifier,
		redisClient:      redisClient,
	}
}

// GetType returns the job type this strategy handles.
func (s *PriceAlertStrategy) GetType() entity.JobType {
	return entity.JobTypePriceAlert
}

// Execute checks every armed holding. Per-holding failures are recorded in
// the output instead of aborting the batch.
func (s *PriceAlertStrategy) Execute(ctx context.Context, job *entity.RefreshJob) (string, error) {
	payload := PriceAlertPayload{AlertCacheDuration: "4h"}
	if len(job.Payload) > 0 {
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return FAILED, fmt.Errorf("failed to unmarshal job payload: %w", err)
		}
	}
	cacheDuration, err := time.ParseDuration(payload.AlertCacheDuration)
	if err != nil || cacheDuration <= 0 {
		cacheDuration = 4 * time.Hour
	}

	holdings, err := s.portfolioRepo.FindHoldingsWithAlerts(ctx)
	if err != nil {
		return FAILED, fmt.Errorf("failed to load holdings with alerts: %w", err)
	}
	if len(holdings) == 0 {
		return SKIPPED, nil
	}

	results := make([]PriceAlertResult, 0, len(holdings))
	for _, holding := range holdings {
		result := PriceAlertResult{Symbol: holding.Symbol, Status: SUCCESS}

		quote, err := s.quoteFor(ctx, holding.Symbol)
		if err != nil {
			result.Status = FAILED
			result.Errors = err.Error()
			results = append(results, result)
			continue
		}

		alertType, level := s.evaluate(&holding, quote.Price)
		if alertType == "" {
			result.Status = SKIPPED
			results = append(results, result)
			continue
		}

		sent, err := s.sendAlert(ctx, &holding, alertType, level, quote.Price, cacheDuration)
		if err != nil {
			result.Status = FAILED
			result.Errors = err.Error()
		} else if sent {
			result.Alert = string(alertType)
		} else {
			result.Status = SKIPPED
		}
		results = append(results, result)
	}

	output, err := json.Marshal(results)
	if err != nil {
		return FAILED, fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(output), nil
}

// quoteFor fetches a quote once per symbol per run via the in-memory cache,
// since multiple portfolios can hold the same symbol.
func (s *PriceAlertStrategy) quoteFor(ctx context.Context, symbol string) (*dto.Quote, error) {
	if cached, found := s.inmemoryCache.Get(symbol); found {
		return cached.(*dto.Quote), nil
	}
	quote, err := s.yahooRepo.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	s.inmemoryCache.Set(symbol, quote, cache.DefaultExpiration)
	return quote, nil
}

// evaluate returns the crossed threshold, if any. Target beats stop when both
// are somehow crossed at once.
func (s *PriceAlertStrategy) evaluate(holding *entity.Holding, price float64) (telegram.AlertType, float64) {
	if holding.TargetPrice != nil && price >= *holding.TargetPrice {
		return telegram.AlertAboveTarget, *holding.TargetPrice
	}
	if holding.StopPrice != nil && price <= *holding.StopPrice {
		return telegram.AlertBelowStop, *holding.StopPrice
	}
	return "", 0
}

// sendAlert notifies unless the suppression key is still live. Returns
// whether a message went out.
func (s *PriceAlertStrategy) sendAlert(ctx context.Context, holding *entity.Holding, alertType telegram.AlertType, level, price float64, cacheDuration time.Duration) (bool, error) {
	key := fmt.Sprintf(redisKeyPriceAlert, holding.ID, alertType)
	ok, err := s.redisClient.SetNX(ctx, key, price, cacheDuration).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set suppression key: %w", err)
	}
	if !ok {
		s.logger.DebugContext(ctx, "Alert suppressed by cooldown", logger.StringField("symbol", holding.Symbol))
		return false, nil
	}

	now := utils.TimeNowNY()
	msg := telegram.FormatPriceAlert(alertType, holding.Symbol, price, level, now.Unix())
	if err := s.telegramNotifier.SendMessage(msg); err != nil {
		// Drop the suppression key so the next run can retry the send.
		if delErr := s.redisClient.Del(ctx, key).Err(); delErr != nil {
			s.logger.Error("Failed to clear suppression key", logger.ErrorField(delErr), logger.StringField("symbol", holding.Symbol))
		}
		return false, fmt.Errorf("failed to send alert: %w", err)
	}

	if err := s.portfolioRepo.MarkAlertSent(ctx, holding.ID, now); err != nil {
		s.logger.Error("Failed to mark alert sent", logger.ErrorField(err), logger.Field("holding_id", holding.ID))
	}
	return true, nil
}
